package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Run("short strings pass through", func(t *testing.T) {
		assert.Equal(t, "https://s/abc", truncate("https://s/abc", 30))
	})

	t.Run("long strings are cut with an ellipsis", func(t *testing.T) {
		assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
	})

	t.Run("cuts on runes, not bytes", func(t *testing.T) {
		got := truncate("链接备注已过期链接备注已过期", 5)

		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, "链接备注已...", got)
	})
}
