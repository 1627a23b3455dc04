package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/justkashish/linkview/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSinkAndConsumer(t *testing.T) {
	t.Run("delivers published notifications in order", func(t *testing.T) {
		bus := notify.NewBus()
		defer bus.Shutdown()

		received := make(chan notify.Notification, 4)
		consumer := notify.NewConsumer(bus.Subscriber(), func(n notify.Notification) {
			received <- n
		}, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))
		defer consumer.Shutdown()

		sink := notify.NewSink(bus.Publisher(), zap.NewNop())
		sink.Success("Link created successfully")
		sink.Error("Failed to delete the link")

		first := waitFor(t, received)
		assert.Equal(t, notify.LevelSuccess, first.Level)
		assert.Equal(t, "Link created successfully", first.Text)
		assert.NotEmpty(t, first.ID)
		assert.False(t, first.At.IsZero())

		second := waitFor(t, received)
		assert.Equal(t, notify.LevelError, second.Level)
		assert.Equal(t, "Failed to delete the link", second.Text)
	})

	t.Run("shutdown drains the consumer loop", func(t *testing.T) {
		bus := notify.NewBus()
		defer bus.Shutdown()

		consumer := notify.NewConsumer(bus.Subscriber(), func(notify.Notification) {}, zap.NewNop())
		require.NoError(t, consumer.Start(context.Background()))

		assert.NoError(t, consumer.Shutdown())
	})

	t.Run("notifications queued at shutdown are still delivered", func(t *testing.T) {
		bus := notify.NewBus()
		defer bus.Shutdown()

		var delivered []string
		consumer := notify.NewConsumer(bus.Subscriber(), func(n notify.Notification) {
			delivered = append(delivered, n.Text)
		}, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))

		sink := notify.NewSink(bus.Publisher(), zap.NewNop())
		sink.Success("Link deleted successfully")
		sink.Error("Failed to fetch links")

		// Shutdown immediately after publishing; both lines must still
		// reach the handler before the loop exits.
		require.NoError(t, consumer.Shutdown())

		assert.Equal(t, []string{"Link deleted successfully", "Failed to fetch links"}, delivered)
	})
}

func waitFor(t *testing.T, ch <-chan notify.Notification) notify.Notification {
	t.Helper()

	select {
	case n := <-ch:
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")

		return notify.Notification{}
	}
}
