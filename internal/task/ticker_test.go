package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTicker(t *testing.T) {
	t.Run("runs immediately and then on each tick", func(t *testing.T) {
		var runs atomic.Int64
		ticker := NewTicker(10*time.Millisecond, func(context.Context) {
			runs.Add(1)
		}, zap.NewNop())

		require.NoError(t, ticker.Start(context.Background()))

		require.Eventually(t, func() bool {
			return runs.Load() >= 3
		}, time.Second, 5*time.Millisecond)

		require.NoError(t, ticker.Shutdown())
	})

	t.Run("shutdown stops further runs", func(t *testing.T) {
		var runs atomic.Int64
		ticker := NewTicker(5*time.Millisecond, func(context.Context) {
			runs.Add(1)
		}, zap.NewNop())

		require.NoError(t, ticker.Start(context.Background()))
		require.Eventually(t, func() bool {
			return runs.Load() >= 1
		}, time.Second, time.Millisecond)

		require.NoError(t, ticker.Shutdown())
		after := runs.Load()

		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, after, runs.Load())
	})

	t.Run("shutdown waits for the loop to exit", func(t *testing.T) {
		started := make(chan struct{})
		ticker := NewTicker(time.Hour, func(ctx context.Context) {
			close(started)
		}, zap.NewNop())

		require.NoError(t, ticker.Start(context.Background()))
		<-started

		require.NoError(t, ticker.Shutdown())

		select {
		case <-ticker.done:
		default:
			t.Fatal("loop still running after shutdown")
		}
	})
}

type fakeTask struct {
	startErr  error
	started   atomic.Bool
	shutdowns atomic.Int64
}

func (f *fakeTask) Start(context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}

	f.started.Store(true)

	return nil
}

func (f *fakeTask) Shutdown() error {
	f.shutdowns.Add(1)

	return nil
}

func TestGroup(t *testing.T) {
	t.Run("starts and shuts down every task", func(t *testing.T) {
		group := NewGroup(zap.NewNop())
		first, second := &fakeTask{}, &fakeTask{}
		group.Add(first)
		group.Add(second)

		require.NoError(t, group.Start(context.Background()))
		assert.True(t, first.started.Load())
		assert.True(t, second.started.Load())

		require.NoError(t, group.Shutdown())
		assert.Equal(t, int64(1), first.shutdowns.Load())
		assert.Equal(t, int64(1), second.shutdowns.Load())
	})

	t.Run("start failure rolls back already-started tasks", func(t *testing.T) {
		group := NewGroup(zap.NewNop())
		first := &fakeTask{}
		second := &fakeTask{startErr: errors.New("boom")}
		group.Add(first)
		group.Add(second)

		err := group.Start(context.Background())

		require.Error(t, err)
		assert.Equal(t, int64(1), first.shutdowns.Load())
		assert.Equal(t, int64(0), second.shutdowns.Load())
	})
}
