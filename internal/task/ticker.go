// Package task provides the scoped background-task primitives the views
// use for recurring refresh: acquire on activation, guaranteed release
// on deactivation.
package task

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Func is one unit of recurring work.
type Func func(ctx context.Context)

// Ticker runs fn once immediately and then on every interval tick until
// shut down. The owner must call Shutdown on all exit paths.
type Ticker struct {
	interval time.Duration
	fn       Func
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewTicker creates a recurring task. It does not start it.
func NewTicker(interval time.Duration, fn Func, logger *zap.Logger) *Ticker {
	return &Ticker{
		interval: interval,
		fn:       fn,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins the recurring run.
func (t *Ticker) Start(ctx context.Context) error {
	ctx, t.cancel = context.WithCancel(ctx)

	go t.loop(ctx)

	return nil
}

func (t *Ticker) loop(ctx context.Context) {
	defer close(t.done)

	t.fn(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.fn(ctx)
		}
	}
}

// Shutdown cancels the task and waits for the loop to exit.
func (t *Ticker) Shutdown() error {
	if t.cancel != nil {
		t.cancel()
	}

	<-t.done

	return nil
}
