// Package stats presents the dashboard click aggregates.
package stats

import (
	"context"
	"sync"
	"time"

	"github.com/justkashish/linkview/internal/api"
	"github.com/justkashish/linkview/internal/task"
	"go.uber.org/zap"
)

// PollInterval is the dashboard background refresh cadence.
const PollInterval = 5 * time.Minute

// Backend is the slice of the HTTP client the view depends on.
type Backend interface {
	ClickStats(ctx context.Context) (api.ClickStats, error)
}

// View owns the latest click aggregates.
type View struct {
	mu      sync.Mutex
	backend Backend
	logger  *zap.Logger
	stats   api.ClickStats
}

// NewView creates the dashboard view with zero-value stats.
func NewView(backend Backend, logger *zap.Logger) *View {
	return &View{backend: backend, logger: logger}
}

// Refresh fetches the aggregates. On failure the view degrades to
// zero-value stats rather than surfacing an error.
func (v *View) Refresh(ctx context.Context) {
	fetched, err := v.backend.ClickStats(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		v.logger.Error("failed to fetch click stats", zap.Error(err))
		v.stats = api.ClickStats{}

		return
	}

	v.stats = fetched
}

// Stats returns the latest aggregates.
func (v *View) Stats() api.ClickStats {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.stats
}

// Poller returns the background refresh task for this view.
func (v *View) Poller() *task.Ticker {
	return task.NewTicker(PollInterval, v.Refresh, v.logger)
}
