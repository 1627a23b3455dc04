// Package analytics presents the server-paginated table of click
// events. Unlike the links table, sorting and filtering authority is
// the server: every input change is a re-fetch, never a local sort.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/justkashish/linkview/internal/api"
	"github.com/justkashish/linkview/internal/search"
	"github.com/justkashish/linkview/internal/task"
	"go.uber.org/zap"
)

// Order is the server-side timestamp sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// PageSize is the fixed server page size.
const PageSize = 10

// PollInterval is how often the table refreshes in the background.
const PollInterval = 30 * time.Second

// Backend is the slice of the HTTP client the view depends on.
type Backend interface {
	Analytics(ctx context.Context, page int, order, searchTerm string) (api.AnalyticsPage, error)
}

// View owns one page of analytics rows and the inputs that select it.
type View struct {
	mu      sync.Mutex
	backend Backend
	logger  *zap.Logger

	page       int
	order      Order
	searchTerm string
	rows       []api.ClickEvent
	totalCount int
}

// NewView creates the view at page one, newest first.
func NewView(backend Backend, logger *zap.Logger) *View {
	return &View{
		backend: backend,
		logger:  logger,
		page:    1,
		order:   OrderDesc,
	}
}

// Fetch issues one request with the current page, order and search
// inputs. Transport failures keep the previous rows; a payload without
// an items array degrades to an empty table. Neither is an error to the
// renderer.
func (v *View) Fetch(ctx context.Context) {
	v.mu.Lock()
	page, order, searchTerm := v.page, v.order, v.searchTerm
	v.mu.Unlock()

	result, err := v.backend.Analytics(ctx, page, string(order), searchTerm)
	if err != nil {
		v.logger.Error("failed to fetch analytics", zap.Error(err))

		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if result.Items == nil {
		v.logger.Warn("analytics payload missing items array")
		v.rows = nil
		v.totalCount = result.TotalCount

		return
	}

	v.rows = result.Items
	v.totalCount = result.TotalCount
}

// SetPage moves to page n and re-fetches.
func (v *View) SetPage(ctx context.Context, n int) {
	v.mu.Lock()

	if n < 1 {
		n = 1
	}

	v.page = n
	v.mu.Unlock()

	v.Fetch(ctx)
}

// ToggleSort flips the timestamp order and re-fetches.
func (v *View) ToggleSort(ctx context.Context) {
	v.mu.Lock()

	if v.order == OrderAsc {
		v.order = OrderDesc
	} else {
		v.order = OrderAsc
	}
	v.mu.Unlock()

	v.Fetch(ctx)
}

// SetSearch updates the filter and re-fetches from page one.
func (v *View) SetSearch(ctx context.Context, term string) {
	v.mu.Lock()
	v.searchTerm = term
	v.page = 1
	v.mu.Unlock()

	v.Fetch(ctx)
}

// Rows returns the current page of events.
func (v *View) Rows() []api.ClickEvent {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]api.ClickEvent, len(v.rows))
	copy(out, v.rows)

	return out
}

// PageCount returns ceil(totalCount / PageSize).
func (v *View) PageCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return (v.totalCount + PageSize - 1) / PageSize
}

// TotalCount returns the server-reported total number of events.
func (v *View) TotalCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.totalCount
}

// CurrentPage returns the active page number.
func (v *View) CurrentPage() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.page
}

// SortOrder returns the active timestamp order.
func (v *View) SortOrder() Order {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.order
}

// Poller returns the background refresh task for this view. The owner
// starts it on activation and must shut it down on deactivation.
func (v *View) Poller() *task.Ticker {
	return task.NewTicker(PollInterval, v.Fetch, v.logger)
}

// BindSearch subscribes the view to the shared search query: every
// change re-fetches with the new filter. The returned func releases the
// subscription.
func (v *View) BindSearch(ctx context.Context, query *search.Query) func() {
	ch, unsubscribe := query.Subscribe()

	go func() {
		for term := range ch {
			v.SetSearch(ctx, term)
		}
	}()

	return unsubscribe
}
