// Package links owns the in-memory set of the user's link records and
// the form flows that mutate it. The backend is the source of truth:
// every mutation is confirmed by the server before local state changes.
package links

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/justkashish/linkview/internal/api"
	"go.uber.org/zap"
)

// SortKey selects the column the table is ordered by.
type SortKey string

const (
	SortByCreated SortKey = "created"
	SortByStatus  SortKey = "status"
)

// DefaultPageSize is how many rows the table shows per page.
const DefaultPageSize = 10

// Backend is the slice of the HTTP client the store depends on.
type Backend interface {
	AllLinks(ctx context.Context) ([]api.Link, error)
	CreateLink(ctx context.Context, input api.LinkInput) (api.Link, error)
	EditLink(ctx context.Context, id string, input api.LinkInput) (api.Link, error)
	DeleteLink(ctx context.Context, id string) error
}

// Notifier surfaces outcomes to the user.
type Notifier interface {
	Success(text string)
	Error(text string)
}

// Store holds the session's link records plus the derived view state:
// current page, sort key and direction.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	notifier Notifier
	logger   *zap.Logger

	links     []api.Link
	page      int
	pageSize  int
	sortKey   SortKey
	ascending bool
	loading   bool
}

// NewStore creates an empty link store.
func NewStore(backend Backend, notifier Notifier, logger *zap.Logger) *Store {
	return &Store{
		backend:  backend,
		notifier: notifier,
		logger:   logger,
		page:     1,
		pageSize: DefaultPageSize,
		sortKey:  SortByCreated,
	}
}

// LoadAll fetches the complete link list and replaces the in-memory
// set, resetting to page one. Failures empty the set and surface a
// notification; they are never propagated. A LoadAll issued while one
// is already outstanding is a no-op.
func (s *Store) LoadAll(ctx context.Context) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()

		return
	}

	s.loading = true
	s.mu.Unlock()

	fetched, err := s.backend.AllLinks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.page = 1

	if err != nil {
		s.links = nil
		s.logger.Error("failed to fetch links", zap.Error(err))
		s.notifier.Error(api.Message(err, "Failed to fetch links"))

		return
	}

	s.links = fetched
	s.notifier.Success("Links fetched successfully")
}

// SetPageSize overrides the rows-per-page default. Values below one are
// ignored.
func (s *Store) SetPageSize(n int) {
	if n < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pageSize = n
	s.clampPageLocked()
}

// Sort orders the set by key in the given direction, replacing the
// toggle state. In-memory only.
func (s *Store) Sort(key SortKey, ascending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sortKey = key
	s.ascending = ascending
	s.sortLocked()
}

// SortBy orders the set by key. Selecting the already-active key flips
// the direction; a new key starts ascending. In-memory only.
func (s *Store) SortBy(key SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key == s.sortKey {
		s.ascending = !s.ascending
	} else {
		s.sortKey = key
		s.ascending = true
	}

	s.sortLocked()
}

func (s *Store) sortLocked() {
	key, asc := s.sortKey, s.ascending

	sort.SliceStable(s.links, func(i, j int) bool {
		a, b := s.links[i], s.links[j]

		var less bool

		switch key {
		case SortByStatus:
			less = strings.Compare(a.Status, b.Status) < 0
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}

		if !asc {
			return !less && !equalByKey(a, b, key)
		}

		return less
	})
}

func equalByKey(a, b api.Link, key SortKey) bool {
	if key == SortByStatus {
		return a.Status == b.Status
	}

	return a.CreatedAt.Equal(b.CreatedAt)
}

// Remove deletes a link on the server and, only after confirmation,
// drops it locally and clamps the current page. On failure the set is
// untouched.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.backend.DeleteLink(ctx, id); err != nil {
		s.logger.Error("failed to delete link", zap.String("id", id), zap.Error(err))
		s.notifier.Error(api.Message(err, "Failed to delete the link"))

		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.links[:0]

	for _, link := range s.links {
		if link.ID != id {
			kept = append(kept, link)
		}
	}

	s.links = kept
	s.clampPageLocked()
	s.notifier.Success("Link deleted successfully")

	return nil
}

// UpsertFromServer merges a server-confirmed record into the set:
// replace by id when present, append otherwise. No re-sort, no
// re-fetch.
func (s *Store) UpsertFromServer(link api.Link) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.links {
		if s.links[i].ID == link.ID {
			s.links[i] = link

			return
		}
	}

	s.links = append(s.links, link)
}

// All returns a copy of the full set in its current order.
func (s *Store) All() []api.Link {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Link, len(s.links))
	copy(out, s.links)

	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (api.Link, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, link := range s.links {
		if link.ID == id {
			return link, true
		}
	}

	return api.Link{}, false
}

// Len returns the size of the full set.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.links)
}

// Page returns the slice of records for the current page.
func (s *Store) Page() []api.Link {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := (s.page - 1) * s.pageSize
	if start >= len(s.links) {
		return nil
	}

	end := start + s.pageSize
	if end > len(s.links) {
		end = len(s.links)
	}

	out := make([]api.Link, end-start)
	copy(out, s.links[start:end])

	return out
}

// CurrentPage returns the active page number, starting at one.
func (s *Store) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.page
}

// SetPage moves to page n, clamped into the valid range.
func (s *Store) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = n
	s.clampPageLocked()
}

// PageCount returns ceil(len / pageSize).
func (s *Store) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pageCountLocked()
}

func (s *Store) pageCountLocked() int {
	return (len(s.links) + s.pageSize - 1) / s.pageSize
}

func (s *Store) clampPageLocked() {
	max := s.pageCountLocked()
	if max < 1 {
		max = 1
	}

	if s.page < 1 {
		s.page = 1
	}

	if s.page > max {
		s.page = max
	}
}

// SortState reports the active sort key and direction for the header
// indicators.
func (s *Store) SortState() (SortKey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortKey, s.ascending
}
