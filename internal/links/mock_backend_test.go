package links_test

import (
	"context"
	"sync"

	"github.com/justkashish/linkview/internal/api"
)

// mockBackend is a scriptable stand-in for the HTTP client.
type mockBackend struct {
	mu sync.Mutex

	links     []api.Link
	allErr    error
	createErr error
	editErr   error
	deleteErr error

	// gates, when set, park the call until the channel is closed
	allGate    chan struct{}
	createGate chan struct{}

	created api.Link
	edited  api.Link

	allCalls    int
	createCalls int
	editCalls   int
	deleteCalls int

	lastInput  api.LinkInput
	lastEditID string
}

func (m *mockBackend) AllLinks(_ context.Context) ([]api.Link, error) {
	m.mu.Lock()
	m.allCalls++
	gate := m.allGate
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.allErr != nil {
		return nil, m.allErr
	}

	out := make([]api.Link, len(m.links))
	copy(out, m.links)

	return out, nil
}

func (m *mockBackend) allCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.allCalls
}

func (m *mockBackend) CreateLink(_ context.Context, input api.LinkInput) (api.Link, error) {
	m.mu.Lock()
	m.createCalls++
	m.lastInput = input
	gate := m.createGate
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return api.Link{}, m.createErr
	}

	return m.created, nil
}

func (m *mockBackend) createCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.createCalls
}

func (m *mockBackend) EditLink(_ context.Context, id string, input api.LinkInput) (api.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.editCalls++
	m.lastEditID = id
	m.lastInput = input

	if m.editErr != nil {
		return api.Link{}, m.editErr
	}

	return m.edited, nil
}

func (m *mockBackend) DeleteLink(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteCalls++

	return m.deleteErr
}

// recorder captures notifications for assertions.
type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recorder) Success(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.successes = append(r.successes, text)
}

func (r *recorder) Error(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors = append(r.errors, text)
}

func (r *recorder) lastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.errors) == 0 {
		return ""
	}

	return r.errors[len(r.errors)-1]
}
