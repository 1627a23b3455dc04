// Package search holds the shared search filter. The value is scoped to
// one authenticated session and reset when the user leaves it.
package search

import "sync"

// Query is an observable string shared across views. Writes are
// last-write-wins; subscribers receive every change until they
// unsubscribe.
type Query struct {
	mu          sync.Mutex
	value       string
	subscribers map[int]chan string
	nextID      int
}

// NewQuery creates an empty query.
func NewQuery() *Query {
	return &Query{subscribers: make(map[int]chan string)}
}

// Get returns the current value.
func (q *Query) Get() string {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.value
}

// Set updates the value and notifies subscribers. A subscriber that is
// not keeping up loses intermediate values, never the latest one.
func (q *Query) Set(value string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if value == q.value {
		return
	}

	q.value = value

	for _, ch := range q.subscribers {
		// Drop the stale pending value so the send below cannot block.
		select {
		case <-ch:
		default:
		}

		select {
		case ch <- value:
		default:
		}
	}
}

// Reset clears the value, notifying subscribers of the empty string.
func (q *Query) Reset() {
	q.Set("")
}

// Subscribe registers for change notifications. The returned func
// releases the subscription; it must be called when the observer goes
// away.
func (q *Query) Subscribe() (<-chan string, func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := q.nextID
	q.nextID++

	ch := make(chan string, 1)
	q.subscribers[id] = ch

	unsubscribe := func() {
		q.mu.Lock()
		defer q.mu.Unlock()

		if _, ok := q.subscribers[id]; ok {
			delete(q.subscribers, id)
			close(ch)
		}
	}

	return ch, unsubscribe
}
