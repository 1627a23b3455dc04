// Package resolver turns a short code into its destination URL.
package resolver

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrLinkNotFound is the terminal state for a missing or expired code.
var ErrLinkNotFound = errors.New("link not found or has expired")

// Backend is the slice of the HTTP client the resolver depends on.
type Backend interface {
	ResolveCode(ctx context.Context, code string) (string, error)
}

type outcome struct {
	url string
	err error
}

// Resolver resolves short codes, firing at most one request per code:
// repeated resolutions of the same code return the memoized outcome, so
// a failed code stays failed until a different code arrives.
type Resolver struct {
	mu      sync.Mutex
	backend Backend
	logger  *zap.Logger
	seen    map[string]outcome
}

// New creates a resolver.
func New(backend Backend, logger *zap.Logger) *Resolver {
	return &Resolver{
		backend: backend,
		logger:  logger,
		seen:    make(map[string]outcome),
	}
}

// Resolve returns the destination URL for code. The caller performs the
// actual navigation; destinations are arbitrary external sites.
func (r *Resolver) Resolve(ctx context.Context, code string) (string, error) {
	r.mu.Lock()

	if prev, ok := r.seen[code]; ok {
		r.mu.Unlock()

		return prev.url, prev.err
	}
	r.mu.Unlock()

	url, err := r.backend.ResolveCode(ctx, code)
	if err != nil || url == "" {
		r.logger.Error("failed to resolve short code",
			zap.String("code", code),
			zap.Error(err),
		)

		r.remember(code, outcome{err: ErrLinkNotFound})

		return "", ErrLinkNotFound
	}

	r.remember(code, outcome{url: url})

	return url, nil
}

func (r *Resolver) remember(code string, o outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seen[code] = o
}
