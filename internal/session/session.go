package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession indicates no session is stored.
var ErrNoSession = errors.New("no session")

// Session is the persisted credential pair written by login and cleared
// by logout. Both fields are written together, never individually.
type Session struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Expired reports whether the token's exp claim is in the past. The
// token is parsed without signature verification; this is a local hint
// only, the server remains the authority. Tokens that do not parse as
// JWTs are treated as unexpired and left for the server to reject.
func (s Session) Expired(now time.Time) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.Token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(now)
}

// Store persists the session record. Implementations must write and
// clear the record atomically.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// Manager caches the stored session and enforces the single-writer
// discipline: only the login and logout flows go through SetSession and
// ClearSession, everything else reads.
type Manager struct {
	mu      sync.RWMutex
	store   Store
	current Session
	loaded  bool
}

// NewManager creates a manager backed by the given store. The stored
// session, if any, is loaded lazily on first read.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Current returns the active session, if one is stored.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		s, err := m.store.Load(context.Background())
		if err == nil {
			m.current = s
		}

		m.loaded = true
	}

	return m.current, m.current.Token != ""
}

// SetSession stores a new session. Called by the login flow only.
func (m *Manager) SetSession(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(ctx, s); err != nil {
		return err
	}

	m.current = s
	m.loaded = true

	return nil
}

// ClearSession removes the stored session. Called by logout and account
// deletion only.
func (m *Manager) ClearSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return err
	}

	m.current = Session{}
	m.loaded = true

	return nil
}

// Token implements the api token source over the active session.
func (m *Manager) Token() (string, bool) {
	s, ok := m.Current()

	return s.Token, ok
}
