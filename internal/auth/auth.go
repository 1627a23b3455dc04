// Package auth implements the login, signup, logout and profile flows.
// These are the only writers of the persisted session.
package auth

import (
	"context"
	"errors"

	"github.com/justkashish/linkview/internal/api"
	"github.com/justkashish/linkview/internal/search"
	"github.com/justkashish/linkview/internal/session"
	"go.uber.org/zap"
)

// ErrMissingFields indicates a pre-network validation failure.
var ErrMissingFields = errors.New("all fields are required")

// Backend is the slice of the HTTP client the flows depend on.
type Backend interface {
	Login(ctx context.Context, email, password string) (api.Credentials, error)
	Signup(ctx context.Context, name, email, mobile, password string) error
	Profile(ctx context.Context) (api.Profile, error)
	UpdateProfile(ctx context.Context, p api.Profile) error
	DeleteAccount(ctx context.Context) error
}

// Notifier surfaces outcomes to the user.
type Notifier interface {
	Success(text string)
	Error(text string)
}

// Flows wires the auth and profile operations to the session manager
// and notification sink.
type Flows struct {
	backend  Backend
	sessions *session.Manager
	query    *search.Query
	notifier Notifier
	logger   *zap.Logger
}

// NewFlows creates the auth flows.
func NewFlows(backend Backend, sessions *session.Manager, query *search.Query, notifier Notifier, logger *zap.Logger) *Flows {
	return &Flows{
		backend:  backend,
		sessions: sessions,
		query:    query,
		notifier: notifier,
		logger:   logger,
	}
}

// Login authenticates and stores the issued session atomically.
func (f *Flows) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		f.notifier.Error("All fields are required.")

		return ErrMissingFields
	}

	creds, err := f.backend.Login(ctx, email, password)
	if err != nil {
		f.logger.Error("login failed", zap.String("email", email), zap.Error(err))
		f.notifier.Error(api.Message(err, "Login failed"))

		return err
	}

	if err := f.sessions.SetSession(ctx, session.Session{Token: creds.Token, Name: creds.Name}); err != nil {
		f.notifier.Error("Failed to store session")

		return err
	}

	f.notifier.Success("Logged in successfully")

	return nil
}

// Signup registers a new account. The caller proceeds to login on
// success.
func (f *Flows) Signup(ctx context.Context, name, email, mobile, password string) error {
	if name == "" || email == "" || password == "" {
		f.notifier.Error("All fields are required.")

		return ErrMissingFields
	}

	if err := f.backend.Signup(ctx, name, email, mobile, password); err != nil {
		f.logger.Error("signup failed", zap.String("email", email), zap.Error(err))
		f.notifier.Error(api.Message(err, "Signup failed"))

		return err
	}

	f.notifier.Success("Signed up successfully")

	return nil
}

// Logout clears the stored session and resets the shared search query.
func (f *Flows) Logout(ctx context.Context) error {
	if err := f.sessions.ClearSession(ctx); err != nil {
		return err
	}

	f.query.Reset()
	f.notifier.Success("Logged out")

	return nil
}

// Profile fetches the current account profile.
func (f *Flows) Profile(ctx context.Context) (api.Profile, error) {
	p, err := f.backend.Profile(ctx)
	if err != nil {
		f.notifier.Error(api.Message(err, "Failed to load profile data"))

		return api.Profile{}, err
	}

	return p, nil
}

// UpdateProfile saves changed profile fields.
func (f *Flows) UpdateProfile(ctx context.Context, p api.Profile) error {
	if err := f.backend.UpdateProfile(ctx, p); err != nil {
		f.notifier.Error(api.Message(err, "Failed to update profile"))

		return err
	}

	f.notifier.Success("Your profile has been updated")

	return nil
}

// DeleteAccount removes the account and clears the local session.
func (f *Flows) DeleteAccount(ctx context.Context) error {
	if err := f.backend.DeleteAccount(ctx); err != nil {
		f.notifier.Error(api.Message(err, "Failed to delete account"))

		return err
	}

	if err := f.sessions.ClearSession(ctx); err != nil {
		return err
	}

	f.query.Reset()
	f.notifier.Success("Your account has been deleted")

	return nil
}
