package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

// ErrUnauthorized indicates the backend rejected the bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// ServerError is a business failure reported by the backend: a
// success:false envelope or a non-2xx status. Message carries the
// server-provided text when there was one.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("server returned status %d", e.Status)
}

// Message extracts the server-provided error text, falling back to the
// given string for transport errors and silent failures.
func Message(err error, fallback string) string {
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}

	return fallback
}

// TokenSource supplies the bearer credential for authenticated calls.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the HTTP adapter for the shortener backend. It joins paths
// onto the base URL, attaches the bearer token, tags each request with
// an id, and decodes the JSON envelope.
type Client struct {
	http      *http.Client
	baseURL   string
	tokens    TokenSource
	requestID func() string
	logger    *zap.Logger
}

// NewClient creates a backend client. tokens may be nil for anonymous use.
func NewClient(baseURL string, tokens TokenSource, logger *zap.Logger) *Client {
	gen, _ := nanoid.Standard(21)

	return &Client{
		http:      &http.Client{},
		baseURL:   strings.TrimRight(baseURL, "/"),
		tokens:    tokens,
		requestID: gen,
		logger:    logger,
	}
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   *ErrorBody      `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (e *envelope) failed() bool {
	return e.Success != nil && !*e.Success
}

func (e *envelope) serverMessage() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Error != nil && len(e.Error.Details) > 0 {
		return e.Error.Details[0].Message
	}

	return ""
}

// call performs one request and returns the decoded envelope together
// with the raw body, for endpoints that carry fields outside data.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any) (*envelope, []byte, error) {
	var reqBody io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("encode request: %w", err)
		}

		reqBody = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", c.requestID())

	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)

		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, nil, fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, nil, ErrUnauthorized
	}

	if resp.StatusCode >= http.StatusBadRequest || env.failed() {
		return nil, nil, &ServerError{Status: resp.StatusCode, Message: env.serverMessage()}
	}

	return &env, raw, nil
}

// Login authenticates and returns the issued token and display name.
// The credential fields arrive at the top level of the envelope.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	body := map[string]string{"email": email, "password": password}

	_, raw, err := c.call(ctx, http.MethodPost, "/api/v1/auth/login", nil, body)
	if err != nil {
		return Credentials{}, err
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}

	return creds, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, name, email, mobile, password string) error {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"mobile":   mobile,
		"password": password,
	}

	_, _, err := c.call(ctx, http.MethodPost, "/api/v1/auth/signup", nil, body)

	return err
}

// Profile fetches the current account profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	_, raw, err := c.call(ctx, http.MethodGet, "/api/v1/profile", nil, nil)
	if err != nil {
		return Profile{}, err
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}

	return p, nil
}

// UpdateProfile saves changed profile fields.
func (c *Client) UpdateProfile(ctx context.Context, p Profile) error {
	_, _, err := c.call(ctx, http.MethodPut, "/api/v1/profile/update", nil, p)

	return err
}

// DeleteAccount removes the account permanently.
func (c *Client) DeleteAccount(ctx context.Context) error {
	_, _, err := c.call(ctx, http.MethodDelete, "/api/v1/profile/delete", nil, nil)

	return err
}

// AllLinks fetches the complete link list for the authenticated user.
func (c *Client) AllLinks(ctx context.Context) ([]Link, error) {
	env, _, err := c.call(ctx, http.MethodGet, "/api/v1/link/getAllLinks", nil, nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Items []Link `json:"items"`
	}

	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode links: %w", err)
	}

	return data.Items, nil
}

// CreateLink creates a shortened link and returns the server record.
func (c *Client) CreateLink(ctx context.Context, input LinkInput) (Link, error) {
	env, _, err := c.call(ctx, http.MethodPost, "/api/v1/link/create", nil, input)
	if err != nil {
		return Link{}, err
	}

	return decodeLink(env.Data)
}

// EditLink updates the editable fields of an existing link.
func (c *Client) EditLink(ctx context.Context, id string, input LinkInput) (Link, error) {
	env, _, err := c.call(ctx, http.MethodPut, "/api/v1/link/edit/"+url.PathEscape(id), nil, input)
	if err != nil {
		return Link{}, err
	}

	return decodeLink(env.Data)
}

// DeleteLink removes a link by id.
func (c *Client) DeleteLink(ctx context.Context, id string) error {
	_, _, err := c.call(ctx, http.MethodDelete, "/api/v1/link/delete/"+url.PathEscape(id), nil, nil)

	return err
}

// Analytics fetches one server-side page of click events. order is
// "asc" or "desc"; search filters by remark on the server.
func (c *Client) Analytics(ctx context.Context, page int, order, search string) (AnalyticsPage, error) {
	query := url.Values{}
	query.Set("timestampOrder", order)
	query.Set("search", search)
	query.Set("page", strconv.Itoa(page))

	env, _, err := c.call(ctx, http.MethodGet, "/api/v1/link/getAnalytics", query, nil)
	if err != nil {
		return AnalyticsPage{}, err
	}

	var result AnalyticsPage
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return AnalyticsPage{}, fmt.Errorf("decode analytics: %w", err)
	}

	return result, nil
}

// ClickStats fetches the dashboard aggregates.
func (c *Client) ClickStats(ctx context.Context) (ClickStats, error) {
	env, _, err := c.call(ctx, http.MethodGet, "/api/v1/linkStats/getClickStats", nil, nil)
	if err != nil {
		return ClickStats{}, err
	}

	var stats ClickStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return ClickStats{}, fmt.Errorf("decode click stats: %w", err)
	}

	return stats, nil
}

// ResolveCode resolves a short code to its original URL. Anonymous.
func (c *Client) ResolveCode(ctx context.Context, code string) (string, error) {
	query := url.Values{}
	query.Set("id", code)

	_, raw, err := c.call(ctx, http.MethodGet, "/link/getUrl", query, nil)
	if err != nil {
		return "", err
	}

	var result struct {
		URL string `json:"url"`
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("decode resolved url: %w", err)
	}

	return result.URL, nil
}

func decodeLink(data json.RawMessage) (Link, error) {
	var link Link
	if err := json.Unmarshal(data, &link); err != nil {
		return Link{}, fmt.Errorf("decode link: %w", err)
	}

	return link, nil
}
