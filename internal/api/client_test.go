package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/justkashish/linkview/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticToken string

func (s staticToken) Token() (string, bool) {
	return string(s), s != ""
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newClient(t *testing.T, router chi.Router, token string) *api.Client {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return api.NewClient(server.URL, staticToken(token), zap.NewNop())
}

func TestLogin(t *testing.T) {
	t.Run("returns credentials on success", func(t *testing.T) {
		router := chi.NewRouter()
		router.Post("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "a@b.com", body["email"])

			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"message": "Login successful",
				"token":   "token-1",
				"name":    "Kashish",
			})
		})

		client := newClient(t, router, "")

		creds, err := client.Login(context.Background(), "a@b.com", "secret")

		require.NoError(t, err)
		assert.Equal(t, "token-1", creds.Token)
		assert.Equal(t, "Kashish", creds.Name)
	})

	t.Run("surfaces the server message on failure", func(t *testing.T) {
		router := chi.NewRouter()
		router.Post("/api/v1/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": false,
				"message": "Invalid credentials",
			})
		})

		client := newClient(t, router, "")

		_, err := client.Login(context.Background(), "a@b.com", "wrong")

		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", api.Message(err, "fallback"))
	})

	t.Run("falls back to the first error detail", func(t *testing.T) {
		router := chi.NewRouter()
		router.Post("/api/v1/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": false,
				"error": map[string]any{
					"details": []map[string]string{{"message": "password too short"}},
				},
			})
		})

		client := newClient(t, router, "")

		_, err := client.Login(context.Background(), "a@b.com", "x")

		require.Error(t, err)
		assert.Equal(t, "password too short", api.Message(err, "fallback"))
	})
}

func TestAllLinks(t *testing.T) {
	t.Run("decodes the items array", func(t *testing.T) {
		router := chi.NewRouter()
		router.Get("/api/v1/link/getAllLinks", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
			assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data": map[string]any{
					"items": []map[string]any{{
						"_id":         "1",
						"url":         "https://a.com",
						"shortUrl":    "https://s/x1",
						"remark":      "a",
						"totalClicks": 3,
						"status":      "Active",
						"createdAt":   "2024-01-01T00:00:00Z",
					}},
				},
			})
		})

		client := newClient(t, router, "token-1")

		fetched, err := client.AllLinks(context.Background())

		require.NoError(t, err)
		require.Len(t, fetched, 1)
		assert.Equal(t, "1", fetched[0].ID)
		assert.Equal(t, 3, fetched[0].TotalClicks)
		assert.Equal(t, "Active", fetched[0].Status)
		assert.Nil(t, fetched[0].ExpirationDate)
	})

	t.Run("maps 401 to ErrUnauthorized", func(t *testing.T) {
		router := chi.NewRouter()
		router.Get("/api/v1/link/getAllLinks", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
		})

		client := newClient(t, router, "stale")

		_, err := client.AllLinks(context.Background())

		assert.ErrorIs(t, err, api.ErrUnauthorized)
	})
}

func TestEditLink(t *testing.T) {
	t.Run("puts to the edit path with a null expiration", func(t *testing.T) {
		router := chi.NewRouter()
		router.Put("/api/v1/link/edit/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "42", chi.URLParam(r, "id"))

			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "https://a.com", body["url"])

			val, present := body["expirationDate"]
			assert.True(t, present)
			assert.Nil(t, val)

			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data": map[string]any{
					"_id": "42", "url": "https://a.com", "remark": "r",
					"shortUrl": "https://s/x", "status": "Active",
					"createdAt": "2024-01-01T00:00:00Z",
				},
			})
		})

		client := newClient(t, router, "token-1")

		link, err := client.EditLink(context.Background(), "42", api.LinkInput{
			URL:    "https://a.com",
			Remark: "r",
		})

		require.NoError(t, err)
		assert.Equal(t, "42", link.ID)
	})
}

func TestAnalytics(t *testing.T) {
	t.Run("passes page order and search as query params", func(t *testing.T) {
		router := chi.NewRouter()
		router.Get("/api/v1/link/getAnalytics", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "asc", r.URL.Query().Get("timestampOrder"))
			assert.Equal(t, "foo", r.URL.Query().Get("search"))

			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"items": []any{}, "totalCount": 0},
			})
		})

		client := newClient(t, router, "token-1")

		page, err := client.Analytics(context.Background(), 2, "asc", "foo")

		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Zero(t, page.TotalCount)
	})
}

func TestResolveCode(t *testing.T) {
	t.Run("returns the original url", func(t *testing.T) {
		router := chi.NewRouter()
		router.Get("/link/getUrl", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "x1", r.URL.Query().Get("id"))

			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"url":     "https://a.com/long",
			})
		})

		client := newClient(t, router, "")

		url, err := client.ResolveCode(context.Background(), "x1")

		require.NoError(t, err)
		assert.Equal(t, "https://a.com/long", url)
	})

	t.Run("fails on success false", func(t *testing.T) {
		router := chi.NewRouter()
		router.Get("/link/getUrl", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": false})
		})

		client := newClient(t, router, "")

		_, err := client.ResolveCode(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestMessage(t *testing.T) {
	t.Run("uses the fallback for transport errors", func(t *testing.T) {
		client := api.NewClient("http://127.0.0.1:0", nil, zap.NewNop())

		_, err := client.AllLinks(context.Background())

		require.Error(t, err)
		assert.Equal(t, "Failed to fetch links", api.Message(err, "Failed to fetch links"))
	})
}
