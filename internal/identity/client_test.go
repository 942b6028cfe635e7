package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"spotfolio/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ExchangeCode(t *testing.T) {
	t.Run("exchanges the code for a session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/token", r.URL.Path)
			assert.Equal(t, "pkce", r.URL.Query().Get("grant_type"))
			assert.Equal(t, "test-api-key", r.Header.Get("apikey"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "auth-code-1", body["auth_code"])

			json.NewEncoder(w).Encode(model.Session{
				AccessToken:  "access-1",
				TokenType:    "bearer",
				RefreshToken: "refresh-1",
				ExpiresIn:    3600,
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", server.Client())
		session, err := client.ExchangeCode(context.Background(), "auth-code-1")

		require.NoError(t, err)
		assert.Equal(t, "access-1", session.AccessToken)
		assert.Equal(t, "refresh-1", session.RefreshToken)
	})

	t.Run("rejected exchange is unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", server.Client())
		session, err := client.ExchangeCode(context.Background(), "expired-code")

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		assert.Nil(t, session)
	})

	t.Run("session without a token is unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", server.Client())
		session, err := client.ExchangeCode(context.Background(), "code")

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		assert.Nil(t, session)
	})
}

func TestClient_GetUser(t *testing.T) {
	t.Run("maps the wire user onto an identity", func(t *testing.T) {
		confirmedAt := "2026-08-01T12:00:00Z"
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/user", r.URL.Path)
			assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

			json.NewEncoder(w).Encode(map[string]any{
				"id":                 "identity-1",
				"email":              "user@example.com",
				"email_confirmed_at": confirmedAt,
				"user_metadata":      map[string]any{"full_name": "Jane Doe"},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", server.Client())
		ident, err := client.GetUser(context.Background(), "access-1")

		require.NoError(t, err)
		assert.Equal(t, "identity-1", ident.ID)
		assert.Equal(t, "user@example.com", ident.Email)
		assert.True(t, ident.EmailConfirmed)
		assert.Equal(t, "Jane Doe", ident.DisplayName())
	})

	t.Run("missing confirmation timestamp means unconfirmed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"id":    "identity-1",
				"email": "user@example.com",
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", server.Client())
		ident, err := client.GetUser(context.Background(), "access-1")

		require.NoError(t, err)
		assert.False(t, ident.EmailConfirmed)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", server.Client())
		ident, err := client.GetUser(context.Background(), "stale")

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		assert.Nil(t, ident)
	})
}

func TestClient_ResendConfirmation(t *testing.T) {
	t.Run("posts a signup resend", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/resend", r.URL.Path)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "signup", body["type"])
			assert.Equal(t, "user@example.com", body["email"])
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", server.Client())
		require.NoError(t, client.ResendConfirmation(context.Background(), "user@example.com"))
	})

	t.Run("provider rejection is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", server.Client())
		err := client.ResendConfirmation(context.Background(), "user@example.com")
		require.Error(t, err)
	})
}

func TestClient_SignOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logout", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-api-key", server.Client())
	require.NoError(t, client.SignOut(context.Background(), "access-1"))
}
