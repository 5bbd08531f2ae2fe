package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subikshagit/Vocab-bot/internal/api"
	"github.com/subikshagit/Vocab-bot/internal/credstore"
	"github.com/subikshagit/Vocab-bot/internal/session"
)

func newAuth(t *testing.T, handler http.HandlerFunc) (*Auth, *credstore.MemoryStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := credstore.NewMemoryStore()
	apiClient := api.NewClient(session.NewClient(server.URL, store, time.Second))

	return New(apiClient, store), store
}

func TestLogin_StoresTokens(t *testing.T) {
	a, store := newAuth(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "user@example.com", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Login successful",
			"tokens":  map[string]string{"access": "acc", "refresh": "ref"},
		})
	})
	ctx := context.Background()

	require.NoError(t, a.Login(ctx, "User@example.com", "password123"))

	creds, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, credstore.Credentials{Access: "acc", Refresh: "ref"}, creds)
	assert.True(t, a.LoggedIn(ctx))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	a, store := newAuth(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	})
	ctx := context.Background()

	err := a.Login(ctx, "user@example.com", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)

	_, err = store.Get(ctx)
	assert.ErrorIs(t, err, credstore.ErrNotFound)
}

func TestLogin_LocalValidationSkipsNetwork(t *testing.T) {
	called := false
	a, _ := newAuth(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	err := a.Login(context.Background(), "not-an-email", "password123")
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)
}

func TestRegister_StoresTokens(t *testing.T) {
	a, store := newAuth(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "User registered successfully",
			"tokens":  map[string]string{"access": "acc", "refresh": "ref"},
		})
	})
	ctx := context.Background()

	require.NoError(t, a.Register(ctx, "Subiksha", "user@example.com", "password123"))

	creds, err := store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, creds.Empty())
}

func TestLogout(t *testing.T) {
	a, store := newAuth(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, credstore.Credentials{Access: "a", Refresh: "r"}))
	require.NoError(t, a.Logout(ctx))

	assert.False(t, a.LoggedIn(ctx))
}
