package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoc48/expense-tracker/internal/model/customerr"
)

type testConfig struct {
	url string
}

func (c testConfig) URL() string {
	return c.url
}

func (c testConfig) AnonKey() string {
	return "anon-key"
}

func Test_OnSignIn_ShouldReturnLiveSession(t *testing.T) {
	userID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "me@example.com", creds["email"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "user-token",
			"token_type":   "bearer",
			"expires_in":   3600,
			"user":         map[string]any{"id": userID.String(), "email": "me@example.com"},
		})
	}))
	defer server.Close()

	session, err := New(testConfig{server.URL}).SignIn(context.Background(), "me@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "user-token", session.Token())

	id, live := session.UserID()
	assert.True(t, live)
	assert.Equal(t, userID, id)
}

func Test_OnRejectedCredentials_ShouldCarryStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	_, err := New(testConfig{server.URL}).SignIn(context.Background(), "me@example.com", "wrong")

	require.Error(t, err)
	assert.True(t, customerr.HasStatus(err, http.StatusBadRequest))
}

func Test_OnExpiredSession_ShouldReadAsNoUser(t *testing.T) {
	session := &Session{
		AccessToken: "user-token",
		User:        User{ID: uuid.New()},
		expiresAt:   time.Now().Add(-time.Minute),
	}

	_, live := session.UserID()
	assert.False(t, live)
}

func Test_OnNilSession_ShouldReadAsNoUser(t *testing.T) {
	var session *Session

	assert.Equal(t, "", session.Token())
	_, live := session.UserID()
	assert.False(t, live)
}
