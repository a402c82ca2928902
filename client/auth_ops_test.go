package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Login stores the pair and subsequent requests carry the access token.
func TestLogin_StoresTokensAndAttachesHeader(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin", creds["username"])
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "A1",
			"refresh_token": "R1",
		})
	})
	mux.HandleFunc("/system/info", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"hostname":"bastion"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestClient(t, server.URL, "", "")

	require.NoError(t, c.Login(context.Background(), "admin", "hunter2"))
	assert.True(t, c.Session().Authenticated())
	assert.Equal(t, "R1", c.Session().RefreshToken())

	_, err := c.SystemInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer A1", gotAuth)
}

// Older firmware returns {"token": ...}; refresh is then permanently
// unavailable for the session.
func TestLogin_LegacyTokenField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "T1"})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "", "")

	require.NoError(t, c.Login(context.Background(), "admin", "hunter2"))
	header, ok := c.Session().AuthHeader()
	require.True(t, ok)
	assert.Equal(t, "Bearer T1", header)
	assert.Empty(t, c.Session().RefreshToken())
}

func TestLogin_BadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "", "")

	err := c.Login(context.Background(), "admin", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.False(t, c.Session().Authenticated())
}

// Logout must always succeed client-side, even when the revocation request
// fails on the server.
func TestLogout_BestEffort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "A1", "R1")

	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.Session().Authenticated())
	assert.Empty(t, c.Session().RefreshToken())
}

// The password-change response carries only a new access token; the stored
// refresh token survives.
func TestChangePassword_KeepsRefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "old", body["current_password"])
		assert.Equal(t, "new", body["new_password"])
		json.NewEncoder(w).Encode(map[string]string{"access_token": "A2"})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "A1", "R1")

	require.NoError(t, c.ChangePassword(context.Background(), "old", "new"))
	header, _ := c.Session().AuthHeader()
	assert.Equal(t, "Bearer A2", header)
	assert.Equal(t, "R1", c.Session().RefreshToken())
}

func TestMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		json.NewEncoder(w).Encode(Account{Username: "admin", Role: "administrator"})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "A1", "")

	account, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", account.Username)
	assert.Equal(t, "administrator", account.Role)
}
