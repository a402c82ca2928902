package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentRequestsShareOneRefresh drives N parallel requests into a
// 401 and checks the refresh endpoint is hit exactly once, with every
// request completing under the refreshed token.
func TestConcurrentRequestsShareOneRefresh(t *testing.T) {
	const n = 8

	var refreshCalls int64
	var arrived sync.WaitGroup
	arrived.Add(n)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&refreshCalls, 1)
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "R1", body.RefreshToken)
		// Stay in flight long enough for every 401 discoverer to join.
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "A2",
			"refresh_token": "R2",
		})
	})
	mux.HandleFunc("/network/mode", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer A2":
			json.NewEncoder(w).Encode(map[string]string{"mode": "router"})
		default:
			// Hold the 401s until all n requests have arrived so they
			// discover the expired token at the same time.
			arrived.Done()
			arrived.Wait()
			w.WriteHeader(http.StatusUnauthorized)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestClient(t, server.URL, "A1", "R1")

	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var mode NetworkMode
			results[i] = c.Get(context.Background(), "/network/mode", nil, &mode)
			if results[i] == nil && mode.Mode != "router" {
				results[i] = errors.New("unexpected body: " + mode.Mode)
			}
		}(i)
	}
	wg.Wait()

	for i, err := range results {
		assert.NoError(t, err, "request %d", i)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&refreshCalls), "refresh endpoint should be invoked exactly once")

	header, ok := c.Session().AuthHeader()
	require.True(t, ok)
	assert.Equal(t, "Bearer A2", header)
	assert.Equal(t, "R2", c.Session().RefreshToken())
}

// TestRefreshFailureTerminatesSession: a rejected refresh clears the tokens,
// fires the expired broadcast, and surfaces the original 401.
func TestRefreshFailureTerminatesSession(t *testing.T) {
	var refreshCalls int64
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&refreshCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/network/mode", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestClient(t, server.URL, "A1", "R1")
	expired := false
	c.Session().OnExpired(func() { expired = true })

	err := c.Get(context.Background(), "/network/mode", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int64(1), atomic.LoadInt64(&refreshCalls))
	assert.True(t, expired, "session-expired broadcast should fire")
	assert.False(t, c.Session().Authenticated())
}

// TestRefreshWithoutRefreshToken: with no refresh token held the 401 is
// surfaced immediately and the refresh endpoint is never called.
func TestRefreshWithoutRefreshToken(t *testing.T) {
	var refreshCalls int64
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&refreshCalls, 1)
	})
	mux.HandleFunc("/system/info", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestClient(t, server.URL, "A1", "")

	err := c.Get(context.Background(), "/system/info", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int64(0), atomic.LoadInt64(&refreshCalls))
}
