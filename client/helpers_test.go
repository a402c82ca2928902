package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bastionctl/auth"
)

// newTestClient builds a client against a test server with fast retry
// timing. Empty access leaves the session unauthenticated.
func newTestClient(t *testing.T, baseURL, access, refresh string) *Client {
	t.Helper()
	c, err := New(Config{
		BaseURL:        baseURL,
		Store:          auth.NewMemStore(),
		RetryBaseDelay: time.Millisecond,
	})
	require.NoError(t, err)
	if access != "" {
		require.NoError(t, c.session.SetTokens(access, refresh))
	}
	return c
}
