package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// refreshAuth runs the token-refresh exchange, collapsing concurrent callers
// onto a single in-flight exchange. Every caller that discovers the need
// while one is pending awaits the same result; a new exchange can only start
// once the previous one has fully settled.
//
// It returns false immediately when no refresh token is held. Any failure of
// the exchange itself (network error, non-2xx, malformed body) is a hard
// failure: the session is cleared and false is returned.
func (c *Client) refreshAuth() bool {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		return false
	}
	v, _, shared := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		return c.performRefresh(refreshToken), nil
	})
	if shared {
		log.Debug().Msg("Joined in-flight token refresh")
	}
	return v.(bool)
}

// performRefresh posts the refresh token to the auth endpoint and stores the
// resulting pair. The exchange goes directly to the HTTP client: it must not
// re-enter the 401-aware transport, and the retry policy exempts the auth
// namespace. It also deliberately ignores any single caller's context, since
// its result is shared by every request awaiting it.
func (c *Client) performRefresh(refreshToken string) bool {
	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode refresh request")
		return c.failRefresh()
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint("/auth/refresh", nil), bytes.NewReader(payload))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create refresh request")
		return c.failRefresh()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Token refresh request failed")
		return c.failRefresh()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Msg("Token refresh rejected by server")
		return c.failRefresh()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read refresh response body")
		return c.failRefresh()
	}

	var result struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		log.Warn().Err(err).Msg("Failed to parse refresh response body")
		return c.failRefresh()
	}
	if result.AccessToken == "" {
		log.Warn().Msg("Refresh response carried no access token")
		return c.failRefresh()
	}

	if err := c.session.SetTokens(result.AccessToken, result.RefreshToken); err != nil {
		// The refreshed pair is live in memory; persistence can catch up
		// on the next successful exchange.
		log.Warn().Err(err).Msg("Failed to persist refreshed credentials")
	}
	log.Debug().Msg("Access token refreshed")
	return true
}

// failRefresh terminates the session after a failed exchange.
func (c *Client) failRefresh() bool {
	if err := c.session.Clear(); err != nil {
		log.Warn().Err(err).Msg("Failed to clear session after refresh failure")
	}
	return false
}
