package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// requestAttempt describes one HTTP call. It is immutable once issued; the
// body is held as bytes so the identical attempt can be reissued after a
// token refresh.
type requestAttempt struct {
	method string
	path   string // relative API path, used for the auth-namespace exemption
	url    string
	body   []byte
	header http.Header
}

// send issues the attempt with the current credentials attached. If the
// server answers 401 and a refresh token is held, it refreshes once and
// reissues the identical attempt; a second 401 is surfaced as-is so a
// misbehaving server cannot cause a refresh loop.
func (c *Client) send(ctx context.Context, att requestAttempt) (*http.Response, error) {
	resp, err := c.doAttempt(ctx, att)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.session.RefreshToken() != "" {
		if c.refreshAuth() {
			// The original 401 body is of no further interest.
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			log.Debug().Str("path", att.path).Msg("Reissuing request with refreshed token")
			return c.doAttempt(ctx, att)
		}
		// Refresh failed; the session is already cleared. Surface the
		// original 401 to the caller.
	}
	return resp, nil
}

// doAttempt performs a single HTTP exchange. Auth headers are merged over
// caller-supplied headers; the auth header wins. Caller cancellation maps to
// ErrCanceled instead of a transport error.
func (c *Client) doAttempt(ctx context.Context, att requestAttempt) (*http.Response, error) {
	var body io.Reader
	if att.body != nil {
		body = bytes.NewReader(att.body)
	}
	req, err := http.NewRequestWithContext(ctx, att.method, att.url, body)
	if err != nil {
		log.Error().Err(err).Str("method", att.method).Str("url", att.url).Msg("Failed to create HTTP request object")
		return nil, err
	}
	for k, vs := range att.header {
		req.Header[k] = vs
	}
	if att.body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if h, ok := c.session.AuthHeader(); ok {
		req.Header.Set("Authorization", h)
	}

	log.Debug().Str("method", att.method).Str("url", att.url).Msg("Sending HTTP request")
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			log.Debug().Str("method", att.method).Str("url", att.url).Msg("Request canceled by caller")
			return nil, ErrCanceled
		}
		log.Error().Err(err).Str("method", att.method).Str("url", att.url).Msg("HTTP request failed")
		return nil, err
	}
	log.Debug().Str("method", att.method).Str("url", att.url).Int("status", resp.StatusCode).Msg("HTTP response received")
	return resp, nil
}
