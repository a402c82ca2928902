package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// The verb helpers are the caller-facing surface of the client. Each applies
// the full stack: auth header, 401 recovery, retry with backoff, and error
// classification. All of them return ErrCanceled (and nothing else) when the
// caller's context is canceled, and *APIError for terminal failures.

// Get issues a GET request and decodes the JSON response into out.
// A nil out discards the body.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON payload and decodes the response
// into out. Both payload and out may be nil.
func (c *Client) Post(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, payload, out)
}

// Put issues a PUT request with a JSON payload and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, payload, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// doJSON builds the attempt, runs it through the retry policy, and applies
// the error classifier to the outcome.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	att := requestAttempt{
		method: method,
		path:   path,
		url:    c.endpoint(path, query),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		att.body = data
	}

	resp, err := c.do(ctx, att)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyResponse(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
