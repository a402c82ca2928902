package client

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
)

// authNamespace is exempt from retry: login and refresh have their own
// success/failure contract, and retrying them risks compounding
// invalid-credential states.
const authNamespace = "/auth/"

// do runs an attempt through the retry policy. Transient failures (5xx other
// than 503, 408, 429, non-cancellation transport errors) are retried with
// exponential backoff; everything else is returned from the first attempt.
func (c *Client) do(ctx context.Context, att requestAttempt) (*http.Response, error) {
	if strings.HasPrefix(att.path, authNamespace) {
		resp, err := c.send(ctx, att)
		if err != nil {
			return nil, wrapTransportErr(err)
		}
		return resp, nil
	}

	var resp *http.Response
	backoff := retry.WithMaxRetries(uint64(c.maxRetries), c.backoffSchedule())

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := c.send(ctx, att)
		if err != nil {
			if IsCanceled(err) {
				// Cancellation short-circuits retry.
				return err
			}
			log.Warn().Err(err).Str("path", att.path).Msg("Transient transport failure")
			return retry.RetryableError(err)
		}
		if retryableStatus(r.StatusCode) {
			apiErr := classifyResponse(r)
			r.Body.Close()
			log.Warn().Int("status", r.StatusCode).Str("path", att.path).Msg("Transient server failure")
			return retry.RetryableError(apiErr)
		}
		resp = r
		return nil
	})
	if err != nil {
		// A context canceled while sleeping between attempts is still a
		// cancellation, not an error.
		if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return nil, ErrCanceled
		}
		return nil, wrapTransportErr(err)
	}
	return resp, nil
}

// backoffDelay is the pure attempt-to-delay mapping: base * multiplier^attempt.
// Attempt numbering starts at 0 for the delay after the first failure.
func backoffDelay(base time.Duration, multiplier float64, attempt int) time.Duration {
	return time.Duration(float64(base) * math.Pow(multiplier, float64(attempt)))
}

// backoffSchedule adapts backoffDelay to go-retry's Backoff. Each call to the
// returned schedule advances the attempt counter; the schedule itself never
// stops, bounding is layered on with retry.WithMaxRetries.
func (c *Client) backoffSchedule() retry.Backoff {
	attempt := 0
	return retry.BackoffFunc(func() (time.Duration, bool) {
		d := backoffDelay(c.baseDelay, c.multiplier, attempt)
		attempt++
		return d, false
	})
}
