package client

import (
	"io"
	"sync"
	"time"
)

// RateLimiter is a token bucket capping archive download throughput. It
// belongs to one Client; there is no process-wide limiter.
type RateLimiter struct {
	mu     sync.Mutex
	rate   int64   // bytes per second
	tokens float64 // current available tokens
	last   time.Time
}

// NewRateLimiter creates a limiter for the given rate. A rate of zero or
// less returns nil, meaning unlimited.
func NewRateLimiter(bytesPerSecond int64) *RateLimiter {
	if bytesPerSecond <= 0 {
		return nil
	}
	return &RateLimiter{rate: bytesPerSecond, tokens: float64(bytesPerSecond), last: time.Now()}
}

type limitedReader struct {
	under io.Reader
	lim   *RateLimiter
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.lim == nil || lr.lim.rate <= 0 {
		return lr.under.Read(p)
	}
	lr.lim.mu.Lock()
	// Refill tokens
	now := time.Now()
	elapsed := now.Sub(lr.lim.last).Seconds()
	if elapsed > 0 {
		lr.lim.tokens += elapsed * float64(lr.lim.rate)
		maxTokens := float64(lr.lim.rate)
		if lr.lim.tokens > maxTokens {
			lr.lim.tokens = maxTokens
		}
		lr.lim.last = now
	}
	allowed := int(lr.lim.tokens)
	if allowed <= 0 {
		// Wait for the next refill cycle
		lr.lim.mu.Unlock()
		sleepDur := time.Duration(float64(time.Second) * (1.0 / float64(lr.lim.rate)))
		time.Sleep(sleepDur)
		return lr.Read(p)
	}
	if len(p) > allowed {
		p = p[:allowed]
	}
	lr.lim.mu.Unlock()
	n, err := lr.under.Read(p)
	if n > 0 {
		lr.lim.mu.Lock()
		lr.lim.tokens -= float64(n)
		lr.lim.mu.Unlock()
	}
	return n, err
}

// wrapWithRateLimiter applies the client's download limiter, if any.
func (c *Client) wrapWithRateLimiter(r io.Reader) io.Reader {
	if c.limiter == nil {
		return r
	}
	return &limitedReader{under: r, lim: c.limiter}
}
