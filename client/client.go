package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"bastionctl/auth"
)

// Retry defaults: 3 total attempts with 500ms, 1500ms between them.
const (
	defaultTimeout         = 30 * time.Second
	defaultMaxRetries      = 2
	defaultRetryBaseDelay  = 500 * time.Millisecond
	defaultRetryMultiplier = 3.0
)

// Config carries the knobs for constructing a Client.
type Config struct {
	// BaseURL is the appliance API root, e.g. "https://bastion.local/api/v1".
	BaseURL string

	// Store persists the token pair between runs. Nil keeps credentials
	// in memory only.
	Store auth.TokenStore

	// HTTPClient overrides the default 30s-timeout client, mainly for tests.
	HTTPClient *http.Client

	// MaxRetries is the number of retries after the first attempt for
	// transient failures. Zero means the default of 2; a negative value
	// disables retries entirely.
	MaxRetries int

	// RetryBaseDelay and RetryMultiplier shape the backoff schedule
	// base * multiplier^attempt. Zero values mean the defaults.
	RetryBaseDelay  time.Duration
	RetryMultiplier float64

	// DownloadRateLimit caps archive download throughput in bytes per
	// second. Zero means unlimited.
	DownloadRateLimit int64
}

// Client is the authenticated API client for the Bastion appliance. One
// instance is constructed at startup and passed to callers; there is no
// package-level singleton.
type Client struct {
	baseURL      string
	http         *http.Client
	session      *Session
	refreshGroup singleflight.Group
	maxRetries   int
	baseDelay    time.Duration
	multiplier   float64
	limiter      *RateLimiter
}

// New constructs a Client from cfg, loading any stored credentials.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	session, err := NewSession(cfg.Store)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	} else if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelay := cfg.RetryBaseDelay
	if baseDelay == 0 {
		baseDelay = defaultRetryBaseDelay
	}
	multiplier := cfg.RetryMultiplier
	if multiplier == 0 {
		multiplier = defaultRetryMultiplier
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		http:       httpClient,
		session:    session,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		multiplier: multiplier,
		limiter:    NewRateLimiter(cfg.DownloadRateLimit),
	}, nil
}

// Session exposes the credential store so callers can check authentication
// state and subscribe to session expiry.
func (c *Client) Session() *Session {
	return c.session
}

// endpoint builds the absolute URL for a relative API path.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
