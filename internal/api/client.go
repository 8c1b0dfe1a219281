package api

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultPageSize matches the platform's maximum page size.
const DefaultPageSize = 100

// RetryPolicy bounds the retry loop around one page fetch.
type RetryPolicy struct {
	MaxAttempts int           // total attempts, including the first
	Backoff     time.Duration // initial delay; doubles each attempt, with jitter
}

// DefaultRetryPolicy mirrors the platform's observed flakiness: requests
// regularly fail transiently and recover within a few seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 10,
		Backoff:     time.Second,
	}
}

// Client provides access to the platform's paginated REST endpoints.
type Client struct {
	token      string
	origin     string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
	retry      RetryPolicy
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new API client. token is the bearer token; origin is
// sent as the Origin header the platform requires.
func NewClient(token, origin string, opts ...ClientOption) *Client {
	c := &Client{
		token:    token,
		origin:   origin,
		pageSize: DefaultPageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
		retry:  DefaultRetryPolicy(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetryPolicy sets the retry configuration.
func WithRetryPolicy(p RetryPolicy) ClientOption {
	return func(c *Client) {
		c.retry = p
	}
}

// WithPageSize sets the page size requested from the platform.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// PageSize returns the configured page size.
func (c *Client) PageSize() int {
	return c.pageSize
}
