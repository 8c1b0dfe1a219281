package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"
)

// Error represents a non-2xx response from the platform API.
type Error struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("platform api error %d: %s", e.StatusCode, e.Message)
}

// doRequest performs a single GET against fullURL with the platform's
// auth headers.
func (c *Client) doRequest(ctx context.Context, fullURL string, query url.Values, result any) error {
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", c.origin)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

// getWithRetry fetches and decodes one page, retrying on every failure up
// to the policy's attempt budget. The upstream is unstable enough that
// non-2xx statuses and malformed bodies are all treated as transient.
func (c *Client) getWithRetry(ctx context.Context, fullURL string, query url.Values, result any) error {
	var lastErr error
	backoff := c.retry.Backoff

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			// Jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			c.logger.Warn("request failed, retrying",
				"attempt", fmt.Sprintf("%d/%d", attempt, c.retry.MaxAttempts),
				"backoff", jitter,
				"url", fullURL,
				"err", lastErr,
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		err := c.doRequest(ctx, fullURL, query, result)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}

		lastErr = err
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}
