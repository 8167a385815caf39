package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MaxFetchSize caps the number of bytes Fetch reads from a response body.
const MaxFetchSize = 32 << 20

// defaultClient is used when Fetch is called with a nil client.
var defaultClient = &http.Client{Timeout: 30 * time.Second}

// IsURL reports whether s looks like an HTTP or HTTPS URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch downloads url into memory with retry on transient failures.
// Network errors, 5xx responses, and 429 rate limits are retried with
// exponential backoff; other non-2xx statuses fail immediately. The body
// is limited to MaxFetchSize bytes.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = defaultClient
	}

	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err != nil {
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return &RetryableError{Err: fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetchSize+1))
		if err != nil {
			return &RetryableError{Err: err}
		}
		if len(body) > MaxFetchSize {
			return fmt.Errorf("fetch %s: response exceeds %d bytes", url, MaxFetchSize)
		}
		data = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
