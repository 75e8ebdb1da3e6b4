// Package fetch retrieves remote signup files over HTTP. The reconciliation
// core performs no I/O itself; callers fetch once, up front, and hand the
// text to the parser.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eventkit/signup-reconciler/internal/delimited"
)

// FetchError reports a non-success HTTP response. The status code is carried
// so callers can surface it verbatim to the operator.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
}

// Client fetches remote files with a bounded timeout and response size.
// Transient failures (network errors, 429, 5xx) are retried with backoff.
type Client struct {
	httpClient *http.Client
	maxBytes   int64
	maxRetries int
}

// NewClient creates a fetch client. Zero values fall back to a 30s timeout
// and a 20 MiB response cap.
func NewClient(timeout time.Duration, maxBytes int64) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = 20 << 20
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
		maxRetries: 2,
	}
}

// Fetch downloads the file at url and returns its decoded text. Non-2xx
// responses yield a *FetchError; transport failures are wrapped as-is.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return delimited.DecodeText(body), nil
}
