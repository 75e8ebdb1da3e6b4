package fetch

import (
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"
)

const (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 10 * time.Second
)

// do executes the request, retrying transient failures. Signup file downloads
// are plain GETs, so a retry never has to replay a body. Responses with a
// non-retryable status are returned to the caller untouched; the final
// attempt's outcome is returned as-is either way.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(backoffDelay(attempt))
			select {
			case <-timer.C:
			case <-req.Context().Done():
				timer.Stop()
				return nil, req.Context().Err()
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if req.Context().Err() != nil {
				return nil, err
			}
			lastErr = err
			continue
		}

		if !retryableStatus(resp.StatusCode) || attempt == c.maxRetries {
			return resp, nil
		}

		// Drain so the connection can be reused for the retry.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	return nil, lastErr
}

// backoffDelay is exponential in the attempt number with full jitter,
// capped at retryMaxDelay and floored at 100ms.
func backoffDelay(attempt int) time.Duration {
	delay := float64(retryBaseDelay) * math.Pow(2, float64(attempt-1))
	if delay > float64(retryMaxDelay) {
		delay = float64(retryMaxDelay)
	}
	jittered := time.Duration(rand.Float64() * delay)
	if jittered < 100*time.Millisecond {
		jittered = 100 * time.Millisecond
	}
	return jittered
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
