package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	transportRetries  = 2
	transportInterval = 100 * time.Millisecond
)

// transport wraps an HTTP client with the bounded retry policy platform
// calls use: short backoff, server errors and transport failures retried,
// client errors returned as-is.
type transport struct {
	client *http.Client
}

func newTransport(timeout time.Duration) *transport {
	return &transport{
		client: &http.Client{Timeout: timeout},
	}
}

// do executes the request built by build and returns the response body.
// Responses with status >= 400 are returned alongside a statusError so
// callers can inspect platform error payloads.
func (t *transport) do(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	var body []byte

	b := backoff.WithMaxRetries(
		backoff.NewConstantBackOff(transportInterval),
		transportRetries,
	)

	err := backoff.Retry(func() error {
		req, err := build(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			return &statusError{Status: resp.StatusCode, Body: body}
		}

		if resp.StatusCode >= http.StatusBadRequest {
			return backoff.Permanent(error(&statusError{Status: resp.StatusCode, Body: body}))
		}

		return nil
	}, backoff.WithContext(b, ctx))

	return body, err
}

// statusError carries a non-2xx platform response.
type statusError struct {
	Status int
	Body   []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Status)
}
