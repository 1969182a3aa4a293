package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	retry "github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

const (
	defaultHTTPTimeout  = 15 * time.Second
	defaultHTTPAttempts = 3
)

// HTTPBackend talks to a pix2tex-style recognition service: the image
// is posted as a multipart file and the response body is the notation,
// either as a JSON-encoded string or as plain text.
type HTTPBackend struct {
	client   *resty.Client
	endpoint string
	attempts uint
}

// NewHTTPBackend builds a backend for the given prediction endpoint,
// e.g. "http://localhost:8502/predict/".
func NewHTTPBackend(endpoint string) *HTTPBackend {
	client := resty.New().
		SetTimeout(defaultHTTPTimeout).
		SetHeader("Accept", "application/json")
	return &HTTPBackend{
		client:   client,
		endpoint: endpoint,
		attempts: defaultHTTPAttempts,
	}
}

func (b *HTTPBackend) Recognize(ctx context.Context, image []byte) (string, error) {
	var body []byte
	err := retry.Do(
		func() error {
			resp, err := b.client.R().
				SetContext(ctx).
				SetFileReader("file", "formula.png", bytes.NewReader(image)).
				Post(b.endpoint)
			if err != nil {
				return err
			}
			if resp.StatusCode() >= 500 {
				return fmt.Errorf("recognition service returned %d", resp.StatusCode())
			}
			if resp.IsError() {
				return retry.Unrecoverable(fmt.Errorf("recognition service returned %d", resp.StatusCode()))
			}
			body = resp.Body()
			return nil
		},
		retry.Attempts(b.attempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return parseNotation(body), nil
}

// parseNotation accepts either a JSON string body or raw text.
func parseNotation(body []byte) string {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(body))
}
