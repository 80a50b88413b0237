package checkout

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// StatusError reports a non-OK response from the order-creation endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return "order endpoint returned " + http.StatusText(e.Code)
}

// Client posts order payloads to the order-creation endpoint. It performs
// exactly one request per call: no retries, no deduplication. The underlying
// http.Client carries no timeout on purpose; the request settles according
// to the transport (and the caller's context).
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient creates a Client for the given endpoint URL. apiKey, when
// non-empty, is sent in the api_key header.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{},
	}
}

// CreateOrder sends the payload. Any HTTP 2xx status counts as success; the
// response body is not inspected beyond being drained.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) error {
	var e jx.Encoder
	payload.Encode(&e)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(e.Bytes()))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api_key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "post order")
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}
