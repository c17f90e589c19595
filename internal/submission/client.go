package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission has not finished. The UI equivalent is the disabled
// "submitting" state; there is no queueing.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// Client posts assembled payloads to the relay endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	inFlight   atomic.Bool
}

// NewClient returns a submission client for the given server base URL.
// A nil httpClient falls back to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// Submit posts one payload and returns the relay's verdict. Only one
// submission may be in flight at a time.
func (c *Client) Submit(ctx context.Context, p *Payload) (*Response, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	url := c.baseURL + routeFor(p.FormType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post submission: %w", err)
	}
	defer res.Body.Close()

	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", res.StatusCode, err)
	}
	return &out, nil
}

func routeFor(formType string) string {
	if formType == "Merchant" {
		return "/api/merchantForms"
	}
	return "/api/agentForms"
}
