package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrNetwork wraps transport-level failures so callers can distinguish
// "check your connection" from a server-reported error.
var ErrNetwork = errors.New("network error")

// APIError is a non-OK HTTP response, carrying the server-supplied
// error message verbatim when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Client talks to the trope database REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL (e.g.
// "http://localhost:8000"). The /api prefix is added per request.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// do issues a request and decodes the JSON response into out (skipped
// when out is nil). Non-OK statuses become *APIError; transport
// failures are wrapped with ErrNetwork.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshalling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapNetwork(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapNetwork(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: decodeErrorMessage(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshalling response: %w", err)
	}
	return nil
}

func wrapNetwork(err error) error {
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

// decodeErrorMessage pulls the `error` field out of a JSON error body,
// returning "" when the body is not JSON or has no such field.
func decodeErrorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error
}

// Health checks the API root. Callers pass a context with a deadline;
// a timeout surfaces as an ErrNetwork-wrapped error, which the status
// poller treats as "disconnected" rather than a failure to report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/", nil, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
