package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// The AI endpoints are an opaque passthrough: the server owns the
// model integration, the client only relays queries and renders
// whatever comes back.

// AIQueryResult is the natural-language query response.
type AIQueryResult struct {
	Success bool            `json:"success"`
	Answer  string          `json:"answer,omitempty"`
	Error   string          `json:"error,omitempty"`
	Results json.RawMessage `json:"results,omitempty"`
}

// AIBook is one match from the book-search passthrough.
type AIBook struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	Year   int    `json:"year,omitempty"`
}

// AIBookSearchResult is the book-search response.
type AIBookSearchResult struct {
	Success bool     `json:"success"`
	Query   string   `json:"query"`
	Books   []AIBook `json:"books"`
	Error   string   `json:"error,omitempty"`
}

// AIImportResult reports one book import.
type AIImportResult struct {
	Success bool   `json:"success"`
	WorkID  string `json:"work_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AIStatus reports availability of the AI backend. Service is "ready"
// when the backend is up and "error" otherwise.
type AIStatus struct {
	Service        string          `json:"ai_service"`
	APIsConfigured map[string]bool `json:"apis_configured"`
	Features       map[string]bool `json:"features"`
	Error          string          `json:"error,omitempty"`
}

// Ready reports whether the AI backend can take queries.
func (s *AIStatus) Ready() bool {
	return s.Service == "ready"
}

// AIQuery sends a natural-language query to the AI endpoint.
func (c *Client) AIQuery(ctx context.Context, query string) (*AIQueryResult, error) {
	payload := map[string]string{"query": query}
	var resp AIQueryResult
	if err := c.do(ctx, http.MethodPost, "/api/ai/query", nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AIBookSearch searches the external book catalogue via the server.
func (c *Client) AIBookSearch(ctx context.Context, query string, limit int) (*AIBookSearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp AIBookSearchResult
	if err := c.do(ctx, http.MethodGet, "/api/ai/books/search", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AIBookImport imports one book match as a work.
func (c *Client) AIBookImport(ctx context.Context, book AIBook) (*AIImportResult, error) {
	var resp AIImportResult
	if err := c.do(ctx, http.MethodPost, "/api/ai/books/import", nil, book, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AIStatusCheck reports whether the AI backend is configured and up.
func (c *Client) AIStatusCheck(ctx context.Context) (*AIStatus, error) {
	var resp AIStatus
	if err := c.do(ctx, http.MethodGet, "/api/ai/status", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportCSV streams the server-side CSV export into w and returns the
// byte count written.
func (c *Client) ExportCSV(ctx context.Context, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/export/csv", nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, wrapNetwork(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, &APIError{StatusCode: resp.StatusCode, Message: decodeErrorMessage(body)}
	}
	return io.Copy(w, resp.Body)
}
