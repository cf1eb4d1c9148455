package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListTropes fetches all tropes, decorated with category names. sort,
// order and filterCategory map to the server's query parameters and
// may be empty.
func (c *Client) ListTropes(ctx context.Context, sort, order, filterCategory string) ([]Trope, error) {
	q := url.Values{}
	if sort != "" {
		q.Set("sort", sort)
	}
	if order != "" {
		q.Set("order", order)
	}
	if filterCategory != "" {
		q.Set("filter_category", filterCategory)
	}
	var resp struct {
		Count  int     `json:"count"`
		Tropes []Trope `json:"tropes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tropes", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tropes, nil
}

// GetTrope fetches one trope with nested category objects.
func (c *Client) GetTrope(ctx context.Context, id string) (*TropeDetail, error) {
	var t TropeDetail
	if err := c.do(ctx, http.MethodGet, "/api/tropes/"+url.PathEscape(id), nil, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) CreateTrope(ctx context.Context, in TropeInput) error {
	return c.do(ctx, http.MethodPost, "/api/tropes", nil, in, nil)
}

func (c *Client) UpdateTrope(ctx context.Context, id string, in TropeInput) error {
	return c.do(ctx, http.MethodPut, "/api/tropes/"+url.PathEscape(id), nil, in, nil)
}

func (c *Client) DeleteTrope(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tropes/"+url.PathEscape(id), nil, nil, nil)
}

// TropeWorks lists the works in which a trope has documented examples.
func (c *Client) TropeWorks(ctx context.Context, id string) ([]Work, error) {
	var resp struct {
		Works []Work `json:"works"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tropes/"+url.PathEscape(id)+"/works", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Works, nil
}

// TropeExamples lists a trope's examples.
func (c *Client) TropeExamples(ctx context.Context, id string) ([]Example, error) {
	var resp struct {
		Examples []Example `json:"examples"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tropes/"+url.PathEscape(id)+"/examples", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Examples, nil
}

// ListCategories fetches all categories with trope counts.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Count      int        `json:"count"`
		Categories []Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// CategoryTropes fetches the tropes belonging to one category.
func (c *Client) CategoryTropes(ctx context.Context, id string) (*CategoryTropes, error) {
	var resp CategoryTropes
	if err := c.do(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(id)+"/tropes", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListWorks fetches all works.
func (c *Client) ListWorks(ctx context.Context) ([]Work, error) {
	var resp struct {
		Count int    `json:"count"`
		Works []Work `json:"works"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/works", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Works, nil
}

func (c *Client) CreateWork(ctx context.Context, in WorkInput) error {
	return c.do(ctx, http.MethodPost, "/api/works", nil, in, nil)
}

func (c *Client) UpdateWork(ctx context.Context, id string, in WorkInput) error {
	return c.do(ctx, http.MethodPut, "/api/works/"+url.PathEscape(id), nil, in, nil)
}

func (c *Client) DeleteWork(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/works/"+url.PathEscape(id), nil, nil, nil)
}

// ListExamples fetches all examples.
func (c *Client) ListExamples(ctx context.Context) ([]Example, error) {
	var resp struct {
		Count    int       `json:"count"`
		Examples []Example `json:"examples"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/examples", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Examples, nil
}

func (c *Client) CreateExample(ctx context.Context, in ExampleInput) error {
	return c.do(ctx, http.MethodPost, "/api/examples", nil, in, nil)
}

func (c *Client) UpdateExample(ctx context.Context, id string, in ExampleInput) error {
	return c.do(ctx, http.MethodPut, "/api/examples/"+url.PathEscape(id), nil, in, nil)
}

func (c *Client) DeleteExample(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/examples/"+url.PathEscape(id), nil, nil, nil)
}

// Search runs the combined trope+category search endpoint.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	var resp SearchResult
	if err := c.do(ctx, http.MethodGet, "/api/search", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Analytics fetches summary statistics and the popular-category
// histogram.
func (c *Client) Analytics(ctx context.Context) (*Analytics, error) {
	var resp Analytics
	if err := c.do(ctx, http.MethodGet, "/api/analytics", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
