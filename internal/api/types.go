package api

// Trope is a named narrative pattern, the primary catalogued entity.
// Category names arrive pre-formatted by the server (title case, spaces).
type Trope struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// CategoryRef is the nested category object returned by the trope
// detail endpoint.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TropeDetail is the single-trope shape, with nested category objects
// instead of plain names.
type TropeDetail struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Categories  []CategoryRef `json:"categories"`
}

// Category is a grouping label applied to tropes. Name is the raw
// stored form (underscored), DisplayName the formatted one.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	TropeCount  int    `json:"trope_count"`
}

// Work is a book, film, or other source in which tropes are observed.
type Work struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Year        int    `json:"year,omitempty"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
}

// Example documents one occurrence of a trope within a work.
type Example struct {
	ID            string `json:"id"`
	TropeID       string `json:"trope_id"`
	WorkID        string `json:"work_id"`
	Description   string `json:"description"`
	PageReference string `json:"page_reference,omitempty"`
}

// TropeInput is the create/update payload for tropes.
type TropeInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// WorkInput is the create/update payload for works.
type WorkInput struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Year        int    `json:"year,omitempty"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
}

// ExampleInput is the create/update payload for examples.
type ExampleInput struct {
	TropeID       string `json:"trope_id"`
	WorkID        string `json:"work_id"`
	Description   string `json:"description"`
	PageReference string `json:"page_reference,omitempty"`
}

// SearchResult is the combined trope+category search response.
type SearchResult struct {
	Query        string     `json:"query"`
	Tropes       []Trope    `json:"tropes"`
	Categories   []Category `json:"categories"`
	TotalResults int        `json:"total_results"`
}

// CategoryTropes is the category drill-down response.
type CategoryTropes struct {
	Category   Category `json:"category"`
	TropeCount int      `json:"trope_count"`
	Tropes     []Trope  `json:"tropes"`
}

// PopularCategory is one bar of the analytics histogram.
type PopularCategory struct {
	Name       string `json:"name"`
	TropeCount int    `json:"trope_count"`
}

// AnalyticsSummary is the nested counts block of the analytics
// response. UnusedCategories here is a count; the names live under
// DataHealth.
type AnalyticsSummary struct {
	TotalTropes           int     `json:"total_tropes"`
	TotalCategories       int     `json:"total_categories"`
	AvgCategoriesPerTrope float64 `json:"avg_categories_per_trope"`
	UnusedCategories      int     `json:"unused_categories"`
}

// CategoryCount is one entry of the full category usage distribution.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DataHealth is the analytics block naming unused categories and the
// overall record count.
type DataHealth struct {
	UnusedCategories []string `json:"unused_categories"`
	DatabaseSize     string   `json:"database_size"`
}

// Analytics is the summary statistics response.
type Analytics struct {
	Summary              AnalyticsSummary  `json:"summary"`
	PopularCategories    []PopularCategory `json:"popular_categories"`
	CategoryDistribution []CategoryCount   `json:"category_distribution"`
	DataHealth           DataHealth        `json:"data_health"`
}

// DatabaseInfo is the per-entity counts block of the health response.
type DatabaseInfo struct {
	Tropes     int `json:"tropes"`
	Categories int `json:"categories"`
	Works      int `json:"works"`
	Examples   int `json:"examples"`
}

// Health is the root health-check response.
type Health struct {
	Message      string       `json:"message,omitempty"`
	DatabaseInfo DatabaseInfo `json:"database_info"`
}
