package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestListTropesQueryParams(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tropes" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = map[string]string{
			"sort":            r.URL.Query().Get("sort"),
			"order":           r.URL.Query().Get("order"),
			"filter_category": r.URL.Query().Get("filter_category"),
		}
		json.NewEncoder(w).Encode(map[string]any{
			"count":  1,
			"tropes": []Trope{{ID: "t1", Name: "MacGuffin"}},
		})
	}))
	defer srv.Close()

	tropes, err := New(srv.URL).ListTropes(context.Background(), "name", "desc", "romance")
	if err != nil {
		t.Fatalf("ListTropes failed: %v", err)
	}
	if len(tropes) != 1 || tropes[0].Name != "MacGuffin" {
		t.Errorf("unexpected tropes: %+v", tropes)
	}
	if gotQuery["sort"] != "name" || gotQuery["order"] != "desc" || gotQuery["filter_category"] != "romance" {
		t.Errorf("query params not forwarded: %v", gotQuery)
	}
}

func TestServerErrorMessageSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "A trope with this name already exists"})
	}))
	defer srv.Close()

	err := New(srv.URL).CreateTrope(context.Background(), TropeInput{Name: "Dup", Description: "Duplicate trope."})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "A trope with this name already exists" {
		t.Errorf("server message not surfaced verbatim: %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New(srv.URL).DeleteWork(context.Background(), "w1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "" {
		t.Errorf("expected empty message for non-JSON body, got %q", apiErr.Message)
	}
}

func TestTransportFailureIsErrNetwork(t *testing.T) {
	// A server that is not listening at all.
	client := New("http://127.0.0.1:0")
	_, err := client.ListCategories(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
}

func TestHealthTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(srv.URL).Health(ctx)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("timed-out health check should classify as network failure, got %v", err)
	}
}

func TestLoadAllSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tropes":
			json.NewEncoder(w).Encode(map[string]any{"tropes": []Trope{{ID: "t1", Name: "MacGuffin"}}})
		case "/api/categories":
			json.NewEncoder(w).Encode(map[string]any{"categories": []Category{{ID: "c1", Name: "plot"}}})
		case "/api/works":
			json.NewEncoder(w).Encode(map[string]any{"works": []Work{{ID: "w1", Title: "Dune"}}})
		case "/api/examples":
			json.NewEncoder(w).Encode(map[string]any{"examples": []Example{}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	snap, err := New(srv.URL).LoadAll(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(snap.Tropes) != 1 || len(snap.Categories) != 1 || len(snap.Works) != 1 || len(snap.Examples) != 0 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestLoadAllSingleFailureAbortsWhole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/categories" {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "database locked"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"tropes": []Trope{}, "works": []Work{}, "examples": []Example{},
		})
	}))
	defer srv.Close()

	snap, err := New(srv.URL).LoadAll(context.Background(), "", "", "")
	if err == nil {
		t.Fatal("expected LoadAll to fail when one endpoint fails")
	}
	if snap != nil {
		t.Error("no partial snapshot may be returned on failure")
	}
}

func TestSearchEncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "star crossed & doomed" {
			t.Errorf("q = %q", got)
		}
		json.NewEncoder(w).Encode(SearchResult{TotalResults: 0})
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Search(context.Background(), "star crossed & doomed"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
}

func TestAIQueryPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/ai/query" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["query"] != "how many tropes" {
			t.Errorf("query body = %v", body)
		}
		json.NewEncoder(w).Encode(AIQueryResult{Success: true, Answer: "42"})
	}))
	defer srv.Close()

	res, err := New(srv.URL).AIQuery(context.Background(), "how many tropes")
	if err != nil {
		t.Fatalf("AIQuery failed: %v", err)
	}
	if !res.Success || res.Answer != "42" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestHealthParsesDatabaseInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"message":       "Trope Database API is running!",
			"database_info": DatabaseInfo{Tropes: 10, Categories: 4, Works: 3, Examples: 7},
		})
	}))
	defer srv.Close()

	h, err := New(srv.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if h.DatabaseInfo.Tropes != 10 || h.DatabaseInfo.Examples != 7 {
		t.Errorf("database_info = %+v", h.DatabaseInfo)
	}
}

func TestTropeSubResources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tropes/t1/works":
			json.NewEncoder(w).Encode(map[string]any{
				"works": []Work{{ID: "w1", Title: "Romeo and Juliet", Year: 1597}},
			})
		case "/api/tropes/t1/examples":
			json.NewEncoder(w).Encode(map[string]any{
				"examples": []Example{{ID: "e1", TropeID: "t1", WorkID: "w1", Description: "The balcony scene"}},
			})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := New(srv.URL)
	works, err := client.TropeWorks(context.Background(), "t1")
	if err != nil {
		t.Fatalf("TropeWorks failed: %v", err)
	}
	if len(works) != 1 || works[0].Title != "Romeo and Juliet" {
		t.Errorf("unexpected works: %+v", works)
	}

	examples, err := client.TropeExamples(context.Background(), "t1")
	if err != nil {
		t.Fatalf("TropeExamples failed: %v", err)
	}
	if len(examples) != 1 || examples[0].WorkID != "w1" {
		t.Errorf("unexpected examples: %+v", examples)
	}
}

func TestAnalyticsDecodesNestedSummary(t *testing.T) {
	// The server nests counts under summary and the unused-category
	// names under data_health; nothing is flat at the top level.
	const body = `{
		"summary": {
			"total_tropes": 42,
			"total_categories": 9,
			"avg_categories_per_trope": 2.5,
			"unused_categories": 1
		},
		"popular_categories": [
			{"name": "Romance", "trope_count": 12},
			{"name": "Plot Devices", "trope_count": 8}
		],
		"category_distribution": [
			{"name": "Romance", "count": 12},
			{"name": "Obscure", "count": 0}
		],
		"data_health": {
			"unused_categories": ["Obscure"],
			"database_size": "51 total records"
		}
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analytics" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	a, err := New(srv.URL).Analytics(context.Background())
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}
	if a.Summary.TotalTropes != 42 {
		t.Errorf("TotalTropes = %d, want 42", a.Summary.TotalTropes)
	}
	if a.Summary.TotalCategories != 9 {
		t.Errorf("TotalCategories = %d, want 9", a.Summary.TotalCategories)
	}
	if a.Summary.AvgCategoriesPerTrope != 2.5 {
		t.Errorf("AvgCategoriesPerTrope = %v, want 2.5", a.Summary.AvgCategoriesPerTrope)
	}
	if a.Summary.UnusedCategories != 1 {
		t.Errorf("summary unused count = %d, want 1", a.Summary.UnusedCategories)
	}
	if len(a.PopularCategories) != 2 || a.PopularCategories[0].Name != "Romance" || a.PopularCategories[0].TropeCount != 12 {
		t.Errorf("popular categories = %+v", a.PopularCategories)
	}
	if len(a.CategoryDistribution) != 2 || a.CategoryDistribution[1].Count != 0 {
		t.Errorf("category distribution = %+v", a.CategoryDistribution)
	}
	if len(a.DataHealth.UnusedCategories) != 1 || a.DataHealth.UnusedCategories[0] != "Obscure" {
		t.Errorf("unused category names = %v, want [Obscure]", a.DataHealth.UnusedCategories)
	}
	if a.DataHealth.DatabaseSize != "51 total records" {
		t.Errorf("database size = %q", a.DataHealth.DatabaseSize)
	}
}

func TestAIStatusDecodesReadyService(t *testing.T) {
	const body = `{
		"ai_service": "ready",
		"apis_configured": {
			"anthropic": true,
			"openai": false,
			"openrouter": false,
			"hardcover": true
		},
		"features": {
			"natural_language_queries": true,
			"hardcover_integration": true,
			"trope_extraction": true,
			"sql_generation": true
		}
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ai/status" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	st, err := New(srv.URL).AIStatusCheck(context.Background())
	if err != nil {
		t.Fatalf("AIStatusCheck failed: %v", err)
	}
	if !st.Ready() {
		t.Errorf("healthy backend reported not ready: %+v", st)
	}
	if !st.APIsConfigured["anthropic"] || st.APIsConfigured["openai"] {
		t.Errorf("apis_configured = %v", st.APIsConfigured)
	}
	if !st.Features["natural_language_queries"] {
		t.Errorf("features = %v", st.Features)
	}
}

func TestAIStatusErrorService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ai_service": "error", "error": "no API key configured"}`))
	}))
	defer srv.Close()

	st, err := New(srv.URL).AIStatusCheck(context.Background())
	if err != nil {
		t.Fatalf("AIStatusCheck failed: %v", err)
	}
	if st.Ready() {
		t.Error("error service must not report ready")
	}
	if st.Error != "no API key configured" {
		t.Errorf("error = %q", st.Error)
	}
}
