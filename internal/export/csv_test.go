package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/tropedb/tropedeck/internal/api"
	"github.com/tropedb/tropedeck/internal/state"
)

func TestEscapeCSV(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", ""},
		{"a,b", `"a,b"`},
		{`he said "hi"`, `"he said ""hi"""`},
		{"line1\nline2", "\"line1\nline2\""},
		{"line1\rline2", "\"line1\rline2\""},
		{`","`, `""",""`},
		{"no special chars here.", "no special chars here."},
		{"trailing space ", "trailing space "},
		{`""`, `""""""`},
	}
	for _, tc := range cases {
		if got := escapeCSV(tc.in); got != tc.want {
			t.Errorf("escapeCSV(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func testStore() *state.Store {
	s := state.New()
	seq := s.BeginLoad()
	s.ApplyLoad(seq, &api.Snapshot{
		Tropes: []api.Trope{
			{ID: "t1", Name: "Chekhov's Gun", Description: "A gun, introduced early", Categories: []string{"Foreshadowing", "Plot Devices"}},
			{ID: "t2", Name: `The "Chosen" One`, Description: "Destiny says so,\napparently"},
		},
		Categories: []api.Category{
			{ID: "c1", Name: "plot_devices", DisplayName: "Plot Devices", TropeCount: 12},
		},
		Works: []api.Work{
			{ID: "w1", Title: "Uncle Vanya", Type: "play", Year: 1898, Author: "Chekhov, Anton"},
		},
		Examples: []api.Example{
			{ID: "e1", TropeID: "t1", WorkID: "w1", Description: "The rifle on the wall", PageReference: "Act I"},
			{ID: "e2", TropeID: "t1", WorkID: "missing", Description: "Dangling reference"},
		},
	})
	return s
}

func TestRowsTropes(t *testing.T) {
	s := testStore()
	rows := Rows(s, KindTropes)

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	wantHeader := []string{"id", "name", "description", "categories"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	if rows[1][3] != "Foreshadowing, Plot Devices" {
		t.Errorf("categories column = %q", rows[1][3])
	}
}

func TestRowsExamplesResolveNames(t *testing.T) {
	s := testStore()
	rows := Rows(s, KindExamples)

	if rows[1][1] != "Chekhov's Gun" {
		t.Errorf("trope column = %q, want resolved name", rows[1][1])
	}
	if rows[1][2] != "Uncle Vanya" {
		t.Errorf("work column = %q, want resolved title", rows[1][2])
	}
	// A reference to a deleted work must export the placeholder, not fail.
	if rows[2][2] != state.UnknownWork {
		t.Errorf("dangling work column = %q, want %q", rows[2][2], state.UnknownWork)
	}
}

func TestRowsUseViewWithDataFallback(t *testing.T) {
	s := testStore()

	// Filtered view exports only the filtered rows.
	s.FilterWorks("vanya")
	if got := len(Rows(s, KindWorks)); got != 2 {
		t.Errorf("filtered export: got %d rows, want 2", got)
	}

	// An empty filtered view falls back to exporting everything.
	s.FilterWorks("no such work")
	if len(s.View.Works) != 0 {
		t.Fatal("filter should have emptied the view")
	}
	if got := len(Rows(s, KindWorks)); got != 2 {
		t.Errorf("empty-view export: got %d rows, want fallback to data (2)", got)
	}
}

func TestExportRoundTrip(t *testing.T) {
	s := testStore()

	var buf strings.Builder
	if err := Write(&buf, s, KindTropes); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// A standard CSV parser must reproduce the original field values,
	// embedded quotes and newlines included.
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[2][1] != `The "Chosen" One` {
		t.Errorf("round-trip name = %q", records[2][1])
	}
	if records[2][2] != "Destiny says so,\napparently" {
		t.Errorf("round-trip description = %q", records[2][2])
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	if got := FileName(KindExamples, now); got != "examples_export_2026-08-31.csv" {
		t.Errorf("FileName = %q", got)
	}
}

func TestParseKind(t *testing.T) {
	if _, err := ParseKind("works"); err != nil {
		t.Errorf("ParseKind(works) failed: %v", err)
	}
	if _, err := ParseKind("novels"); err == nil {
		t.Error("ParseKind(novels) should fail")
	}
}
