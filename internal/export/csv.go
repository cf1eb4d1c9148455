// Package export writes the client-side CSV exports. The export
// operates on the currently displayed view, falling back to the full
// canonical data when the filtered view is empty.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tropedb/tropedeck/internal/state"
)

// Kind names an exportable entity collection.
type Kind string

const (
	KindTropes     Kind = "tropes"
	KindCategories Kind = "categories"
	KindWorks      Kind = "works"
	KindExamples   Kind = "examples"
)

// Kinds lists all exportable kinds in display order.
var Kinds = []Kind{KindTropes, KindCategories, KindWorks, KindExamples}

// ParseKind validates a kind name from the command line.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTropes, KindCategories, KindWorks, KindExamples:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown export kind %q (want tropes, categories, works or examples)", s)
}

// escapeCSV wraps a field in double quotes, doubling embedded quotes,
// if and only if the field contains a comma, double quote, or newline.
// Any other field passes through unchanged.
func escapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func writeRow(w io.Writer, fields []string) error {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = escapeCSV(f)
	}
	_, err := io.WriteString(w, strings.Join(escaped, ",")+"\n")
	return err
}

// headers fixes the column set per entity kind.
var headers = map[Kind][]string{
	KindTropes:     {"id", "name", "description", "categories"},
	KindCategories: {"id", "name", "display_name", "description", "trope_count"},
	KindWorks:      {"id", "title", "type", "year", "author", "description"},
	KindExamples:   {"id", "trope", "work", "description", "page_reference"},
}

// Rows materializes the export rows for one kind from the store,
// header row first. Example rows resolve trope/work names against the
// canonical data, never the filtered view, substituting the Unknown
// placeholders when a reference is dangling.
func Rows(s *state.Store, kind Kind) [][]string {
	rows := [][]string{headers[kind]}

	switch kind {
	case KindTropes:
		tropes := s.View.Tropes
		if len(tropes) == 0 {
			tropes = s.Data.Tropes
		}
		for _, t := range tropes {
			rows = append(rows, []string{t.ID, t.Name, t.Description, strings.Join(t.Categories, ", ")})
		}
	case KindCategories:
		categories := s.View.Categories
		if len(categories) == 0 {
			categories = s.Data.Categories
		}
		for _, c := range categories {
			rows = append(rows, []string{c.ID, c.Name, c.DisplayName, c.Description, strconv.Itoa(c.TropeCount)})
		}
	case KindWorks:
		works := s.View.Works
		if len(works) == 0 {
			works = s.Data.Works
		}
		for _, w := range works {
			year := ""
			if w.Year != 0 {
				year = strconv.Itoa(w.Year)
			}
			rows = append(rows, []string{w.ID, w.Title, w.Type, year, w.Author, w.Description})
		}
	case KindExamples:
		examples := s.View.Examples
		if len(examples) == 0 {
			examples = s.Data.Examples
		}
		for _, e := range examples {
			rows = append(rows, []string{e.ID, s.TropeName(e.TropeID), s.WorkTitle(e.WorkID), e.Description, e.PageReference})
		}
	}
	return rows
}

// Write streams the export for one kind to w.
func Write(w io.Writer, s *state.Store, kind Kind) error {
	return WriteWithProgress(w, Rows(s, kind), nil)
}

// WriteWithProgress writes pre-built rows, reporting the number of
// rows written after each one when progress is non-nil.
func WriteWithProgress(w io.Writer, rows [][]string, progress func(done int)) error {
	for i, row := range rows {
		if err := writeRow(w, row); err != nil {
			return err
		}
		if progress != nil {
			progress(i + 1)
		}
	}
	return nil
}

// FileName builds the export file name for a kind on a given day:
// {entity}_export_{YYYY-MM-DD}.csv.
func FileName(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.csv", kind, now.Format("2006-01-02"))
}
