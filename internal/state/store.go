// Package state holds the client's in-memory view of the trope
// database: the canonical collections as last fetched from the server
// (Data) and the currently displayed filtered subset (View).
package state

import (
	"github.com/tropedb/tropedeck/internal/api"
)

// Placeholder names shown when an example references an entity that is
// no longer in the loaded collections (a race with a deletion).
const (
	UnknownTrope = "Unknown Trope"
	UnknownWork  = "Unknown Work"
)

// Collections groups the four entity collections.
type Collections struct {
	Tropes     []api.Trope
	Categories []api.Category
	Works      []api.Work
	Examples   []api.Example
}

// copyOf returns a shallow per-slice copy, so filtering the view never
// mutates the canonical data.
func copyOf(c Collections) Collections {
	out := Collections{
		Tropes:     make([]api.Trope, len(c.Tropes)),
		Categories: make([]api.Category, len(c.Categories)),
		Works:      make([]api.Work, len(c.Works)),
		Examples:   make([]api.Example, len(c.Examples)),
	}
	copy(out.Tropes, c.Tropes)
	copy(out.Categories, c.Categories)
	copy(out.Works, c.Works)
	copy(out.Examples, c.Examples)
	return out
}

// Store owns the Data/View pair. It is not safe for concurrent use;
// all mutation happens on the UI goroutine between awaited operations.
type Store struct {
	Data Collections
	View Collections

	loadSeq uint64 // last issued load sequence
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// BeginLoad registers a new full reload and returns its sequence
// number. Responses are applied only if their sequence is still the
// latest issued, making the "last response wins" race explicit: a
// stale response is dropped instead of overwriting fresher data.
func (s *Store) BeginLoad() uint64 {
	s.loadSeq++
	return s.loadSeq
}

// ApplyLoad installs a snapshot fetched under seq. It reports whether
// the snapshot was applied. On apply, Data is replaced wholesale and
// View reset to full copies, clearing any active filter.
func (s *Store) ApplyLoad(seq uint64, snap *api.Snapshot) bool {
	if seq != s.loadSeq {
		return false
	}
	s.Data = Collections{
		Tropes:     snap.Tropes,
		Categories: snap.Categories,
		Works:      snap.Works,
		Examples:   snap.Examples,
	}
	s.ResetView()
	return true
}

// ResetView restores the view to full copies of the canonical data for
// all four collections. This is the empty-query search behavior.
func (s *Store) ResetView() {
	s.View = copyOf(s.Data)
}

// ApplyServerSearch replaces the trope and category views with a
// server search response. Works and examples are untouched; the
// server search covers tropes and categories only.
func (s *Store) ApplyServerSearch(res *api.SearchResult) {
	s.View.Tropes = res.Tropes
	s.View.Categories = res.Categories
}

// ResultCount returns the figure for the results annotation:
// the server-reported total when one is available, otherwise the sum
// of the trope and category views.
func (s *Store) ResultCount(serverTotal *int) int {
	if serverTotal != nil {
		return *serverTotal
	}
	return len(s.View.Tropes) + len(s.View.Categories)
}

// TropeStats derives a trope's usage counts from the loaded examples:
// how many examples document it and how many distinct works those
// examples span. The server sends no per-trope counts; they are always
// computed here against the canonical data.
func (s *Store) TropeStats(id string) (works, examples int) {
	seen := make(map[string]bool)
	for _, e := range s.Data.Examples {
		if e.TropeID != id {
			continue
		}
		examples++
		if !seen[e.WorkID] {
			seen[e.WorkID] = true
			works++
		}
	}
	return works, examples
}

// TropeName resolves a trope id against the canonical data,
// substituting a placeholder when the trope is absent.
func (s *Store) TropeName(id string) string {
	for _, t := range s.Data.Tropes {
		if t.ID == id {
			return t.Name
		}
	}
	return UnknownTrope
}

// WorkTitle resolves a work id against the canonical data,
// substituting a placeholder when the work is absent.
func (s *Store) WorkTitle(id string) string {
	for _, w := range s.Data.Works {
		if w.ID == id {
			return w.Title
		}
	}
	return UnknownWork
}
