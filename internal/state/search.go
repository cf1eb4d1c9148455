package state

import "strings"

// normalize lower-cases a search term and replaces underscores with
// spaces, matching the server's treatment of stored category names
// ("star_crossed" and "Star Crossed" compare equal).
func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", " ")
}

// containsFold reports whether haystack contains needle
// case-insensitively, without underscore normalization.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ClientSearch filters the trope and category views locally. It is the
// fallback when the server search endpoint is unreachable, and it
// deliberately keeps the original client predicate: the match fields
// differ slightly from the server's (the server ranks name matches
// first and also normalizes the query before LIKE), so falling back
// can change result sets for the same query. That inconsistency is
// observed behavior, not something to paper over here.
func (s *Store) ClientSearch(query string) {
	needle := normalize(query)

	tropes := s.Data.Tropes[:0:0]
	for _, t := range s.Data.Tropes {
		if strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			tropes = append(tropes, t)
			continue
		}
		for _, cat := range t.Categories {
			if strings.Contains(normalize(cat), needle) {
				tropes = append(tropes, t)
				break
			}
		}
	}
	s.View.Tropes = tropes

	categories := s.Data.Categories[:0:0]
	for _, c := range s.Data.Categories {
		display := c.DisplayName
		if display == "" {
			display = c.Name
		}
		if strings.Contains(strings.ToLower(display), needle) ||
			strings.Contains(normalize(c.Name), needle) {
			categories = append(categories, c)
		}
	}
	s.View.Categories = categories
}

// FilterWorks filters the work view by a case-insensitive substring
// match over title, author, description and type. Works have no
// server search endpoint; this is always local.
func (s *Store) FilterWorks(query string) {
	works := s.Data.Works[:0:0]
	for _, w := range s.Data.Works {
		if containsFold(w.Title, query) ||
			containsFold(w.Author, query) ||
			containsFold(w.Description, query) ||
			containsFold(w.Type, query) {
			works = append(works, w)
		}
	}
	s.View.Works = works
}

// FilterExamples filters the example view by description and page
// reference, plus the names of the trope and work each example
// references, resolved against the canonical data.
func (s *Store) FilterExamples(query string) {
	examples := s.Data.Examples[:0:0]
	for _, e := range s.Data.Examples {
		if containsFold(e.Description, query) ||
			containsFold(e.PageReference, query) ||
			containsFold(s.TropeName(e.TropeID), query) ||
			containsFold(s.WorkTitle(e.WorkID), query) {
			examples = append(examples, e)
		}
	}
	s.View.Examples = examples
}
