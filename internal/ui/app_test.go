package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/tropedb/tropedeck/internal/api"
	"github.com/tropedb/tropedeck/internal/config"
	"github.com/tropedb/tropedeck/internal/state"
)

func testModel() *Model {
	cfg := config.DefaultConfig()
	m := New(api.New(cfg.APIURL), cfg)
	seq := m.store.BeginLoad()
	m.store.ApplyLoad(seq, &api.Snapshot{
		Tropes: []api.Trope{
			{ID: "t1", Name: "Star-Crossed Lovers", Description: "Doomed romance", Categories: []string{"star_crossed"}},
			{ID: "t2", Name: "Chekhov's Gun", Description: "Introduced early, fired late"},
		},
		Categories: []api.Category{
			{ID: "c1", Name: "star_crossed", DisplayName: "Star Crossed", TropeCount: 1},
		},
		Works: []api.Work{
			{ID: "w1", Title: "Romeo and Juliet", Type: "play", Author: "Shakespeare"},
		},
		Examples: []api.Example{
			{ID: "e1", TropeID: "t1", WorkID: "w1", Description: "The balcony scene"},
			{ID: "e2", TropeID: "t1", WorkID: "gone", Description: "Orphaned"},
		},
	})
	return m
}

func TestEverySectionHasRenderer(t *testing.T) {
	for s := SectionTropes; s <= SectionEditExample; s++ {
		if _, ok := sectionRenderers[s]; !ok {
			t.Errorf("section %q has no renderer", sectionLabels[s])
		}
	}
}

func TestShowSectionUnknownAborts(t *testing.T) {
	m := testModel()
	m.showSection(Section(99))
	if m.section != SectionTropes {
		t.Error("unknown section must not change the active section")
	}
}

func TestShowSectionRetargetsSearchPlaceholder(t *testing.T) {
	m := testModel()
	m.showSection(SectionWorks)
	if m.search.Placeholder != searchPlaceholders[SectionWorks] {
		t.Errorf("placeholder = %q", m.search.Placeholder)
	}
}

func TestDispatchSearchEmptyResetsView(t *testing.T) {
	m := testModel()
	m.store.ClientSearch("chekhov")
	m.resultNote = "Found 1 results"

	m.dispatchSearch("")
	if len(m.store.View.Tropes) != 2 {
		t.Error("empty query must restore the full view")
	}
	if m.resultNote != "" {
		t.Error("empty query must clear the results annotation")
	}
}

func TestDispatchSearchWorksIsLocal(t *testing.T) {
	m := testModel()
	m.showSection(SectionWorks)

	// No command issued: works are filtered client-side.
	if cmd := m.dispatchSearch("shakespeare"); cmd != nil {
		t.Error("works search must not hit the server")
	}
	if len(m.store.View.Works) != 1 {
		t.Errorf("works view = %d", len(m.store.View.Works))
	}
	if !strings.Contains(m.resultNote, "1 works") {
		t.Errorf("resultNote = %q", m.resultNote)
	}
}

func TestDispatchSearchTropesHitsServer(t *testing.T) {
	m := testModel()
	if cmd := m.dispatchSearch("star"); cmd == nil {
		t.Error("trope search should issue a server command")
	}
}

func TestSearchFallbackOnServerFailure(t *testing.T) {
	m := testModel()
	m.dispatchSearch("Star_Crossed")

	// The server search fails; the client predicate takes over
	// with underscore/case normalization.
	m.Update(searchFailedMsg{query: "Star_Crossed", err: errors.New("boom")})
	if len(m.store.View.Tropes) != 1 || m.store.View.Tropes[0].Name != "Star-Crossed Lovers" {
		t.Fatalf("fallback search failed: %d tropes", len(m.store.View.Tropes))
	}
	if !strings.Contains(m.resultNote, "(1 tropes, 1 categories)") {
		t.Errorf("computed result note = %q", m.resultNote)
	}
}

func TestSearchResultForStaleQueryIgnored(t *testing.T) {
	m := testModel()
	m.dispatchSearch("new query")

	m.Update(searchDoneMsg{query: "old query", res: &api.SearchResult{
		Tropes:       []api.Trope{{ID: "tX", Name: "Stale"}},
		TotalResults: 1,
	}})
	for _, tr := range m.store.View.Tropes {
		if tr.Name == "Stale" {
			t.Error("stale search response must be dropped")
		}
	}
}

func TestServerSearchTotalWins(t *testing.T) {
	m := testModel()
	m.dispatchSearch("star")
	m.Update(searchDoneMsg{query: "star", res: &api.SearchResult{
		Tropes:       []api.Trope{{ID: "t1", Name: "Star-Crossed Lovers"}},
		Categories:   []api.Category{},
		TotalResults: 7,
	}})
	if !strings.Contains(m.resultNote, "Found 7 results") {
		t.Errorf("server total not used: %q", m.resultNote)
	}
}

func TestStaleLoadResponseIgnored(t *testing.T) {
	m := testModel()
	first := m.store.BeginLoad()
	m.store.BeginLoad() // a newer reload supersedes the first

	m.Update(loadedMsg{seq: first, snap: &api.Snapshot{}})
	if len(m.store.Data.Tropes) != 2 {
		t.Error("stale load must not clear the store")
	}
}

func TestLoadFailureKeepsStateAndShowsSingleNotice(t *testing.T) {
	m := testModel()
	seq := m.store.BeginLoad()

	m.Update(loadFailedMsg{seq: seq, err: errors.New("connection refused")})
	if len(m.store.Data.Tropes) != 2 || len(m.store.View.Works) != 1 {
		t.Error("failed load must leave previous state untouched")
	}
	if m.notice != failedLoadNotice {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestMutationFailureKeepsFormWithServerMessage(t *testing.T) {
	m := testModel()
	m.form = newTropeForm(nil)
	m.section = SectionCreateTrope
	m.form.submitting = true

	m.Update(mutationDoneMsg{
		section: SectionCreateTrope,
		label:   `Trope "Dup"`,
		err:     &api.APIError{StatusCode: 400, Message: "A trope with this name already exists"},
	})
	if m.form == nil {
		t.Fatal("failure must not navigate away from the form")
	}
	if m.form.submitting {
		t.Error("submit control must be re-enabled")
	}
	if m.form.feedback != "A trope with this name already exists" {
		t.Errorf("server message not verbatim: %q", m.form.feedback)
	}
}

func TestMutationNetworkFailureMessage(t *testing.T) {
	m := testModel()
	m.form = newTropeForm(nil)
	m.form.submitting = true

	m.Update(mutationDoneMsg{label: "Trope", err: api.ErrNetwork})
	if m.form.feedback != networkNotice {
		t.Errorf("feedback = %q, want %q", m.form.feedback, networkNotice)
	}
	if m.form.submitting {
		t.Error("submit control must be re-enabled after a network error")
	}
}

func TestMutationSuccessResynchronizes(t *testing.T) {
	m := testModel()
	m.form = newTropeForm(nil)
	m.form.inputs[0].SetValue("Chekhov's Gun")
	m.form.desc.SetValue("A gun introduced early must fire.")
	m.form.submitting = true
	m.section = SectionCreateTrope

	_, cmd := m.Update(mutationDoneMsg{section: SectionCreateTrope, label: `Trope "Chekhov's Gun"`})
	if cmd == nil {
		t.Fatal("success must trigger a reload")
	}
	if !m.loading {
		t.Error("model should be loading after a successful mutation")
	}
	if m.form.desc.Value() != "" {
		t.Error("form must be reset on success")
	}
	if !strings.Contains(m.notice, "saved") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestSubmitFormValidationShortCircuits(t *testing.T) {
	m := testModel()
	m.form = newTropeForm(nil)
	m.form.inputs[0].SetValue("X") // too short
	m.form.desc.SetValue("A perfectly fine description.")
	m.section = SectionCreateTrope
	m.form.focus = m.form.submitIndex()

	if cmd := m.submitForm(); cmd != nil {
		t.Error("validation failure must not issue a request")
	}
	if m.form.feedback == "" {
		t.Error("validation failure must show inline feedback")
	}
	if m.form.submitting {
		t.Error("validation failure must not mark the form submitting")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := testModel()
	m.cursor = 0

	m.requestDelete()
	if m.dialog == nil {
		t.Fatal("delete must open a confirmation dialog")
	}
	if !strings.Contains(m.dialog.message, "Star-Crossed Lovers") {
		t.Errorf("dialog must name the entity: %q", m.dialog.message)
	}
}

func TestHealthFailureIsStateTransition(t *testing.T) {
	m := testModel()
	m.connected = true
	m.dbInfo = &api.DatabaseInfo{Tropes: 10}

	m.Update(healthMsg{err: errors.New("timeout")})
	if m.connected {
		t.Error("failed health check must flip to disconnected")
	}
	if m.notice != "" {
		t.Error("health failures are status, not error notices")
	}
}

func TestExampleViewSubstitutesPlaceholders(t *testing.T) {
	m := testModel()
	m.section = SectionExamples
	out := m.viewExamples()
	if !strings.Contains(out, state.UnknownWork) {
		t.Errorf("dangling example must render %q:\n%s", state.UnknownWork, out)
	}
}

func TestTruncatePreview(t *testing.T) {
	long := strings.Repeat("a", 151)
	if got := truncate(long, descriptionPreviewLen); got != strings.Repeat("a", 150)+"..." {
		t.Errorf("truncate long = %q...", got[:20])
	}
	exact := strings.Repeat("b", 150)
	if got := truncate(exact, descriptionPreviewLen); got != exact {
		t.Error("exact-length text must not gain an ellipsis")
	}
}

func TestListSectionMapping(t *testing.T) {
	cases := map[Section]Section{
		SectionCreateTrope:   SectionTropes,
		SectionEditTrope:     SectionTropes,
		SectionCreateWork:    SectionWorks,
		SectionEditExample:   SectionExamples,
		SectionCreateExample: SectionExamples,
		SectionAnalytics:     SectionAnalytics,
	}
	for in, want := range cases {
		if got := listSection(in); got != want {
			t.Errorf("listSection(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestNoticeFor(t *testing.T) {
	if got := noticeFor(api.ErrNetwork, "fallback"); got != networkNotice {
		t.Errorf("network error notice = %q", got)
	}
	if got := noticeFor(&api.APIError{StatusCode: 500, Message: "db locked"}, "fallback"); got != "db locked" {
		t.Errorf("server message notice = %q", got)
	}
	if got := noticeFor(&api.APIError{StatusCode: 500}, "fallback"); got != "fallback" {
		t.Errorf("empty server message should fall back: %q", got)
	}
	if got := noticeFor(errors.New("weird"), "fallback"); got != "fallback" {
		t.Errorf("unknown error should fall back: %q", got)
	}
}
