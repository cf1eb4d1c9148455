package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tropedb/tropedeck/internal/api"
)

// failedLoadNotice matches the single user-visible message for any
// load failure; partial results are never applied.
const failedLoadNotice = "Failed to load data. Please make sure the API server is running."

// networkNotice is shown when a request never reached the server.
const networkNotice = "Network error. Please check your connection."

type loadedMsg struct {
	seq  uint64
	snap *api.Snapshot
}

type loadFailedMsg struct {
	seq uint64
	err error
}

type searchDoneMsg struct {
	query string
	res   *api.SearchResult
}

type searchFailedMsg struct {
	query string
	err   error
}

type mutationDoneMsg struct {
	section Section
	label   string // e.g. `Trope "Chekhov's Gun"`
	deleted bool
	err     error
}

type returnToListMsg struct {
	section Section
}

type healthMsg struct {
	health *api.Health
	err    error
}

type healthTickMsg struct{}

type tropeDetailMsg struct {
	detail   *api.TropeDetail
	works    []api.Work
	examples []api.Example
	err      error
}

type categoryDetailMsg struct {
	detail *api.CategoryTropes
	err    error
}

type analyticsMsg struct {
	analytics *api.Analytics
	err       error
}

type aiAnswerMsg struct {
	res *api.AIQueryResult
	err error
}

// loadAllCmd fetches all four collections; seq ties the response to
// the issuing reload so stale completions are dropped.
func (m *Model) loadAllCmd(seq uint64) tea.Cmd {
	client, cfg := m.client, m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()
		snap, err := client.LoadAll(ctx, cfg.SortBy, cfg.SortOrder, "")
		if err != nil {
			return loadFailedMsg{seq: seq, err: err}
		}
		return loadedMsg{seq: seq, snap: snap}
	}
}

func (m *Model) searchCmd(query string) tea.Cmd {
	client, cfg := m.client, m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()
		res, err := client.Search(ctx, query)
		if err != nil {
			return searchFailedMsg{query: query, err: err}
		}
		return searchDoneMsg{query: query, res: res}
	}
}

// mutationCmd runs a create/update/delete and reports the outcome.
func (m *Model) mutationCmd(section Section, label string, deleted bool, op func(context.Context) error) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()
		return mutationDoneMsg{section: section, label: label, deleted: deleted, err: op(ctx)}
	}
}

// returnToListCmd navigates back to the list section after the success
// notice has been readable for a moment.
func returnToListCmd(section Section) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return returnToListMsg{section: section}
	})
}

func (m *Model) healthCmd() tea.Cmd {
	client, cfg := m.client, m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()
		h, err := client.Health(ctx)
		return healthMsg{health: h, err: err}
	}
}

func (m *Model) healthTick() tea.Cmd {
	if m.cfg.PollIntervalSeconds <= 0 {
		return nil
	}
	return tea.Tick(time.Duration(m.cfg.PollIntervalSeconds)*time.Second, func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}

func (m *Model) tropeDetailCmd(id string) tea.Cmd {
	client, cfg := m.client, m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()
		d, err := client.GetTrope(ctx, id)
		if err != nil {
			return tropeDetailMsg{err: err}
		}
		// Sub-lists are best effort; the detail still renders without
		// them.
		works, _ := client.TropeWorks(ctx, id)
		examples, _ := client.TropeExamples(ctx, id)
		return tropeDetailMsg{detail: d, works: works, examples: examples}
	}
}

func (m *Model) categoryDetailCmd(id string) tea.Cmd {
	client, cfg := m.client, m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()
		d, err := client.CategoryTropes(ctx, id)
		return categoryDetailMsg{detail: d, err: err}
	}
}

func (m *Model) analyticsCmd() tea.Cmd {
	client, cfg := m.client, m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()
		a, err := client.Analytics(ctx)
		return analyticsMsg{analytics: a, err: err}
	}
}

func (m *Model) aiQueryCmd(query string) tea.Cmd {
	client, cfg := m.client, m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()
		res, err := client.AIQuery(ctx, query)
		return aiAnswerMsg{res: res, err: err}
	}
}

// noticeFor converts an operation error into the user-visible message:
// transport failures get the generic connection notice, server errors
// surface their own text, and anything else falls back to a default.
func noticeFor(err error, fallback string) string {
	var apiErr *api.APIError
	switch {
	case errors.Is(err, api.ErrNetwork):
		return networkNotice
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return fallback
	}
}
