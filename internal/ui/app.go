// Package ui is the full-screen browse interface: a single root model
// owning the view state store, an active section, and the search,
// form, dialog and detail sub-states. All store mutation happens in
// Update, between awaited commands, so the Data/View pair is never
// touched concurrently.
package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/tropedb/tropedeck/internal/api"
	"github.com/tropedb/tropedeck/internal/config"
	"github.com/tropedb/tropedeck/internal/export"
	"github.com/tropedb/tropedeck/internal/state"
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeError
)

// Model is the root view controller.
type Model struct {
	client *api.Client
	cfg    *config.Config
	store  *state.Store

	section Section
	cursor  int
	width   int
	height  int

	search    textinput.Model
	searching bool // search input focused
	lastQuery string

	spinner spinner.Model
	loading bool

	notice      string
	noticeLevel noticeLevel
	resultNote  string

	connected bool
	dbInfo    *api.DatabaseInfo

	detail    *detailState
	form      *form
	dialog    *confirmDialog
	analytics *api.Analytics

	aiInput  textinput.Model
	aiBusy   bool
	aiAnswer string
}

// New builds the browse model over a fresh store.
func New(client *api.Client, cfg *config.Config) *Model {
	search := textinput.New()
	search.Placeholder = searchPlaceholders[SectionTropes]
	search.Prompt = "/ "
	search.CharLimit = 120
	search.Width = 40

	aiInput := textinput.New()
	aiInput.Placeholder = "e.g. find all romance tropes with no examples"
	aiInput.CharLimit = 300
	aiInput.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		client:  client,
		cfg:     cfg,
		store:   state.New(),
		section: SectionTropes,
		search:  search,
		aiInput: aiInput,
		spinner: sp,
	}
}

func (m *Model) Init() tea.Cmd {
	m.loading = true
	seq := m.store.BeginLoad()
	return tea.Batch(
		m.spinner.Tick,
		m.loadAllCmd(seq),
		m.healthCmd(),
	)
}

// showSection switches the active view. Unknown sections (no renderer
// registered) abort the switch and leave the app interactive, the
// moral equivalent of a missing container in a DOM app.
func (m *Model) showSection(s Section) tea.Cmd {
	if _, ok := sectionRenderers[s]; !ok {
		fmt.Fprintf(os.Stderr, "tropedeck: no renderer for section %d\n", s)
		return nil
	}
	m.section = s
	m.cursor = 0
	m.detail = nil
	m.notice = ""
	if ph, ok := searchPlaceholders[s]; ok {
		m.search.Placeholder = ph
	} else {
		m.searching = false
		m.search.Blur()
	}
	if s == SectionAnalytics && m.analytics == nil {
		return m.analyticsCmd()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading && !m.aiBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		// Stale completions (an older reload finishing after a newer
		// one was issued) are dropped by the sequence guard.
		if !m.store.ApplyLoad(msg.seq, msg.snap) {
			return m, nil
		}
		m.search.SetValue("")
		m.lastQuery = ""
		m.resultNote = ""
		return m, nil

	case loadFailedMsg:
		m.loading = false
		// Previous Data/View stay untouched; one notice covers the
		// whole failed load.
		m.setNotice(noticeError, failedLoadNotice)
		return m, nil

	case searchDoneMsg:
		if msg.query != m.lastQuery {
			return m, nil
		}
		m.store.ApplyServerSearch(msg.res)
		total := msg.res.TotalResults
		m.setResultNote(msg.query, &total)
		return m, nil

	case searchFailedMsg:
		if msg.query != m.lastQuery {
			return m, nil
		}
		// Server search unreachable: fall back to the client-side
		// predicate rather than leaving stale results up.
		m.store.ClientSearch(msg.query)
		m.setResultNote(msg.query, nil)
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case returnToListMsg:
		m.form = nil
		return m, m.showSection(msg.section)

	case healthMsg:
		// Failure here is a state transition, not an error: the
		// poller keeps running and the status bar flips.
		if msg.err != nil {
			m.connected = false
			m.dbInfo = nil
		} else {
			m.connected = true
			m.dbInfo = &msg.health.DatabaseInfo
		}
		return m, m.healthTick()

	case healthTickMsg:
		return m, m.healthCmd()

	case tropeDetailMsg:
		if msg.err != nil {
			m.setNotice(noticeError, noticeFor(msg.err, "Failed to load trope details."))
			return m, nil
		}
		m.detail = &detailState{trope: msg.detail, tropeWorks: msg.works, tropeExamples: msg.examples}
		return m, nil

	case categoryDetailMsg:
		if msg.err != nil {
			m.setNotice(noticeError, noticeFor(msg.err, "Failed to load category details."))
			return m, nil
		}
		m.detail = &detailState{category: msg.detail}
		return m, nil

	case analyticsMsg:
		if msg.err != nil {
			m.setNotice(noticeError, noticeFor(msg.err, "Failed to load analytics."))
			return m, nil
		}
		m.analytics = msg.analytics
		return m, nil

	case aiAnswerMsg:
		m.aiBusy = false
		if msg.err != nil {
			m.setNotice(noticeError, noticeFor(msg.err, "The assistant is unavailable."))
			return m, nil
		}
		if !msg.res.Success {
			m.setNotice(noticeError, msg.res.Error)
			return m, nil
		}
		m.aiAnswer = renderMarkdown(msg.res.Answer, m.width)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal dialog swallows everything until resolved.
	if m.dialog != nil {
		cmd, done := m.dialog.update(msg)
		if done {
			m.dialog = nil
		}
		return m, cmd
	}

	// Forms get keys first; esc cancels back to the list.
	if m.form != nil {
		switch msg.String() {
		case "esc":
			section := listSection(m.section)
			m.form = nil
			return m, m.showSection(section)
		case "enter":
			if m.form.onSubmit() && !m.form.submitting {
				return m, m.submitForm()
			}
		}
		return m, m.form.update(msg, m)
	}

	// Search input captures typing while focused.
	if m.searching {
		switch msg.String() {
		case "esc", "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			searchCmd := m.dispatchSearch(m.search.Value())
			return m, tea.Batch(cmd, searchCmd)
		}
	}

	// AI input captures typing while focused.
	if m.section == SectionAI && m.aiInput.Focused() {
		switch msg.String() {
		case "esc":
			m.aiInput.Blur()
			return m, nil
		case "enter":
			query := strings.TrimSpace(m.aiInput.Value())
			if query == "" {
				return m, nil
			}
			m.aiBusy = true
			m.aiAnswer = ""
			return m, tea.Batch(m.spinner.Tick, m.aiQueryCmd(query))
		default:
			var cmd tea.Cmd
			m.aiInput, cmd = m.aiInput.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.detail != nil {
			m.detail = nil
			return m, nil
		}

	case "/":
		if searchable(m.section) {
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		}

	case "1", "2", "3", "4", "5", "6":
		idx, _ := strconv.Atoi(msg.String())
		return m, m.showSection(sectionTabs[idx-1])

	case "tab":
		next := (indexOf(sectionTabs, listSection(m.section)) + 1) % len(sectionTabs)
		return m, m.showSection(sectionTabs[next])

	case "r":
		m.loading = true
		seq := m.store.BeginLoad()
		return m, tea.Batch(m.spinner.Tick, m.loadAllCmd(seq))

	case "i":
		if m.section == SectionAI {
			m.aiInput.Focus()
			return m, textinput.Blink
		}

	case "j", "down":
		if m.cursor < m.sectionLen()-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "enter":
		return m, m.openSelected()

	case "n":
		return m.openCreateForm()

	case "e":
		return m.openEditForm()

	case "d":
		return m, m.requestDelete()

	case "x":
		m.exportSection()
		return m, nil
	}

	return m, nil
}

// dispatchSearch applies the search protocol for the current input
// value: empty resets everything, tropes/categories go to the server
// (with client fallback on failure), works/examples filter locally.
func (m *Model) dispatchSearch(raw string) tea.Cmd {
	query := strings.TrimSpace(raw)
	m.lastQuery = query
	m.cursor = 0

	if query == "" {
		m.store.ResetView()
		m.resultNote = ""
		return nil
	}

	switch m.section {
	case SectionTropes, SectionCategories:
		return m.searchCmd(query)
	case SectionWorks:
		m.store.FilterWorks(query)
		m.resultNote = fmt.Sprintf("%d works", len(m.store.View.Works))
	case SectionExamples:
		m.store.FilterExamples(query)
		m.resultNote = fmt.Sprintf("%d examples", len(m.store.View.Examples))
	}
	return nil
}

func (m *Model) setResultNote(query string, serverTotal *int) {
	n := m.store.ResultCount(serverTotal)
	if serverTotal != nil {
		m.resultNote = fmt.Sprintf("Found %d results for %q", n, query)
	} else {
		m.resultNote = fmt.Sprintf("Found %d results (%d tropes, %d categories)",
			n, len(m.store.View.Tropes), len(m.store.View.Categories))
	}
}

func (m *Model) setNotice(level noticeLevel, text string) {
	m.notice = text
	m.noticeLevel = level
}

func (m *Model) sectionLen() int {
	switch m.section {
	case SectionTropes:
		return len(m.store.View.Tropes)
	case SectionCategories:
		return len(m.store.View.Categories)
	case SectionWorks:
		return len(m.store.View.Works)
	case SectionExamples:
		return len(m.store.View.Examples)
	}
	return 0
}

// openSelected drills into the item under the cursor.
func (m *Model) openSelected() tea.Cmd {
	switch m.section {
	case SectionTropes:
		if t := m.selectedTrope(); t != nil {
			return m.tropeDetailCmd(t.ID)
		}
	case SectionCategories:
		if c := m.selectedCategory(); c != nil {
			return m.categoryDetailCmd(c.ID)
		}
	case SectionWorks:
		if w := m.selectedWork(); w != nil {
			m.detail = &detailState{work: w}
		}
	case SectionExamples:
		if e := m.selectedExample(); e != nil {
			m.detail = &detailState{example: e}
		}
	}
	return nil
}

func (m *Model) selectedTrope() *api.Trope {
	if m.cursor < len(m.store.View.Tropes) {
		return &m.store.View.Tropes[m.cursor]
	}
	return nil
}

func (m *Model) selectedCategory() *api.Category {
	if m.cursor < len(m.store.View.Categories) {
		return &m.store.View.Categories[m.cursor]
	}
	return nil
}

func (m *Model) selectedWork() *api.Work {
	if m.cursor < len(m.store.View.Works) {
		return &m.store.View.Works[m.cursor]
	}
	return nil
}

func (m *Model) selectedExample() *api.Example {
	if m.cursor < len(m.store.View.Examples) {
		return &m.store.View.Examples[m.cursor]
	}
	return nil
}

func (m *Model) openCreateForm() (tea.Model, tea.Cmd) {
	switch m.section {
	case SectionTropes:
		m.form = newTropeForm(nil)
		return m, m.showSectionKeepForm(SectionCreateTrope)
	case SectionWorks:
		m.form = newWorkForm(nil)
		return m, m.showSectionKeepForm(SectionCreateWork)
	case SectionExamples:
		m.form = newExampleForm(nil)
		return m, m.showSectionKeepForm(SectionCreateExample)
	}
	return m, nil
}

func (m *Model) openEditForm() (tea.Model, tea.Cmd) {
	switch m.section {
	case SectionTropes:
		if t := m.selectedTrope(); t != nil {
			m.form = newTropeForm(t)
			return m, m.showSectionKeepForm(SectionEditTrope)
		}
	case SectionWorks:
		if w := m.selectedWork(); w != nil {
			m.form = newWorkForm(w)
			return m, m.showSectionKeepForm(SectionEditWork)
		}
	case SectionExamples:
		if e := m.selectedExample(); e != nil {
			m.form = newExampleForm(e)
			return m, m.showSectionKeepForm(SectionEditExample)
		}
	}
	return m, nil
}

// showSectionKeepForm switches section without clearing the form the
// caller just installed.
func (m *Model) showSectionKeepForm(s Section) tea.Cmd {
	f := m.form
	cmd := m.showSection(s)
	m.form = f
	return cmd
}

// submitForm validates, then issues the create or update. Validation
// failures stay inline and never reach the network.
func (m *Model) submitForm() tea.Cmd {
	f := m.form
	section := m.section

	switch f.kind {
	case formTrope:
		in, err := f.tropeInput()
		if err != nil {
			f.feedback = err.Error()
			return nil
		}
		f.feedback = ""
		f.submitting = true
		label := fmt.Sprintf("Trope %q", in.Name)
		if f.editID != "" {
			id := f.editID
			return m.mutationCmd(section, label, false, func(ctx context.Context) error { return m.client.UpdateTrope(ctx, id, in) })
		}
		return m.mutationCmd(section, label, false, func(ctx context.Context) error { return m.client.CreateTrope(ctx, in) })

	case formWork:
		in, err := f.workInput()
		if err != nil {
			f.feedback = err.Error()
			return nil
		}
		f.feedback = ""
		f.submitting = true
		label := fmt.Sprintf("Work %q", in.Title)
		if f.editID != "" {
			id := f.editID
			return m.mutationCmd(section, label, false, func(ctx context.Context) error { return m.client.UpdateWork(ctx, id, in) })
		}
		return m.mutationCmd(section, label, false, func(ctx context.Context) error { return m.client.CreateWork(ctx, in) })

	case formExample:
		in, err := f.exampleInput()
		if err != nil {
			f.feedback = err.Error()
			return nil
		}
		f.feedback = ""
		f.submitting = true
		label := "Example"
		if f.editID != "" {
			id := f.editID
			return m.mutationCmd(section, label, false, func(ctx context.Context) error { return m.client.UpdateExample(ctx, id, in) })
		}
		return m.mutationCmd(section, label, false, func(ctx context.Context) error { return m.client.CreateExample(ctx, in) })
	}
	return nil
}

// handleMutationDone finishes a create/update/delete: success reloads
// everything and (for form flows) schedules the return to the list;
// failure surfaces the server's message and re-enables the form.
func (m *Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		m.form.submitting = false
	}

	if msg.err != nil {
		fallback := fmt.Sprintf("Failed to save %s.", strings.ToLower(msg.label))
		if msg.deleted {
			fallback = fmt.Sprintf("Failed to delete %s.", strings.ToLower(msg.label))
		}
		text := noticeFor(msg.err, fallback)
		if m.form != nil {
			m.form.feedback = text
		} else {
			m.setNotice(noticeError, text)
		}
		return m, nil
	}

	// Resynchronize from the server; never patch locally.
	m.loading = true
	seq := m.store.BeginLoad()
	cmds := []tea.Cmd{m.spinner.Tick, m.loadAllCmd(seq)}

	if msg.deleted {
		m.setNotice(noticeSuccess, fmt.Sprintf("%s deleted.", msg.label))
	} else {
		m.setNotice(noticeSuccess, fmt.Sprintf("%s saved.", msg.label))
		if m.form != nil {
			m.form.reset()
			cmds = append(cmds, returnToListCmd(listSection(msg.section)))
		}
	}
	return m, tea.Batch(cmds...)
}

// requestDelete opens the confirmation dialog for the selected item.
func (m *Model) requestDelete() tea.Cmd {
	var (
		label string
		op    func(ctx context.Context) error
	)
	switch m.section {
	case SectionTropes:
		t := m.selectedTrope()
		if t == nil {
			return nil
		}
		label = fmt.Sprintf("Trope %q", t.Name)
		id := t.ID
		op = func(ctx context.Context) error { return m.client.DeleteTrope(ctx, id) }
	case SectionWorks:
		w := m.selectedWork()
		if w == nil {
			return nil
		}
		label = fmt.Sprintf("Work %q", w.Title)
		id := w.ID
		op = func(ctx context.Context) error { return m.client.DeleteWork(ctx, id) }
	case SectionExamples:
		e := m.selectedExample()
		if e == nil {
			return nil
		}
		label = fmt.Sprintf("Example (%s in %s)", m.store.TropeName(e.TropeID), m.store.WorkTitle(e.WorkID))
		id := e.ID
		op = func(ctx context.Context) error { return m.client.DeleteExample(ctx, id) }
	default:
		return nil
	}

	m.dialog = &confirmDialog{
		message: fmt.Sprintf("Delete %s? This cannot be undone.", label),
		confirm: m.mutationCmd(m.section, label, true, op),
	}
	return nil
}

// exportSection writes the current section's view (or everything when
// unfiltered) to a CSV file in the configured export directory.
func (m *Model) exportSection() {
	var kind export.Kind
	switch m.section {
	case SectionTropes:
		kind = export.KindTropes
	case SectionCategories:
		kind = export.KindCategories
	case SectionWorks:
		kind = export.KindWorks
	case SectionExamples:
		kind = export.KindExamples
	default:
		return
	}
	path := filepath.Join(m.cfg.ExportDir, export.FileName(kind, time.Now()))
	file, err := os.Create(path)
	if err != nil {
		m.setNotice(noticeError, fmt.Sprintf("Export failed: %v", err))
		return
	}
	defer file.Close()
	if err := export.Write(file, m.store, kind); err != nil {
		m.setNotice(noticeError, fmt.Sprintf("Export failed: %v", err))
		return
	}
	m.setNotice(noticeSuccess, fmt.Sprintf("Exported to %s", path))
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tropedeck") + "  " + m.viewTabs() + "\n\n")

	if line := m.viewSearchLine(); line != "" {
		b.WriteString(line + "\n\n")
	}

	if m.loading {
		b.WriteString(m.spinner.View() + " Loading...\n")
	} else if render, ok := sectionRenderers[m.section]; ok {
		b.WriteString(render(m))
	}

	if m.dialog != nil {
		b.WriteString("\n" + m.dialog.view() + "\n")
	}

	if notice := m.viewNotice(); notice != "" {
		b.WriteString("\n" + notice + "\n")
	}

	b.WriteString("\n" + m.viewStatusBar() + "\n")
	return b.String()
}

func indexOf(sections []Section, s Section) int {
	for i, v := range sections {
		if v == s {
			return i
		}
	}
	return 0
}

// renderMarkdown pretty-prints an assistant answer; plain text passes
// through when rendering fails.
func renderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width-2, 100)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
