package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tropedb/tropedeck/internal/api"
)

// descriptionPreviewLen is the card preview cutoff; longer descriptions
// are truncated with an ellipsis, full text lives in the detail view.
const descriptionPreviewLen = 150

// truncate cuts s at the preview length, appending "..." when
// anything was dropped.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func (m *Model) viewTabs() string {
	var tabs []string
	for _, s := range sectionTabs {
		label := sectionLabels[s]
		if listSection(m.section) == s {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) viewSearchLine() string {
	if !searchable(m.section) {
		return ""
	}
	line := m.search.View()
	if m.resultNote != "" {
		line += "  " + countStyle.Render(m.resultNote)
	}
	return line
}

func (m *Model) viewNotice() string {
	if m.notice == "" {
		return ""
	}
	switch m.noticeLevel {
	case noticeError:
		return noticeErrorStyle.Render(m.notice)
	case noticeSuccess:
		return noticeSuccessStyle.Render(m.notice)
	default:
		return noticeInfoStyle.Render(m.notice)
	}
}

func (m *Model) viewStatusBar() string {
	var status string
	if m.connected {
		status = statusConnectedStyle.Render("● connected")
		if m.dbInfo != nil {
			status += helpStyle.Render(fmt.Sprintf("  %d tropes · %d categories · %d works · %d examples",
				m.dbInfo.Tropes, m.dbInfo.Categories, m.dbInfo.Works, m.dbInfo.Examples))
		}
	} else {
		status = statusDisconnectedStyle.Render("● disconnected")
	}
	keys := helpStyle.Render("/ search · enter open · n new · e edit · d delete · x export · r reload · q quit")
	return status + "\n" + keys
}

func (m *Model) viewTropes() string {
	if m.detail != nil {
		return m.viewDetail()
	}
	tropes := m.store.View.Tropes
	if len(tropes) == 0 {
		return descStyle.Render("No tropes found.")
	}
	var b strings.Builder
	for i, t := range tropes {
		title := cardTitleStyle
		prefix := "  "
		if i == m.cursor {
			title = selectedCardStyle
			prefix = "> "
		}
		b.WriteString(prefix + title.Render(t.Name) + "\n")
		if t.Description != "" {
			b.WriteString("    " + descStyle.Render(truncate(t.Description, descriptionPreviewLen)) + "\n")
		}
		if len(t.Categories) > 0 {
			b.WriteString("    " + tagStyle.Render(strings.Join(t.Categories, " · ")) + "\n")
		}
		works, examples := m.store.TropeStats(t.ID)
		b.WriteString("    " + countStyle.Render(fmt.Sprintf("%d categories · %d works · %d examples",
			len(t.Categories), works, examples)) + "\n")
	}
	return b.String()
}

func (m *Model) viewCategories() string {
	if m.detail != nil {
		return m.viewDetail()
	}
	categories := m.store.View.Categories
	if len(categories) == 0 {
		return descStyle.Render("No categories found.")
	}
	var b strings.Builder
	for i, c := range categories {
		title := cardTitleStyle
		prefix := "  "
		if i == m.cursor {
			title = selectedCardStyle
			prefix = "> "
		}
		b.WriteString(prefix + title.Render(displayName(c)))
		b.WriteString("  " + countStyle.Render(fmt.Sprintf("%d tropes", c.TropeCount)) + "\n")
	}
	return b.String()
}

func (m *Model) viewWorks() string {
	if m.detail != nil {
		return m.viewDetail()
	}
	works := m.store.View.Works
	if len(works) == 0 {
		return descStyle.Render("No works found.")
	}
	var b strings.Builder
	for i, w := range works {
		title := cardTitleStyle
		prefix := "  "
		if i == m.cursor {
			title = selectedCardStyle
			prefix = "> "
		}
		meta := w.Type
		if w.Year != 0 {
			meta = fmt.Sprintf("%s, %d", meta, w.Year)
		}
		if w.Author != "" {
			meta += " by " + w.Author
		}
		b.WriteString(prefix + title.Render(w.Title) + "  " + tagStyle.Render(meta) + "\n")
		if w.Description != "" {
			b.WriteString("    " + descStyle.Render(truncate(w.Description, descriptionPreviewLen)) + "\n")
		}
	}
	return b.String()
}

func (m *Model) viewExamples() string {
	if m.detail != nil {
		return m.viewDetail()
	}
	examples := m.store.View.Examples
	if len(examples) == 0 {
		return descStyle.Render("No examples found.")
	}
	var b strings.Builder
	for i, e := range examples {
		title := cardTitleStyle
		prefix := "  "
		if i == m.cursor {
			title = selectedCardStyle
			prefix = "> "
		}
		// Dangling references render the Unknown placeholders rather
		// than failing: the referenced entity may have been deleted
		// since the last load.
		header := m.store.TropeName(e.TropeID) + " in " + m.store.WorkTitle(e.WorkID)
		if e.PageReference != "" {
			header += "  " + countStyle.Render("("+e.PageReference+")")
		}
		b.WriteString(prefix + title.Render(header) + "\n")
		if e.Description != "" {
			b.WriteString("    " + descStyle.Render(truncate(e.Description, descriptionPreviewLen)) + "\n")
		}
	}
	return b.String()
}

func (m *Model) viewAnalytics() string {
	if m.analytics == nil {
		return descStyle.Render("Loading analytics...")
	}
	a := m.analytics
	var b strings.Builder
	b.WriteString(cardTitleStyle.Render("Database analytics") + "\n\n")
	b.WriteString(fmt.Sprintf("  Tropes:      %d\n", a.Summary.TotalTropes))
	b.WriteString(fmt.Sprintf("  Categories:  %d\n", a.Summary.TotalCategories))
	b.WriteString(fmt.Sprintf("  Avg categories per trope: %.1f\n", a.Summary.AvgCategoriesPerTrope))

	if len(a.PopularCategories) > 0 {
		b.WriteString("\n" + cardTitleStyle.Render("Popular categories") + "\n")
		max := a.PopularCategories[0].TropeCount
		for _, pc := range a.PopularCategories {
			width := 0
			if max > 0 {
				width = pc.TropeCount * 30 / max
			}
			bar := histogramBarStyle.Render(strings.Repeat("█", width))
			b.WriteString(fmt.Sprintf("  %-24s %s %d\n", pc.Name, bar, pc.TropeCount))
		}
	}
	if len(a.DataHealth.UnusedCategories) > 0 {
		b.WriteString("\n" + descStyle.Render(fmt.Sprintf("Unused categories: %s",
			strings.Join(a.DataHealth.UnusedCategories, ", "))) + "\n")
	}
	return b.String()
}

func (m *Model) viewAI() string {
	var b strings.Builder
	b.WriteString("Ask the database anything:\n\n")
	b.WriteString(m.aiInput.View() + "\n\n")
	if m.aiBusy {
		b.WriteString(m.spinner.View() + " thinking...\n")
	}
	if m.aiAnswer != "" {
		b.WriteString(m.aiAnswer)
	}
	return b.String()
}

func (m *Model) viewForm() string {
	f := m.form
	if f == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(sectionLabels[m.section]) + "\n\n")
	labels := formFieldLabels[f.kind]
	for i, in := range f.inputs {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", labels[i]+":", in.View()))
	}
	b.WriteString("\n  Description:\n" + indent(f.desc.View(), "  ") + "\n")

	switch f.kind {
	case formTrope:
		b.WriteString("\n" + m.viewCategoryPicker(f))
	case formExample:
		b.WriteString("\n" + m.viewExamplePickers(f))
	}

	submit := "[ Save ]"
	if f.submitting {
		submit = "[ Saving... ]"
	}
	if f.onSubmit() {
		submit = selectedCardStyle.Render(submit)
	}
	b.WriteString("\n  " + submit + "\n")
	if f.feedback != "" {
		b.WriteString("\n  " + noticeErrorStyle.Render(f.feedback) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab next field · space toggle/select · esc cancel") + "\n")
	return b.String()
}

func (m *Model) viewCategoryPicker(f *form) string {
	var b strings.Builder
	b.WriteString("  Categories:\n")
	for i, c := range m.store.Data.Categories {
		mark := "[ ]"
		name := displayName(c)
		if f.catSelected[name] {
			mark = "[x]"
		}
		line := fmt.Sprintf("    %s %s", mark, name)
		if f.onPicker(0) && i == f.catCursor {
			line = selectedCardStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *Model) viewExamplePickers(f *form) string {
	var b strings.Builder
	b.WriteString("  Trope:\n")
	b.WriteString(m.viewSinglePicker(len(m.store.Data.Tropes), f.onPicker(0), f.tropeCursor,
		func(i int) (string, bool) {
			t := m.store.Data.Tropes[i]
			return t.Name, t.ID == f.tropeID
		}))
	b.WriteString("  Work:\n")
	b.WriteString(m.viewSinglePicker(len(m.store.Data.Works), f.onPicker(1), f.workCursor,
		func(i int) (string, bool) {
			w := m.store.Data.Works[i]
			return w.Title, w.ID == f.workID
		}))
	return b.String()
}

func (m *Model) viewSinglePicker(n int, focused bool, cursor int, at func(int) (string, bool)) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		name, chosen := at(i)
		mark := "( )"
		if chosen {
			mark = "(•)"
		}
		line := fmt.Sprintf("    %s %s", mark, name)
		if focused && i == cursor {
			line = selectedCardStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// viewDetail renders whichever drill-down is open.
func (m *Model) viewDetail() string {
	d := m.detail
	var b strings.Builder
	b.WriteString(helpStyle.Render("esc back") + "\n\n")
	switch {
	case d.trope != nil:
		t := d.trope
		b.WriteString(cardTitleStyle.Render(t.Name) + "\n\n")
		desc := t.Description
		if desc == "" {
			desc = "No description available."
		}
		b.WriteString(desc + "\n\n")
		b.WriteString(tagStyle.Render("Categories") + "\n")
		if len(t.Categories) == 0 {
			b.WriteString(descStyle.Render("  No categories assigned") + "\n")
		}
		for _, c := range t.Categories {
			b.WriteString("  · " + c.Name + "\n")
		}
		if len(d.tropeWorks) > 0 {
			b.WriteString("\n" + tagStyle.Render("Appears in") + "\n")
			for _, w := range d.tropeWorks {
				line := "  · " + w.Title
				if w.Year != 0 {
					line += fmt.Sprintf(" (%d)", w.Year)
				}
				b.WriteString(line + "\n")
			}
		}
		if len(d.tropeExamples) > 0 {
			b.WriteString("\n" + tagStyle.Render("Examples") + "\n")
			for _, e := range d.tropeExamples {
				b.WriteString("  " + m.store.WorkTitle(e.WorkID) + "\n")
				if e.Description != "" {
					b.WriteString("    " + descStyle.Render(truncate(e.Description, descriptionPreviewLen)) + "\n")
				}
			}
		}
	case d.category != nil:
		ct := d.category
		b.WriteString(cardTitleStyle.Render(displayName(ct.Category)) + "\n")
		b.WriteString(descStyle.Render(fmt.Sprintf("%d tropes in this category", ct.TropeCount)) + "\n\n")
		if len(ct.Tropes) == 0 {
			b.WriteString(descStyle.Render("No tropes in this category.") + "\n")
		}
		for _, t := range ct.Tropes {
			b.WriteString("  " + cardTitleStyle.Render(t.Name) + "\n")
			if t.Description != "" {
				b.WriteString("    " + descStyle.Render(truncate(t.Description, descriptionPreviewLen)) + "\n")
			}
		}
	case d.work != nil:
		w := d.work
		b.WriteString(cardTitleStyle.Render(w.Title) + "\n")
		meta := w.Type
		if w.Year != 0 {
			meta = fmt.Sprintf("%s, %d", meta, w.Year)
		}
		if w.Author != "" {
			meta += " by " + w.Author
		}
		b.WriteString(tagStyle.Render(meta) + "\n\n")
		b.WriteString(w.Description + "\n")
	case d.example != nil:
		e := d.example
		b.WriteString(cardTitleStyle.Render(m.store.TropeName(e.TropeID)) + "\n")
		b.WriteString(tagStyle.Render("in "+m.store.WorkTitle(e.WorkID)) + "\n\n")
		b.WriteString(e.Description + "\n")
		if e.PageReference != "" {
			b.WriteString("\n" + countStyle.Render("Page: "+e.PageReference) + "\n")
		}
	}
	return b.String()
}

// detailState holds whichever drill-down is open; nil means list mode.
type detailState struct {
	trope         *api.TropeDetail
	tropeWorks    []api.Work
	tropeExamples []api.Example
	category      *api.CategoryTropes
	work          *api.Work
	example       *api.Example
}
