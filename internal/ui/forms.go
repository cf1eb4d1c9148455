package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tropedb/tropedeck/internal/api"
	"github.com/tropedb/tropedeck/internal/state"
)

// formKind selects which entity a form edits.
type formKind int

const (
	formTrope formKind = iota
	formWork
	formExample
)

// form is the shared create/edit model. Text fields are bubbles
// inputs; the trope category picker and the example trope/work pickers
// are cursor-driven checklists over the loaded collections.
type form struct {
	kind   formKind
	editID string // empty for create

	inputs     []textinput.Model
	desc       textarea.Model
	focus      int // index over inputs, then textarea, then pickers, then submit
	submitting bool
	feedback   string

	// Trope form: category checklist.
	catCursor   int
	catSelected map[string]bool

	// Example form: single-select trope and work pickers.
	tropeCursor int
	tropeID     string
	workCursor  int
	workID      string
}

// Field labels per kind, in focus order ahead of the description box.
var formFieldLabels = map[formKind][]string{
	formTrope:   {"Name"},
	formWork:    {"Title", "Type", "Year", "Author"},
	formExample: {"Page reference"},
}

func newForm(kind formKind) *form {
	labels := formFieldLabels[kind]
	f := &form{
		kind:        kind,
		inputs:      make([]textinput.Model, len(labels)),
		catSelected: make(map[string]bool),
	}
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 200
		in.Width = 48
		f.inputs[i] = in
	}
	f.desc = textarea.New()
	f.desc.Placeholder = "Description"
	f.desc.CharLimit = 2000
	f.desc.SetWidth(60)
	f.desc.SetHeight(5)
	f.inputs[0].Focus()
	return f
}

// newTropeForm builds an empty trope form, or one pre-filled from an
// existing trope when editing.
func newTropeForm(t *api.Trope) *form {
	f := newForm(formTrope)
	if t != nil {
		f.editID = t.ID
		f.inputs[0].SetValue(t.Name)
		f.desc.SetValue(t.Description)
		for _, cat := range t.Categories {
			f.catSelected[cat] = true
		}
	}
	return f
}

func newWorkForm(w *api.Work) *form {
	f := newForm(formWork)
	if w != nil {
		f.editID = w.ID
		f.inputs[0].SetValue(w.Title)
		f.inputs[1].SetValue(w.Type)
		if w.Year != 0 {
			f.inputs[2].SetValue(strconv.Itoa(w.Year))
		}
		f.inputs[3].SetValue(w.Author)
		f.desc.SetValue(w.Description)
	}
	return f
}

func newExampleForm(e *api.Example) *form {
	f := newForm(formExample)
	if e != nil {
		f.editID = e.ID
		f.tropeID = e.TropeID
		f.workID = e.WorkID
		f.inputs[0].SetValue(e.PageReference)
		f.desc.SetValue(e.Description)
	}
	return f
}

// focusSlots returns the number of focusable slots: the text inputs,
// the description box, any pickers, and the submit control.
func (f *form) focusSlots() int {
	n := len(f.inputs) + 1 // inputs + description
	switch f.kind {
	case formTrope:
		n++ // category checklist
	case formExample:
		n += 2 // trope picker, work picker
	}
	return n + 1 // submit
}

func (f *form) descIndex() int   { return len(f.inputs) }
func (f *form) pickerIndex() int { return len(f.inputs) + 1 }
func (f *form) submitIndex() int { return f.focusSlots() - 1 }
func (f *form) onSubmit() bool   { return f.focus == f.submitIndex() }
func (f *form) onPicker(n int) bool {
	return f.focus == f.pickerIndex()+n
}

func (f *form) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	if i == f.descIndex() {
		f.desc.Focus()
	} else {
		f.desc.Blur()
	}
}

// update routes a key to the focused control. It returns a command for
// cursor blink updates only; submission is handled by the root model.
func (f *form) update(msg tea.Msg, m *Model) tea.Cmd {
	key, isKey := msg.(tea.KeyMsg)
	if isKey && !f.submitting {
		switch key.String() {
		case "tab", "down":
			if f.focus != f.descIndex() || key.String() == "tab" {
				f.setFocus((f.focus + 1) % f.focusSlots())
				return nil
			}
		case "shift+tab", "up":
			if f.focus != f.descIndex() || key.String() == "shift+tab" {
				f.setFocus((f.focus - 1 + f.focusSlots()) % f.focusSlots())
				return nil
			}
		}

		// Picker navigation.
		switch f.kind {
		case formTrope:
			if f.onPicker(0) {
				return f.updateCategoryPicker(key, m)
			}
		case formExample:
			if f.onPicker(0) {
				return f.updateEntityPicker(key, len(m.store.Data.Tropes), &f.tropeCursor, func(i int) string {
					return m.store.Data.Tropes[i].ID
				}, &f.tropeID)
			}
			if f.onPicker(1) {
				return f.updateEntityPicker(key, len(m.store.Data.Works), &f.workCursor, func(i int) string {
					return m.store.Data.Works[i].ID
				}, &f.workID)
			}
		}
	}

	var cmd tea.Cmd
	if f.focus < len(f.inputs) {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	} else if f.focus == f.descIndex() {
		f.desc, cmd = f.desc.Update(msg)
	}
	return cmd
}

func (f *form) updateCategoryPicker(key tea.KeyMsg, m *Model) tea.Cmd {
	cats := m.store.Data.Categories
	switch key.String() {
	case "j":
		if f.catCursor < len(cats)-1 {
			f.catCursor++
		}
	case "k":
		if f.catCursor > 0 {
			f.catCursor--
		}
	case " ":
		if f.catCursor < len(cats) {
			name := displayName(cats[f.catCursor])
			f.catSelected[name] = !f.catSelected[name]
		}
	}
	return nil
}

func (f *form) updateEntityPicker(key tea.KeyMsg, n int, cursor *int, idAt func(int) string, chosen *string) tea.Cmd {
	switch key.String() {
	case "j":
		if *cursor < n-1 {
			*cursor++
		}
	case "k":
		if *cursor > 0 {
			*cursor--
		}
	case " ":
		if *cursor < n {
			*chosen = idAt(*cursor)
		}
	}
	return nil
}

// tropeInput assembles and validates the trope payload.
func (f *form) tropeInput() (api.TropeInput, error) {
	var categories []string
	for name, on := range f.catSelected {
		if on {
			categories = append(categories, name)
		}
	}
	in := api.TropeInput{
		Name:        strings.TrimSpace(f.inputs[0].Value()),
		Description: strings.TrimSpace(f.desc.Value()),
		Categories:  categories,
	}
	return in, state.ValidateTrope(in)
}

func (f *form) workInput() (api.WorkInput, error) {
	year := 0
	if v := strings.TrimSpace(f.inputs[2].Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return api.WorkInput{}, fmt.Errorf("Year must be a number.")
		}
		year = n
	}
	in := api.WorkInput{
		Title:       strings.TrimSpace(f.inputs[0].Value()),
		Type:        strings.TrimSpace(f.inputs[1].Value()),
		Year:        year,
		Author:      strings.TrimSpace(f.inputs[3].Value()),
		Description: strings.TrimSpace(f.desc.Value()),
	}
	return in, state.ValidateWork(in)
}

func (f *form) exampleInput() (api.ExampleInput, error) {
	in := api.ExampleInput{
		TropeID:       f.tropeID,
		WorkID:        f.workID,
		Description:   strings.TrimSpace(f.desc.Value()),
		PageReference: strings.TrimSpace(f.inputs[0].Value()),
	}
	return in, state.ValidateExample(in)
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.desc.SetValue("")
	f.catSelected = make(map[string]bool)
	f.tropeID = ""
	f.workID = ""
	f.feedback = ""
	f.setFocus(0)
}

func displayName(c api.Category) string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}
