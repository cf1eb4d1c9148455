package ui

import tea "github.com/charmbracelet/bubbletea"

// confirmDialog is the modal yes/no step in front of every delete. The
// message names the entity so the user knows exactly what goes away.
type confirmDialog struct {
	message string
	confirm tea.Cmd // issued on yes
}

func (d *confirmDialog) view() string {
	return dialogStyle.Render(d.message + "\n\n" + helpStyle.Render("y confirm · n cancel"))
}

// update resolves the dialog on y/n, returning the follow-up command
// and whether the dialog is done.
func (d *confirmDialog) update(key tea.KeyMsg) (tea.Cmd, bool) {
	switch key.String() {
	case "y", "Y":
		return d.confirm, true
	case "n", "N", "esc":
		return nil, true
	}
	return nil, false
}
