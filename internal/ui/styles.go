package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7ee787"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#8b949e"))

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("#c9d1d9")).
			Background(lipgloss.Color("#1f6feb"))

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#c9d1d9"))

	selectedCardStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#d2a8ff"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#58a6ff"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d29922"))

	noticeInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#58a6ff"))

	noticeSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3fb950"))

	noticeErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f85149"))

	statusConnectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3fb950"))

	statusDisconnectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f85149"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#484f58"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#d29922")).
			Padding(1, 2)

	histogramBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#58a6ff"))
)
