package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tropedb/tropedeck/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the full-screen browse interface",
	Long:  `Opens the interactive terminal UI for browsing, searching, editing and exporting the trope database.`,
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	program := tea.NewProgram(ui.New(client, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running browse ui: %w", err)
	}
	return nil
}
