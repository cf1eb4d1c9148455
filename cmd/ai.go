package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tropedb/tropedeck/internal/console"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Talk to the server's AI assistant",
	Long:  `Passthrough to the server's AI endpoints: natural-language queries over the database and book search/import.`,
}

var aiQueryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask the database a natural-language question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()

		res, err := client.AIQuery(ctx, args[0])
		if err != nil {
			return fmt.Errorf("ai query: %w", err)
		}
		if !res.Success {
			return fmt.Errorf("ai query: %s", res.Error)
		}

		out := res.Answer
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100)); err == nil {
			if rendered, err := r.Render(res.Answer); err == nil {
				out = rendered
			}
		}
		fmt.Print(out)
		return nil
	},
}

var aiStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the AI backend is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()

		st, err := client.AIStatusCheck(ctx)
		if err != nil {
			return fmt.Errorf("ai status: %w", err)
		}
		if !st.Ready() {
			fmt.Printf("unavailable: %s\n", st.Error)
			return nil
		}
		fmt.Println("ready")
		if len(st.APIsConfigured) > 0 {
			fmt.Println("APIs configured:")
			for _, name := range sortedKeys(st.APIsConfigured) {
				mark := " "
				if st.APIsConfigured[name] {
					mark = "x"
				}
				fmt.Printf("  [%s] %s\n", mark, name)
			}
		}
		return nil
	},
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var aiBooksCmd = &cobra.Command{
	Use:   "books",
	Short: "Search and import books through the server",
}

var aiBooksSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the external book catalogue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, cfg, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()

		res, err := client.AIBookSearch(ctx, args[0], limit)
		if err != nil {
			return fmt.Errorf("book search: %w", err)
		}
		if !res.Success {
			return fmt.Errorf("book search: %s", res.Error)
		}
		if len(res.Books) == 0 {
			fmt.Println("No books found.")
			return nil
		}
		for _, b := range res.Books {
			line := "  " + b.Title
			if b.Author != "" {
				line += " by " + b.Author
			}
			if b.Year != 0 {
				line += fmt.Sprintf(" (%d)", b.Year)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var aiBooksImportCmd = &cobra.Command{
	Use:   "import [query]",
	Short: "Import matching books as works",
	Long:  `Searches the external catalogue and imports every match as a work, after confirmation.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, cfg, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()

		res, err := client.AIBookSearch(ctx, args[0], limit)
		if err != nil {
			return fmt.Errorf("book search: %w", err)
		}
		if len(res.Books) == 0 {
			fmt.Println("No books found.")
			return nil
		}

		ok, err := console.PromptConfirmer{}.Confirm(fmt.Sprintf("Import %d books as works", len(res.Books)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Import cancelled.")
			return nil
		}

		bar := progressbar.NewOptions(len(res.Books),
			progressbar.OptionSetDescription("Importing books"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		var failures []string
		for i, book := range res.Books {
			// One bounded request per import, not one deadline for
			// the whole batch.
			importCtx, cancelImport := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
			imported, err := client.AIBookImport(importCtx, book)
			cancelImport()
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", book.Title, err))
			} else if !imported.Success {
				failures = append(failures, fmt.Sprintf("%s: %s", book.Title, imported.Error))
			}
			_ = bar.Set(i + 1)
		}
		_ = bar.Finish()

		notifier := console.WriterNotifier{W: os.Stdout}
		notifier.Notify(console.LevelSuccess, fmt.Sprintf("Imported %d of %d books", len(res.Books)-len(failures), len(res.Books)))
		for _, f := range failures {
			console.WriterNotifier{W: os.Stderr}.Notify(console.LevelError, f)
		}
		return nil
	},
}

func init() {
	aiBooksSearchCmd.Flags().Int("limit", 10, "maximum number of results")
	aiBooksImportCmd.Flags().Int("limit", 10, "maximum number of books to import")
	aiBooksCmd.AddCommand(aiBooksSearchCmd)
	aiBooksCmd.AddCommand(aiBooksImportCmd)
	aiCmd.AddCommand(aiQueryCmd)
	aiCmd.AddCommand(aiStatusCmd)
	aiCmd.AddCommand(aiBooksCmd)
	rootCmd.AddCommand(aiCmd)
}
