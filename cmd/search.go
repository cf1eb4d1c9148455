package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tropedb/tropedeck/internal/api"
	"github.com/tropedb/tropedeck/internal/state"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tropes and categories",
	Long: `Runs the combined trope+category search against the server. If the
search endpoint is unreachable the full collections are fetched and
filtered locally with the same normalization the server applies
(case folding, underscores as spaces).`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, cfg, err := newClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
	defer cancel()

	res, err := client.Search(ctx, query)
	if err != nil {
		// Same fallback the browse UI uses: fetch everything and
		// filter client-side rather than returning nothing.
		if verbose {
			fmt.Fprintf(os.Stderr, "server search failed (%v), falling back to client-side filter\n", err)
		}
		res, err = clientSideSearch(ctx, client, cfg.SortBy, cfg.SortOrder, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Printf("Found %d results for %q\n\n", res.TotalResults, query)
	if len(res.Tropes) > 0 {
		fmt.Println("Tropes:")
		for _, t := range res.Tropes {
			line := "  " + t.Name
			if len(t.Categories) > 0 {
				line += "  [" + strings.Join(t.Categories, ", ") + "]"
			}
			fmt.Println(line)
		}
	}
	if len(res.Categories) > 0 {
		fmt.Println("Categories:")
		for _, c := range res.Categories {
			name := c.DisplayName
			if name == "" {
				name = c.Name
			}
			fmt.Printf("  %s (%d tropes)\n", name, c.TropeCount)
		}
	}
	return nil
}

// clientSideSearch loads the collections and applies the local
// predicate through a throwaway store.
func clientSideSearch(ctx context.Context, client *api.Client, sortBy, sortOrder, query string) (*api.SearchResult, error) {
	snap, err := client.LoadAll(ctx, sortBy, sortOrder, "")
	if err != nil {
		return nil, err
	}
	store := state.New()
	seq := store.BeginLoad()
	store.ApplyLoad(seq, snap)
	store.ClientSearch(query)
	return &api.SearchResult{
		Query:        query,
		Tropes:       store.View.Tropes,
		Categories:   store.View.Categories,
		TotalResults: len(store.View.Tropes) + len(store.View.Categories),
	}, nil
}
