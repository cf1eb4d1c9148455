package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show database statistics",
	Long:  `Fetches summary statistics: entity counts, averages, and the most popular categories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()

		a, err := client.Analytics(ctx)
		if err != nil {
			return fmt.Errorf("fetching analytics: %w", err)
		}

		fmt.Printf("Tropes:     %d\n", a.Summary.TotalTropes)
		fmt.Printf("Categories: %d\n", a.Summary.TotalCategories)
		fmt.Printf("Avg categories per trope: %.1f\n", a.Summary.AvgCategoriesPerTrope)

		if len(a.PopularCategories) > 0 {
			fmt.Println("\nPopular categories:")
			max := a.PopularCategories[0].TropeCount
			for _, pc := range a.PopularCategories {
				width := 0
				if max > 0 {
					width = pc.TropeCount * 30 / max
				}
				fmt.Printf("  %-24s %s %d\n", pc.Name, strings.Repeat("█", width), pc.TropeCount)
			}
		}
		if len(a.DataHealth.UnusedCategories) > 0 {
			fmt.Printf("\nUnused categories: %s\n", strings.Join(a.DataHealth.UnusedCategories, ", "))
		}
		if a.DataHealth.DatabaseSize != "" {
			fmt.Printf("Database size: %s\n", a.DataHealth.DatabaseSize)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}
