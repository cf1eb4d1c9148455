package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check API server connectivity",
	Long: `Pings the API server's health endpoint. A timed-out or failed check
reports "disconnected" and exits nonzero; it is a state, not a crash.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()

		h, err := client.Health(ctx)
		if err != nil {
			fmt.Printf("disconnected (%s)\n", cfg.APIURL)
			return fmt.Errorf("health check failed: %w", err)
		}

		fmt.Printf("connected (%s)\n", cfg.APIURL)
		fmt.Printf("  tropes:     %d\n", h.DatabaseInfo.Tropes)
		fmt.Printf("  categories: %d\n", h.DatabaseInfo.Categories)
		fmt.Printf("  works:      %d\n", h.DatabaseInfo.Works)
		fmt.Printf("  examples:   %d\n", h.DatabaseInfo.Examples)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
