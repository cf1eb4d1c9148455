package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tropedb/tropedeck/internal/api"
	"github.com/tropedb/tropedeck/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tropedeck",
	Short: "Terminal client for the trope database",
	Long: `Tropedeck browses, searches and edits a trope database over its
REST API: tropes, categories, works and documented examples. Running
it without a subcommand opens the full-screen browse interface.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".tropedeck.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads and validates the config, providing a friendly
// pointer at the init wizard on bad setups.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w\nRun `tropedeck init` to reconfigure", err)
	}
	return cfg, nil
}

// newClient builds the API client from config.
func newClient() (*api.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return api.New(cfg.APIURL), cfg, nil
}
