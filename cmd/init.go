package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tropedb/tropedeck/internal/config"
	"github.com/tropedb/tropedeck/internal/console"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively configure tropedeck",
	Long:  `Runs a short wizard asking for the API server location and client preferences, then writes .tropedeck.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			ok, err := console.PromptConfirmer{}.Confirm(fmt.Sprintf("%s already exists. Overwrite", cfgFile))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Keeping existing configuration.")
				return nil
			}
		}
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
