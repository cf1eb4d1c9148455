package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tropedb/tropedeck/internal/export"
	"github.com/tropedb/tropedeck/internal/state"
)

var exportCmd = &cobra.Command{
	Use:   "export [tropes|categories|works|examples|all]",
	Short: "Export collections to CSV files",
	Long: `Writes CSV exports of the database. By default each collection is
fetched and written locally with the client's escaping rules; with
--server the server's own CSV export is downloaded instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("out", "", "output directory (defaults to export_dir from config)")
	exportCmd.Flags().Bool("server", false, "download the server-side CSV export instead")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.ExportDir
	}
	serverSide, _ := cmd.Flags().GetBool("server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
	defer cancel()

	if serverSide {
		path := filepath.Join(outDir, fmt.Sprintf("database_export_%s.csv", time.Now().Format("2006-01-02")))
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer file.Close()
		n, err := client.ExportCSV(ctx, file)
		if err != nil {
			return fmt.Errorf("server export: %w", err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", path, n)
		return nil
	}

	var kinds []export.Kind
	if args[0] == "all" {
		kinds = export.Kinds
	} else {
		kind, err := export.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []export.Kind{kind}
	}

	snap, err := client.LoadAll(ctx, cfg.SortBy, cfg.SortOrder, "")
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}
	store := state.New()
	store.ApplyLoad(store.BeginLoad(), snap)

	for _, kind := range kinds {
		rows := export.Rows(store, kind)
		path := filepath.Join(outDir, export.FileName(kind, time.Now()))
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}

		bar := progressbar.NewOptions(len(rows),
			progressbar.OptionSetDescription(fmt.Sprintf("Exporting %s", kind)),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		if err := export.WriteWithProgress(file, rows, func(done int) { _ = bar.Set(done) }); err != nil {
			file.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		_ = bar.Finish()
		if err := file.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
		fmt.Printf("Wrote %s (%d rows)\n", path, len(rows)-1)
	}
	return nil
}
