package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/report"
)

var exportCmd = &cobra.Command{
	Use:   "export <trades|budget|investments>",
	Short: "Export a ledger to a plain-text report file",
	Long: `Write a plain-text dump of one ledger into the export directory.

The file name carries the current year-month; exporting the same ledger
again within a month overwrites the previous dump.

Example:
  fintrack export budget`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	domain, err := ledger.ParseDomain(args[0])
	if err != nil {
		return err
	}

	path, err := report.NewExporter(store, cfg.Reports.ExportDir).Export(domain)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Exported %s: %s\n", domain, path)
	return nil
}
