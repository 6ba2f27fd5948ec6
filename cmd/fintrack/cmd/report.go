package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the monthly summary report",
	Long: `Generate the monthly summary report.

Without --month the previous calendar month is reported, which matches
what the scheduler writes on the first day of each month. An existing
report for the same month is overwritten.

Examples:
  fintrack report
  fintrack report --month 2024-04`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var reportMonth string

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "report month (YYYY-MM, default previous month)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	year, month, err := report.Period(reportMonth)
	if err != nil {
		return err
	}

	path, summary, err := newGenerator(cfg, store).Generate(year, month)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Report written: %s\n", path)
	for _, w := range summary.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	return nil
}
