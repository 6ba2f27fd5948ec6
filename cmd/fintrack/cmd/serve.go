package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/report"
	"github.com/rustyeddy/fintrack/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with the report scheduler",
	Long: `Start the HTTP server and the daily report scheduler.

The scheduler ticks once a day; on the first calendar day of a month it
writes the previous month's summary report. With reports.run_on_start
enabled the same check also runs immediately at startup.

Example:
  fintrack serve --config fintrack.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	gen := newGenerator(cfg, store)
	exp := report.NewExporter(store, cfg.Reports.ExportDir)

	sched, err := report.NewScheduler(gen, cfg.Reports.Cron)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()
	if cfg.Reports.RunOnStart {
		sched.RunNow()
	}

	return server.New(cfg, store, gen, exp).Run()
}
