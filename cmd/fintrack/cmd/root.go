package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/config"
	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/logger"
	"github.com/rustyeddy/fintrack/report"
)

var rootCmd = &cobra.Command{
	Use:   "fintrack",
	Short: "A personal finance tracker over append-only ledgers",
	Long: `Fintrack keeps three append-only ledgers (trading journal, budget,
investment snapshots) in flat files and derives everything else from them.

It provides tools for:
  - Recording trades, budget entries and investment snapshots
  - Aggregating ledgers into profit, cashflow and portfolio views
  - Generating the monthly summary report
  - Exporting ledgers to plain-text reports
  - Serving the same operations over HTTP`,
}

var cfgPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "fintrack.yaml", "config file path")
}

// loadConfig loads the config file named by --config and initializes logging.
// A missing file keeps the defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.File, cfg.Log.Level)
	return cfg, nil
}

// openStore opens the ledger backend the config selects.
func openStore(cfg *config.Config) (ledger.Store, error) {
	switch cfg.Data.Backend {
	case config.BackendSQLite:
		return ledger.NewSQLite(cfg.Data.SQLitePath)
	default:
		return ledger.NewCSV(cfg.Data.Dir)
	}
}

// newGenerator builds the monthly report generator from the config.
func newGenerator(cfg *config.Config, store ledger.Store) *report.Generator {
	return report.NewGenerator(store, cfg.Reports.Dir, cfg.Reports.Currency)
}
