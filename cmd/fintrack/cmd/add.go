package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/ledger"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a record to a ledger",
	Long: `Append one record to a ledger. Records are validated before the
append; a rejected record leaves the ledger untouched.

Subcommands:
  trade       - Append a trade to the trading journal
  budget      - Append an income or spending entry
  investment  - Append an investment value snapshot

Examples:
  fintrack add trade --date 2024-05-01 --pair XAU/USD --position Buy --entry 2300 --exit 2310
  fintrack add budget --date 2024-05-01 --type Spending --category Food --amount 120.50
  fintrack add investment --date 2024-05-01 --asset BTC --category Crypto --value 1500`,
}

var addTradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Append a trade to the trading journal",
	Args:  cobra.NoArgs,
	RunE:  runAddTrade,
}

var addBudgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Append an income or spending entry",
	Args:  cobra.NoArgs,
	RunE:  runAddBudget,
}

var addInvestmentCmd = &cobra.Command{
	Use:   "investment",
	Short: "Append an investment value snapshot",
	Args:  cobra.NoArgs,
	RunE:  runAddInvestment,
}

var (
	addDate     string
	addNotes    string
	addPair     string
	addPosition string
	addEntry    float64
	addExit     float64
	addRSI      int
	addMA       float64
	addNews     string
	addType     string
	addCategory string
	addAmount   float64
	addAsset    string
	addValue    float64
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.AddCommand(addTradeCmd)
	addCmd.AddCommand(addBudgetCmd)
	addCmd.AddCommand(addInvestmentCmd)

	addCmd.PersistentFlags().StringVar(&addDate, "date", "", "record date (YYYY-MM-DD, required)")
	addCmd.PersistentFlags().StringVar(&addNotes, "notes", "", "free-form notes")

	addTradeCmd.Flags().StringVar(&addPair, "pair", "", "instrument pair, e.g. XAU/USD (required)")
	addTradeCmd.Flags().StringVar(&addPosition, "position", "", "Buy or Sell (required)")
	addTradeCmd.Flags().Float64Var(&addEntry, "entry", 0, "entry price")
	addTradeCmd.Flags().Float64Var(&addExit, "exit", 0, "exit price")
	addTradeCmd.Flags().IntVar(&addRSI, "rsi", 0, "RSI reading at entry (0-100)")
	addTradeCmd.Flags().Float64Var(&addMA, "ma", 0, "moving average at entry")
	addTradeCmd.Flags().StringVar(&addNews, "news", "", "news context")
	addTradeCmd.MarkFlagRequired("pair")
	addTradeCmd.MarkFlagRequired("position")

	addBudgetCmd.Flags().StringVar(&addType, "type", "", "Income or Spending (required)")
	addBudgetCmd.Flags().StringVar(&addCategory, "category", "", "entry category (required)")
	addBudgetCmd.Flags().Float64Var(&addAmount, "amount", 0, "amount, non-negative")
	addBudgetCmd.MarkFlagRequired("type")
	addBudgetCmd.MarkFlagRequired("category")

	addInvestmentCmd.Flags().StringVar(&addAsset, "asset", "", "asset name, e.g. BTC (required)")
	addInvestmentCmd.Flags().StringVar(&addCategory, "category", "", "asset category (required)")
	addInvestmentCmd.Flags().Float64Var(&addValue, "value", 0, "snapshot value, non-negative")
	addInvestmentCmd.MarkFlagRequired("asset")
	addInvestmentCmd.MarkFlagRequired("category")
}

func runAddTrade(cmd *cobra.Command, args []string) error {
	store, err := openFromFlags()
	if err != nil {
		return err
	}
	defer store.Close()

	date, err := ledger.ParseDate(addDate)
	if err != nil {
		return err
	}
	trade := ledger.TradeRecord{
		Date:     date,
		Pair:     addPair,
		Position: ledger.Position(addPosition),
		Entry:    decimal.NewFromFloat(addEntry),
		Exit:     decimal.NewFromFloat(addExit),
		RSI:      addRSI,
		MA:       decimal.NewFromFloat(addMA),
		News:     addNews,
		Notes:    addNotes,
	}
	if err := store.AppendTrade(trade); err != nil {
		return err
	}

	fmt.Printf("✓ Trade recorded: %s %s %s\n", addDate, addPosition, addPair)
	return nil
}

func runAddBudget(cmd *cobra.Command, args []string) error {
	store, err := openFromFlags()
	if err != nil {
		return err
	}
	defer store.Close()

	date, err := ledger.ParseDate(addDate)
	if err != nil {
		return err
	}
	entry := ledger.BudgetRecord{
		Date:     date,
		Type:     ledger.EntryType(addType),
		Category: addCategory,
		Amount:   decimal.NewFromFloat(addAmount),
		Notes:    addNotes,
	}
	if err := store.AppendBudget(entry); err != nil {
		return err
	}

	fmt.Printf("✓ Budget entry recorded: %s %s %s %.2f\n", addDate, addType, addCategory, addAmount)
	return nil
}

func runAddInvestment(cmd *cobra.Command, args []string) error {
	store, err := openFromFlags()
	if err != nil {
		return err
	}
	defer store.Close()

	date, err := ledger.ParseDate(addDate)
	if err != nil {
		return err
	}
	snapshot := ledger.InvestmentRecord{
		Date:     date,
		Asset:    addAsset,
		Category: addCategory,
		Value:    decimal.NewFromFloat(addValue),
		Notes:    addNotes,
	}
	if err := store.AppendInvestment(snapshot); err != nil {
		return err
	}

	fmt.Printf("✓ Investment snapshot recorded: %s %s %.2f\n", addDate, addAsset, addValue)
	return nil
}

// openFromFlags loads the config and opens the configured store.
func openFromFlags() (ledger.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}
