package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/analytics"
	"github.com/rustyeddy/fintrack/ledger"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display ledgers and their aggregates",
	Long: `Display a ledger's records or the aggregates derived from it.

Subcommands:
  trades       - Trading journal with per-date and per-pair profit
  budget       - Budget entries with cashflow and spending by category
  investments  - Snapshots with latest value per asset

Examples:
  fintrack show trades
  fintrack show budget
  fintrack show investments --withdrawn BTC,ETH`,
}

var showTradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "Trading journal with profit aggregates",
	Args:  cobra.NoArgs,
	RunE:  runShowTrades,
}

var showBudgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget entries with cashflow aggregates",
	Args:  cobra.NoArgs,
	RunE:  runShowBudget,
}

var showInvestmentsCmd = &cobra.Command{
	Use:   "investments",
	Short: "Investment snapshots with latest value per asset",
	Args:  cobra.NoArgs,
	RunE:  runShowInvestments,
}

var showWithdrawn string

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.AddCommand(showTradesCmd)
	showCmd.AddCommand(showBudgetCmd)
	showCmd.AddCommand(showInvestmentsCmd)

	showInvestmentsCmd.Flags().StringVar(&showWithdrawn, "withdrawn", "", "comma-separated assets to mark withdrawn")
}

func runShowTrades(cmd *cobra.Command, args []string) error {
	store, err := openFromFlags()
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := store.Trades()
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		fmt.Println("No trades recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tPair\tPosition\tEntry\tExit\tP/L")
	for _, t := range trades {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.Date.Format(ledger.DateFormat), t.Pair, t.Position, t.Entry, t.Exit, t.ProfitLoss)
	}
	w.Flush()

	wins, losses := analytics.WinLossCounts(trades)
	fmt.Printf("\nWins: %d  Losses: %d  Win rate: %.2f%%\n", wins, losses, analytics.WinRate(trades))

	if best, worst, ok := analytics.Extrema(trades); ok {
		fmt.Printf("Best:  %s %s %s\n", best.Date.Format(ledger.DateFormat), best.Pair, best.ProfitLoss)
		fmt.Printf("Worst: %s %s %s\n", worst.Date.Format(ledger.DateFormat), worst.Pair, worst.ProfitLoss)
	}

	fmt.Println("\nProfit by pair:")
	for _, g := range analytics.ProfitByPair(trades) {
		fmt.Printf("  %-12s %s\n", g.Key, g.Sum)
	}
	return nil
}

func runShowBudget(cmd *cobra.Command, args []string) error {
	store, err := openFromFlags()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.BudgetEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No budget entries recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tType\tCategory\tAmount")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.Date.Format(ledger.DateFormat), e.Type, e.Category, e.Amount)
	}
	w.Flush()

	fmt.Println("\nCashflow:")
	for _, p := range analytics.Cashflow(entries) {
		fmt.Printf("  %s  in %s  out %s  net %s\n",
			p.Date.Format(ledger.DateFormat), amount(p.Income), amount(p.Spending), amount(p.Net))
	}

	fmt.Println("\nSpending by category:")
	for _, kv := range sortedSums(analytics.SpendingByCategory(entries)) {
		fmt.Printf("  %-12s %s\n", kv.key, amount(kv.sum))
	}
	return nil
}

func runShowInvestments(cmd *cobra.Command, args []string) error {
	store, err := openFromFlags()
	if err != nil {
		return err
	}
	defer store.Close()

	investments, err := store.Investments()
	if err != nil {
		return err
	}
	if len(investments) == 0 {
		fmt.Println("No investment snapshots recorded.")
		return nil
	}

	var selection []string
	if showWithdrawn != "" {
		selection = strings.Split(showWithdrawn, ",")
	}
	flagged := analytics.MarkWithdrawn(investments, selection)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tAsset\tCategory\tValue\t")
	for _, v := range flagged {
		mark := ""
		if v.Withdrawn {
			mark = "withdrawn"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			v.Date.Format(ledger.DateFormat), v.Asset, v.Category, v.Value, mark)
	}
	w.Flush()

	fmt.Println("\nLatest value per asset:")
	for _, kv := range sortedSums(analytics.LatestValuePerAsset(investments)) {
		fmt.Printf("  %-12s %s\n", kv.key, amount(kv.sum))
	}

	fmt.Println("\nPortfolio value over time:")
	for _, p := range analytics.PortfolioValueOverTime(investments) {
		fmt.Printf("  %s  %s\n", p.Date.Format(ledger.DateFormat), amount(p.Value))
	}
	return nil
}

// amount renders a value with thousands separators and 2 decimals.
func amount(v decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", v.InexactFloat64())
}

type keyedSum struct {
	key string
	sum decimal.Decimal
}

// sortedSums flattens a map of sums into key-ascending order for stable output.
func sortedSums(sums map[string]decimal.Decimal) []keyedSum {
	out := make([]keyedSum, 0, len(sums))
	for k, v := range sums {
		out = append(out, keyedSum{key: k, sum: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}
