package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/logger"
)

// Exporter dumps a ledger's current contents to a plain-text file. The file
// name carries the current year-month and is overwritten on every trigger.
// The "pdf" in the default directory name is historical: these reports have
// always been plain text.
type Exporter struct {
	store ledger.Store
	dir   string
	now   func() time.Time
}

// NewExporter returns an exporter writing into dir.
func NewExporter(store ledger.Store, dir string) *Exporter {
	return &Exporter{store: store, dir: dir, now: time.Now}
}

var exportTitles = map[ledger.Domain]string{
	ledger.DomainTrades:      "Trading Journal Report",
	ledger.DomainBudget:      "Budget Report",
	ledger.DomainInvestments: "Investment Report",
}

var exportBases = map[ledger.Domain]string{
	ledger.DomainTrades:      "trading_journal",
	ledger.DomainBudget:      "budget",
	ledger.DomainInvestments: "investments",
}

// Export writes the dump for one domain and returns its path.
func (e *Exporter) Export(domain ledger.Domain) (string, error) {
	body, err := e.render(domain)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	month := e.now().Format("2006-01")
	path := filepath.Join(e.dir, fmt.Sprintf("%s_%s.txt", exportBases[domain], month))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	logger.Info("ledger exported",
		logger.Pair("domain", string(domain)),
		logger.Pair("path", path))
	return path, nil
}

func (e *Exporter) render(domain ledger.Domain) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n\n", exportTitles[domain], e.now().Format("2006-01"))

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	switch domain {
	case ledger.DomainTrades:
		trades, err := e.store.Trades()
		if err != nil {
			return "", err
		}
		fmt.Fprintln(w, strings.Join(ledger.TradeFields, "\t"))
		for _, t := range trades {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
				t.Date.Format(ledger.DateFormat), t.Pair, t.Position,
				t.Entry, t.Exit, t.RSI, t.MA, t.News, t.ProfitLoss, t.Notes, t.ID)
		}

	case ledger.DomainBudget:
		entries, err := e.store.BudgetEntries()
		if err != nil {
			return "", err
		}
		fmt.Fprintln(w, strings.Join(ledger.BudgetFields, "\t"))
		for _, entry := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				entry.Date.Format(ledger.DateFormat), entry.Type, entry.Category,
				entry.Amount, entry.Notes, entry.ID)
		}

	case ledger.DomainInvestments:
		investments, err := e.store.Investments()
		if err != nil {
			return "", err
		}
		fmt.Fprintln(w, strings.Join(ledger.InvestmentFields, "\t"))
		for _, v := range investments {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				v.Date.Format(ledger.DateFormat), v.Asset, v.Category,
				v.Value, v.Notes, v.ID)
		}

	default:
		return "", fmt.Errorf("unknown domain %q", domain)
	}

	if err := w.Flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}
