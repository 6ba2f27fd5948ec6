package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/analytics"
	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/report"
)

// handlers wires the three boundary operations per domain (submitRecord,
// fetchAll, fetchSeries) plus the export and report triggers.
type handlers struct {
	store     ledger.Store
	exporter  *report.Exporter
	generator *report.Generator
}

type tradeForm struct {
	Date     string  `json:"date" binding:"required,ledgerdate"`
	Pair     string  `json:"pair" binding:"required"`
	Position string  `json:"position" binding:"required,oneof=Buy Sell"`
	Entry    float64 `json:"entry"`
	Exit     float64 `json:"exit"`
	RSI      int     `json:"rsi" binding:"min=0,max=100"`
	MA       float64 `json:"ma"`
	News     string  `json:"news"`
	Notes    string  `json:"notes"`
}

type budgetForm struct {
	Date     string  `json:"date" binding:"required,ledgerdate"`
	Type     string  `json:"type" binding:"required,oneof=Income Spending"`
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount" binding:"min=0"`
	Notes    string  `json:"notes"`
}

type investmentForm struct {
	Date     string  `json:"date" binding:"required,ledgerdate"`
	Asset    string  `json:"asset" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Value    float64 `json:"value" binding:"min=0"`
	Notes    string  `json:"notes"`
}

// submit appends one record to the domain's ledger. Rejected input is echoed
// back so the client can correct and resubmit it.
func (h *handlers) submit(c *gin.Context) {
	domain, err := ledger.ParseDomain(c.Param("domain"))
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	switch domain {
	case ledger.DomainTrades:
		var form tradeForm
		if err := c.ShouldBindJSON(&form); err != nil {
			fail(c, http.StatusBadRequest, CodeValidation, err.Error(), form)
			return
		}
		date, err := ledger.ParseDate(form.Date)
		if err != nil {
			fail(c, http.StatusBadRequest, CodeValidation, err.Error(), form)
			return
		}
		h.finishSubmit(c, form, h.store.AppendTrade(ledger.TradeRecord{
			Date:     date,
			Pair:     form.Pair,
			Position: ledger.Position(form.Position),
			Entry:    decimal.NewFromFloat(form.Entry),
			Exit:     decimal.NewFromFloat(form.Exit),
			RSI:      form.RSI,
			MA:       decimal.NewFromFloat(form.MA),
			News:     form.News,
			Notes:    form.Notes,
		}))

	case ledger.DomainBudget:
		var form budgetForm
		if err := c.ShouldBindJSON(&form); err != nil {
			fail(c, http.StatusBadRequest, CodeValidation, err.Error(), form)
			return
		}
		date, err := ledger.ParseDate(form.Date)
		if err != nil {
			fail(c, http.StatusBadRequest, CodeValidation, err.Error(), form)
			return
		}
		h.finishSubmit(c, form, h.store.AppendBudget(ledger.BudgetRecord{
			Date:     date,
			Type:     ledger.EntryType(form.Type),
			Category: form.Category,
			Amount:   decimal.NewFromFloat(form.Amount),
			Notes:    form.Notes,
		}))

	case ledger.DomainInvestments:
		var form investmentForm
		if err := c.ShouldBindJSON(&form); err != nil {
			fail(c, http.StatusBadRequest, CodeValidation, err.Error(), form)
			return
		}
		date, err := ledger.ParseDate(form.Date)
		if err != nil {
			fail(c, http.StatusBadRequest, CodeValidation, err.Error(), form)
			return
		}
		h.finishSubmit(c, form, h.store.AppendInvestment(ledger.InvestmentRecord{
			Date:     date,
			Asset:    form.Asset,
			Category: form.Category,
			Value:    decimal.NewFromFloat(form.Value),
			Notes:    form.Notes,
		}))
	}
}

// finishSubmit maps an append result onto the response envelope.
func (h *handlers) finishSubmit(c *gin.Context, form interface{}, err error) {
	var verr *ledger.ValidationError
	var cerr *ledger.CorruptError
	switch {
	case err == nil:
		ok(c, form)
	case errors.As(err, &verr):
		fail(c, http.StatusBadRequest, CodeValidation, verr.Error(), form)
	case errors.As(err, &cerr):
		warn(c, CodeCorrupt, cerr.Error(), form)
	default:
		fail(c, http.StatusInternalServerError, CodeInternal, err.Error(), form)
	}
}

// fetchAll returns a domain's full ledger. An absent ledger is an empty
// result, not an error; a corrupt one degrades to a warning for this domain
// only.
func (h *handlers) fetchAll(c *gin.Context) {
	domain, err := ledger.ParseDomain(c.Param("domain"))
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	switch domain {
	case ledger.DomainTrades:
		trades, err := h.store.Trades()
		if !h.readable(c, err) {
			return
		}
		ok(c, trades)

	case ledger.DomainBudget:
		entries, err := h.store.BudgetEntries()
		if !h.readable(c, err) {
			return
		}
		ok(c, entries)

	case ledger.DomainInvestments:
		investments, err := h.store.Investments()
		if !h.readable(c, err) {
			return
		}
		// ?withdrawn=BTC,ETH marks a session-scoped selection; nothing is
		// persisted.
		var selection []string
		if raw := c.Query("withdrawn"); raw != "" {
			selection = strings.Split(raw, ",")
		}
		ok(c, analytics.MarkWithdrawn(investments, selection))
	}
}

// fetchSeries returns one chart-ready aggregate for a domain.
func (h *handlers) fetchSeries(c *gin.Context) {
	domain, err := ledger.ParseDomain(c.Param("domain"))
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	kind := c.Param("kind")

	switch domain {
	case ledger.DomainTrades:
		trades, err := h.store.Trades()
		if !h.readable(c, err) {
			return
		}
		switch kind {
		case "profit_by_date":
			ok(c, analytics.ProfitByDate(trades))
		case "profit_by_pair":
			ok(c, analytics.ProfitByPair(trades))
		case "win_loss":
			wins, losses := analytics.WinLossCounts(trades)
			ok(c, gin.H{"wins": wins, "losses": losses, "win_rate": analytics.WinRate(trades)})
		case "extrema":
			best, worst, found := analytics.Extrema(trades)
			if !found {
				ok(c, gin.H{})
				return
			}
			ok(c, gin.H{"best": best, "worst": worst})
		default:
			h.unknownSeries(c, domain, kind)
		}

	case ledger.DomainBudget:
		entries, err := h.store.BudgetEntries()
		if !h.readable(c, err) {
			return
		}
		switch kind {
		case "cashflow":
			ok(c, analytics.Cashflow(entries))
		case "spending_by_category":
			ok(c, analytics.SpendingByCategory(entries))
		default:
			h.unknownSeries(c, domain, kind)
		}

	case ledger.DomainInvestments:
		investments, err := h.store.Investments()
		if !h.readable(c, err) {
			return
		}
		switch kind {
		case "latest_value":
			ok(c, analytics.LatestValuePerAsset(investments))
		case "value_over_time":
			ok(c, analytics.PortfolioValueOverTime(investments))
		default:
			h.unknownSeries(c, domain, kind)
		}
	}
}

// export rewrites the plain-text dump for one domain.
func (h *handlers) export(c *gin.Context) {
	domain, err := ledger.ParseDomain(c.Param("domain"))
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	path, err := h.exporter.Export(domain)
	var cerr *ledger.CorruptError
	switch {
	case err == nil:
		ok(c, gin.H{"path": path})
	case errors.As(err, &cerr):
		warn(c, CodeCorrupt, cerr.Error(), nil)
	default:
		fail(c, http.StatusInternalServerError, CodeInternal, err.Error(), nil)
	}
}

type reportForm struct {
	Month string `json:"month"` // "2006-01"; empty means previous month
}

// generateReport forces the monthly summary for a given (or the previous)
// month, overwriting any existing file for it.
func (h *handlers) generateReport(c *gin.Context) {
	// An empty body is fine (previous month); anything unparseable is not.
	var form reportForm
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&form); err != nil {
			fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
			return
		}
	}

	year, month, err := report.Period(form.Month)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	path, summary, err := h.generator.Generate(year, month)
	if err != nil {
		fail(c, http.StatusInternalServerError, CodeInternal, err.Error(), nil)
		return
	}
	ok(c, gin.H{"path": path, "month": summary.Month, "warnings": summary.Warnings})
}

// readable reports whether a ledger read succeeded, answering the request
// itself when it did not.
func (h *handlers) readable(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	var cerr *ledger.CorruptError
	if errors.As(err, &cerr) {
		warn(c, CodeCorrupt, cerr.Error(), nil)
		return false
	}
	fail(c, http.StatusInternalServerError, CodeInternal, err.Error(), nil)
	return false
}

func (h *handlers) unknownSeries(c *gin.Context, domain ledger.Domain, kind string) {
	fail(c, http.StatusBadRequest, CodeValidation,
		fmt.Sprintf("unknown series %q for domain %s", kind, domain), nil)
}
