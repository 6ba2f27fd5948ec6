package ledger

// Store is append/read access to the three ledgers. Reading an absent ledger
// returns an empty slice and no error; malformed stored data comes back as a
// *CorruptError so callers can degrade that section to a warning.
//
// Stores are single-writer by design. Two processes appending concurrently
// can lose one writer's update (read-modify-write over the whole ledger);
// that is an accepted limitation of a personal, single-user tool.
type Store interface {
	AppendTrade(TradeRecord) error
	Trades() ([]TradeRecord, error)

	AppendBudget(BudgetRecord) error
	BudgetEntries() ([]BudgetRecord, error)

	AppendInvestment(InvestmentRecord) error
	Investments() ([]InvestmentRecord, error)

	Close() error
}
