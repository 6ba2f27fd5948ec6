package ledger

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	_ "github.com/mattn/go-sqlite3"
)

// ddl mirrors the canonical field orders from schema.go. Money columns are
// TEXT so decimal values round-trip exactly; rowid preserves append order.
const ddl = `
CREATE TABLE IF NOT EXISTS trades (
	date        TEXT NOT NULL,
	pair        TEXT NOT NULL,
	position    TEXT NOT NULL,
	entry       TEXT NOT NULL,
	exit        TEXT NOT NULL,
	rsi         INTEGER NOT NULL,
	ma          TEXT NOT NULL,
	news        TEXT NOT NULL,
	profit_loss TEXT NOT NULL,
	notes       TEXT NOT NULL,
	id          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS budget (
	date     TEXT NOT NULL,
	type     TEXT NOT NULL,
	category TEXT NOT NULL,
	amount   TEXT NOT NULL,
	notes    TEXT NOT NULL,
	id       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS investments (
	date     TEXT NOT NULL,
	asset    TEXT NOT NULL,
	category TEXT NOT NULL,
	value    TEXT NOT NULL,
	notes    TEXT NOT NULL,
	id       TEXT NOT NULL
);
`

// SQLiteStore is the alternative Store backend. It keeps the same append-only
// semantics as the CSV store; selecting by rowid reproduces append order.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and runs the DDL.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) AppendTrade(t TradeRecord) error {
	t, err := t.Derive()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO trades
		(date, pair, position, entry, exit, rsi, ma, news, profit_loss, notes, id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Date.Format(DateFormat), t.Pair, string(t.Position),
		t.Entry.String(), t.Exit.String(), t.RSI, t.MA.String(),
		t.News, t.ProfitLoss.String(), t.Notes, t.ID,
	)
	return err
}

func (s *SQLiteStore) Trades() ([]TradeRecord, error) {
	rows, err := s.db.Query(`
		SELECT date, pair, position, entry, exit, rsi, ma, news, profit_loss, notes, id
		FROM trades ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		var date, entry, exit, ma, pl, pos string
		if err := rows.Scan(&date, &t.Pair, &pos, &entry, &exit, &t.RSI, &ma, &t.News, &pl, &t.Notes, &t.ID); err != nil {
			return nil, &CorruptError{Domain: DomainTrades, Path: "sqlite:trades", Err: err}
		}
		t.Position = Position(pos)
		if t.Date, err = ParseDate(date); err != nil {
			return nil, &CorruptError{Domain: DomainTrades, Path: "sqlite:trades", Err: err}
		}
		if t.Entry, t.Exit, t.MA, t.ProfitLoss, err = fourDecimals(entry, exit, ma, pl); err != nil {
			return nil, &CorruptError{Domain: DomainTrades, Path: "sqlite:trades", Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) AppendBudget(b BudgetRecord) error {
	b, err := b.Derive()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO budget (date, type, category, amount, notes, id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.Date.Format(DateFormat), string(b.Type), b.Category,
		b.Amount.String(), b.Notes, b.ID,
	)
	return err
}

func (s *SQLiteStore) BudgetEntries() ([]BudgetRecord, error) {
	rows, err := s.db.Query(`
		SELECT date, type, category, amount, notes, id
		FROM budget ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BudgetRecord
	for rows.Next() {
		var b BudgetRecord
		var date, typ, amount string
		if err := rows.Scan(&date, &typ, &b.Category, &amount, &b.Notes, &b.ID); err != nil {
			return nil, &CorruptError{Domain: DomainBudget, Path: "sqlite:budget", Err: err}
		}
		b.Type = EntryType(typ)
		if b.Date, err = ParseDate(date); err != nil {
			return nil, &CorruptError{Domain: DomainBudget, Path: "sqlite:budget", Err: err}
		}
		if b.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, &CorruptError{Domain: DomainBudget, Path: "sqlite:budget", Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) AppendInvestment(v InvestmentRecord) error {
	v, err := v.Derive()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO investments (date, asset, category, value, notes, id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.Date.Format(DateFormat), v.Asset, v.Category,
		v.Value.String(), v.Notes, v.ID,
	)
	return err
}

func (s *SQLiteStore) Investments() ([]InvestmentRecord, error) {
	rows, err := s.db.Query(`
		SELECT date, asset, category, value, notes, id
		FROM investments ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InvestmentRecord
	for rows.Next() {
		var v InvestmentRecord
		var date, value string
		if err := rows.Scan(&date, &v.Asset, &v.Category, &value, &v.Notes, &v.ID); err != nil {
			return nil, &CorruptError{Domain: DomainInvestments, Path: "sqlite:investments", Err: err}
		}
		if v.Date, err = ParseDate(date); err != nil {
			return nil, &CorruptError{Domain: DomainInvestments, Path: "sqlite:investments", Err: err}
		}
		if v.Value, err = decimal.NewFromString(value); err != nil {
			return nil, &CorruptError{Domain: DomainInvestments, Path: "sqlite:investments", Err: err}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func fourDecimals(a, b, c, d string) (da, db, dc, dd decimal.Decimal, err error) {
	if da, err = decimal.NewFromString(a); err != nil {
		return
	}
	if db, err = decimal.NewFromString(b); err != nil {
		return
	}
	if dc, err = decimal.NewFromString(c); err != nil {
		return
	}
	dd, err = decimal.NewFromString(d)
	return
}
