package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rustyeddy/fintrack/logger"
)

// CSVStore keeps one flat CSV file per domain under a data directory:
// trading_journal.csv, budget.csv and investments.csv. Each append reads the
// whole ledger, appends one row and rewrites the file through a temp file +
// rename, so a failed write never leaves a truncated ledger behind.
// Ledgers are personal-scale, so the full rewrite is cheap.
type CSVStore struct {
	dir string
}

// NewCSV returns a store rooted at dir, creating the directory if needed.
func NewCSV(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &CSVStore{dir: dir}, nil
}

func (s *CSVStore) AppendTrade(t TradeRecord) error {
	t, err := t.Derive()
	if err != nil {
		return err
	}
	return appendRecord(s.dir, tradeSchema, t)
}

func (s *CSVStore) Trades() ([]TradeRecord, error) {
	return readRecords(s.dir, tradeSchema)
}

func (s *CSVStore) AppendBudget(b BudgetRecord) error {
	b, err := b.Derive()
	if err != nil {
		return err
	}
	return appendRecord(s.dir, budgetSchema, b)
}

func (s *CSVStore) BudgetEntries() ([]BudgetRecord, error) {
	return readRecords(s.dir, budgetSchema)
}

func (s *CSVStore) AppendInvestment(v InvestmentRecord) error {
	v, err := v.Derive()
	if err != nil {
		return err
	}
	return appendRecord(s.dir, investmentSchema, v)
}

func (s *CSVStore) Investments() ([]InvestmentRecord, error) {
	return readRecords(s.dir, investmentSchema)
}

func (s *CSVStore) Close() error { return nil }

// appendRecord implements the read-modify-write append once for all three
// record kinds. Prior rows are carried over untouched and in order.
func appendRecord[T any](dir string, sc schema[T], rec T) error {
	existing, err := readRecords(dir, sc)
	if err != nil {
		return err
	}
	existing = append(existing, rec)

	path := filepath.Join(dir, sc.file)
	tmp, err := os.CreateTemp(dir, sc.file+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(sc.fields); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range existing {
		if err := w.Write(sc.encode(r)); err != nil {
			tmp.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}

	logger.Debug("ledger append",
		logger.Pair("domain", string(sc.domain)),
		logger.Pair("records", len(existing)))
	return nil
}

// readRecords returns the ordered contents of one ledger. An absent file is
// an empty ledger, not an error.
func readRecords[T any](dir string, sc schema[T]) ([]T, error) {
	path := filepath.Join(dir, sc.file)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s ledger: %w", sc.domain, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // older ledgers may predate appended columns

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &CorruptError{Domain: sc.domain, Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := make([]T, 0, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		rec, err := sc.decode(row)
		if err != nil {
			return nil, &CorruptError{
				Domain: sc.domain,
				Path:   path,
				Err:    fmt.Errorf("row %d: %w", i+2, err),
			}
		}
		out = append(out, rec)
	}
	return out, nil
}
