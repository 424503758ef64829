package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/finrep-dev/finrep/internal/model"
)

const dateFormat = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id           TEXT PRIMARY KEY,
	code         TEXT NOT NULL,
	name         TEXT NOT NULL,
	type         TEXT NOT NULL,
	sub_type     TEXT NOT NULL DEFAULT '',
	equity_class TEXT NOT NULL DEFAULT '',
	active       INTEGER NOT NULL DEFAULT 1,
	balance      TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS transactions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id TEXT NOT NULL REFERENCES accounts(id),
	date       TEXT NOT NULL,
	amount     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cash_flows (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	date      TEXT NOT NULL,
	amount    TEXT NOT NULL,
	direction TEXT NOT NULL,
	source    TEXT NOT NULL DEFAULT '',
	purpose   TEXT NOT NULL DEFAULT '',
	status    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS subsidiaries (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	code             TEXT NOT NULL,
	ownership        TEXT NOT NULL,
	acquisition_date TEXT NOT NULL,
	method           TEXT NOT NULL,
	created_at       TEXT NOT NULL
);
`

// SQLiteLedger is an Accessor backed by a SQLite database file. It also
// persists registered subsidiaries so they survive across CLI invocations.
type SQLiteLedger struct {
	Rounding

	db       *sql.DB
	currency string
}

// Open opens (or creates) a SQLite ledger at path and ensures the schema
// exists.
func Open(path, currency string, places int32) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing ledger schema: %w", err)
	}
	return &SQLiteLedger{
		Rounding: Rounding{Places: places},
		db:       db,
		currency: currency,
	}, nil
}

// Close releases the underlying database handle.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

// Currency returns the reporting currency.
func (l *SQLiteLedger) Currency() string {
	return l.currency
}

// Accounts loads all accounts with their transactions attached, ordered by
// account code.
func (l *SQLiteLedger) Accounts(ctx context.Context) ([]model.Account, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, code, name, type, sub_type, equity_class, active, balance
		FROM accounts ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	index := make(map[string]int)
	for rows.Next() {
		var a model.Account
		var active int
		var balance string
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.SubType, &a.EquityClass, &active, &balance); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Active = active != 0
		if a.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("parsing balance for account %s: %w", a.ID, err)
		}
		index[a.ID] = len(accounts)
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}

	txRows, err := l.db.QueryContext(ctx,
		`SELECT account_id, date, amount FROM transactions ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer txRows.Close()

	for txRows.Next() {
		var tx model.Transaction
		var date, amount string
		if err := txRows.Scan(&tx.AccountID, &date, &amount); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		if tx.Date, err = time.Parse(dateFormat, date); err != nil {
			return nil, fmt.Errorf("parsing transaction date %q: %w", date, err)
		}
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parsing transaction amount %q: %w", amount, err)
		}
		i, ok := index[tx.AccountID]
		if !ok {
			// Orphaned transaction rows are skipped rather than failing
			// the whole read.
			continue
		}
		accounts[i].Transactions = append(accounts[i].Transactions, tx)
	}
	if err := txRows.Err(); err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}

	return accounts, nil
}

// CashFlows loads all cash-flow records ordered by date.
func (l *SQLiteLedger) CashFlows(ctx context.Context) ([]model.CashFlowRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT date, amount, direction, source, purpose, status
		FROM cash_flows ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("querying cash flows: %w", err)
	}
	defer rows.Close()

	var records []model.CashFlowRecord
	for rows.Next() {
		var r model.CashFlowRecord
		var date, amount string
		if err := rows.Scan(&date, &amount, &r.Direction, &r.Source, &r.Purpose, &r.Status); err != nil {
			return nil, fmt.Errorf("scanning cash flow: %w", err)
		}
		if r.Date, err = time.Parse(dateFormat, date); err != nil {
			return nil, fmt.Errorf("parsing cash-flow date %q: %w", date, err)
		}
		if r.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parsing cash-flow amount %q: %w", amount, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading cash flows: %w", err)
	}
	return records, nil
}

// InsertAccount writes an account row. The account's transactions, if any,
// are written too.
func (l *SQLiteLedger) InsertAccount(ctx context.Context, a model.Account) error {
	active := 0
	if a.Active {
		active = 1
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO accounts (id, code, name, type, sub_type, equity_class, active, balance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Code, a.Name, string(a.Type), string(a.SubType), string(a.EquityClass), active, a.Balance.String())
	if err != nil {
		return fmt.Errorf("inserting account %s: %w", a.ID, err)
	}
	for _, tx := range a.Transactions {
		if err := l.InsertTransaction(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

// InsertTransaction writes a transaction row.
func (l *SQLiteLedger) InsertTransaction(ctx context.Context, tx model.Transaction) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO transactions (account_id, date, amount) VALUES (?, ?, ?)`,
		tx.AccountID, tx.Date.Format(dateFormat), tx.Amount.String())
	if err != nil {
		return fmt.Errorf("inserting transaction for account %s: %w", tx.AccountID, err)
	}
	return nil
}

// InsertCashFlow writes a cash-flow row.
func (l *SQLiteLedger) InsertCashFlow(ctx context.Context, r model.CashFlowRecord) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO cash_flows (date, amount, direction, source, purpose, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.Date.Format(dateFormat), r.Amount.String(), string(r.Direction), r.Source, r.Purpose, string(r.Status))
	if err != nil {
		return fmt.Errorf("inserting cash flow: %w", err)
	}
	return nil
}

// SaveSubsidiary persists a registered subsidiary. Used as an event
// subscriber so registrations survive process exit.
func (l *SQLiteLedger) SaveSubsidiary(ctx context.Context, s model.Subsidiary) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO subsidiaries (id, name, code, ownership, acquisition_date, method, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Code, s.Ownership.String(),
		s.AcquisitionDate.Format(dateFormat), string(s.Method), s.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving subsidiary %s: %w", s.ID, err)
	}
	return nil
}

// Subsidiaries loads all persisted subsidiaries.
func (l *SQLiteLedger) Subsidiaries(ctx context.Context) ([]model.Subsidiary, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, name, code, ownership, acquisition_date, method, created_at
		FROM subsidiaries ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying subsidiaries: %w", err)
	}
	defer rows.Close()

	var subs []model.Subsidiary
	for rows.Next() {
		var s model.Subsidiary
		var ownership, acquired, created string
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &ownership, &acquired, &s.Method, &created); err != nil {
			return nil, fmt.Errorf("scanning subsidiary: %w", err)
		}
		if s.Ownership, err = decimal.NewFromString(ownership); err != nil {
			return nil, fmt.Errorf("parsing ownership for subsidiary %s: %w", s.ID, err)
		}
		if s.AcquisitionDate, err = time.Parse(dateFormat, acquired); err != nil {
			return nil, fmt.Errorf("parsing acquisition date for subsidiary %s: %w", s.ID, err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("parsing created_at for subsidiary %s: %w", s.ID, err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading subsidiaries: %w", err)
	}
	return subs, nil
}
