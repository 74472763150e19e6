package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/initstring/pwnreport/internal/model"
)

// HistoryDB provides SQLite-based storage for completed check runs.
// Engagements often span weeks; keeping past runs lets operators see which
// addresses or breaches are new since the last check without re-querying
// the API.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	// ID is the run's database identifier.
	ID int64 `json:"id"`

	// CheckedAt is when the run started.
	CheckedAt time.Time `json:"checked_at"`

	// InputFile is the input file the run processed.
	InputFile string `json:"input_file"`

	// EmailsChecked is the number of addresses queried.
	EmailsChecked int `json:"emails_checked"`

	// AccountsPwned is the number of addresses with breach data.
	AccountsPwned int `json:"accounts_pwned"`

	// BreachCount is the number of distinct breaches found.
	BreachCount int `json:"breach_count"`
}

// Open opens or creates a HistoryDB in the given directory.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "pwnreport.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw / mode=rwc in the DSN to control
	// whether a missing file is created.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer; a single connection avoids lock churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close() //nolint:errcheck // Best effort cleanup
			return nil, fmt.Errorf("failed to enable WAL: %w", err)
		}
	}

	if err := hdb.migrate(context.Background()); err != nil {
		_ = db.Close() //nolint:errcheck // Best effort cleanup
		return nil, err
	}

	return hdb, nil
}

// migrate creates the schema if it does not exist yet.
func (h *HistoryDB) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	checked_at TEXT NOT NULL,
	input_file TEXT NOT NULL,
	emails_checked INTEGER NOT NULL,
	accounts_pwned INTEGER NOT NULL,
	breach_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS breached_accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	breach_name TEXT NOT NULL,
	address TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_breached_accounts_run ON breached_accounts(run_id);
`
	if _, err := h.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveRun stores a completed run and its breach rows.
// Returns the new run's ID.
func (h *HistoryDB) SaveRun(ctx context.Context, report *model.CheckReport) (int64, error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (checked_at, input_file, emails_checked, accounts_pwned, breach_count)
		 VALUES (?, ?, ?, ?, ?)`,
		report.DateChecked.UTC().Format(time.RFC3339),
		report.InputFile,
		len(report.Emails),
		report.PwnedAccountCount(),
		report.BreachCount(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, name := range report.Breaches.Names() {
		for _, address := range report.Breaches.Addresses(name) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO breached_accounts (run_id, breach_name, address) VALUES (?, ?, ?)`,
				runID, name, address,
			); err != nil {
				return 0, fmt.Errorf("failed to insert breach row: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// ListRuns returns all stored runs, most recent first.
func (h *HistoryDB) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, checked_at, input_file, emails_checked, accounts_pwned, breach_count
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var checkedAt string
		if err := rows.Scan(&r.ID, &checkedAt, &r.InputFile, &r.EmailsChecked, &r.AccountsPwned, &r.BreachCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CheckedAt, err = time.Parse(time.RFC3339, checkedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// GetRunBreaches returns the breach index stored for a run.
// Rows come back in insertion order, so the rebuilt index preserves the
// original first-seen breach ordering.
func (h *HistoryDB) GetRunBreaches(ctx context.Context, runID int64) (*model.BreachIndex, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT breach_name, address FROM breached_accounts WHERE run_id = ? ORDER BY id`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query breach rows: %w", err)
	}
	defer rows.Close()

	index := model.NewBreachIndex()
	for rows.Next() {
		var name, address string
		if err := rows.Scan(&name, &address); err != nil {
			return nil, fmt.Errorf("failed to scan breach row: %w", err)
		}
		index.Add(name, address)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate breach rows: %w", err)
	}

	return index, nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}
