package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/efreitasn/stocksim/internal/domain"
)

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS ledger_entries (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price INTEGER NOT NULL,
	side TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ledger_user ON ledger_entries(user_id, id);
`

// LedgerStore is the durable append-only log of settled trades, backed by
// SQLite. Entries are never updated or deleted. ULID primary keys are
// time-sortable, so ordering by id gives settlement order.
type LedgerStore struct {
	db *sql.DB
}

// NewLedgerStore opens (creating if needed) the SQLite database at path
// and ensures the schema exists. Use ":memory:" for an ephemeral store.
func NewLedgerStore(path string) (*LedgerStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}

	// SQLite allows a single writer; one pooled connection also keeps
	// ":memory:" databases from silently forking per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(ledgerSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger schema: %w", err)
	}

	return &LedgerStore{db: db}, nil
}

// Append writes one ledger entry. A busy/locked database surfaces as
// domain.ErrStorageConflict (retryable by the engine); any other failure
// as domain.ErrStorageUnavailable.
func (s *LedgerStore) Append(ctx context.Context, e *domain.LedgerEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger_entries
		(id, user_id, symbol, quantity, price, side, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Symbol, e.Quantity, e.Price, string(e.Side), e.CreatedAt.UTC(),
	)
	if err != nil {
		if isBusy(err) {
			return fmt.Errorf("%w: %v", domain.ErrStorageConflict, err)
		}
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// ListByUser returns up to limit of the user's ledger entries, newest
// first.
func (s *LedgerStore) ListByUser(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, symbol, quantity, price, side, created_at
		FROM ledger_entries
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var e domain.LedgerEntry
		var side string
		var createdAt time.Time
		if err := rows.Scan(&e.ID, &e.UserID, &e.Symbol, &e.Quantity, &e.Price, &side, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
		e.Side = domain.Side(side)
		e.CreatedAt = createdAt.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return entries, nil
}

// CountByUser returns the number of ledger entries for the user.
func (s *LedgerStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ledger_entries WHERE user_id = ?`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *LedgerStore) Close() error {
	return s.db.Close()
}

// isBusy reports whether err is SQLite's transient busy/locked condition.
func isBusy(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.Code == sqlite3.ErrBusy || serr.Code == sqlite3.ErrLocked
	}
	return false
}
