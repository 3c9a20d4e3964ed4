package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"PaisaPulse/internal/domain/models"
	"PaisaPulse/internal/domain/repository"
)

// ClickHouseLedger implements Ledger on ClickHouse. The table is append-only
// MergeTree ordered by (user_id, ts); nothing here ever updates or deletes.
type ClickHouseLedger struct {
	db    *sql.DB
	table string
}

// NewClickHouseLedger creates the ClickHouse ledger.
func NewClickHouseLedger(db *sql.DB, table string) repository.Ledger {
	return &ClickHouseLedger{db: db, table: table}
}

func (s *ClickHouseLedger) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseLedger) Append(ctx context.Context, t *models.Transaction) error {
	q := fmt.Sprintf("INSERT INTO %s (user_id, ts, amount, direction, category, source, raw) VALUES (?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		t.UserID,
		t.Timestamp,
		t.Amount,
		string(t.Direction),
		string(t.Category),
		string(t.Source),
		t.Raw,
	)
	return err
}

func (s *ClickHouseLedger) Transactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	q := fmt.Sprintf("SELECT user_id, ts, amount, direction, category, source, raw FROM %s WHERE user_id = ? ORDER BY ts ASC", s.table)
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (s *ClickHouseLedger) TransactionsSince(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error) {
	q := fmt.Sprintf("SELECT user_id, ts, amount, direction, category, source, raw FROM %s WHERE user_id = ? AND ts >= ? ORDER BY ts ASC", s.table)
	rows, err := s.db.QueryContext(ctx, q, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var direction, category, source string
		if err := rows.Scan(&t.UserID, &t.Timestamp, &t.Amount, &direction, &category, &source, &t.Raw); err != nil {
			return nil, err
		}
		t.Direction = models.Direction(direction)
		t.Category = models.Category(category)
		t.Source = models.Source(source)
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func (s *ClickHouseLedger) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseLedger) Close() error {
	return nil // Managed by pkg
}
