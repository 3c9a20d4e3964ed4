package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"PaisaPulse/internal/domain/models"
	"PaisaPulse/internal/domain/repository"
)

// ClickHouseAlertStore implements AlertStore on a ReplacingMergeTree keyed by
// alert id and versioned by updated_at: a status transition is a fresh insert
// with a newer updated_at, and reads use FINAL to collapse to the latest row.
type ClickHouseAlertStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseAlertStore creates the ClickHouse alert store.
func NewClickHouseAlertStore(db *sql.DB, table string) repository.AlertStore {
	return &ClickHouseAlertStore{db: db, table: table}
}

func (s *ClickHouseAlertStore) Create(ctx context.Context, a *models.FraudAlert) error {
	return s.insert(ctx, a)
}

// UpdateStatus resolves a pending alert. Resolved alerts are final: a second
// transition is rejected rather than silently rewritten.
func (s *ClickHouseAlertStore) UpdateStatus(ctx context.Context, id string, status models.AlertStatus) error {
	a, err := s.byID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("alert %s not found", id)
	}
	if a.Status != models.AlertPending {
		return fmt.Errorf("alert %s already resolved (%s)", id, a.Status)
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return s.insert(ctx, a)
}

func (s *ClickHouseAlertStore) LatestPending(ctx context.Context, userID string) (*models.FraudAlert, error) {
	q := fmt.Sprintf("SELECT id, user_id, amount, decision, status, reasons, created_at, updated_at FROM %s FINAL WHERE user_id = ? AND status = ? ORDER BY created_at DESC LIMIT 1", s.table)
	rows, err := s.db.QueryContext(ctx, q, userID, string(models.AlertPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts, err := scanAlerts(rows)
	if err != nil || len(alerts) == 0 {
		return nil, err
	}
	return &alerts[0], nil
}

func (s *ClickHouseAlertStore) ListByUser(ctx context.Context, userID string) ([]models.FraudAlert, error) {
	q := fmt.Sprintf("SELECT id, user_id, amount, decision, status, reasons, created_at, updated_at FROM %s FINAL WHERE user_id = ? ORDER BY created_at DESC", s.table)
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

func (s *ClickHouseAlertStore) byID(ctx context.Context, id string) (*models.FraudAlert, error) {
	q := fmt.Sprintf("SELECT id, user_id, amount, decision, status, reasons, created_at, updated_at FROM %s FINAL WHERE id = ? LIMIT 1", s.table)
	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts, err := scanAlerts(rows)
	if err != nil || len(alerts) == 0 {
		return nil, err
	}
	return &alerts[0], nil
}

func (s *ClickHouseAlertStore) insert(ctx context.Context, a *models.FraudAlert) error {
	q := fmt.Sprintf("INSERT INTO %s (id, user_id, amount, decision, status, reasons, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		a.ID,
		a.UserID,
		a.Amount,
		string(a.Decision),
		string(a.Status),
		strings.Join(a.Reasons, ","),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func scanAlerts(rows *sql.Rows) ([]models.FraudAlert, error) {
	var alerts []models.FraudAlert
	for rows.Next() {
		var a models.FraudAlert
		var decision, status, reasons string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Amount, &decision, &status, &reasons, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Decision = models.FraudDecision(decision)
		a.Status = models.AlertStatus(status)
		if reasons != "" {
			a.Reasons = strings.Split(reasons, ",")
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
