package usecase

import (
	"context"
	"fmt"
	"strings"

	"PaisaPulse/internal/domain/models"
	drepo "PaisaPulse/internal/domain/repository"
	applogger "PaisaPulse/pkg/logger"
)

// AlertLifecycle resolves pending fraud alerts from user replies. A reply is
// matched against the user's most recent PENDING alert; resolved alerts are
// final and a later reply cannot reopen them.
type AlertLifecycle struct {
	alerts   drepo.AlertStore
	notifier drepo.Notifier
	metrics  drepo.Metrics
	logger   *applogger.Logger
}

func NewAlertLifecycle(alerts drepo.AlertStore, notifier drepo.Notifier, metrics drepo.Metrics, logger *applogger.Logger) *AlertLifecycle {
	return &AlertLifecycle{alerts: alerts, notifier: notifier, metrics: metrics, logger: logger}
}

// ReplyOutcome reports how a reply was applied.
type ReplyOutcome struct {
	AlertID string             `json:"alert_id,omitempty"`
	Status  models.AlertStatus `json:"status,omitempty"`
	Applied bool               `json:"applied"`
	Note    string             `json:"note,omitempty"`
}

var (
	yesWords = []string{"yes", "y", "haan", "ha", "confirm", "ok"}
	noWords  = []string{"no", "n", "nahi", "deny", "not me"}
)

// HandleReply applies a free-text reply to the user's latest pending alert.
// Unrecognized replies leave the alert PENDING and re-prompt the user.
func (l *AlertLifecycle) HandleReply(ctx context.Context, userID, reply string) (*ReplyOutcome, error) {
	alert, err := l.alerts.LatestPending(ctx, userID)
	if err != nil {
		l.metrics.RecordError("alert_read")
		return nil, fmt.Errorf("alert lookup: %w", err)
	}
	if alert == nil {
		return &ReplyOutcome{Applied: false, Note: "no pending alert"}, nil
	}

	status, recognized := interpretReply(reply)
	if !recognized {
		l.ack(ctx, userID, "Sorry, I did not understand. Reply YES if the payment was you, NO if not.")
		return &ReplyOutcome{AlertID: alert.ID, Status: models.AlertPending, Applied: false, Note: "reply not recognized"}, nil
	}

	if err := l.alerts.UpdateStatus(ctx, alert.ID, status); err != nil {
		l.metrics.RecordError("alert_update")
		return nil, fmt.Errorf("alert update: %w", err)
	}

	if status == models.AlertConfirmed {
		l.ack(ctx, userID, "Thanks, the payment is confirmed as yours.")
	} else {
		l.ack(ctx, userID, "Got it. The payment is marked as not yours and kept blocked.")
	}
	return &ReplyOutcome{AlertID: alert.ID, Status: status, Applied: true}, nil
}

// List returns the user's alerts, newest first.
func (l *AlertLifecycle) List(ctx context.Context, userID string) ([]models.FraudAlert, error) {
	alerts, err := l.alerts.ListByUser(ctx, userID)
	if err != nil {
		l.metrics.RecordError("alert_read")
		return nil, fmt.Errorf("alert list: %w", err)
	}
	return alerts, nil
}

func interpretReply(reply string) (models.AlertStatus, bool) {
	norm := strings.ToLower(strings.TrimSpace(reply))
	for _, w := range yesWords {
		if norm == w {
			return models.AlertConfirmed, true
		}
	}
	for _, w := range noWords {
		if norm == w {
			return models.AlertRejected, true
		}
	}
	return models.AlertPending, false
}

// ack is best-effort; a send failure never fails the reply handling.
func (l *AlertLifecycle) ack(ctx context.Context, userID, text string) {
	if err := l.notifier.Send(ctx, userID, text); err != nil {
		l.metrics.RecordError("notify_send")
		if l.logger != nil {
			l.logger.Warn("alert ack failed", applogger.String("user_id", userID), applogger.Error(err))
		}
	}
}
