// Package alerts turns stock conditions into actionable alerts: low or
// missing stock, items expiring soon, items already expired.
package alerts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/notify"
	"github.com/emart/inventory/internal/store"
)

// ErrNotFound is returned when no alert exists with the requested ID.
var ErrNotFound = errors.New("alert not found")

// ExpirySoonWindow is how far ahead the scanner looks for upcoming expiry.
const ExpirySoonWindow = 3 * 24 * time.Hour

// Scanner generates alerts from the current stock state.
type Scanner struct {
	db       *sql.DB
	notifier notify.Notifier
}

// NewScanner creates a stock alert scanner. The notifier may be nil.
func NewScanner(db *sql.DB, notifier notify.Notifier) *Scanner {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Scanner{db: db, notifier: notifier}
}

// Scan walks the stock table and creates an active alert for every
// condition that does not already have one. It returns the number of
// alerts created.
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	items, err := store.ListStock(ctx, s.db, "")
	if err != nil {
		return 0, err
	}

	now := time.Now()
	created := 0
	for i := range items {
		item := &items[i]

		if alert := stockLevelAlert(item); alert != nil {
			n, err := s.createIfAbsent(ctx, alert)
			if err != nil {
				return created, err
			}
			created += n
		}

		if alert := expiryAlert(item, now); alert != nil {
			n, err := s.createIfAbsent(ctx, alert)
			if err != nil {
				return created, err
			}
			created += n
		}
	}

	if created > 0 {
		slog.Info("alert scan complete", "created", created)
	}
	return created, nil
}

// Resolve marks an alert resolved.
func (s *Scanner) Resolve(ctx context.Context, id int64) (*model.Alert, error) {
	alert, err := store.GetAlert(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, ErrNotFound
	}

	if _, err := store.ResolveAlert(ctx, s.db, id); err != nil {
		return nil, err
	}

	resolved, err := store.GetAlert(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Event{
		Category: notify.CategorySuccess,
		Title:    "Alert Resolved",
		Message:  "Alert has been marked as resolved",
	})
	return resolved, nil
}

// SendEmail emits an email notification event for an alert. Delivery is a
// presentation concern; the scanner only signals the event.
func (s *Scanner) SendEmail(ctx context.Context, id int64) error {
	alert, err := store.GetAlert(ctx, s.db, id)
	if err != nil {
		return err
	}
	if alert == nil {
		return ErrNotFound
	}

	s.notifier.Notify(ctx, notify.Event{
		Category: notify.CategorySuccess,
		Title:    "Email Sent",
		Message:  fmt.Sprintf("Alert notification has been sent via email: %s", alert.Title),
	})
	return nil
}

func (s *Scanner) createIfAbsent(ctx context.Context, alert *model.Alert) (int, error) {
	exists, err := store.HasActiveAlert(ctx, s.db, alert.Type, *alert.StockItemID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}
	if _, err := store.CreateAlert(ctx, s.db, alert); err != nil {
		return 0, err
	}
	return 1, nil
}

func stockLevelAlert(item *model.StockItem) *model.Alert {
	switch item.Status() {
	case model.StockStatusOutOfStock:
		return &model.Alert{
			Type:        model.AlertTypeLowStock,
			Title:       "Out of Stock",
			Message:     fmt.Sprintf("%s is completely out of stock", item.Name),
			Priority:    model.AlertPriorityCritical,
			StockItemID: &item.ID,
		}
	case model.StockStatusLowStock:
		return &model.Alert{
			Type:        model.AlertTypeLowStock,
			Title:       "Low Stock Alert",
			Message:     fmt.Sprintf("%s has only %d %s remaining", item.Name, item.Quantity, unitOr(item.Unit, "units")),
			Priority:    model.AlertPriorityMedium,
			StockItemID: &item.ID,
		}
	}
	return nil
}

func expiryAlert(item *model.StockItem, now time.Time) *model.Alert {
	if item.ExpiryDate == nil || item.Quantity <= 0 {
		return nil
	}

	expiry := *item.ExpiryDate
	switch {
	case expiry.Before(now):
		return &model.Alert{
			Type:        model.AlertTypeExpiry,
			Title:       "Expired Items",
			Message:     fmt.Sprintf("%s (%d %s) have expired", item.Name, item.Quantity, unitOr(item.Unit, "units")),
			Priority:    model.AlertPriorityCritical,
			StockItemID: &item.ID,
		}
	case expiry.Before(now.Add(ExpirySoonWindow)):
		days := int(expiry.Sub(now).Hours()/24) + 1
		return &model.Alert{
			Type:        model.AlertTypeExpiry,
			Title:       "Items Expiring Soon",
			Message:     fmt.Sprintf("%s (%d %s) expires in %d day(s)", item.Name, item.Quantity, unitOr(item.Unit, "units"), days),
			Priority:    model.AlertPriorityHigh,
			StockItemID: &item.ID,
		}
	}
	return nil
}

func unitOr(unit, fallback string) string {
	if unit == "" {
		return fallback
	}
	return unit
}
