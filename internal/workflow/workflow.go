// Package workflow owns the entry lifecycle: pending -> approved or
// rejected, exactly once. Only this package writes entry statuses.
package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/notify"
	"github.com/emart/inventory/internal/rbac"
	"github.com/emart/inventory/internal/session"
	"github.com/emart/inventory/internal/store"
)

// Review decisions.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Engine manages submission and review of inventory entries.
type Engine struct {
	db                *sql.DB
	notifier          notify.Notifier
	lowStockThreshold int
}

// NewEngine creates a workflow engine. The notifier may be nil.
func NewEngine(db *sql.DB, notifier notify.Notifier, lowStockThreshold int) *Engine {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Engine{db: db, notifier: notifier, lowStockThreshold: lowStockThreshold}
}

// Submit creates a new entry from the draft. Makers produce a pending
// entry awaiting review; admins bypass review and the entry is approved
// and applied to stock immediately.
func (e *Engine) Submit(ctx context.Context, sess *session.Session, draft model.EntryDraft) (*model.Entry, error) {
	if sess == nil || !rbac.HasCapability(sess.Role, rbac.CapSubmitEntry) {
		e.notifier.Notify(ctx, notify.Event{
			Category: notify.CategoryPermissionDenied,
			Title:    "Error",
			Message:  "You are not allowed to submit inventory entries",
		})
		return nil, rbac.ErrPermissionDenied
	}

	var missing []string
	if strings.TrimSpace(draft.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(draft.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(draft.Quantity) == "" {
		missing = append(missing, "quantity")
	}
	if len(missing) > 0 {
		e.notifier.Notify(ctx, notify.Event{
			Category: notify.CategoryValidationError,
			Title:    "Error",
			Message:  "Please fill in all required fields",
		})
		return nil, &ValidationError{Fields: missing}
	}

	entry := &model.Entry{
		Ref:          uuid.NewString(),
		Name:         strings.TrimSpace(draft.Name),
		Category:     strings.TrimSpace(draft.Category),
		Quantity:     strings.TrimSpace(draft.Quantity),
		Location:     draft.Location,
		Supplier:     draft.Supplier,
		ExpiryDate:   draft.ExpiryDate,
		BatchNumber:  draft.BatchNumber,
		CostPrice:    draft.CostPrice,
		SellingPrice: draft.SellingPrice,
		Description:  draft.Description,
		Status:       model.EntryStatusPending,
		SubmittedBy:  sess.Username,
	}

	// Admin submissions skip review: created approved, reviewer is the
	// submitter, and stock is updated right away.
	if sess.Role == model.RoleAdmin {
		now := time.Now()
		entry.Status = model.EntryStatusApproved
		entry.ReviewedBy = sess.Username
		entry.ReviewedAt = &now
	}

	created, err := store.CreateEntry(ctx, e.db, entry)
	if err != nil {
		return nil, err
	}

	if created.Status == model.EntryStatusApproved {
		if err := e.applyToStock(ctx, created); err != nil {
			slog.Error("failed to apply approved entry to stock", "entry", created.ID, "error", err)
		}
		e.notifier.Notify(ctx, notify.Event{
			Category: notify.CategorySuccess,
			Title:    "Success",
			Message:  "Inventory entry added successfully",
		})
	} else {
		e.notifier.Notify(ctx, notify.Event{
			Category: notify.CategorySuccess,
			Title:    "Success",
			Message:  "Inventory entry submitted for approval",
		})
	}

	slog.Info("entry submitted", "entry", created.ID, "status", created.Status, "by", sess.Username)
	return created, nil
}

// Review applies an approve or reject decision to a pending entry. The
// status change is conditional on the entry still being pending, so only
// one terminal transition can ever succeed.
func (e *Engine) Review(ctx context.Context, sess *session.Session, entryID int64, decision string) (*model.Entry, error) {
	if sess == nil || !rbac.HasCapability(sess.Role, rbac.CapReviewEntry) {
		e.notifier.Notify(ctx, notify.Event{
			Category: notify.CategoryPermissionDenied,
			Title:    "Error",
			Message:  "You are not allowed to review inventory entries",
		})
		return nil, rbac.ErrPermissionDenied
	}

	var status string
	switch decision {
	case DecisionApprove:
		status = model.EntryStatusApproved
	case DecisionReject:
		status = model.EntryStatusRejected
	default:
		return nil, &ValidationError{Fields: []string{"decision"}}
	}

	entry, err := store.GetEntry(ctx, e.db, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}

	transitioned, err := store.ReviewEntry(ctx, e.db, entryID, status, sess.Username)
	if err != nil {
		return nil, err
	}
	if !transitioned {
		// Lost the race or the entry was already terminal.
		return nil, fmt.Errorf("entry %d is %s: %w", entryID, entry.Status, ErrInvalidStateTransition)
	}

	updated, err := store.GetEntry(ctx, e.db, entryID)
	if err != nil {
		return nil, err
	}

	if updated.Status == model.EntryStatusApproved {
		if err := e.applyToStock(ctx, updated); err != nil {
			slog.Error("failed to apply approved entry to stock", "entry", updated.ID, "error", err)
		}
	}

	e.notifier.Notify(ctx, notify.Event{
		Category: notify.CategorySuccess,
		Title:    "Success",
		Message:  fmt.Sprintf("Item %sd successfully", decision),
	})
	slog.Info("entry reviewed", "entry", updated.ID, "decision", decision, "by", sess.Username)
	return updated, nil
}

// Pending returns a lazy, restartable sequence of pending entries, oldest
// first. Each range over the sequence re-queries the store.
func (e *Engine) Pending(ctx context.Context) iter.Seq2[model.Entry, error] {
	return func(yield func(model.Entry, error) bool) {
		entries, err := store.ListPendingEntries(ctx, e.db)
		if err != nil {
			yield(model.Entry{}, err)
			return
		}
		for _, entry := range entries {
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// applyToStock materializes an approved entry into the stock ledger.
func (e *Engine) applyToStock(ctx context.Context, entry *model.Entry) error {
	quantity, unit := ParseQuantity(entry.Quantity)
	_, err := store.ApplyApprovedEntry(ctx, e.db, entry, quantity, unit, e.lowStockThreshold)
	return err
}

// ParseQuantity splits a free-text quantity like "100 kg" or "50 liters"
// into a numeric amount and a unit. Unparseable amounts yield 0 with the
// whole text kept as the unit.
func ParseQuantity(s string) (int, string) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return 0, ""
	}
	amount, err := strconv.Atoi(fields[0])
	if err != nil || amount < 0 {
		return 0, strings.Join(fields, " ")
	}
	return amount, strings.Join(fields[1:], " ")
}
