package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/emart/inventory/internal/db"
	"github.com/emart/inventory/internal/model"
)

func createTestEntry(t *testing.T, database *sql.DB, name, status string) *model.Entry {
	t.Helper()
	entry, err := CreateEntry(context.Background(), database, &model.Entry{
		Ref:         "ref-" + name,
		Name:        name,
		Category:    "Fruits",
		Quantity:    "10 kg",
		Status:      status,
		SubmittedBy: "jane",
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	return entry
}

func TestCreateAndGetEntry(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	entry := createTestEntry(t, database, "Organic Bananas", model.EntryStatusPending)
	if entry.Status != model.EntryStatusPending {
		t.Errorf("expected status 'pending', got %q", entry.Status)
	}
	if entry.SubmittedAt.IsZero() {
		t.Error("expected submitted_at to be set")
	}

	got, err := GetEntry(ctx, database, entry.ID)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got == nil || got.Name != "Organic Bananas" {
		t.Errorf("unexpected entry: %+v", got)
	}
}

func TestGetEntryMissing(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := GetEntry(context.Background(), database, 999)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing entry, got %+v", got)
	}
}

func TestListPendingEntriesOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	createTestEntry(t, database, "First", model.EntryStatusPending)
	createTestEntry(t, database, "Second", model.EntryStatusPending)
	createTestEntry(t, database, "Done", model.EntryStatusApproved)

	pending, err := ListPendingEntries(ctx, database)
	if err != nil {
		t.Fatalf("ListPendingEntries: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending entries, got %d", len(pending))
	}
	if pending[0].Name != "First" || pending[1].Name != "Second" {
		t.Errorf("wrong order: %q, %q", pending[0].Name, pending[1].Name)
	}
}

func TestReviewEntryConditionalTransition(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	entry := createTestEntry(t, database, "Milk", model.EntryStatusPending)

	ok, err := ReviewEntry(ctx, database, entry.ID, model.EntryStatusApproved, "sam")
	if err != nil {
		t.Fatalf("ReviewEntry: %v", err)
	}
	if !ok {
		t.Fatal("expected first review to win the transition")
	}

	// Second transition attempt loses: the row is no longer pending.
	ok, err = ReviewEntry(ctx, database, entry.ID, model.EntryStatusRejected, "sam")
	if err != nil {
		t.Fatalf("second ReviewEntry: %v", err)
	}
	if ok {
		t.Error("expected second review to fail the conditional update")
	}

	got, _ := GetEntry(ctx, database, entry.ID)
	if got.Status != model.EntryStatusApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}
	if got.ReviewedBy != "sam" || got.ReviewedAt == nil {
		t.Errorf("reviewer not recorded: %+v", got)
	}
}

func TestCountEntries(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	createTestEntry(t, database, "A", model.EntryStatusPending)
	createTestEntry(t, database, "B", model.EntryStatusPending)
	createTestEntry(t, database, "C", model.EntryStatusRejected)

	count, err := CountEntries(ctx, database, model.EntryStatusPending)
	if err != nil {
		t.Fatalf("CountEntries: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 pending, got %d", count)
	}
}
