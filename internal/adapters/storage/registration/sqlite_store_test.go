package registration_test

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"campusevents/internal/adapters/storage"
	regStore "campusevents/internal/adapters/storage/registration"
	domain "campusevents/internal/domain/registration"
)

func newTestStore(t *testing.T) *regStore.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	// Parent rows so foreign keys hold.
	mustExec(t, db, "INSERT INTO student (id, name, email, section) VALUES ('s1', 'A', 'a@x.com', 'EV-1')")
	mustExec(t, db, "INSERT INTO student (id, name, email, section) VALUES ('s2', 'B', 'b@x.com', 'EV-2')")
	mustExec(t, db, "INSERT INTO event (id, title, date, created_at) VALUES ('e1', 'T1', '2026-01-01T00:00:00Z', '2025-01-01T00:00:00Z')")
	mustExec(t, db, "INSERT INTO event (id, title, date, created_at) VALUES ('e2', 'T2', '2026-02-01T00:00:00Z', '2025-01-01T00:00:00Z')")
	return regStore.NewSQLiteStore(db)
}

func mustExec(t *testing.T, db *sql.DB, query string) {
	t.Helper()
	if _, err := db.Exec(query); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

// TestSaveAndGetByID tests the registration round trip and status updates.
func TestSaveAndGetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := domain.Registration{ID: "r1", StudentID: "s1", EventID: "e1", Status: domain.StatusPending}
	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != r {
		t.Errorf("GetByID() = %+v, want %+v", got, r)
	}

	// Saving again with a new status updates in place.
	r.Approve()
	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save() after approve error = %v", err)
	}
	got, err = store.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != domain.StatusApproved {
		t.Errorf("status after re-save = %q, want approved", got.Status)
	}
}

// TestGetByIDNotFound tests the missing-id outcome.
func TestGetByIDNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetByID(context.Background(), "nope"); err == nil {
		t.Error("GetByID() on missing id returned nil error")
	}
}

// TestExistsForStudentEvent tests the duplicate-pair check across statuses.
func TestExistsForStudentEvent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	exists, err := store.ExistsForStudentEvent(ctx, "s1", "e1")
	if err != nil {
		t.Fatalf("ExistsForStudentEvent() error = %v", err)
	}
	if exists {
		t.Error("ExistsForStudentEvent() = true before any registration")
	}

	reg := domain.Registration{ID: "r1", StudentID: "s1", EventID: "e1", Status: domain.StatusRejected}
	if err := store.Save(ctx, reg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A rejected registration still counts for the pair.
	exists, err = store.ExistsForStudentEvent(ctx, "s1", "e1")
	if err != nil {
		t.Fatalf("ExistsForStudentEvent() error = %v", err)
	}
	if !exists {
		t.Error("ExistsForStudentEvent() = false for rejected registration, want true")
	}

	// A different pair is unaffected.
	exists, err = store.ExistsForStudentEvent(ctx, "s1", "e2")
	if err != nil {
		t.Fatalf("ExistsForStudentEvent() error = %v", err)
	}
	if exists {
		t.Error("ExistsForStudentEvent() = true for unregistered pair")
	}
}

// TestCascadeDeletes tests DeleteByStudentID and DeleteByEventID completeness.
func TestCascadeDeletes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	regs := []domain.Registration{
		{ID: "r1", StudentID: "s1", EventID: "e1", Status: domain.StatusPending},
		{ID: "r2", StudentID: "s1", EventID: "e2", Status: domain.StatusApproved},
		{ID: "r3", StudentID: "s2", EventID: "e1", Status: domain.StatusRejected},
	}
	for _, r := range regs {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s) error = %v", r.ID, err)
		}
	}

	if err := store.DeleteByStudentID(ctx, "s1"); err != nil {
		t.Fatalf("DeleteByStudentID() error = %v", err)
	}
	remaining, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "r3" {
		t.Errorf("after student cascade, remaining = %+v, want only r3", remaining)
	}

	if err := store.DeleteByEventID(ctx, "e1"); err != nil {
		t.Fatalf("DeleteByEventID() error = %v", err)
	}
	remaining, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("after event cascade, remaining = %+v, want none", remaining)
	}
}

// TestListByStudentID tests per-student listing.
func TestListByStudentID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, r := range []domain.Registration{
		{ID: "r1", StudentID: "s1", EventID: "e1", Status: domain.StatusPending},
		{ID: "r2", StudentID: "s2", EventID: "e1", Status: domain.StatusPending},
	} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s) error = %v", r.ID, err)
		}
	}

	got, err := store.ListByStudentID(ctx, "s1")
	if err != nil {
		t.Fatalf("ListByStudentID() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("ListByStudentID(s1) = %+v, want only r1", got)
	}
}
