package registration

import (
	"context"
	"database/sql"
	"fmt"

	"campusevents/internal/adapters/storage"
	domain "campusevents/internal/domain/registration"
)

const registrationColumns = "id, student_id, event_id, status"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new registration store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save inserts or updates a registration.
// PRE: r is a valid Registration (Validate() returns nil)
// POST: registration is persisted
func (s *SQLiteStore) Save(ctx context.Context, r domain.Registration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO registration (id, student_id, event_id, status)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET status=excluded.status`,
		r.ID, r.StudentID, r.EventID, r.Status,
	)
	return err
}

// GetByID retrieves a registration by ID.
// PRE: id is non-empty
// POST: returns the registration or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Registration, error) {
	var r domain.Registration
	err := s.db.QueryRowContext(ctx,
		"SELECT "+registrationColumns+" FROM registration WHERE id = ?", id,
	).Scan(&r.ID, &r.StudentID, &r.EventID, &r.Status)
	if err == sql.ErrNoRows {
		return domain.Registration{}, fmt.Errorf("registration not found: %w", err)
	}
	return r, err
}

// List returns all registrations.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Registration, error) {
	return s.list(ctx, "SELECT "+registrationColumns+" FROM registration")
}

// ListByStudentID returns all registrations for one student.
// PRE: studentID is non-empty
func (s *SQLiteStore) ListByStudentID(ctx context.Context, studentID string) ([]domain.Registration, error) {
	return s.list(ctx,
		"SELECT "+registrationColumns+" FROM registration WHERE student_id = ?", studentID)
}

// ExistsForStudentEvent reports whether a registration exists for the
// (student, event) pair, regardless of status.
// PRE: studentID and eventID are non-empty
// POST: returns true if any registration references both
func (s *SQLiteStore) ExistsForStudentEvent(ctx context.Context, studentID, eventID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM registration WHERE student_id = ? AND event_id = ?",
		studentID, eventID,
	).Scan(&count)
	return count > 0, err
}

// Delete removes a registration from the database.
// PRE: id is non-empty
// POST: registration with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM registration WHERE id = ?", id)
	return err
}

// DeleteByStudentID removes every registration referencing a student.
// Used for cascade delete when a student is removed.
func (s *SQLiteStore) DeleteByStudentID(ctx context.Context, studentID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM registration WHERE student_id = ?", studentID)
	return err
}

// DeleteByEventID removes every registration referencing an event.
// Used for cascade delete when an event is removed.
func (s *SQLiteStore) DeleteByEventID(ctx context.Context, eventID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM registration WHERE event_id = ?", eventID)
	return err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Registration
	for rows.Next() {
		var r domain.Registration
		if err := rows.Scan(&r.ID, &r.StudentID, &r.EventID, &r.Status); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
