package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"campusevents/internal/adapters/storage"
	domain "campusevents/internal/domain/event"
)

const eventColumns = "id, title, description, date, location, capacity, poster, category, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// parseTime parses an RFC3339 timestamp, returning the zero value on failure.
// The Nano layout also accepts timestamps written without a fraction.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Save inserts or updates an event. CreatedAt is written on insert only.
// PRE: e is a valid Event (Validate() returns nil)
// POST: event is persisted
func (s *SQLiteStore) Save(ctx context.Context, e domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event (id, title, description, date, location, capacity, poster, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, description=excluded.description, date=excluded.date,
		   location=excluded.location, capacity=excluded.capacity,
		   poster=excluded.poster, category=excluded.category`,
		e.ID, e.Title, e.Description, e.Date.UTC().Format(time.RFC3339Nano),
		e.Location, e.Capacity, e.Poster, e.Category,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// GetByID retrieves an event by ID.
// PRE: id is non-empty
// POST: returns the event or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	var e domain.Event
	var dateStr, createdStr string
	err := s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM event WHERE id = ?", id,
	).Scan(&e.ID, &e.Title, &e.Description, &dateStr, &e.Location,
		&e.Capacity, &e.Poster, &e.Category, &createdStr)
	if err == sql.ErrNoRows {
		return domain.Event{}, fmt.Errorf("event not found: %w", err)
	}
	if err != nil {
		return domain.Event{}, err
	}
	e.Date = parseTime(dateStr)
	e.CreatedAt = parseTime(createdStr)
	return e, nil
}

// ListByDate returns all events ordered by ascending date.
// POST: returns events sorted by date ascending
func (s *SQLiteStore) ListByDate(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM event ORDER BY date ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var dateStr, createdStr string
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &dateStr, &e.Location,
			&e.Capacity, &e.Poster, &e.Category, &createdStr); err != nil {
			return nil, err
		}
		e.Date = parseTime(dateStr)
		e.CreatedAt = parseTime(createdStr)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Delete removes an event from the database.
// PRE: id is non-empty; dependent registrations have already been removed
// POST: event with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM event WHERE id = ?", id)
	return err
}

// Count returns the total number of events.
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM event").Scan(&count)
	return count, err
}
