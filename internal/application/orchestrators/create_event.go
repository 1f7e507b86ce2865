package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"campusevents/internal/domain/event"
)

// EventStore defines the interface for event persistence.
type EventStore interface {
	Save(ctx context.Context, e event.Event) error
	GetByID(ctx context.Context, id string) (event.Event, error)
	Delete(ctx context.Context, id string) error
}

// Not-found outcomes for admin actions on stale ids.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrStudentNotFound      = errors.New("student not found")
	ErrRegistrationNotFound = errors.New("registration not found")
)

// asNotFound maps a missing-row read onto the given sentinel. Any other
// store failure passes through so callers do not report it as not found.
func asNotFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

// CreateEventInput carries input for the orchestrator.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Capacity    int
	Poster      string // stored upload filename, empty if none
	Category    string // optional; defaulted when empty
}

// CreateEventDeps holds dependencies for CreateEvent.
type CreateEventDeps struct {
	EventStore EventStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateEvent creates an event after the past-date guard.
// PRE: Valid input fields
// POST: Event persisted with CreatedAt set once; date at or after now
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps CreateEventDeps) (string, error) {
	now := deps.Now()
	if !event.DateValid(input.Date, now) {
		return "", event.ErrDateInPast
	}

	category := input.Category
	if category == "" {
		category = event.DefaultCategory
	}

	e := event.Event{
		ID:          deps.GenerateID(),
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Location:    input.Location,
		Capacity:    input.Capacity,
		Poster:      input.Poster,
		Category:    category,
		CreatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return "", err
	}

	if err := deps.EventStore.Save(ctx, e); err != nil {
		return "", err
	}

	slog.Info("event_created", "event_id", e.ID, "title", e.Title, "date", e.Date)
	return e.ID, nil
}
