package orchestrators

import (
	"context"
	"time"

	"campusevents/internal/domain/event"
)

// UpdateEventInput carries input for the orchestrator.
type UpdateEventInput struct {
	EventID     string
	Title       string
	Description string
	Date        time.Time
	Location    string
	Capacity    int
	Poster      string // empty keeps the existing poster
	Category    string
}

// UpdateEventDeps holds dependencies for UpdateEvent.
type UpdateEventDeps struct {
	EventStore EventStore
	Now        func() time.Time
}

// ExecuteUpdateEvent edits an event under the same past-date guard as create.
// PRE: EventID references an existing event
// POST: Event updated; CreatedAt and, when no new poster was uploaded, the
// existing poster reference are preserved
func ExecuteUpdateEvent(ctx context.Context, input UpdateEventInput, deps UpdateEventDeps) error {
	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return asNotFound(err, ErrEventNotFound)
	}

	if !event.DateValid(input.Date, deps.Now()) {
		return event.ErrDateInPast
	}

	e.Title = input.Title
	e.Description = input.Description
	e.Date = input.Date
	e.Location = input.Location
	e.Capacity = input.Capacity
	if input.Poster != "" {
		e.Poster = input.Poster
	}
	if input.Category != "" {
		e.Category = input.Category
	}
	if err := e.Validate(); err != nil {
		return err
	}

	return deps.EventStore.Save(ctx, e)
}
