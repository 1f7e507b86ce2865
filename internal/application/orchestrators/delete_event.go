package orchestrators

import (
	"context"
	"log/slog"
)

// RegistrationCascadeStore defines the registration operations needed by cascade deletes.
type RegistrationCascadeStore interface {
	DeleteByStudentID(ctx context.Context, studentID string) error
	DeleteByEventID(ctx context.Context, eventID string) error
}

// DeleteEventDeps holds dependencies for DeleteEvent.
type DeleteEventDeps struct {
	EventStore        EventStore
	RegistrationStore RegistrationCascadeStore
}

// ExecuteDeleteEvent removes an event and every registration referencing it.
// Referential integrity is maintained by this cascade, not by the store.
// PRE: eventID is non-empty
// POST: Event and its registrations are gone
func ExecuteDeleteEvent(ctx context.Context, deps DeleteEventDeps, eventID string) error {
	if _, err := deps.EventStore.GetByID(ctx, eventID); err != nil {
		return asNotFound(err, ErrEventNotFound)
	}

	// Registrations first so the event's foreign keys never dangle mid-delete.
	if err := deps.RegistrationStore.DeleteByEventID(ctx, eventID); err != nil {
		return err
	}
	if err := deps.EventStore.Delete(ctx, eventID); err != nil {
		return err
	}

	slog.Info("event_deleted", "event_id", eventID)
	return nil
}
