package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"campusevents/internal/domain/event"
	"campusevents/internal/domain/registration"
)

// RegistrationStore defines the interface for registration persistence.
type RegistrationStore interface {
	Save(ctx context.Context, r registration.Registration) error
	GetByID(ctx context.Context, id string) (registration.Registration, error)
	ExistsForStudentEvent(ctx context.Context, studentID, eventID string) (bool, error)
}

// EventLookup defines the read-only event access needed by the workflow.
type EventLookup interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// Guard failures are distinct outcomes so the caller can tell the student
// why nothing was created.
var (
	ErrRegistrationClosed = errors.New("registration closed, the event has already completed")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
)

// RegisterForEventInput carries input for the orchestrator.
type RegisterForEventInput struct {
	StudentID string
	EventID   string
}

// RegisterForEventDeps holds dependencies for RegisterForEvent.
type RegisterForEventDeps struct {
	EventStore        EventLookup
	RegistrationStore RegistrationStore
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteRegisterForEvent creates a pending registration for a student.
// Guards, in order: the event exists, its date has not passed, and no
// registration for the (student, event) pair exists in any status —
// a rejected registration still blocks re-registration.
// POST: On any guard failure no record is created
func ExecuteRegisterForEvent(ctx context.Context, input RegisterForEventInput, deps RegisterForEventDeps) (string, error) {
	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return "", asNotFound(err, ErrEventNotFound)
	}

	if !e.RegistrationOpen(deps.Now()) {
		return "", ErrRegistrationClosed
	}

	exists, err := deps.RegistrationStore.ExistsForStudentEvent(ctx, input.StudentID, input.EventID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrAlreadyRegistered
	}

	r := registration.Registration{
		ID:        deps.GenerateID(),
		StudentID: input.StudentID,
		EventID:   input.EventID,
		Status:    registration.StatusPending,
	}
	if err := r.Validate(); err != nil {
		return "", err
	}

	if err := deps.RegistrationStore.Save(ctx, r); err != nil {
		return "", err
	}

	slog.Info("registration_created", "registration_id", r.ID, "student_id", r.StudentID, "event_id", r.EventID)
	return r.ID, nil
}
