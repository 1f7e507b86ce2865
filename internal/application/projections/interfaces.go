package projections

import (
	"context"

	studentStorage "campusevents/internal/adapters/storage/student"
	domainEvent "campusevents/internal/domain/event"
	domainRegistration "campusevents/internal/domain/registration"
	domainStudent "campusevents/internal/domain/student"
)

// StudentStore interface for student queries.
type StudentStore interface {
	GetByID(ctx context.Context, id string) (domainStudent.Student, error)
	List(ctx context.Context, filter studentStorage.ListFilter) ([]domainStudent.Student, error)
	Count(ctx context.Context, filter studentStorage.ListFilter) (int, error)
}

// EventStore interface for event queries.
type EventStore interface {
	GetByID(ctx context.Context, id string) (domainEvent.Event, error)
	ListByDate(ctx context.Context) ([]domainEvent.Event, error)
}

// RegistrationStore interface for registration queries.
type RegistrationStore interface {
	List(ctx context.Context) ([]domainRegistration.Registration, error)
	ListByStudentID(ctx context.Context, studentID string) ([]domainRegistration.Registration, error)
}
