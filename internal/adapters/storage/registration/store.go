package registration

import (
	"context"

	domain "campusevents/internal/domain/registration"
)

// Store persists Registration state.
type Store interface {
	Save(ctx context.Context, r domain.Registration) error
	GetByID(ctx context.Context, id string) (domain.Registration, error)
	List(ctx context.Context) ([]domain.Registration, error)
	ListByStudentID(ctx context.Context, studentID string) ([]domain.Registration, error)
	ExistsForStudentEvent(ctx context.Context, studentID, eventID string) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteByStudentID(ctx context.Context, studentID string) error
	DeleteByEventID(ctx context.Context, eventID string) error
}
