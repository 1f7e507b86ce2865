package event

import (
	"context"

	domain "campusevents/internal/domain/event"
)

// Store persists Event state.
type Store interface {
	Save(ctx context.Context, e domain.Event) error
	GetByID(ctx context.Context, id string) (domain.Event, error)
	ListByDate(ctx context.Context) ([]domain.Event, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
