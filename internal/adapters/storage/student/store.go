package student

import (
	"context"

	domain "campusevents/internal/domain/student"
)

// Store persists Student state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Student, error)
	GetByEmail(ctx context.Context, email string) (domain.Student, error)
	Save(ctx context.Context, value domain.Student) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Student, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit   int
	Offset  int
	Section string
	Search  string
	Sort    string
	Dir     string
}
