package repository

import (
	"context"

	"alcyxob/trainerpro/internal/domain"
)

var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate id")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// StudentRepository stores student records, each with its schedule and weekly plan.
// Implementations return copies; mutating a returned value never changes stored state.
type StudentRepository interface {
	List(ctx context.Context) ([]domain.Student, error) // oldest first
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	Create(ctx context.Context, student *domain.Student) error
	Update(ctx context.Context, student *domain.Student) error // replaces the whole record
	Delete(ctx context.Context, id string) error
}

// TemplateRepository stores the workout template library. Templates are
// immutable once created.
type TemplateRepository interface {
	List(ctx context.Context) ([]domain.WorkoutTemplate, error) // newest first
	Create(ctx context.Context, template *domain.WorkoutTemplate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
