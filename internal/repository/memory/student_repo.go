// Package memory holds process-local stores. Every write builds a new slice
// and swaps it in under the lock, so a List result is a stable snapshot.
package memory

import (
	"context"
	"sync"

	"alcyxob/trainerpro/internal/domain"
	"alcyxob/trainerpro/internal/repository"

	"github.com/samber/lo"
)

type studentRepository struct {
	mu       sync.RWMutex
	students []domain.Student
}

// NewStudentRepository creates a store holding copies of the given students.
func NewStudentRepository(seed []domain.Student) repository.StudentRepository {
	return &studentRepository{
		students: lo.Map(seed, func(s domain.Student, _ int) domain.Student { return copyStudent(s) }),
	}
}

func (r *studentRepository) List(_ context.Context) ([]domain.Student, error) {
	r.mu.RLock()
	snapshot := r.students
	r.mu.RUnlock()

	return lo.Map(snapshot, func(s domain.Student, _ int) domain.Student { return copyStudent(s) }), nil
}

func (r *studentRepository) GetByID(_ context.Context, id string) (*domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := lo.Find(r.students, func(s domain.Student) bool { return s.ID == id })
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := copyStudent(s)
	return &out, nil
}

func (r *studentRepository) Create(_ context.Context, student *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lo.ContainsBy(r.students, func(s domain.Student) bool { return s.ID == student.ID }) {
		return repository.ErrDuplicate
	}
	next := make([]domain.Student, 0, len(r.students)+1)
	next = append(next, r.students...)
	r.students = append(next, copyStudent(*student))
	return nil
}

func (r *studentRepository) Update(_ context.Context, student *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, idx, ok := lo.FindIndexOf(r.students, func(s domain.Student) bool { return s.ID == student.ID })
	if !ok {
		return repository.ErrNotFound
	}
	next := append([]domain.Student(nil), r.students...)
	next[idx] = copyStudent(*student)
	r.students = next
	return nil
}

func (r *studentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := lo.Reject(r.students, func(s domain.Student, _ int) bool { return s.ID == id })
	if len(next) == len(r.students) {
		return repository.ErrNotFound
	}
	r.students = next
	return nil
}

// copyStudent detaches the slices a caller could otherwise mutate in place.
func copyStudent(s domain.Student) domain.Student {
	return s.WithPlan(s.WeeklyPlan).WithSchedule(s.Schedule)
}
