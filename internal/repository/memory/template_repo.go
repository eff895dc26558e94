package memory

import (
	"context"
	"sort"
	"sync"

	"alcyxob/trainerpro/internal/domain"
	"alcyxob/trainerpro/internal/repository"

	"github.com/samber/lo"
)

type templateRepository struct {
	mu        sync.RWMutex
	templates []domain.WorkoutTemplate // newest first
}

func NewTemplateRepository(seed []domain.WorkoutTemplate) repository.TemplateRepository {
	templates := lo.Map(seed, func(t domain.WorkoutTemplate, _ int) domain.WorkoutTemplate { return copyTemplate(t) })
	sort.SliceStable(templates, func(i, j int) bool { return templates[i].CreatedAt.After(templates[j].CreatedAt) })
	return &templateRepository{templates: templates}
}

func (r *templateRepository) List(_ context.Context) ([]domain.WorkoutTemplate, error) {
	r.mu.RLock()
	snapshot := r.templates
	r.mu.RUnlock()

	return lo.Map(snapshot, func(t domain.WorkoutTemplate, _ int) domain.WorkoutTemplate { return copyTemplate(t) }), nil
}

// Create prepends, keeping the newest template first.
func (r *templateRepository) Create(_ context.Context, template *domain.WorkoutTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lo.ContainsBy(r.templates, func(t domain.WorkoutTemplate) bool { return t.ID == template.ID }) {
		return repository.ErrDuplicate
	}
	next := make([]domain.WorkoutTemplate, 0, len(r.templates)+1)
	next = append(next, copyTemplate(*template))
	r.templates = append(next, r.templates...)
	return nil
}

func (r *templateRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := lo.Reject(r.templates, func(t domain.WorkoutTemplate, _ int) bool { return t.ID == id })
	if len(next) == len(r.templates) {
		return repository.ErrNotFound
	}
	r.templates = next
	return nil
}

func (r *templateRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates), nil
}

func copyTemplate(t domain.WorkoutTemplate) domain.WorkoutTemplate {
	t.Tags = append([]string{}, t.Tags...)
	return t
}
