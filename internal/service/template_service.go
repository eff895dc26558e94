package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"alcyxob/trainerpro/internal/domain"
	"alcyxob/trainerpro/internal/repository"
)

var ErrTextGenerationInProgress = errors.New("a text generation is already running for this form")

// TextGenerator writes a workout guide for a topic; *ai.TextGenerator implements it.
type TextGenerator interface {
	Generate(ctx context.Context, topic string) (string, error)
}

type TemplateService interface {
	// ListTemplates returns the library newest first, filtered by query when non-empty.
	ListTemplates(ctx context.Context, query string) ([]domain.WorkoutTemplate, error)
	CreateTemplate(ctx context.Context, title, content, tagsCSV string) (*domain.WorkoutTemplate, error)
	// DeleteTemplate is a no-op for unknown ids.
	DeleteTemplate(ctx context.Context, id string) error
	// GenerateContent drafts template text for topic. formKey identifies the
	// editing surface; one request per key runs at a time.
	GenerateContent(ctx context.Context, formKey, topic string) (string, error)
	CountTemplates(ctx context.Context) (int, error)
}

type templateService struct {
	repo      repository.TemplateRepository
	generator TextGenerator
	inFlight  *inFlight
	now       Clock
	logger    *slog.Logger
}

func NewTemplateService(repo repository.TemplateRepository, generator TextGenerator, now Clock, logger *slog.Logger) TemplateService {
	return &templateService{
		repo:      repo,
		generator: generator,
		inFlight:  newInFlight(),
		now:       now,
		logger:    logger,
	}
}

func (s *templateService) ListTemplates(ctx context.Context, query string) ([]domain.WorkoutTemplate, error) {
	templates, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return templates, nil
	}
	return domain.FilterTemplates(templates, query), nil
}

func (s *templateService) CreateTemplate(ctx context.Context, title, content, tagsCSV string) (*domain.WorkoutTemplate, error) {
	t, err := domain.NewTemplate(title, content, tagsCSV, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	s.logger.Info("template created", "template_id", t.ID, "tags", t.Tags)
	return t, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

func (s *templateService) GenerateContent(ctx context.Context, formKey, topic string) (string, error) {
	formKey = strings.TrimSpace(formKey)
	if formKey == "" {
		formKey = "default"
	}
	if !s.inFlight.TryStart(formKey) {
		return "", ErrTextGenerationInProgress
	}
	defer s.inFlight.Done(formKey)

	return s.generator.Generate(ctx, topic)
}

func (s *templateService) CountTemplates(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
