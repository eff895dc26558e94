package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"alcyxob/trainerpro/internal/domain"
)

// PlanStatus tells the non-failure outcomes of a plan generation apart.
type PlanStatus string

const (
	PlanDisabled  PlanStatus = "disabled"  // no credential, nothing was sent
	PlanEmpty     PlanStatus = "empty"     // the model returned no sessions
	PlanSucceeded PlanStatus = "succeeded" // Plan holds the repaired sessions
)

// PlanResult is the outcome of a successful call. Failures are errors.
type PlanResult struct {
	Status PlanStatus
	Plan   domain.WeeklyPlan
}

// Options configures the generation clients.
type Options struct {
	Model    string
	Language string
}

// PlanGenerator turns a student profile into a weekly plan.
type PlanGenerator struct {
	gen      Generator
	creds    CredentialSource
	model    string
	language string
	logger   *slog.Logger
}

// NewPlanGenerator wires a plan generator around an external Generator.
func NewPlanGenerator(gen Generator, creds CredentialSource, opts Options, logger *slog.Logger) *PlanGenerator {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanGenerator{
		gen:      gen,
		creds:    creds,
		model:    opts.Model,
		language: opts.Language,
		logger:   logger,
	}
}

// generatedExercise mirrors the exercise schema. IDs and video links are not
// part of it; they are assigned locally.
type generatedExercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	Notes       string `json:"notes"`
}

type generatedSession struct {
	DayOfWeek string              `json:"dayOfWeek"`
	Focus     string              `json:"focus"`
	Exercises []generatedExercise `json:"exercises"`
}

// Generate requests a weekly plan for s. goal overrides s.Goal when non-empty.
// The student is not modified; callers decide whether to apply the plan.
func (p *PlanGenerator) Generate(ctx context.Context, s domain.Student, goal string) (PlanResult, error) {
	if err := checkPlanInput(s); err != nil {
		return PlanResult{}, err
	}

	key := ""
	if p.creds != nil {
		key = p.creds.APIKey()
	}
	if key == "" {
		p.logger.Warn("plan generation skipped: no AI credential configured", "student_id", s.ID)
		return PlanResult{Status: PlanDisabled, Plan: domain.WeeklyPlan{}}, nil
	}

	text, err := p.gen.GenerateJSON(ctx, Request{
		APIKey: key,
		Model:  p.model,
		Prompt: buildPlanPrompt(s, strings.TrimSpace(goal), p.language),
		Schema: WeekPlanSchema,
	})
	if err != nil {
		p.logger.Error("plan generation request failed", "student_id", s.ID, "error", err)
		return PlanResult{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	plan, err := parsePlan(text)
	if err != nil {
		p.logger.Error("plan generation returned unusable content", "student_id", s.ID, "error", err)
		return PlanResult{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(plan) == 0 {
		p.logger.Info("plan generation returned no sessions", "student_id", s.ID)
		return PlanResult{Status: PlanEmpty, Plan: domain.WeeklyPlan{}}, nil
	}

	plan = plan.Repair()
	p.logger.Info("plan generated",
		"student_id", s.ID,
		"sessions", len(plan),
		"exercises", plan.ExerciseCount(),
	)
	return PlanResult{Status: PlanSucceeded, Plan: plan}, nil
}

func checkPlanInput(s domain.Student) error {
	missing := []string{}
	if strings.TrimSpace(s.Name) == "" {
		missing = append(missing, "name")
	}
	if s.Age <= 0 {
		missing = append(missing, "age")
	}
	if s.ExperienceLevel == "" {
		missing = append(missing, "experienceLevel")
	}
	if s.TrainingType == "" {
		missing = append(missing, "trainingType")
	}
	if strings.TrimSpace(s.Goal) == "" {
		missing = append(missing, "goal")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: student is missing %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// parsePlan decodes and normalizes a generation payload. Any text that is
// empty, not a session array, or names an unknown weekday or muscle group is
// rejected as a whole.
func parsePlan(text string) (domain.WeeklyPlan, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	var sessions []generatedSession
	if err := json.Unmarshal([]byte(text), &sessions); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	raw := make(domain.WeeklyPlan, 0, len(sessions))
	for _, gs := range sessions {
		exercises := make([]domain.Exercise, 0, len(gs.Exercises))
		for _, ge := range gs.Exercises {
			exercises = append(exercises, domain.Exercise{
				Name:        ge.Name,
				MuscleGroup: domain.MuscleGroup(ge.MuscleGroup),
				Sets:        ge.Sets,
				Reps:        ge.Reps,
				Notes:       ge.Notes,
			})
		}
		raw = append(raw, domain.WorkoutSession{
			DayOfWeek: domain.Weekday(gs.DayOfWeek),
			Focus:     gs.Focus,
			Exercises: exercises,
		})
	}
	return raw.Normalize()
}
