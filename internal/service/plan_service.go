package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"alcyxob/trainerpro/internal/ai"
	"alcyxob/trainerpro/internal/domain"
)

var ErrGenerationInProgress = errors.New("a plan generation is already running for this student")

// PlanGenerator produces a weekly plan for a student; *ai.PlanGenerator implements it.
type PlanGenerator interface {
	Generate(ctx context.Context, student domain.Student, goal string) (ai.PlanResult, error)
}

// GenerationOutcome is what a generate request reports back.
type GenerationOutcome struct {
	Status  ai.PlanStatus     `json:"status"`
	Plan    domain.WeeklyPlan `json:"plan"`
	Applied bool              `json:"applied"`
	View    domain.PlanView   `json:"view"`
}

type PlanService interface {
	// GeneratePlan asks the generator for a plan. With apply set, a non-empty
	// result replaces the student's plan and moves the view to its first
	// training day. A second call for the same student while one is running
	// fails with ErrGenerationInProgress.
	GeneratePlan(ctx context.Context, studentID, goal string, apply bool) (*GenerationOutcome, error)
	View(ctx context.Context, studentID string) (*domain.PlanView, error)
	SelectDay(ctx context.Context, studentID, day string) (*domain.PlanView, error)
	// Forget drops the view state of a removed student.
	Forget(studentID string)
	GeneratedCount() int
}

type planService struct {
	students  StudentService
	generator PlanGenerator
	logger    *slog.Logger

	mu    sync.Mutex
	views map[string]domain.PlanView

	generated atomic.Int64
}

func NewPlanService(students StudentService, generator PlanGenerator, logger *slog.Logger) PlanService {
	return &planService{
		students:  students,
		generator: generator,
		logger:    logger,
		views:     make(map[string]domain.PlanView),
	}
}

// dispatch applies ev to the student's view, creating it from plan if absent.
// A nil plan means the view must already exist; a forgotten view stays gone.
func (s *planService) dispatch(studentID string, plan domain.WeeklyPlan, ev domain.PlanEvent) (domain.PlanView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[studentID]
	if !ok {
		if plan == nil {
			return v.Apply(ev)
		}
		v = domain.NewPlanView(plan)
	}
	next, err := v.Apply(ev)
	if err != nil {
		return v, err
	}
	s.views[studentID] = next
	return next, nil
}

func (s *planService) GeneratePlan(ctx context.Context, studentID, goal string, apply bool) (*GenerationOutcome, error) {
	student, err := s.students.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.dispatch(studentID, student.WeeklyPlan, domain.GenerationStarted{}); err != nil {
		if errors.Is(err, domain.ErrAlreadyGenerating) {
			return nil, ErrGenerationInProgress
		}
		return nil, err
	}

	finished := false
	defer func() {
		if !finished {
			s.dispatch(studentID, nil, domain.GenerationFailed{})
		}
	}()

	res, err := s.generator.Generate(ctx, *student, goal)
	if err != nil {
		return nil, err
	}

	out := &GenerationOutcome{Status: res.Status, Plan: res.Plan}
	if res.Status != ai.PlanSucceeded {
		// nothing replaces the plan; the view keeps its day
		finished = true
		out.View, _ = s.dispatch(studentID, nil, domain.GenerationFailed{})
		return out, nil
	}

	s.generated.Add(1)
	if !apply {
		finished = true
		out.View, _ = s.dispatch(studentID, nil, domain.GenerationFailed{})
		return out, nil
	}

	updated, err := s.students.ReplacePlan(ctx, studentID, res.Plan)
	if err != nil {
		return nil, err
	}
	finished = true
	out.Applied = true
	out.Plan = updated.WeeklyPlan
	out.View, _ = s.dispatch(studentID, nil, domain.GenerationSucceeded{Plan: updated.WeeklyPlan})
	s.logger.Info("generated plan applied", "student_id", studentID, "active_day", out.View.ActiveDay)
	return out, nil
}

func (s *planService) View(ctx context.Context, studentID string) (*domain.PlanView, error) {
	student, err := s.students.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[studentID]
	if !ok {
		v = domain.NewPlanView(student.WeeklyPlan)
	}
	return &v, nil
}

func (s *planService) SelectDay(ctx context.Context, studentID, day string) (*domain.PlanView, error) {
	d, err := domain.ParseWeekday(day)
	if err != nil {
		return nil, err
	}
	student, err := s.students.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	v, err := s.dispatch(studentID, student.WeeklyPlan, domain.DaySelected{Day: d})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *planService) Forget(studentID string) {
	s.mu.Lock()
	delete(s.views, studentID)
	s.mu.Unlock()
}

func (s *planService) GeneratedCount() int {
	return int(s.generated.Load())
}
