package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"alcyxob/trainerpro/internal/domain"
	"alcyxob/trainerpro/internal/repository"

	"github.com/r3labs/diff"
	"github.com/samber/lo"
)

var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// Clock returns the current time; injected so ages and timestamps are testable.
type Clock func() time.Time

// WeekView is the seven-day consistency view of one student.
type WeekView struct {
	StudentID  string            `json:"studentId"`
	Days       []domain.DayState `json:"days"`
	DefaultDay domain.Weekday    `json:"defaultDay"`
}

type StudentService interface {
	CreateStudent(ctx context.Context, in domain.NewStudentInput) (*domain.Student, error)
	ListStudents(ctx context.Context) ([]domain.Student, error)
	GetStudent(ctx context.Context, id string) (*domain.Student, error)
	// UpdateProfile reports whether anything changed; an unchanged profile is not written.
	UpdateProfile(ctx context.Context, id string, profile domain.StudentProfile) (*domain.Student, bool, error)
	SetStatus(ctx context.Context, id string, status domain.StudentStatus) (*domain.Student, error)
	// DeleteStudent is a no-op for unknown ids.
	DeleteStudent(ctx context.Context, id string) error

	ToggleScheduleDay(ctx context.Context, id string, day string) (*domain.Student, error)
	SetScheduleTime(ctx context.Context, id string, at string) (*domain.Student, error)

	ReplacePlan(ctx context.Context, id string, plan domain.WeeklyPlan) (*domain.Student, error)
	AddExercise(ctx context.Context, id string, day string, focus string, in domain.NewExerciseInput) (*domain.Student, *domain.Exercise, error)
	RemoveExercise(ctx context.Context, id string, day string, exerciseID string) (*domain.Student, error)
	// SetExerciseVideo returns the previous link along with the updated student.
	SetExerciseVideo(ctx context.Context, id string, exerciseID string, videoURL string) (*domain.Student, string, error)

	WeekView(ctx context.Context, id string) (*WeekView, error)
}

type studentService struct {
	repo   repository.StudentRepository
	locks  *keyedMutex
	now    Clock
	logger *slog.Logger
}

func NewStudentService(repo repository.StudentRepository, now Clock, logger *slog.Logger) StudentService {
	if now == nil {
		now = time.Now
	}
	return &studentService{
		repo:   repo,
		locks:  newKeyedMutex(),
		now:    now,
		logger: logger,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, in domain.NewStudentInput) (*domain.Student, error) {
	student, err := domain.NewStudent(in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	s.logger.Info("student created", "student_id", student.ID, "name", student.Name)
	return student, nil
}

func (s *studentService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	return s.repo.List(ctx)
}

func (s *studentService) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// update runs fn on the current record and stores its result. Writes to the
// same student are serialized; fn sees the latest stored state.
func (s *studentService) update(ctx context.Context, id string, fn func(domain.Student) (domain.Student, error)) (*domain.Student, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := fn(*current)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("update student: %w", err)
	}
	return &next, nil
}

func (s *studentService) UpdateProfile(ctx context.Context, id string, profile domain.StudentProfile) (*domain.Student, bool, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, false, err
	}
	next, err := current.WithProfile(profile)
	if err != nil {
		return nil, false, err
	}

	changes, err := diff.Diff(current.Profile(), next.Profile())
	if err != nil {
		return nil, false, fmt.Errorf("diff profile: %w", err)
	}
	if len(changes) == 0 {
		return current, false, nil
	}

	if err := s.repo.Update(ctx, &next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrStudentNotFound
		}
		return nil, false, fmt.Errorf("update student: %w", err)
	}
	fields := lo.Map(changes, func(c diff.Change, _ int) string { return c.Path[0] })
	s.logger.Info("student profile updated", "student_id", id, "fields", fields)
	return &next, true, nil
}

func (s *studentService) SetStatus(ctx context.Context, id string, status domain.StudentStatus) (*domain.Student, error) {
	return s.update(ctx, id, func(st domain.Student) (domain.Student, error) {
		return st.WithStatus(status)
	})
}

func (s *studentService) DeleteStudent(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	s.logger.Info("student deleted", "student_id", id)
	return nil
}

func (s *studentService) ToggleScheduleDay(ctx context.Context, id string, day string) (*domain.Student, error) {
	d, err := domain.ParseWeekday(day)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(st domain.Student) (domain.Student, error) {
		return st.WithSchedule(st.Schedule.Toggle(d)), nil
	})
}

func (s *studentService) SetScheduleTime(ctx context.Context, id string, at string) (*domain.Student, error) {
	return s.update(ctx, id, func(st domain.Student) (domain.Student, error) {
		sched, err := st.Schedule.WithTime(at)
		if err != nil {
			return st, err
		}
		return st.WithSchedule(sched), nil
	})
}

func (s *studentService) ReplacePlan(ctx context.Context, id string, plan domain.WeeklyPlan) (*domain.Student, error) {
	normalized, err := plan.Normalize()
	if err != nil {
		return nil, err
	}
	normalized = normalized.FillMissing()
	return s.update(ctx, id, func(st domain.Student) (domain.Student, error) {
		return st.WithPlan(normalized), nil
	})
}

func (s *studentService) AddExercise(ctx context.Context, id string, day string, focus string, in domain.NewExerciseInput) (*domain.Student, *domain.Exercise, error) {
	d, err := domain.ParseWeekday(day)
	if err != nil {
		return nil, nil, err
	}
	ex, err := domain.NewExercise(in)
	if err != nil {
		return nil, nil, err
	}
	st, err := s.update(ctx, id, func(st domain.Student) (domain.Student, error) {
		return st.WithPlan(st.WeeklyPlan.WithExercise(d, focus, ex)), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return st, &ex, nil
}

func (s *studentService) RemoveExercise(ctx context.Context, id string, day string, exerciseID string) (*domain.Student, error) {
	d, err := domain.ParseWeekday(day)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(st domain.Student) (domain.Student, error) {
		plan, ok := st.WeeklyPlan.WithoutExercise(d, exerciseID)
		if !ok {
			return st, ErrExerciseNotFound
		}
		return st.WithPlan(plan), nil
	})
}

func (s *studentService) SetExerciseVideo(ctx context.Context, id string, exerciseID string, videoURL string) (*domain.Student, string, error) {
	var previous string
	st, err := s.update(ctx, id, func(st domain.Student) (domain.Student, error) {
		for _, session := range st.WeeklyPlan {
			if ex, ok := lo.Find(session.Exercises, func(ex domain.Exercise) bool { return ex.ID == exerciseID }); ok {
				previous = ex.VideoURL
			}
		}
		plan, ok := st.WeeklyPlan.WithExerciseVideo(exerciseID, videoURL)
		if !ok {
			return st, ErrExerciseNotFound
		}
		return st.WithPlan(plan), nil
	})
	if err != nil {
		return nil, "", err
	}
	return st, previous, nil
}

func (s *studentService) WeekView(ctx context.Context, id string) (*WeekView, error) {
	st, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	return &WeekView{
		StudentID:  st.ID,
		Days:       domain.ClassifyWeek(st.Schedule, st.WeeklyPlan),
		DefaultDay: domain.DefaultDay(st.WeeklyPlan),
	}, nil
}
