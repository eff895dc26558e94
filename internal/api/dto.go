package api

import (
	"time"

	"alcyxob/trainerpro/internal/ai"
	"alcyxob/trainerpro/internal/domain"
	"alcyxob/trainerpro/internal/service"

	"github.com/samber/lo"
)

// --- Request DTOs ---

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type UpdateStatusRequest struct {
	Status domain.StudentStatus `json:"status" binding:"required"`
}

type ScheduleTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

type ReplacePlanRequest struct {
	WeeklyPlan domain.WeeklyPlan `json:"weeklyPlan"`
}

type AddExerciseRequest struct {
	domain.NewExerciseInput
	Focus string `json:"focus"`
}

type GeneratePlanRequest struct {
	Goal  string `json:"goal"`  // overrides the student's goal when set
	Apply bool   `json:"apply"` // replace the stored plan on success
}

type SelectDayRequest struct {
	Day string `json:"day" binding:"required"`
}

type CreateTemplateRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Tags    string `json:"tags"` // comma-separated
}

type GenerateContentRequest struct {
	Topic   string `json:"topic"`
	FormKey string `json:"formKey"`
}

type VideoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// --- Response DTOs ---

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionResponse adds the Portuguese day label shown by the console.
type SessionResponse struct {
	DayOfWeek domain.Weekday    `json:"dayOfWeek"`
	DayLabel  string            `json:"dayLabel"`
	Focus     string            `json:"focus"`
	Exercises []domain.Exercise `json:"exercises"`
}

type StudentResponse struct {
	domain.Student
	WeeklyPlan []SessionResponse `json:"weeklyPlan"`
}

type ProfileUpdateResponse struct {
	Student StudentResponse `json:"student"`
	Changed bool            `json:"changed"`
}

type GenerationResponse struct {
	Status  ai.PlanStatus     `json:"status"`
	Plan    []SessionResponse `json:"plan"`
	Applied bool              `json:"applied"`
	View    domain.PlanView   `json:"view"`
	Message string            `json:"message,omitempty"`
}

type GeneratedContentResponse struct {
	Content string `json:"content"`
}

type VideoURLResponse struct {
	URL string `json:"url"`
}

func MapSessionsToResponse(plan domain.WeeklyPlan) []SessionResponse {
	return lo.Map(plan, func(s domain.WorkoutSession, _ int) SessionResponse {
		exercises := s.Exercises
		if exercises == nil {
			exercises = []domain.Exercise{}
		}
		return SessionResponse{
			DayOfWeek: s.DayOfWeek,
			DayLabel:  s.DayOfWeek.Portuguese(),
			Focus:     s.Focus,
			Exercises: exercises,
		}
	})
}

func MapStudentToResponse(s *domain.Student) StudentResponse {
	return StudentResponse{Student: *s, WeeklyPlan: MapSessionsToResponse(s.WeeklyPlan)}
}

func MapStudentsToResponse(students []domain.Student) []StudentResponse {
	return lo.Map(students, func(s domain.Student, _ int) StudentResponse {
		return MapStudentToResponse(&s)
	})
}

func MapOutcomeToResponse(o *service.GenerationOutcome) GenerationResponse {
	resp := GenerationResponse{
		Status:  o.Status,
		Plan:    MapSessionsToResponse(o.Plan),
		Applied: o.Applied,
		View:    o.View,
	}
	switch o.Status {
	case ai.PlanDisabled:
		resp.Message = "AI generation is not configured"
	case ai.PlanEmpty:
		resp.Message = "The generator returned no sessions; the current plan was kept"
	}
	return resp
}
