package service

import (
	"context"

	"alcyxob/trainerpro/internal/domain"

	"github.com/samber/lo"
)

// Dashboard is the console landing summary.
type Dashboard struct {
	TotalStudents  int            `json:"totalStudents"`
	ActiveStudents int            `json:"activeStudents"`
	PlansGenerated int            `json:"plansGenerated"` // since process start
	SessionsToday  int            `json:"sessionsToday"`  // active students scheduled today
	Today          domain.Weekday `json:"today"`
	Templates      int            `json:"templates"`
}

type DashboardService interface {
	Summary(ctx context.Context) (*Dashboard, error)
}

type dashboardService struct {
	students  StudentService
	templates TemplateService
	plans     PlanService
	now       Clock
}

func NewDashboardService(students StudentService, templates TemplateService, plans PlanService, now Clock) DashboardService {
	return &dashboardService{students: students, templates: templates, plans: plans, now: now}
}

func (s *dashboardService) Summary(ctx context.Context) (*Dashboard, error) {
	students, err := s.students.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := s.templates.CountTemplates(ctx)
	if err != nil {
		return nil, err
	}

	today := domain.WeekdayOf(s.now())
	active := lo.Filter(students, func(st domain.Student, _ int) bool { return st.Status == domain.StatusActive })

	return &Dashboard{
		TotalStudents:  len(students),
		ActiveStudents: len(active),
		PlansGenerated: s.plans.GeneratedCount(),
		SessionsToday:  lo.CountBy(active, func(st domain.Student) bool { return st.Schedule.Has(today) }),
		Today:          today,
		Templates:      templates,
	}, nil
}
