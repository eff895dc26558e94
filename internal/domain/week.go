package domain

import (
	"errors"

	"github.com/samber/lo"
)

// DayKind names the four combinations of "scheduled" and "has workout".
type DayKind string

const (
	DayPlanned   DayKind = "planned"   // scheduled, has workout
	DayUnplanned DayKind = "unplanned" // scheduled, nothing planned yet
	DayMismatch  DayKind = "mismatch"  // workout on an undeclared day
	DayRest      DayKind = "rest"      // neither
)

// DayState is the derived view of one weekday.
type DayState struct {
	Day        Weekday `json:"day"`
	Scheduled  bool    `json:"scheduled"`
	HasWorkout bool    `json:"hasWorkout"`
	Kind       DayKind `json:"kind"`
	Focus      string  `json:"focus,omitempty"`
}

// ClassifyDay derives day's state from the declared schedule and the plan.
// The two facts are independent; neither is inferred from the other.
func ClassifyDay(schedule Schedule, plan WeeklyPlan, day Weekday) DayState {
	st := DayState{
		Day:        day,
		Scheduled:  schedule.Has(day),
		HasWorkout: plan.HasWorkout(day),
	}
	if s, ok := plan.Session(day); ok {
		st.Focus = s.Focus
	}
	switch {
	case st.Scheduled && st.HasWorkout:
		st.Kind = DayPlanned
	case st.Scheduled:
		st.Kind = DayUnplanned
	case st.HasWorkout:
		st.Kind = DayMismatch
	default:
		st.Kind = DayRest
	}
	return st
}

// ClassifyWeek classifies all seven weekdays in canonical order.
func ClassifyWeek(schedule Schedule, plan WeeklyPlan) []DayState {
	return lo.Map(Weekdays, func(d Weekday, _ int) DayState {
		return ClassifyDay(schedule, plan, d)
	})
}

// DefaultDay is the first weekday with exercises, or Monday when none has any.
func DefaultDay(plan WeeklyPlan) Weekday {
	if d, ok := lo.Find(Weekdays, plan.HasWorkout); ok {
		return d
	}
	return Weekdays[0]
}

// ErrAlreadyGenerating is returned when a generation starts while another is in flight.
var ErrAlreadyGenerating = errors.New("generation already in progress")

// PlanView is the weekly-plan screen state: the weekday being viewed and
// whether a generation request is outstanding.
type PlanView struct {
	ActiveDay  Weekday `json:"activeDay"`
	Generating bool    `json:"generating"`
}

// PlanEvent is something the presentation layer dispatches to a PlanView.
type PlanEvent interface {
	isPlanEvent()
}

// DaySelected moves the view to another weekday.
type DaySelected struct{ Day Weekday }

// GenerationStarted marks a plan generation as outstanding.
type GenerationStarted struct{}

// GenerationSucceeded carries the plan that replaced the student's plan.
type GenerationSucceeded struct{ Plan WeeklyPlan }

// GenerationFailed clears the outstanding flag and keeps the current day.
type GenerationFailed struct{}

func (DaySelected) isPlanEvent()         {}
func (GenerationStarted) isPlanEvent()   {}
func (GenerationSucceeded) isPlanEvent() {}
func (GenerationFailed) isPlanEvent()    {}

// NewPlanView starts on the default day for plan.
func NewPlanView(plan WeeklyPlan) PlanView {
	return PlanView{ActiveDay: DefaultDay(plan)}
}

// Apply returns the state after ev. The receiver is never modified.
func (v PlanView) Apply(ev PlanEvent) (PlanView, error) {
	switch e := ev.(type) {
	case DaySelected:
		if !e.Day.Valid() {
			return v, validationErr("unknown weekday %q", e.Day)
		}
		v.ActiveDay = e.Day
	case GenerationStarted:
		if v.Generating {
			return v, ErrAlreadyGenerating
		}
		v.Generating = true
	case GenerationSucceeded:
		v.Generating = false
		v.ActiveDay = DefaultDay(e.Plan)
	case GenerationFailed:
		v.Generating = false
	}
	return v, nil
}
