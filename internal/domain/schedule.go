package domain

import (
	"regexp"
	"sort"

	"github.com/samber/lo"
)

// DefaultTrainingTime is used when a student has no usual training time.
const DefaultTrainingTime = "00:00"

var trainingTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Schedule is a student's declared recurring training days and usual time.
// Days is a set kept in canonical weekday order.
type Schedule struct {
	Days []Weekday `bson:"days" json:"days"`
	Time string    `bson:"time" json:"time"` // 24h HH:MM
}

// NewSchedule builds a schedule from raw day names, dropping duplicates and
// sorting into canonical order. An empty time becomes DefaultTrainingTime.
func NewSchedule(days []string, at string) (Schedule, error) {
	set := make([]Weekday, 0, len(days))
	for _, raw := range days {
		d, err := ParseWeekday(raw)
		if err != nil {
			return Schedule{}, err
		}
		if !lo.Contains(set, d) {
			set = append(set, d)
		}
	}
	if at == "" {
		at = DefaultTrainingTime
	}
	if !trainingTimePattern.MatchString(at) {
		return Schedule{}, validationErr("schedule time %q must be HH:MM", at)
	}
	return Schedule{Days: sortWeekdays(set), Time: at}, nil
}

// Has reports whether day is a declared training day.
func (s Schedule) Has(day Weekday) bool {
	return lo.Contains(s.Days, day)
}

// Toggle adds day when absent and removes it when present, returning a new
// schedule in canonical order. The receiver is left untouched.
func (s Schedule) Toggle(day Weekday) Schedule {
	var days []Weekday
	if s.Has(day) {
		days = lo.Without(s.Days, day)
	} else {
		days = append(append([]Weekday{}, s.Days...), day)
	}
	return Schedule{Days: sortWeekdays(days), Time: s.Time}
}

// WithTime returns a copy with the usual training time replaced.
func (s Schedule) WithTime(at string) (Schedule, error) {
	if at == "" {
		at = DefaultTrainingTime
	}
	if !trainingTimePattern.MatchString(at) {
		return s, validationErr("schedule time %q must be HH:MM", at)
	}
	return Schedule{Days: append([]Weekday{}, s.Days...), Time: at}, nil
}

func sortWeekdays(days []Weekday) []Weekday {
	out := append([]Weekday{}, days...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}
