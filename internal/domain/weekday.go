package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is one of the seven canonical training days.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists every weekday in canonical order. Callers must not modify it.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// weekdayAliases maps lowercase spellings to canonical weekdays.
// The Portuguese names come from the seed data the console started with.
var weekdayAliases = map[string]Weekday{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
	"segunda":   Monday,
	"terça":     Tuesday,
	"terca":     Tuesday,
	"quarta":    Wednesday,
	"quinta":    Thursday,
	"sexta":     Friday,
	"sábado":    Saturday,
	"sabado":    Saturday,
	"domingo":   Sunday,
}

// ParseWeekday resolves a weekday name case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimSuffix(key, "-feira")
	if d, ok := weekdayAliases[key]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown weekday %q", ErrValidation, s)
}

// Index returns the canonical position (Monday = 0), or -1 for an invalid value.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

// Portuguese returns the label shown in the console and the seed data.
func (d Weekday) Portuguese() string {
	switch d {
	case Monday:
		return "Segunda"
	case Tuesday:
		return "Terça"
	case Wednesday:
		return "Quarta"
	case Thursday:
		return "Quinta"
	case Friday:
		return "Sexta"
	case Saturday:
		return "Sábado"
	case Sunday:
		return "Domingo"
	}
	return string(d)
}

// WeekdayOf returns the canonical weekday of t in t's location.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts at Sunday.
	return Weekdays[(int(t.Weekday())+6)%7]
}
