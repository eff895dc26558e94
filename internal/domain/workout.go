package domain

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// VideoPlaceholder is set on exercises that have no demo video yet.
const VideoPlaceholder = "#"

// MuscleGroup is the primary muscle group an exercise targets.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleLegs      MuscleGroup = "legs"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleArms      MuscleGroup = "arms"
	MuscleAbs       MuscleGroup = "abs"
	MuscleCardio    MuscleGroup = "cardio"
	MuscleFullBody  MuscleGroup = "full-body"
)

// MuscleGroups lists the fixed muscle-group enumeration.
var MuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleLegs, MuscleShoulders,
	MuscleArms, MuscleAbs, MuscleCardio, MuscleFullBody,
}

var muscleAliases = map[string]MuscleGroup{
	"full body":     MuscleFullBody,
	"fullbody":      MuscleFullBody,
	"peito":         MuscleChest,
	"costas":        MuscleBack,
	"pernas":        MuscleLegs,
	"ombros":        MuscleShoulders,
	"braços":        MuscleArms,
	"bracos":        MuscleArms,
	"abdômen":       MuscleAbs,
	"abdomen":       MuscleAbs,
	"corpo inteiro": MuscleFullBody,
}

// ParseMuscleGroup accepts the canonical values, English labels and the
// Portuguese labels of the exercise library, case-insensitively.
func ParseMuscleGroup(s string) (MuscleGroup, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if lo.Contains(MuscleGroups, MuscleGroup(key)) {
		return MuscleGroup(key), nil
	}
	if m, ok := muscleAliases[key]; ok {
		return m, nil
	}
	return "", validationErr("unknown muscle group %q", s)
}

// Exercise is one prescribed movement inside a session.
type Exercise struct {
	ID          string      `bson:"id" json:"id"`
	Name        string      `bson:"name" json:"name"`
	MuscleGroup MuscleGroup `bson:"muscleGroup" json:"muscleGroup"`
	Sets        int         `bson:"sets" json:"sets"`
	Reps        string      `bson:"reps" json:"reps"` // free-text range, e.g. "8-10"
	VideoURL    string      `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Notes       string      `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutSession is one weekday's plan. An empty exercise list means rest.
type WorkoutSession struct {
	DayOfWeek Weekday    `bson:"dayOfWeek" json:"dayOfWeek"`
	Focus     string     `bson:"focus" json:"focus"` // e.g. "Legs", "Rest"
	Exercises []Exercise `bson:"exercises" json:"exercises"`
}

// WeeklyPlan holds at most one session per weekday. Missing weekdays are rest.
type WeeklyPlan []WorkoutSession

// Session returns the session for day, if any.
func (p WeeklyPlan) Session(day Weekday) (WorkoutSession, bool) {
	return lo.Find(p, func(s WorkoutSession) bool { return s.DayOfWeek == day })
}

// HasWorkout reports whether day has a session with at least one exercise.
func (p WeeklyPlan) HasWorkout(day Weekday) bool {
	s, ok := p.Session(day)
	return ok && len(s.Exercises) > 0
}

// ExerciseCount is the total number of exercises across all sessions.
func (p WeeklyPlan) ExerciseCount() int {
	return lo.SumBy(p, func(s WorkoutSession) int { return len(s.Exercises) })
}

// Clone deep-copies the plan so callers can edit it without aliasing.
func (p WeeklyPlan) Clone() WeeklyPlan {
	if p == nil {
		return nil
	}
	out := make(WeeklyPlan, len(p))
	for i, s := range p {
		s.Exercises = append([]Exercise{}, s.Exercises...)
		out[i] = s
	}
	return out
}

// Normalize validates a plan and returns a canonical copy: weekdays and muscle
// groups parsed, one session per weekday, sessions in weekday order.
// Exercises are neither added nor dropped.
func (p WeeklyPlan) Normalize() (WeeklyPlan, error) {
	out := make(WeeklyPlan, 0, len(p))
	seen := make(map[Weekday]bool, len(p))
	for _, s := range p {
		day, err := ParseWeekday(string(s.DayOfWeek))
		if err != nil {
			return nil, err
		}
		if seen[day] {
			return nil, validationErr("duplicate session for %s", day)
		}
		seen[day] = true

		exercises := make([]Exercise, len(s.Exercises))
		for i, ex := range s.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				return nil, validationErr("exercise name is required (%s #%d)", day, i+1)
			}
			mg, err := ParseMuscleGroup(string(ex.MuscleGroup))
			if err != nil {
				return nil, err
			}
			ex.MuscleGroup = mg
			exercises[i] = ex
		}
		out = append(out, WorkoutSession{DayOfWeek: day, Focus: s.Focus, Exercises: exercises})
	}
	sortSessions(out)
	return out, nil
}

// Repair gives every exercise a fresh unique id, fills missing video links
// with VideoPlaceholder and raises non-positive set counts to one.
func (p WeeklyPlan) Repair() WeeklyPlan {
	out := p.Clone()
	for i := range out {
		for j := range out[i].Exercises {
			ex := &out[i].Exercises[j]
			ex.ID = uuid.NewString()
			if ex.VideoURL == "" {
				ex.VideoURL = VideoPlaceholder
			}
			if ex.Sets < 1 {
				ex.Sets = 1
			}
		}
	}
	return out
}

// FillMissing is the manual-edit variant of Repair: ids already present are kept.
func (p WeeklyPlan) FillMissing() WeeklyPlan {
	out := p.Clone()
	for i := range out {
		for j := range out[i].Exercises {
			ex := &out[i].Exercises[j]
			if ex.ID == "" {
				ex.ID = uuid.NewString()
			}
			if ex.VideoURL == "" {
				ex.VideoURL = VideoPlaceholder
			}
		}
	}
	return out
}

// WithExercise appends ex to day's session, creating the session when absent.
func (p WeeklyPlan) WithExercise(day Weekday, focus string, ex Exercise) WeeklyPlan {
	out := p.Clone()
	for i := range out {
		if out[i].DayOfWeek == day {
			out[i].Exercises = append(out[i].Exercises, ex)
			if focus != "" {
				out[i].Focus = focus
			}
			return out
		}
	}
	out = append(out, WorkoutSession{DayOfWeek: day, Focus: focus, Exercises: []Exercise{ex}})
	sortSessions(out)
	return out
}

// WithoutExercise removes the exercise with the given id from day's session.
// The second result is false when nothing matched.
func (p WeeklyPlan) WithoutExercise(day Weekday, exerciseID string) (WeeklyPlan, bool) {
	out := p.Clone()
	for i := range out {
		if out[i].DayOfWeek != day {
			continue
		}
		before := len(out[i].Exercises)
		out[i].Exercises = lo.Reject(out[i].Exercises, func(ex Exercise, _ int) bool { return ex.ID == exerciseID })
		return out, len(out[i].Exercises) != before
	}
	return out, false
}

// WithExerciseVideo sets the video link of one exercise, wherever it lives.
func (p WeeklyPlan) WithExerciseVideo(exerciseID, videoURL string) (WeeklyPlan, bool) {
	out := p.Clone()
	for i := range out {
		for j := range out[i].Exercises {
			if out[i].Exercises[j].ID == exerciseID {
				out[i].Exercises[j].VideoURL = videoURL
				return out, true
			}
		}
	}
	return out, false
}

func sortSessions(p WeeklyPlan) {
	sort.SliceStable(p, func(i, j int) bool { return p[i].DayOfWeek.Index() < p[j].DayOfWeek.Index() })
}

// NewExerciseInput is the manual add-exercise form.
type NewExerciseInput struct {
	Name        string `json:"name" validate:"required"`
	MuscleGroup string `json:"muscleGroup" validate:"required"`
	Sets        int    `json:"sets" validate:"gte=1"`
	Reps        string `json:"reps" validate:"required"`
	Notes       string `json:"notes"`
	VideoURL    string `json:"videoUrl"`
}

// NewExercise validates the form and builds an exercise with a fresh id.
func NewExercise(in NewExerciseInput) (Exercise, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Reps = strings.TrimSpace(in.Reps)
	if err := validateStruct(in); err != nil {
		return Exercise{}, err
	}
	mg, err := ParseMuscleGroup(in.MuscleGroup)
	if err != nil {
		return Exercise{}, err
	}
	video := strings.TrimSpace(in.VideoURL)
	if video == "" {
		video = VideoPlaceholder
	}
	return Exercise{
		ID:          uuid.NewString(),
		Name:        in.Name,
		MuscleGroup: mg,
		Sets:        in.Sets,
		Reps:        in.Reps,
		VideoURL:    video,
		Notes:       in.Notes,
	}, nil
}
