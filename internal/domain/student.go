package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale       Gender = "male"
	GenderFemale     Gender = "female"
	GenderOther      Gender = "other"
	GenderUndeclared Gender = "undeclared"
)

type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

type TrainingType string

const (
	TrainingIndividual TrainingType = "individual"
	TrainingGroup      TrainingType = "group"
)

type StudentStatus string

const (
	StatusActive   StudentStatus = "active"
	StatusInactive StudentStatus = "inactive"
)

// BirthDateLayout is the calendar-date format accepted for birth dates.
const BirthDateLayout = "2006-01-02"

// Student is a trainee managed by the trainer.
type Student struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	BirthDate string    `bson:"birthDate" json:"birthDate"` // YYYY-MM-DD
	Age       int       `bson:"age" json:"age"`             // computed once at creation
	Gender    Gender    `bson:"gender" json:"gender"`
	HeightCm  float64   `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	WeightKg  float64   `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	AvatarURL string    `bson:"avatarUrl" json:"avatarUrl"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`

	Goal            string          `bson:"goal" json:"goal"`
	ExperienceLevel ExperienceLevel `bson:"experienceLevel" json:"experienceLevel"`
	TrainingType    TrainingType    `bson:"trainingType" json:"trainingType"`
	Schedule        Schedule        `bson:"schedule" json:"schedule"`
	Status          StudentStatus   `bson:"status" json:"status"`

	Injuries     string `bson:"injuries,omitempty" json:"injuries,omitempty"`
	MedicalNotes string `bson:"medicalNotes,omitempty" json:"medicalNotes,omitempty"`

	WeeklyPlan WeeklyPlan `bson:"weeklyPlan" json:"weeklyPlan"`
}

// StudentProfile is the editable part of a student record.
type StudentProfile struct {
	Name            string          `json:"name" diff:"name" validate:"required"`
	Email           string          `json:"email" diff:"email" validate:"required,email"`
	Phone           string          `json:"phone" diff:"phone"`
	Gender          Gender          `json:"gender" diff:"gender" validate:"omitempty,oneof=male female other undeclared"`
	HeightCm        float64         `json:"heightCm" diff:"heightCm" validate:"gte=0"`
	WeightKg        float64         `json:"weightKg" diff:"weightKg" validate:"gte=0"`
	Goal            string          `json:"goal" diff:"goal" validate:"required"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel" diff:"experienceLevel" validate:"required,oneof=beginner intermediate advanced"`
	TrainingType    TrainingType    `json:"trainingType" diff:"trainingType" validate:"required,oneof=individual group"`
	Injuries        string          `json:"injuries" diff:"injuries"`
	MedicalNotes    string          `json:"medicalNotes" diff:"medicalNotes"`
}

// NewStudentInput carries the creation form.
type NewStudentInput struct {
	StudentProfile
	BirthDate    string   `json:"birthDate" validate:"required"`
	ScheduleDays []string `json:"scheduleDays" validate:"min=1"`
	ScheduleTime string   `json:"scheduleTime"`
}

// AgeAt returns the number of completed birthdays at today.
func AgeAt(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// AvatarURL derives a stable avatar link from the student's name.
func AvatarURL(name string) string {
	seed := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	return fmt.Sprintf("https://picsum.photos/seed/%s/200", seed)
}

// NewStudent validates the form and builds an active student with an empty
// plan. Age is derived from the birth date once, relative to now.
func NewStudent(in NewStudentInput, now time.Time) (*Student, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Goal = strings.TrimSpace(in.Goal)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	birth, err := time.Parse(BirthDateLayout, in.BirthDate)
	if err != nil {
		return nil, validationErr("birthDate %q must be YYYY-MM-DD", in.BirthDate)
	}
	if birth.After(now) {
		return nil, validationErr("birthDate %q is in the future", in.BirthDate)
	}
	schedule, err := NewSchedule(in.ScheduleDays, in.ScheduleTime)
	if err != nil {
		return nil, err
	}
	gender := in.Gender
	if gender == "" {
		gender = GenderUndeclared
	}

	return &Student{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Email:           strings.TrimSpace(in.Email),
		Phone:           in.Phone,
		BirthDate:       in.BirthDate,
		Age:             AgeAt(birth, now),
		Gender:          gender,
		HeightCm:        in.HeightCm,
		WeightKg:        in.WeightKg,
		AvatarURL:       AvatarURL(in.Name),
		CreatedAt:       now.UTC(),
		Goal:            in.Goal,
		ExperienceLevel: in.ExperienceLevel,
		TrainingType:    in.TrainingType,
		Schedule:        schedule,
		Status:          StatusActive,
		Injuries:        in.Injuries,
		MedicalNotes:    in.MedicalNotes,
		WeeklyPlan:      WeeklyPlan{},
	}, nil
}

// Profile extracts the editable fields.
func (s Student) Profile() StudentProfile {
	return StudentProfile{
		Name:            s.Name,
		Email:           s.Email,
		Phone:           s.Phone,
		Gender:          s.Gender,
		HeightCm:        s.HeightCm,
		WeightKg:        s.WeightKg,
		Goal:            s.Goal,
		ExperienceLevel: s.ExperienceLevel,
		TrainingType:    s.TrainingType,
		Injuries:        s.Injuries,
		MedicalNotes:    s.MedicalNotes,
	}
}

// WithProfile returns a copy carrying the new profile. Age, id and plan are
// kept; the avatar follows the name.
func (s Student) WithProfile(p StudentProfile) (Student, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Goal = strings.TrimSpace(p.Goal)
	if err := validateStruct(p); err != nil {
		return s, err
	}
	if p.Gender == "" {
		p.Gender = GenderUndeclared
	}
	out := s.clone()
	out.Name = p.Name
	out.Email = strings.TrimSpace(p.Email)
	out.Phone = p.Phone
	out.Gender = p.Gender
	out.HeightCm = p.HeightCm
	out.WeightKg = p.WeightKg
	out.Goal = p.Goal
	out.ExperienceLevel = p.ExperienceLevel
	out.TrainingType = p.TrainingType
	out.Injuries = p.Injuries
	out.MedicalNotes = p.MedicalNotes
	out.AvatarURL = AvatarURL(p.Name)
	return out, nil
}

// WithPlan returns a copy whose weekly plan is replaced. The schedule is untouched.
func (s Student) WithPlan(plan WeeklyPlan) Student {
	out := s.clone()
	out.WeeklyPlan = plan.Clone()
	if out.WeeklyPlan == nil {
		out.WeeklyPlan = WeeklyPlan{}
	}
	return out
}

// WithSchedule returns a copy whose schedule is replaced. The plan is untouched.
func (s Student) WithSchedule(sched Schedule) Student {
	out := s.clone()
	out.Schedule = Schedule{Days: append([]Weekday{}, sched.Days...), Time: sched.Time}
	return out
}

// WithStatus returns a copy with the lifecycle status changed.
func (s Student) WithStatus(status StudentStatus) (Student, error) {
	if status != StatusActive && status != StatusInactive {
		return s, validationErr("unknown status %q", status)
	}
	out := s.clone()
	out.Status = status
	return out, nil
}

func (s Student) clone() Student {
	out := s
	out.Schedule.Days = append([]Weekday{}, s.Schedule.Days...)
	out.WeeklyPlan = s.WeeklyPlan.Clone()
	return out
}
