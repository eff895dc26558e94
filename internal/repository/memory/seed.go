package memory

import (
	"fmt"
	"time"

	"alcyxob/trainerpro/internal/domain"

	"github.com/google/uuid"
)

var seedNamespace = uuid.MustParse("6f1c2a7e-3b0d-4d8e-9a51-0c4b7e2f9d13")

func seedID(name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(name)).String()
}

// SeedStudents returns the demo roster the console starts with. Days and
// muscle groups use the Portuguese labels of the demo data set and go
// through the same normalization as any imported plan.
func SeedStudents(now time.Time) []domain.Student {
	ana := mustStudent(domain.NewStudentInput{
		StudentProfile: domain.StudentProfile{
			Name:            "Ana Clara",
			Email:           "ana.clara@example.com",
			Gender:          domain.GenderFemale,
			Goal:            "Hipertrofia e Definição",
			ExperienceLevel: domain.LevelIntermediate,
			TrainingType:    domain.TrainingIndividual,
		},
		BirthDate:    yearsBefore(now, 28),
		ScheduleDays: []string{"Segunda", "Quarta", "Sexta"},
		ScheduleTime: "07:00",
	}, now)
	ana.ID = seedID("student/ana-clara")

	plan := mustPlan(domain.WeeklyPlan{
		{
			DayOfWeek: "Segunda",
			Focus:     "Pernas (Inferior Completo)",
			Exercises: []domain.Exercise{
				{ID: seedID("exercise/e1"), Name: "Agachamento Livre", MuscleGroup: "Pernas", Sets: 4, Reps: "8-10"},
				{ID: seedID("exercise/e2"), Name: "Leg Press 45", MuscleGroup: "Pernas", Sets: 3, Reps: "12-15"},
				{ID: seedID("exercise/e3"), Name: "Cadeira Extensora", MuscleGroup: "Pernas", Sets: 3, Reps: "15"},
			},
		},
		{
			DayOfWeek: "Terça",
			Focus:     "Superiores (Empurrar)",
			Exercises: []domain.Exercise{
				{ID: seedID("exercise/e4"), Name: "Supino Reto", MuscleGroup: "Peito", Sets: 4, Reps: "8-10"},
				{ID: seedID("exercise/e5"), Name: "Desenvolvimento com Halteres", MuscleGroup: "Ombros", Sets: 3, Reps: "10-12"},
			},
		},
		{DayOfWeek: "Quarta", Focus: "Descanso Ativo", Exercises: []domain.Exercise{}},
	})
	*ana = ana.WithPlan(plan)

	carlos := mustStudent(domain.NewStudentInput{
		StudentProfile: domain.StudentProfile{
			Name:            "Carlos Mendes",
			Email:           "carlos.mendes@example.com",
			Gender:          domain.GenderMale,
			Goal:            "Perda de Peso",
			ExperienceLevel: domain.LevelBeginner,
			TrainingType:    domain.TrainingGroup,
			Injuries:        "Lombalgia leve",
		},
		BirthDate:    yearsBefore(now, 35),
		ScheduleDays: []string{"Terça", "Quinta"},
		ScheduleTime: "18:30",
	}, now)
	carlos.ID = seedID("student/carlos-mendes")

	return []domain.Student{*ana, *carlos}
}

// SeedTemplates returns the starter template library.
func SeedTemplates(now time.Time) []domain.WorkoutTemplate {
	full := mustTemplate("Full Body Iniciante",
		"Aquecimento: 5 min de bicicleta.\nAgachamento goblet 3x12\nRemada baixa 3x12\nSupino com halteres 3x10\nPrancha 3x30s\nDescanso de 60s entre séries.",
		"iniciante, full body, academia", now.Add(-48*time.Hour))
	full.ID = seedID("template/full-body")

	legs := mustTemplate("Leg Day Avançado",
		"Aquecimento: mobilidade de quadril.\nAgachamento livre 5x5\nStiff 4x8\nAfundo 3x10 por perna\nPanturrilha 4x15\nDescanso de 2 min nos compostos.",
		"legday, avançado, força", now.Add(-24*time.Hour))
	legs.ID = seedID("template/leg-day")

	return []domain.WorkoutTemplate{*legs, *full}
}

func yearsBefore(now time.Time, years int) string {
	return now.AddDate(-years, 0, -1).Format(domain.BirthDateLayout)
}

func mustStudent(in domain.NewStudentInput, now time.Time) *domain.Student {
	s, err := domain.NewStudent(in, now)
	if err != nil {
		panic(fmt.Sprintf("seed student %q: %v", in.Name, err))
	}
	return s
}

func mustPlan(p domain.WeeklyPlan) domain.WeeklyPlan {
	out, err := p.Normalize()
	if err != nil {
		panic(fmt.Sprintf("seed plan: %v", err))
	}
	return out.FillMissing()
}

func mustTemplate(title, content, tags string, at time.Time) *domain.WorkoutTemplate {
	t, err := domain.NewTemplate(title, content, tags, at)
	if err != nil {
		panic(fmt.Sprintf("seed template %q: %v", title, err))
	}
	return t
}
