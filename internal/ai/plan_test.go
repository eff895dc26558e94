package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"alcyxob/trainerpro/internal/domain"
)

type stubGenerator struct {
	jsonCalls int
	textCalls int
	lastReq   Request
	out       string
	err       error
}

func (s *stubGenerator) GenerateJSON(_ context.Context, req Request) (string, error) {
	s.jsonCalls++
	s.lastReq = req
	return s.out, s.err
}

func (s *stubGenerator) GenerateText(_ context.Context, req Request) (string, error) {
	s.textCalls++
	s.lastReq = req
	return s.out, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStudent() domain.Student {
	return domain.Student{
		ID:              "s1",
		Name:            "Ana Clara",
		Age:             28,
		Gender:          domain.GenderFemale,
		Goal:            "Hipertrofia",
		ExperienceLevel: domain.LevelIntermediate,
		TrainingType:    domain.TrainingIndividual,
		Schedule:        domain.Schedule{Days: []domain.Weekday{domain.Monday, domain.Wednesday}, Time: "07:00"},
		Injuries:        "Dor no joelho esquerdo",
		WeeklyPlan:      domain.WeeklyPlan{},
	}
}

const twoDayPlan = `[
 {"dayOfWeek":"Wednesday","focus":"Pernas","exercises":[
   {"name":"Agachamento","muscleGroup":"legs","sets":4,"reps":"10"},
   {"name":"Leg press","muscleGroup":"legs","sets":0,"reps":"12"}]},
 {"dayOfWeek":"Monday","focus":"Peito","exercises":[
   {"name":"Supino","muscleGroup":"chest","sets":3,"reps":"8-10","notes":"controle"}]},
 {"dayOfWeek":"Tuesday","focus":"Rest","exercises":[]}
]`

func TestPlanGenerate_NoCredentialDoesNotCallGenerator(t *testing.T) {
	gen := &stubGenerator{out: twoDayPlan}
	pg := NewPlanGenerator(gen, StaticKey("  "), Options{}, quietLogger())

	res, err := pg.Generate(context.Background(), testStudent(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != PlanDisabled {
		t.Errorf("status = %q, want %q", res.Status, PlanDisabled)
	}
	if len(res.Plan) != 0 {
		t.Errorf("plan = %v, want empty", res.Plan)
	}
	if gen.jsonCalls != 0 {
		t.Errorf("generator called %d times, want 0", gen.jsonCalls)
	}
}

func TestPlanGenerate_Success(t *testing.T) {
	gen := &stubGenerator{out: twoDayPlan}
	pg := NewPlanGenerator(gen, StaticKey("key"), Options{Model: "m1"}, quietLogger())

	res, err := pg.Generate(context.Background(), testStudent(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != PlanSucceeded {
		t.Fatalf("status = %q, want %q", res.Status, PlanSucceeded)
	}
	if gen.lastReq.APIKey != "key" || gen.lastReq.Model != "m1" {
		t.Errorf("request = %+v", gen.lastReq)
	}
	if gen.lastReq.Schema != WeekPlanSchema {
		t.Error("plan request must carry the weekly plan schema")
	}

	if len(res.Plan) != 3 {
		t.Fatalf("sessions = %d, want 3", len(res.Plan))
	}
	wantDays := []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday}
	for i, d := range wantDays {
		if res.Plan[i].DayOfWeek != d {
			t.Errorf("session %d day = %s, want %s", i, res.Plan[i].DayOfWeek, d)
		}
	}
	if res.Plan.ExerciseCount() != 3 {
		t.Errorf("exercise count = %d, want 3", res.Plan.ExerciseCount())
	}

	ids := map[string]bool{}
	for _, s := range res.Plan {
		for _, ex := range s.Exercises {
			if ex.ID == "" || ids[ex.ID] {
				t.Errorf("exercise %q has empty or duplicate id %q", ex.Name, ex.ID)
			}
			ids[ex.ID] = true
			if ex.VideoURL != domain.VideoPlaceholder {
				t.Errorf("exercise %q video = %q", ex.Name, ex.VideoURL)
			}
			if ex.Sets < 1 {
				t.Errorf("exercise %q sets = %d", ex.Name, ex.Sets)
			}
		}
	}
	if rest, _ := res.Plan.Session(domain.Tuesday); rest.Exercises == nil {
		t.Error("rest day exercises must be an empty list, not nil")
	}
}

func TestPlanGenerate_EmptyArray(t *testing.T) {
	gen := &stubGenerator{out: "[]"}
	pg := NewPlanGenerator(gen, StaticKey("key"), Options{}, quietLogger())

	res, err := pg.Generate(context.Background(), testStudent(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != PlanEmpty || len(res.Plan) != 0 {
		t.Errorf("got %+v, want empty status", res)
	}
}

func TestPlanGenerate_Failures(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
	}{
		{"transport error", "", errors.New("connection reset")},
		{"empty text", "   ", nil},
		{"not json", "Here is your plan!", nil},
		{"object instead of array", `{"dayOfWeek":"Monday"}`, nil},
		{"unknown weekday", `[{"dayOfWeek":"Funday","focus":"x","exercises":[]}]`, nil},
		{"unknown muscle group", `[{"dayOfWeek":"Monday","focus":"x","exercises":[{"name":"a","muscleGroup":"neck","sets":3,"reps":"10"}]}]`, nil},
		{"duplicate day", `[{"dayOfWeek":"Monday","focus":"x","exercises":[]},{"dayOfWeek":"Monday","focus":"y","exercises":[]}]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{out: tt.out, err: tt.err}
			pg := NewPlanGenerator(gen, StaticKey("key"), Options{}, quietLogger())

			res, err := pg.Generate(context.Background(), testStudent(), "")
			if !errors.Is(err, ErrGenerationFailed) {
				t.Fatalf("err = %v, want ErrGenerationFailed", err)
			}
			if len(res.Plan) != 0 {
				t.Errorf("failed generation returned a partial plan: %v", res.Plan)
			}
		})
	}
}

func TestPlanGenerate_RejectsIncompleteStudent(t *testing.T) {
	gen := &stubGenerator{out: twoDayPlan}
	pg := NewPlanGenerator(gen, StaticKey("key"), Options{}, quietLogger())

	s := testStudent()
	s.Goal = ""
	s.Age = 0

	_, err := pg.Generate(context.Background(), s, "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if !strings.Contains(err.Error(), "age") || !strings.Contains(err.Error(), "goal") {
		t.Errorf("error %q should name the missing fields", err)
	}
	if gen.jsonCalls != 0 {
		t.Errorf("generator called %d times, want 0", gen.jsonCalls)
	}
}

func TestPlanGenerate_DoesNotModifyStudent(t *testing.T) {
	gen := &stubGenerator{out: twoDayPlan}
	pg := NewPlanGenerator(gen, StaticKey("key"), Options{}, quietLogger())
	s := testStudent()

	if _, err := pg.Generate(context.Background(), s, ""); err != nil {
		t.Fatal(err)
	}
	if len(s.WeeklyPlan) != 0 {
		t.Errorf("student plan modified: %v", s.WeeklyPlan)
	}
}

func TestBuildPlanPrompt(t *testing.T) {
	s := testStudent()

	p := buildPlanPrompt(s, "", DefaultLanguage)
	for _, want := range []string{
		"Ana Clara",
		"28 years",
		"Intermediate",
		"Personal training",
		"Monday, Wednesday",
		"07:00",
		"Hipertrofia",
		"Dor no joelho esquerdo",
		"Brazilian Portuguese",
		"ONLY with JSON",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	p = buildPlanPrompt(s, "Maratona em abril", "English")
	if !strings.Contains(p, "Maratona em abril") || strings.Contains(p, "Hipertrofia") {
		t.Error("goal override should replace the stored goal")
	}
	if !strings.Contains(p, "in English") {
		t.Error("configured language not used")
	}
}
