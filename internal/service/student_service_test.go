package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"alcyxob/trainerpro/internal/domain"
	"alcyxob/trainerpro/internal/repository/memory"
)

var testNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) // a Monday

func fixedClock() time.Time { return testNow }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStudentFixture(t *testing.T) (StudentService, []domain.Student) {
	t.Helper()
	seed := memory.SeedStudents(testNow)
	return NewStudentService(memory.NewStudentRepository(seed), fixedClock, quietLogger()), seed
}

func validInput() domain.NewStudentInput {
	return domain.NewStudentInput{
		StudentProfile: domain.StudentProfile{
			Name:            "Bruna Costa",
			Email:           "bruna@example.com",
			Goal:            "Condicionamento",
			ExperienceLevel: domain.LevelBeginner,
			TrainingType:    domain.TrainingIndividual,
		},
		BirthDate:    "2000-03-01",
		ScheduleDays: []string{"Friday", "Monday"},
	}
}

func TestStudentService_Create(t *testing.T) {
	svc, _ := newStudentFixture(t)
	ctx := context.Background()

	st, err := svc.CreateStudent(ctx, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Age != 24 || st.Status != domain.StatusActive || len(st.WeeklyPlan) != 0 {
		t.Errorf("student = %+v", st)
	}

	list, _ := svc.ListStudents(ctx)
	if len(list) != 3 || list[2].ID != st.ID {
		t.Errorf("new student not appended: %d", len(list))
	}

	bad := validInput()
	bad.ScheduleDays = nil
	if _, err := svc.CreateStudent(ctx, bad); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	list, _ = svc.ListStudents(ctx)
	if len(list) != 3 {
		t.Error("invalid create must not add a record")
	}
}

func TestStudentService_GetMissing(t *testing.T) {
	svc, _ := newStudentFixture(t)
	if _, err := svc.GetStudent(context.Background(), "nope"); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("err = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentService_UpdateProfile(t *testing.T) {
	svc, seed := newStudentFixture(t)
	ctx := context.Background()
	ana := seed[0]

	_, changed, err := svc.UpdateProfile(ctx, ana.ID, ana.Profile())
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("identical profile reported as changed")
	}

	p := ana.Profile()
	p.Name = "Ana Clara Souza"
	p.Injuries = "Tendinite no ombro"
	st, changed, err := svc.UpdateProfile(ctx, ana.ID, p)
	if err != nil {
		t.Fatal(err)
	}
	if !changed || st.Name != "Ana Clara Souza" || st.AvatarURL != domain.AvatarURL("Ana Clara Souza") {
		t.Errorf("changed=%v student=%+v", changed, st)
	}
	if len(st.WeeklyPlan) != len(ana.WeeklyPlan) || st.Age != ana.Age {
		t.Error("profile update must keep plan and age")
	}

	p.Email = "not-an-email"
	if _, _, err := svc.UpdateProfile(ctx, ana.ID, p); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	got, _ := svc.GetStudent(ctx, ana.ID)
	if got.Email != ana.Email {
		t.Error("failed update mutated the record")
	}
}

func TestStudentService_DeleteIsIdempotent(t *testing.T) {
	svc, seed := newStudentFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.DeleteStudent(ctx, seed[1].ID); err != nil {
			t.Fatalf("delete #%d: %v", i+1, err)
		}
	}
	if err := svc.DeleteStudent(ctx, "never-existed"); err != nil {
		t.Errorf("delete unknown: %v", err)
	}
	list, _ := svc.ListStudents(ctx)
	if len(list) != 1 {
		t.Errorf("len = %d", len(list))
	}
}

func TestStudentService_ToggleScheduleKeepsPlan(t *testing.T) {
	svc, seed := newStudentFixture(t)
	ctx := context.Background()
	ana := seed[0]

	st, err := svc.ToggleScheduleDay(ctx, ana.ID, "Terça")
	if err != nil {
		t.Fatal(err)
	}
	if !st.Schedule.Has(domain.Tuesday) {
		t.Error("Tuesday should now be scheduled")
	}
	if st.WeeklyPlan.ExerciseCount() != ana.WeeklyPlan.ExerciseCount() {
		t.Error("toggling the schedule must not touch the plan")
	}

	st, _ = svc.ToggleScheduleDay(ctx, ana.ID, "tuesday")
	if st.Schedule.Has(domain.Tuesday) || len(st.Schedule.Days) != len(ana.Schedule.Days) {
		t.Errorf("toggle twice should restore the schedule: %v", st.Schedule.Days)
	}

	if _, err := svc.ToggleScheduleDay(ctx, ana.ID, "Funday"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v", err)
	}
}

func TestStudentService_SetScheduleTime(t *testing.T) {
	svc, seed := newStudentFixture(t)
	ctx := context.Background()

	st, err := svc.SetScheduleTime(ctx, seed[0].ID, "19:45")
	if err != nil || st.Schedule.Time != "19:45" {
		t.Fatalf("st=%v err=%v", st, err)
	}
	if _, err := svc.SetScheduleTime(ctx, seed[0].ID, "25:00"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v", err)
	}
}

func TestStudentService_PlanEdits(t *testing.T) {
	svc, seed := newStudentFixture(t)
	ctx := context.Background()
	carlos := seed[1]

	st, ex, err := svc.AddExercise(ctx, carlos.ID, "Quinta", "Cardio", domain.NewExerciseInput{
		Name: "Bicicleta", MuscleGroup: "cardio", Sets: 1, Reps: "20 min",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !st.WeeklyPlan.HasWorkout(domain.Thursday) {
		t.Fatal("Thursday should have a workout")
	}

	st, err = svc.RemoveExercise(ctx, carlos.ID, "Thursday", ex.ID)
	if err != nil {
		t.Fatal(err)
	}
	if st.WeeklyPlan.HasWorkout(domain.Thursday) {
		t.Error("exercise not removed")
	}
	if _, err := svc.RemoveExercise(ctx, carlos.ID, "Thursday", ex.ID); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("err = %v, want ErrExerciseNotFound", err)
	}

	st, err = svc.ReplacePlan(ctx, carlos.ID, domain.WeeklyPlan{
		{DayOfWeek: "Sexta", Focus: "Full", Exercises: []domain.Exercise{{Name: "Burpee", MuscleGroup: "full body", Sets: 3, Reps: "15"}}},
		{DayOfWeek: "Terça", Focus: "Core", Exercises: []domain.Exercise{{ID: "keep-me", Name: "Prancha", MuscleGroup: "abs", Sets: 3, Reps: "30s"}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if st.WeeklyPlan[0].DayOfWeek != domain.Tuesday || st.WeeklyPlan[0].Exercises[0].ID != "keep-me" {
		t.Errorf("plan = %+v", st.WeeklyPlan)
	}
	if st.WeeklyPlan[1].Exercises[0].ID == "" || st.WeeklyPlan[1].Exercises[0].VideoURL != domain.VideoPlaceholder {
		t.Error("missing id/video not filled")
	}
	if !st.Schedule.Has(domain.Tuesday) || st.Schedule.Has(domain.Friday) {
		t.Error("replacing the plan must not change the schedule")
	}
}

func TestStudentService_SetExerciseVideo(t *testing.T) {
	svc, seed := newStudentFixture(t)
	ctx := context.Background()
	ana := seed[0]
	exID := ana.WeeklyPlan[0].Exercises[0].ID

	st, prev, err := svc.SetExerciseVideo(ctx, ana.ID, exID, "https://cdn/x.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if prev != domain.VideoPlaceholder || st.WeeklyPlan[0].Exercises[0].VideoURL != "https://cdn/x.mp4" {
		t.Errorf("prev=%q video=%q", prev, st.WeeklyPlan[0].Exercises[0].VideoURL)
	}
	if _, _, err := svc.SetExerciseVideo(ctx, ana.ID, "nope", "x"); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestStudentService_WeekView(t *testing.T) {
	svc, seed := newStudentFixture(t)

	view, err := svc.WeekView(context.Background(), seed[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	// Ana: scheduled Mon/Wed/Fri, workouts Mon/Tue, Wednesday session is empty.
	want := map[domain.Weekday]domain.DayKind{
		domain.Monday:    domain.DayPlanned,
		domain.Tuesday:   domain.DayMismatch,
		domain.Wednesday: domain.DayUnplanned,
		domain.Thursday:  domain.DayRest,
		domain.Friday:    domain.DayUnplanned,
	}
	for _, d := range view.Days {
		if k, ok := want[d.Day]; ok && d.Kind != k {
			t.Errorf("%s = %s, want %s", d.Day, d.Kind, k)
		}
	}
	if view.DefaultDay != domain.Monday {
		t.Errorf("default day = %s", view.DefaultDay)
	}
}

func TestStudentService_ConcurrentUpdatesAreNotLost(t *testing.T) {
	svc, seed := newStudentFixture(t)
	ctx := context.Background()
	carlos := seed[1]

	days := []string{"Monday", "Wednesday", "Friday", "Saturday", "Sunday"}
	var wg sync.WaitGroup
	for _, d := range days {
		wg.Add(1)
		go func(day string) {
			defer wg.Done()
			if _, err := svc.ToggleScheduleDay(ctx, carlos.ID, day); err != nil {
				t.Error(err)
			}
		}(d)
	}
	wg.Wait()

	st, _ := svc.GetStudent(ctx, carlos.ID)
	if len(st.Schedule.Days) != len(carlos.Schedule.Days)+len(days) {
		t.Errorf("schedule = %v, some toggles were lost", st.Schedule.Days)
	}
}
