package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alcyxob/trainerpro/internal/ai"
	"alcyxob/trainerpro/internal/domain"
	"alcyxob/trainerpro/internal/repository/memory"
	"alcyxob/trainerpro/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) // a Monday

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubPlanGenerator struct {
	result ai.PlanResult
	err    error
}

func (g stubPlanGenerator) Generate(context.Context, domain.Student, string) (ai.PlanResult, error) {
	return g.result, g.err
}

type stubTextGenerator struct{ out string }

func (g stubTextGenerator) Generate(_ context.Context, topic string) (string, error) {
	if topic == "" {
		return "", ai.ErrEmptyTopic
	}
	return g.out, nil
}

type testServer struct {
	router *gin.Engine
	seed   []domain.Student
}

func newTestServer(t *testing.T, gen service.PlanGenerator, auth service.AuthService) *testServer {
	t.Helper()
	clock := func() time.Time { return testNow }
	logger := quietLogger()
	seed := memory.SeedStudents(testNow)

	students := service.NewStudentService(memory.NewStudentRepository(seed), clock, logger)
	plans := service.NewPlanService(students, gen, logger)
	templates := service.NewTemplateService(memory.NewTemplateRepository(memory.SeedTemplates(testNow)), stubTextGenerator{out: "Aquecimento: 5 min"}, clock, logger)

	router := gin.New()
	router.Use(AccessLog(logger))
	SetupRoutes(router, Services{
		Auth:      auth,
		Students:  students,
		Plans:     plans,
		Templates: templates,
		Dashboard: service.NewDashboardService(students, templates, plans, clock),
		Videos:    service.NewVideoService(students, nil, 0, clock, logger),
	}, logger)
	return &testServer{router: router, seed: seed}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func disabledGenerator() service.PlanGenerator {
	return ai.NewPlanGenerator(nil, ai.StaticKey(""), ai.Options{}, quietLogger())
}

func TestPing(t *testing.T) {
	s := newTestServer(t, disabledGenerator(), nil)
	w := s.do(t, http.MethodGet, "/ping", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestStudents_ListIncludesDayLabels(t *testing.T) {
	s := newTestServer(t, disabledGenerator(), nil)

	w := s.do(t, http.MethodGet, "/api/v1/students", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	list := decode[[]StudentResponse](t, w)
	if len(list) != 2 {
		t.Fatalf("len = %d", len(list))
	}
	if got := list[0].WeeklyPlan[0]; got.DayOfWeek != domain.Monday || got.DayLabel != "Segunda" {
		t.Errorf("first session = %+v", got)
	}
}

func TestStudents_CreateAndErrors(t *testing.T) {
	s := newTestServer(t, disabledGenerator(), nil)

	valid := map[string]any{
		"name": "Bruna Costa", "email": "bruna@example.com", "goal": "Condicionamento",
		"experienceLevel": "beginner", "trainingType": "individual",
		"birthDate": "2000-03-01", "scheduleDays": []string{"Sexta", "Monday"},
	}
	w := s.do(t, http.MethodPost, "/api/v1/students", valid)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	created := decode[StudentResponse](t, w)
	if created.Age != 24 || len(created.Schedule.Days) != 2 || created.Schedule.Days[0] != domain.Monday {
		t.Errorf("created = %+v", created.Student)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"no schedule days", http.MethodPost, "/api/v1/students", map[string]any{"name": "X", "email": "x@example.com", "birthDate": "2000-01-01"}, http.StatusBadRequest},
		{"unknown student", http.MethodGet, "/api/v1/students/nope", nil, http.StatusNotFound},
		{"bad weekday", http.MethodPost, "/api/v1/students/" + s.seed[0].ID + "/schedule/days/Funday/toggle", nil, http.StatusBadRequest},
		{"bad time", http.MethodPut, "/api/v1/students/" + s.seed[0].ID + "/schedule/time", map[string]string{"time": "7h"}, http.StatusBadRequest},
		{"missing exercise", http.MethodDelete, "/api/v1/students/" + s.seed[0].ID + "/plan/days/Monday/exercises/nope", nil, http.StatusNotFound},
		{"video storage off", http.MethodPost, "/api/v1/students/" + s.seed[0].ID + "/exercises/x/video", map[string]string{"contentType": "video/mp4"}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body)
			}
		})
	}
}

func TestStudents_DeleteIsIdempotent(t *testing.T) {
	s := newTestServer(t, disabledGenerator(), nil)
	path := "/api/v1/students/" + s.seed[1].ID

	for i := 0; i < 2; i++ {
		if w := s.do(t, http.MethodDelete, path, nil); w.Code != http.StatusNoContent {
			t.Fatalf("delete #%d status = %d", i+1, w.Code)
		}
	}
	if w := s.do(t, http.MethodGet, path, nil); w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", w.Code)
	}
}

func TestStudents_UpdateProfileReportsChange(t *testing.T) {
	s := newTestServer(t, disabledGenerator(), nil)
	ana := s.seed[0]
	path := "/api/v1/students/" + ana.ID

	w := s.do(t, http.MethodPut, path, ana.Profile())
	if w.Code != http.StatusOK || decode[ProfileUpdateResponse](t, w).Changed {
		t.Fatalf("identical profile: %d %s", w.Code, w.Body)
	}

	p := ana.Profile()
	p.Goal = "Força"
	w = s.do(t, http.MethodPut, path, p)
	resp := decode[ProfileUpdateResponse](t, w)
	if !resp.Changed || resp.Student.Goal != "Força" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestPlan_GenerateDisabled(t *testing.T) {
	s := newTestServer(t, disabledGenerator(), nil)
	ana := s.seed[0]

	w := s.do(t, http.MethodPost, "/api/v1/students/"+ana.ID+"/plan/generate", map[string]any{"apply": true})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	resp := decode[GenerationResponse](t, w)
	if resp.Status != ai.PlanDisabled || resp.Applied || len(resp.Plan) != 0 || resp.Message == "" {
		t.Errorf("resp = %+v", resp)
	}

	w = s.do(t, http.MethodGet, "/api/v1/students/"+ana.ID+"/plan", nil)
	if plan := decode[[]SessionResponse](t, w); len(plan) != len(ana.WeeklyPlan) {
		t.Error("disabled generation changed the plan")
	}
}

func TestPlan_GenerateApply(t *testing.T) {
	plan := domain.WeeklyPlan{
		{DayOfWeek: domain.Monday, Focus: "Descanso", Exercises: []domain.Exercise{}},
		{DayOfWeek: domain.Thursday, Focus: "Costas", Exercises: []domain.Exercise{
			{ID: "g1", Name: "Remada", MuscleGroup: domain.MuscleBack, Sets: 3, Reps: "12", VideoURL: domain.VideoPlaceholder},
		}},
	}
	s := newTestServer(t, stubPlanGenerator{result: ai.PlanResult{Status: ai.PlanSucceeded, Plan: plan}}, nil)
	id := s.seed[1].ID

	w := s.do(t, http.MethodPost, "/api/v1/students/"+id+"/plan/generate", GeneratePlanRequest{Goal: "Postura", Apply: true})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	resp := decode[GenerationResponse](t, w)
	if !resp.Applied || resp.View.ActiveDay != domain.Thursday || resp.View.Generating {
		t.Errorf("resp = %+v", resp)
	}

	w = s.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	if d := decode[service.Dashboard](t, w); d.PlansGenerated != 1 {
		t.Errorf("dashboard = %+v", d)
	}
}

func TestPlan_GenerateFailureAndPreviewBody(t *testing.T) {
	s := newTestServer(t, stubPlanGenerator{err: ai.ErrGenerationFailed}, nil)
	id := s.seed[0].ID

	// no body: preview with the stored goal
	w := s.do(t, http.MethodPost, "/api/v1/students/"+id+"/plan/generate", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	w = s.do(t, http.MethodGet, "/api/v1/students/"+id+"/plan/view", nil)
	if v := decode[domain.PlanView](t, w); v.Generating {
		t.Error("failed generation left the view generating")
	}
}

func TestPlan_SelectDay(t *testing.T) {
	s := newTestServer(t, disabledGenerator(), nil)
	path := "/api/v1/students/" + s.seed[0].ID + "/plan/view"

	w := s.do(t, http.MethodPut, path, SelectDayRequest{Day: "sexta-feira"})
	if v := decode[domain.PlanView](t, w); v.ActiveDay != domain.Friday {
		t.Errorf("view = %+v", v)
	}
	if w := s.do(t, http.MethodPut, path, SelectDayRequest{Day: "nunca"}); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestTemplates(t *testing.T) {
	s := newTestServer(t, disabledGenerator(), nil)

	w := s.do(t, http.MethodPost, "/api/v1/templates", CreateTemplateRequest{Title: "Leg Day", Content: "Squats 5x5", Tags: "Legs, Strength"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"%23leg", 2},
		{"squats", 1},
		{"%23xyz", 0},
	}
	for _, tt := range tests {
		w := s.do(t, http.MethodGet, "/api/v1/templates?q="+tt.query, nil)
		if got := decode[[]domain.WorkoutTemplate](t, w); len(got) != tt.want {
			t.Errorf("q=%q: %d results, want %d", tt.query, len(got), tt.want)
		}
	}

	w = s.do(t, http.MethodPost, "/api/v1/templates/generate", GenerateContentRequest{Topic: "Pernas"})
	if resp := decode[GeneratedContentResponse](t, w); w.Code != http.StatusOK || resp.Content != "Aquecimento: 5 min" {
		t.Errorf("generate = %d %s", w.Code, w.Body)
	}
	if w := s.do(t, http.MethodPost, "/api/v1/templates/generate", GenerateContentRequest{}); w.Code != http.StatusBadRequest {
		t.Errorf("empty topic status = %d", w.Code)
	}
	if w := s.do(t, http.MethodDelete, "/api/v1/templates/missing", nil); w.Code != http.StatusNoContent {
		t.Errorf("delete missing status = %d", w.Code)
	}
}

func TestAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	auth := service.NewAuthService(string(hash), "secret", time.Hour, time.Now)
	s := newTestServer(t, disabledGenerator(), auth)

	if w := s.do(t, http.MethodGet, "/api/v1/students", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{Password: "errada"}); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d", w.Code)
	}

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{Password: "s3nha"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body)
	}
	token := decode[LoginResponse](t, w).Token

	if w := s.do(t, http.MethodGet, "/api/v1/students", nil, "Authorization", "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("with token status = %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/v1/students", nil, "Authorization", "Token "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong scheme status = %d", w.Code)
	}
}
