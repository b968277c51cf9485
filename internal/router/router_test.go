package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"wellspace/backend/internal/db"
	"wellspace/backend/internal/handler"
	"wellspace/backend/internal/kv"
	"wellspace/backend/internal/repository"
	"wellspace/backend/internal/router"
	"wellspace/backend/internal/service"
	"wellspace/backend/internal/timer"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

type planEnvelope struct {
	Plan []struct {
		Day   int      `json:"day"`
		Tasks []string `json:"tasks"`
	} `json:"plan"`
}

type timerEnvelope struct {
	Timer struct {
		Phase            string `json:"phase"`
		RemainingSeconds int    `json:"remainingSeconds"`
		Running          bool   `json:"running"`
	} `json:"timer"`
}

type dashboardEnvelope struct {
	Dashboard struct {
		Steps             int `json:"steps"`
		CompletedDays     int `json:"completedDays"`
		CompletedWorkouts int `json:"completedWorkouts"`
		SleepSessions     int `json:"sleepSessions"`
	} `json:"dashboard"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string) (string, error) {
	return "", errors.New("service unavailable")
}

func TestAuthAndSessionFlow(t *testing.T) {
	engine := setupTestEngine(t)

	user1 := signUpUser(t, engine, "Alice", "alice@example.com", "secret1")
	if user1.User.Name != "Alice" {
		t.Fatalf("expected public projection with name, got %+v", user1.User)
	}

	// Duplicate email, different case, must conflict.
	status, raw := requestJSON(t, engine, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Imposter", "email": "ALICE@example.com", "password": "secret2",
	})
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", status, raw)
	}
	var conflict apiErrorEnvelope
	if err := json.Unmarshal(raw, &conflict); err != nil {
		t.Fatalf("unmarshal conflict: %v", err)
	}
	if conflict.Error.Code != "email_exists" {
		t.Fatalf("expected email_exists, got %s", conflict.Error.Code)
	}

	// Wrong password and unknown email fail alike.
	status, _ = requestJSON(t, engine, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", status)
	}

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/auth/session", user1.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for session, got %d: %s", status, raw)
	}

	status, _ = requestJSON(t, engine, http.MethodPost, "/api/auth/logout", user1.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for logout, got %d", status)
	}
	status, _ = requestJSON(t, engine, http.MethodGet, "/api/auth/session", user1.Token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 after logout, got %d", status)
	}
}

func TestRoutineFallbackAndToggle(t *testing.T) {
	engine := setupTestEngine(t)
	user := signUpUser(t, engine, "Alice", "alice@example.com", "secret1")

	// The generator always fails, so the fixed 3-day fallback is served.
	status, raw := requestJSON(t, engine, http.MethodPost, "/api/routine/generate", user.Token, map[string]int{
		"freeMinutes": 30,
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 with fallback plan, got %d: %s", status, raw)
	}
	var plan planEnvelope
	if err := json.Unmarshal(raw, &plan); err != nil {
		t.Fatalf("unmarshal plan: %v", err)
	}
	if len(plan.Plan) != 3 {
		t.Fatalf("expected 3-entry fallback plan, got %d entries", len(plan.Plan))
	}
	if plan.Plan[0].Day != 1 || plan.Plan[2].Day != 3 {
		t.Fatalf("unexpected fallback days: %+v", plan.Plan)
	}

	status, _ = requestJSON(t, engine, http.MethodPost, "/api/routine/generate", user.Token, map[string]int{
		"freeMinutes": 20,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported freeMinutes, got %d", status)
	}

	// Double toggle restores the prior set.
	status, _ = requestJSON(t, engine, http.MethodPost, "/api/routine/days/2/toggle", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on toggle, got %d", status)
	}
	status, raw = requestJSON(t, engine, http.MethodPost, "/api/routine/days/2/toggle", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on second toggle, got %d", status)
	}
	var toggled struct {
		CompletedDays []int `json:"completedDays"`
	}
	if err := json.Unmarshal(raw, &toggled); err != nil {
		t.Fatalf("unmarshal toggle response: %v", err)
	}
	if len(toggled.CompletedDays) != 0 {
		t.Fatalf("expected empty set after double toggle, got %v", toggled.CompletedDays)
	}

	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/routine/plan", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on clear, got %d", status)
	}
	status, _ = requestJSON(t, engine, http.MethodGet, "/api/routine/plan", user.Token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 after clear, got %d", status)
	}
}

func TestFocusTimerEndpoints(t *testing.T) {
	engine := setupTestEngine(t)
	user := signUpUser(t, engine, "Alice", "alice@example.com", "secret1")

	status, raw := requestJSON(t, engine, http.MethodGet, "/api/focus/state", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for state, got %d", status)
	}
	var state timerEnvelope
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if state.Timer.Phase != timer.PhaseWork || state.Timer.RemainingSeconds != timer.WorkDurationSeconds {
		t.Fatalf("unexpected initial timer: %+v", state.Timer)
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/focus/start", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on start, got %d", status)
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("unmarshal start: %v", err)
	}
	if !state.Timer.Running {
		t.Fatal("expected timer running after start")
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/focus/reset", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on reset, got %d", status)
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("unmarshal reset: %v", err)
	}
	if state.Timer.Running || state.Timer.RemainingSeconds != timer.WorkDurationSeconds {
		t.Fatalf("unexpected timer after reset: %+v", state.Timer)
	}

	status, _ = requestJSON(t, engine, http.MethodGet, "/api/focus/state", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}

func TestProgressAndDashboardIsolation(t *testing.T) {
	engine := setupTestEngine(t)
	user1 := signUpUser(t, engine, "Alice", "alice@example.com", "secret1")
	user2 := signUpUser(t, engine, "Bob", "bob@example.com", "hunter2")

	status, _ := requestJSON(t, engine, http.MethodPut, "/api/steps", user1.Token, map[string]int{"total": 4200})
	if status != http.StatusOK {
		t.Fatalf("expected 200 recording steps, got %d", status)
	}
	status, _ = requestJSON(t, engine, http.MethodPost, "/api/workouts/2/toggle", user1.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 toggling workout, got %d", status)
	}
	status, _ = requestJSON(t, engine, http.MethodPost, "/api/sounds/1/play", user1.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 playing sound, got %d", status)
	}

	status, raw := requestJSON(t, engine, http.MethodGet, "/api/dashboard", user1.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for dashboard, got %d", status)
	}
	var dash dashboardEnvelope
	if err := json.Unmarshal(raw, &dash); err != nil {
		t.Fatalf("unmarshal dashboard: %v", err)
	}
	if dash.Dashboard.Steps != 4200 || dash.Dashboard.CompletedWorkouts != 1 || dash.Dashboard.SleepSessions != 1 {
		t.Fatalf("unexpected dashboard: %+v", dash.Dashboard)
	}

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/dashboard", user2.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for user2 dashboard, got %d", status)
	}
	if err := json.Unmarshal(raw, &dash); err != nil {
		t.Fatalf("unmarshal user2 dashboard: %v", err)
	}
	if dash.Dashboard.Steps != 0 || dash.Dashboard.CompletedWorkouts != 0 {
		t.Fatalf("user2 state leaked: %+v", dash.Dashboard)
	}
}

func TestCORSPreflight(t *testing.T) {
	engine := setupTestEngine(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	recorder := httptest.NewRecorder()

	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", recorder.Code)
	}
	if recorder.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin header: %s", recorder.Header().Get("Access-Control-Allow-Origin"))
	}
}

func setupTestEngine(t *testing.T) http.Handler {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if err := db.RunMigrations(database, migrationsDir); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	store := kv.NewSQLiteStore(database)
	userRepo := repository.NewUserRepository(store)
	sessionRepo := repository.NewSessionRepository(store)
	progressRepo := repository.NewProgressRepository(store)
	routineRepo := repository.NewRoutineRepository(store)

	authService := service.NewAuthService(userRepo, sessionRepo, "test-secret", 24*time.Hour)
	focusService := service.NewFocusService(progressRepo, timer.Manual())
	t.Cleanup(focusService.Shutdown)
	routineService := service.NewRoutineService(failingGenerator{}, routineRepo, progressRepo)
	progressService := service.NewProgressService(progressRepo)

	authHandler := handler.NewAuthHandler(authService)
	focusHandler := handler.NewFocusHandler(focusService)
	routineHandler := handler.NewRoutineHandler(routineService)
	progressHandler := handler.NewProgressHandler(progressService)

	return router.New(authService, authHandler, focusHandler, routineHandler, progressHandler, []string{"http://localhost:5173"})
}

func signUpUser(t *testing.T, server http.Handler, name, email, password string) authResponse {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("signup %s failed with status %d: %s", email, status, string(body))
	}
	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal signup response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("empty token for user %s", email)
	}
	return resp
}

func requestJSON(
	t *testing.T,
	server http.Handler,
	method, path, token string,
	body interface{},
) (int, []byte) {
	t.Helper()

	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder.Code, recorder.Body.Bytes()
}
