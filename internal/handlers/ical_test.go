package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bensuskins/habit-hub/internal/config"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/services"
	"github.com/bensuskins/habit-hub/internal/testutil"
	"github.com/go-chi/chi/v5"
)

func setupICalRouter(t *testing.T) (*chi.Mux, repository.APITokenRepository, models.User) {
	t.Helper()
	database := testutil.NewTestDatabase(t)
	user := testutil.CreateUser(t, database, "Alice")
	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewAPITokenRepository(database)
	routineRepo := repository.NewRoutineRepository(database)

	authService, err := services.NewAuthService(context.Background(), config.Config{SessionSecret: "test-secret"},
		userRepo, tokenRepo, services.NewAccountService(database))
	if err != nil {
		t.Fatalf("creating auth service: %v", err)
	}
	calendarService := services.NewCalendarService(repository.NewTaskRepository(database), routineRepo, fixedClock)

	startTime := "07:00"
	if _, err := routineRepo.Create(context.Background(), models.Routine{
		UserID: user.ID, Title: "Morning run", Type: models.RoutineMorning, Time: &startTime, RepeatDays: "daily", Enabled: true,
	}); err != nil {
		t.Fatalf("creating routine: %v", err)
	}

	router := chi.NewRouter()
	router.Get("/ical", NewICalHandler(authService, calendarService).Feed)
	return router, tokenRepo, user
}

func TestICalHandler_TokenScopes(t *testing.T) {
	router, tokenRepo, user := setupICalRouter(t)
	ctx := context.Background()

	if _, err := tokenRepo.Create(ctx, models.APIToken{
		Name: "API Token", TokenHash: repository.HashToken("api-scoped"), Scope: models.TokenScopeAPI, CreatedByUserID: user.ID,
	}); err != nil {
		t.Fatalf("creating api token: %v", err)
	}
	if _, err := tokenRepo.Create(ctx, models.APIToken{
		Name: "iCal Token", TokenHash: repository.HashToken("ical-scoped"), Scope: models.TokenScopeICal, CreatedByUserID: user.ID,
	}); err != nil {
		t.Fatalf("creating ical token: %v", err)
	}

	tests := []struct {
		name     string
		token    string
		expected int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"api scoped token", "api-scoped", http.StatusUnauthorized},
		{"ical scoped token", "ical-scoped", http.StatusOK},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/ical?token="+test.token, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			if recorder.Code != test.expected {
				t.Fatalf("expected status %d, got %d", test.expected, recorder.Code)
			}
			if test.expected != http.StatusOK {
				return
			}
			if !strings.HasPrefix(recorder.Header().Get("Content-Type"), "text/calendar") {
				t.Errorf("unexpected content type %q", recorder.Header().Get("Content-Type"))
			}
			body := recorder.Body.String()
			if !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "Morning run") {
				t.Errorf("expected calendar with the routine, got %s", body)
			}
		})
	}
}
