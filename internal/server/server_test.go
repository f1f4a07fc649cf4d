package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bensuskins/habit-hub/internal/clock"
	"github.com/bensuskins/habit-hub/internal/config"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/services"
	"github.com/bensuskins/habit-hub/internal/testutil"
)

func setupServer(t *testing.T) (*Server, *repository.SQLiteAPITokenRepository, models.User) {
	t.Helper()
	database := testutil.NewTestDatabase(t)
	user := testutil.CreateUser(t, database, "Alice")
	cfg := config.Config{SessionSecret: "test-secret", Port: "0"}

	tokenRepo := repository.NewAPITokenRepository(database)
	accountService := services.NewAccountService(database)
	authService, err := services.NewAuthService(context.Background(), cfg, repository.NewUserRepository(database), tokenRepo, accountService)
	if err != nil {
		t.Fatalf("creating auth service: %v", err)
	}

	fixed := clock.Fixed{At: time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)}
	server := New(database, cfg, fixed, authService, accountService, services.NewLocalAvatarStore(t.TempDir()))
	return server, tokenRepo, user
}

func TestServer_Health(t *testing.T) {
	server, _, _ := setupServer(t)

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if recorder.Code != http.StatusOK || recorder.Body.String() != "ok" {
		t.Errorf("unexpected health response %d %q", recorder.Code, recorder.Body.String())
	}
}

func TestServer_APIRequiresAuth(t *testing.T) {
	server, _, _ := setupServer(t)

	for _, path := range []string{"/api/tasks", "/api/routines", "/api/achievements", "/api/dashboard"} {
		recorder := httptest.NewRecorder()
		server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, recorder.Code)
		}
	}
}

func TestServer_BearerTokenRoundTrip(t *testing.T) {
	server, tokenRepo, user := setupServer(t)
	if _, err := tokenRepo.Create(context.Background(), models.APIToken{
		Name: "cli", TokenHash: repository.HashToken("raw-token"), CreatedByUserID: user.ID,
	}); err != nil {
		t.Fatalf("creating token: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/api/routines", strings.NewReader(`{"title": "Meditate"}`))
	request.Header.Set("Authorization", "Bearer raw-token")
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	request = httptest.NewRequest(http.MethodGet, "/api/routines", nil)
	request.Header.Set("Authorization", "Bearer raw-token")
	recorder = httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)
	if !strings.Contains(recorder.Body.String(), "Meditate") {
		t.Errorf("expected created routine in listing, got %s", recorder.Body.String())
	}
}
