package services_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bensuskins/habit-hub/internal/config"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/services"
	"github.com/bensuskins/habit-hub/internal/testutil"
)

type authFixture struct {
	service   *services.AuthService
	accounts  *services.AccountService
	tokenRepo *repository.SQLiteAPITokenRepository
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	accounts := services.NewAccountService(db)
	tokenRepo := repository.NewAPITokenRepository(db)
	service, err := services.NewAuthService(context.Background(), config.Config{SessionSecret: "test-secret"},
		repository.NewUserRepository(db), tokenRepo, accounts)
	if err != nil {
		t.Fatalf("creating auth service: %v", err)
	}
	return authFixture{service: service, accounts: accounts, tokenRepo: tokenRepo}
}

func TestAuthService_OIDCOptional(t *testing.T) {
	fixture := newAuthFixture(t)
	if fixture.service.OIDCConfigured() {
		t.Error("expected OIDC to be disabled without an issuer")
	}
	if fixture.service.LoginURL("state") != "" {
		t.Error("expected empty login url without OIDC")
	}
}

func TestAuthService_PasswordLogin(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()

	registered, err := fixture.accounts.Register(ctx, services.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("registering: %v", err)
	}

	user, err := fixture.service.PasswordLogin(ctx, "ALICE@example.com", "correct horse")
	if err != nil {
		t.Fatalf("logging in: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}

	if _, err := fixture.service.PasswordLogin(ctx, "alice@example.com", "wrong"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := fixture.service.PasswordLogin(ctx, "nobody@example.com", "correct horse"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthService_SessionRoundTrip(t *testing.T) {
	fixture := newAuthFixture(t)

	recorder := httptest.NewRecorder()
	if err := fixture.service.SetSession(recorder, "user-123"); err != nil {
		t.Fatalf("setting session: %v", err)
	}

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range recorder.Result().Cookies() {
		request.AddCookie(cookie)
	}

	session, err := fixture.service.GetSession(request)
	if err != nil {
		t.Fatalf("reading session: %v", err)
	}
	if session.UserID != "user-123" {
		t.Errorf("expected user-123, got %q", session.UserID)
	}

	tampered := httptest.NewRequest(http.MethodGet, "/", nil)
	tampered.AddCookie(&http.Cookie{Name: "session", Value: "forged"})
	if _, err := fixture.service.GetSession(tampered); err == nil {
		t.Error("expected error for forged cookie")
	}
}

func TestAuthService_AuthenticateToken(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()

	user, _ := fixture.accounts.Register(ctx, services.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "pw"})
	past := time.Now().Add(-time.Hour)

	fixture.tokenRepo.Create(ctx, models.APIToken{Name: "api", TokenHash: repository.HashToken("api-token"), CreatedByUserID: user.ID})
	fixture.tokenRepo.Create(ctx, models.APIToken{Name: "feed", TokenHash: repository.HashToken("feed-token"), Scope: models.TokenScopeICal, CreatedByUserID: user.ID})
	fixture.tokenRepo.Create(ctx, models.APIToken{Name: "old", TokenHash: repository.HashToken("old-token"), ExpiresAt: &past, CreatedByUserID: user.ID})

	found, err := fixture.service.AuthenticateToken(ctx, "api-token", models.TokenScopeAPI)
	if err != nil {
		t.Fatalf("authenticating token: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("expected token owner %s, got %s", user.ID, found.ID)
	}

	tests := []struct {
		name  string
		token string
		scope models.TokenScope
	}{
		{"wrong scope", "feed-token", models.TokenScopeAPI},
		{"expired", "old-token", models.TokenScopeAPI},
		{"unknown", "nope", models.TokenScopeAPI},
		{"empty", "", models.TokenScopeICal},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := fixture.service.AuthenticateToken(ctx, test.token, test.scope); !errors.Is(err, services.ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
