package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/services"
	"github.com/bensuskins/habit-hub/internal/testutil"
)

func TestAccountService_RegisterSeedsDefaultRoutine(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	service := services.NewAccountService(db)
	ctx := context.Background()

	user, err := service.Register(ctx, services.RegisterInput{Name: "Alice", Email: " Alice@Example.com ", Password: "secret"})
	if err != nil {
		t.Fatalf("registering: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret" {
		t.Error("expected a bcrypt hash to be stored")
	}

	routines, err := repository.NewRoutineRepository(db).FindAll(ctx, user.ID)
	if err != nil {
		t.Fatalf("finding routines: %v", err)
	}
	if len(routines) != 1 {
		t.Fatalf("expected 1 seeded routine, got %d", len(routines))
	}
	seeded := routines[0]
	if seeded.Type != models.RoutineMorning || seeded.Time == nil || *seeded.Time != "08:00" || !seeded.Enabled {
		t.Errorf("unexpected seeded routine %+v", seeded)
	}
	if len(seeded.Weekdays()) != 7 {
		t.Errorf("expected seeded routine to run every day, got %v", seeded.Weekdays())
	}
}

func TestAccountService_RegisterValidation(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	service := services.NewAccountService(db)
	ctx := context.Background()

	_, err := service.Register(ctx, services.RegisterInput{Email: "bob"})
	var errs models.ValidationErrors
	if !errors.As(err, &errs) || len(errs) != 3 {
		t.Fatalf("expected name, email and password errors, got %v", err)
	}

	if _, err := service.Register(ctx, services.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pw"}); err != nil {
		t.Fatalf("registering: %v", err)
	}
	_, err = service.Register(ctx, services.RegisterInput{Name: "Bob", Email: "BOB@example.com", Password: "pw"})
	if !errors.As(err, &errs) || errs[0].Field != "email" {
		t.Errorf("expected duplicate email error, got %v", err)
	}
}

func TestAccountService_UpdateSettings(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	service := services.NewAccountService(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "Alice")

	dark := models.ThemeDark
	off := false
	settings, err := service.UpdateSettings(ctx, user.ID, services.SettingsInput{Theme: &dark, EmailNotifications: &off})
	if err != nil {
		t.Fatalf("updating settings: %v", err)
	}
	if settings.Theme != models.ThemeDark || settings.EmailNotifications || settings.Name != "Alice" {
		t.Errorf("unexpected settings %+v", settings)
	}

	bad := models.Language("fr")
	if _, err := service.UpdateSettings(ctx, user.ID, services.SettingsInput{Language: &bad}); err == nil {
		t.Error("expected validation error for unsupported language")
	}
}

func TestAccountService_DeleteRequiresConfirmation(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	service := services.NewAccountService(db)
	ctx := context.Background()

	user, _ := service.Register(ctx, services.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret"})

	if err := service.Delete(ctx, user.ID, "yes please"); !errors.Is(err, services.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if err := service.Delete(ctx, user.ID, services.DeleteConfirmation); err != nil {
		t.Fatalf("deleting account: %v", err)
	}

	if _, err := repository.NewUserRepository(db).FindByID(ctx, user.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected user to be deleted, got %v", err)
	}
	var routines int
	db.QueryRowContext(ctx, "SELECT COUNT(*) FROM routines").Scan(&routines)
	if routines != 0 {
		t.Errorf("expected seeded routine to be deleted, got %d", routines)
	}
}
