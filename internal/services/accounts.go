package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bensuskins/habit-hub/internal/database"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// DeleteConfirmation must be echoed back to delete an account.
const DeleteConfirmation = "DELETE_MY_ACCOUNT"

var ErrConfirmationRequired = errors.New("confirmation required")

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (input RegisterInput) validate() error {
	var errs models.ValidationErrors
	if strings.TrimSpace(input.Name) == "" {
		errs.Add("name", "name is required")
	}
	if email := strings.TrimSpace(input.Email); email == "" {
		errs.Add("email", "email is required")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "email is invalid")
	}
	switch {
	case input.Password == "":
		errs.Add("password", "password is required")
	case len(input.Password) > 72:
		errs.Add("password", "password must be at most 72 bytes")
	}
	return errs.Err()
}

type SettingsInput struct {
	Name               *string          `json:"name"`
	Theme              *models.Theme    `json:"theme"`
	Language           *models.Language `json:"language"`
	EmailNotifications *bool            `json:"emailNotifications"`
}

type AccountService struct {
	database     *sql.DB
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
}

func NewAccountService(database *sql.DB) *AccountService {
	return &AccountService{
		database:     database,
		userRepo:     repository.NewUserRepository(database),
		settingsRepo: repository.NewSettingsRepository(database),
	}
}

// Register creates a password account. An already registered email is reported as a
// validation error on the email field.
func (service *AccountService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	if err := input.validate(); err != nil {
		return models.User{}, err
	}

	email := normalizeEmail(input.Email)
	if _, err := service.userRepo.FindByEmail(ctx, email); err == nil {
		return models.User{}, models.ValidationErrors{{Field: "email", Message: "email is already registered"}}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	return service.CreateUser(ctx, models.User{
		Name:               strings.TrimSpace(input.Name),
		Email:              email,
		PasswordHash:       string(hash),
		Language:           models.LanguageArabic,
		EmailNotifications: true,
	})
}

// CreateUser inserts the user together with the starter routine every account begins with.
func (service *AccountService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	var created models.User
	err := database.WithTx(ctx, service.database, func(transaction *sql.Tx) error {
		var err error
		created, err = repository.NewUserRepository(transaction).Create(ctx, user)
		if err != nil {
			return err
		}
		_, err = repository.NewRoutineRepository(transaction).Create(ctx, defaultRoutine(created.ID))
		return err
	})
	if err != nil {
		return models.User{}, fmt.Errorf("creating account: %w", err)
	}

	slog.Info("created account", "id", created.ID)
	return created, nil
}

func defaultRoutine(userID string) models.Routine {
	startTime := "08:00"
	return models.Routine{
		UserID:     userID,
		Title:      "Plan the day",
		Type:       models.RoutineMorning,
		Time:       &startTime,
		RepeatDays: "0,1,2,3,4,5,6",
		Enabled:    true,
	}
}

func (service *AccountService) Settings(ctx context.Context, userID string) (models.Settings, error) {
	return service.settingsRepo.Get(ctx, userID)
}

func (service *AccountService) UpdateSettings(ctx context.Context, userID string, input SettingsInput) (models.Settings, error) {
	settings, err := service.settingsRepo.Get(ctx, userID)
	if err != nil {
		return models.Settings{}, err
	}

	if input.Name != nil {
		settings.Name = strings.TrimSpace(*input.Name)
	}
	if input.Theme != nil {
		settings.Theme = *input.Theme
	}
	if input.Language != nil {
		settings.Language = *input.Language
	}
	if input.EmailNotifications != nil {
		settings.EmailNotifications = *input.EmailNotifications
	}
	if err := settings.Validate(); err != nil {
		return models.Settings{}, err
	}

	if err := service.settingsRepo.Set(ctx, userID, settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// Delete removes the account and all data it owns in one transaction.
func (service *AccountService) Delete(ctx context.Context, userID string, confirm string) error {
	if confirm != DeleteConfirmation {
		return ErrConfirmationRequired
	}

	err := database.WithTx(ctx, service.database, func(transaction *sql.Tx) error {
		return repository.NewUserRepository(transaction).Purge(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	slog.Info("deleted account", "id", userID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
