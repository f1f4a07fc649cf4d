package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/google/uuid"
)

const userColumns = `id, email, name, password_hash, oidc_subject, image, theme, language,
	email_notifications, created_at, updated_at`

type UserRepository interface {
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByOIDCSubject(ctx context.Context, subject string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	UpdateImage(ctx context.Context, id string, image string) error
	SetOIDCSubject(ctx context.Context, id string, subject string) error
	Delete(ctx context.Context, id string) error
	Purge(ctx context.Context, id string) error
}

// Child rows go first so a purge does not depend on foreign key cascades.
var purgeStatements = []string{
	"DELETE FROM api_tokens WHERE created_by_user_id = ?",
	"DELETE FROM tasks WHERE user_id = ?",
	"DELETE FROM routine_logs WHERE routine_id IN (SELECT id FROM routines WHERE user_id = ?)",
	"DELETE FROM routines WHERE user_id = ?",
	"DELETE FROM goals WHERE user_id = ?",
}

type SQLiteUserRepository struct {
	database DBTX
}

func NewUserRepository(database DBTX) *SQLiteUserRepository {
	return &SQLiteUserRepository{database: database}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.OIDCSubject, &user.Image,
		&user.Theme, &user.Language, &user.EmailNotifications, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

func (repository *SQLiteUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	user, err := scanUser(repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		return models.User{}, fmt.Errorf("finding user by id: %w", notFound(err))
	}
	return user, nil
}

func (repository *SQLiteUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := scanUser(repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email))
	if err != nil {
		return models.User{}, fmt.Errorf("finding user by email: %w", notFound(err))
	}
	return user, nil
}

func (repository *SQLiteUserRepository) FindByOIDCSubject(ctx context.Context, subject string) (models.User, error) {
	user, err := scanUser(repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE oidc_subject = ?", subject))
	if err != nil {
		return models.User{}, fmt.Errorf("finding user by oidc subject: %w", notFound(err))
	}
	return user, nil
}

func (repository *SQLiteUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Theme == "" {
		user.Theme = models.ThemeSystem
	}
	if user.Language == "" {
		user.Language = models.LanguageArabic
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, user.Name, user.PasswordHash, user.OIDCSubject, user.Image,
		user.Theme, user.Language, user.EmailNotifications, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) UpdateImage(ctx context.Context, id string, image string) error {
	result, err := repository.database.ExecContext(ctx,
		"UPDATE users SET image = ?, updated_at = ? WHERE id = ?",
		image, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("updating user image: %w", err)
	}
	return requireAffected(result)
}

func (repository *SQLiteUserRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.database.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return requireAffected(result)
}

func (repository *SQLiteUserRepository) SetOIDCSubject(ctx context.Context, id string, subject string) error {
	result, err := repository.database.ExecContext(ctx,
		"UPDATE users SET oidc_subject = ?, updated_at = ? WHERE id = ?",
		subject, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("linking oidc subject: %w", err)
	}
	return requireAffected(result)
}

// Purge removes a user and everything they own. Run it inside a transaction.
func (repository *SQLiteUserRepository) Purge(ctx context.Context, id string) error {
	for _, statement := range purgeStatements {
		if _, err := repository.database.ExecContext(ctx, statement, id); err != nil {
			return fmt.Errorf("purging user data: %w", err)
		}
	}
	return repository.Delete(ctx, id)
}
