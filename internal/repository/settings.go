package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bensuskins/habit-hub/internal/models"
)

type SettingsRepository interface {
	Get(ctx context.Context, userID string) (models.Settings, error)
	Set(ctx context.Context, userID string, settings models.Settings) error
}

type SQLiteSettingsRepository struct {
	database DBTX
}

func NewSettingsRepository(database DBTX) *SQLiteSettingsRepository {
	return &SQLiteSettingsRepository{database: database}
}

func (repository *SQLiteSettingsRepository) Get(ctx context.Context, userID string) (models.Settings, error) {
	var settings models.Settings
	err := repository.database.QueryRowContext(ctx,
		"SELECT name, theme, language, email_notifications FROM users WHERE id = ?", userID,
	).Scan(&settings.Name, &settings.Theme, &settings.Language, &settings.EmailNotifications)
	if err != nil {
		return models.Settings{}, fmt.Errorf("getting settings: %w", notFound(err))
	}
	return settings, nil
}

func (repository *SQLiteSettingsRepository) Set(ctx context.Context, userID string, settings models.Settings) error {
	result, err := repository.database.ExecContext(ctx,
		`UPDATE users SET name = ?, theme = ?, language = ?, email_notifications = ?, updated_at = ?
		WHERE id = ?`,
		settings.Name, settings.Theme, settings.Language, settings.EmailNotifications, time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}
	return requireAffected(result)
}
