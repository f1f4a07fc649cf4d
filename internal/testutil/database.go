package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bensuskins/habit-hub/internal/database"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/google/uuid"
)

func NewTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CreateUser inserts a user with a unique email and returns it.
func CreateUser(t *testing.T, db *sql.DB, name string) models.User {
	t.Helper()

	now := time.Now()
	user := models.User{
		ID:                 uuid.New().String(),
		Email:              uuid.New().String() + "@example.com",
		Name:               name,
		Theme:              models.ThemeSystem,
		Language:           models.LanguageArabic,
		EmailNotifications: true,
	}
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO users (id, email, name, theme, language, email_notifications, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.Theme, user.Language, user.EmailNotifications, now, now,
	)
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}
