package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/google/uuid"
)

const routineColumns = `id, user_id, title, type, time, repeat_days, enabled, current_streak, best_streak,
	created_at, updated_at`

// Routines without a time sort after scheduled ones.
const routineOrder = "time IS NULL, time ASC, created_at DESC"

type RoutineRepository interface {
	FindByID(ctx context.Context, userID string, id string) (models.Routine, error)
	FindAll(ctx context.Context, userID string) ([]models.Routine, error)
	ListAll(ctx context.Context) ([]models.Routine, error)
	Create(ctx context.Context, routine models.Routine) (models.Routine, error)
	Update(ctx context.Context, routine models.Routine) (models.Routine, error)
	Touch(ctx context.Context, userID string, id string) error
	UpdateStreaks(ctx context.Context, id string, current int, best int) error
	Delete(ctx context.Context, userID string, id string) error
	Count(ctx context.Context, userID string) (int, error)
	MaxBestStreak(ctx context.Context, userID string) (int, error)
}

type SQLiteRoutineRepository struct {
	database DBTX
}

func NewRoutineRepository(database DBTX) *SQLiteRoutineRepository {
	return &SQLiteRoutineRepository{database: database}
}

func scanRoutine(row rowScanner) (models.Routine, error) {
	var routine models.Routine
	err := row.Scan(
		&routine.ID, &routine.UserID, &routine.Title, &routine.Type, &routine.Time, &routine.RepeatDays,
		&routine.Enabled, &routine.CurrentStreak, &routine.BestStreak, &routine.CreatedAt, &routine.UpdatedAt,
	)
	return routine, err
}

func (repository *SQLiteRoutineRepository) FindByID(ctx context.Context, userID string, id string) (models.Routine, error) {
	routine, err := scanRoutine(repository.database.QueryRowContext(ctx,
		"SELECT "+routineColumns+" FROM routines WHERE id = ? AND user_id = ?", id, userID))
	if err != nil {
		return models.Routine{}, fmt.Errorf("finding routine by id: %w", notFound(err))
	}
	return routine, nil
}

func (repository *SQLiteRoutineRepository) FindAll(ctx context.Context, userID string) ([]models.Routine, error) {
	return repository.query(ctx, "finding routines",
		"SELECT "+routineColumns+" FROM routines WHERE user_id = ? ORDER BY "+routineOrder, userID)
}

// ListAll returns every routine of every user, for maintenance jobs.
func (repository *SQLiteRoutineRepository) ListAll(ctx context.Context) ([]models.Routine, error) {
	return repository.query(ctx, "listing all routines",
		"SELECT "+routineColumns+" FROM routines ORDER BY user_id, created_at")
}

func (repository *SQLiteRoutineRepository) query(ctx context.Context, action string, query string, args ...any) ([]models.Routine, error) {
	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	defer rows.Close()

	routines := []models.Routine{}
	for rows.Next() {
		routine, err := scanRoutine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning routine: %w", err)
		}
		routines = append(routines, routine)
	}
	return routines, rows.Err()
}

func (repository *SQLiteRoutineRepository) Create(ctx context.Context, routine models.Routine) (models.Routine, error) {
	if routine.ID == "" {
		routine.ID = uuid.New().String()
	}
	routine.ApplyDefaults()
	now := time.Now()
	routine.CreatedAt = now
	routine.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO routines ("+routineColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		routine.ID, routine.UserID, routine.Title, routine.Type, routine.Time, routine.RepeatDays,
		routine.Enabled, routine.CurrentStreak, routine.BestStreak, routine.CreatedAt, routine.UpdatedAt,
	)
	if err != nil {
		return models.Routine{}, fmt.Errorf("creating routine: %w", err)
	}
	return routine, nil
}

// Update writes the editable fields. Streak counters are only changed through UpdateStreaks.
func (repository *SQLiteRoutineRepository) Update(ctx context.Context, routine models.Routine) (models.Routine, error) {
	routine.UpdatedAt = time.Now()
	result, err := repository.database.ExecContext(ctx,
		`UPDATE routines SET title = ?, type = ?, time = ?, repeat_days = ?, enabled = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		routine.Title, routine.Type, routine.Time, routine.RepeatDays, routine.Enabled, routine.UpdatedAt,
		routine.ID, routine.UserID,
	)
	if err != nil {
		return models.Routine{}, fmt.Errorf("updating routine: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return models.Routine{}, fmt.Errorf("updating routine: %w", err)
	}
	return routine, nil
}

// Touch bumps updated_at on an owned routine. Inside a transaction it is the
// first write, so SQLite takes the write lock before any counters are read.
func (repository *SQLiteRoutineRepository) Touch(ctx context.Context, userID string, id string) error {
	result, err := repository.database.ExecContext(ctx,
		"UPDATE routines SET updated_at = ? WHERE id = ? AND user_id = ?",
		time.Now(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("touching routine: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return fmt.Errorf("touching routine: %w", err)
	}
	return nil
}

func (repository *SQLiteRoutineRepository) UpdateStreaks(ctx context.Context, id string, current int, best int) error {
	result, err := repository.database.ExecContext(ctx,
		"UPDATE routines SET current_streak = ?, best_streak = ?, updated_at = ? WHERE id = ?",
		current, best, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("updating routine streaks: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return fmt.Errorf("updating routine streaks: %w", err)
	}
	return nil
}

func (repository *SQLiteRoutineRepository) Delete(ctx context.Context, userID string, id string) error {
	result, err := repository.database.ExecContext(ctx, "DELETE FROM routines WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting routine: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return fmt.Errorf("deleting routine: %w", err)
	}
	return nil
}

func (repository *SQLiteRoutineRepository) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := repository.database.QueryRowContext(ctx, "SELECT COUNT(*) FROM routines WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting routines: %w", err)
	}
	return count, nil
}

func (repository *SQLiteRoutineRepository) MaxBestStreak(ctx context.Context, userID string) (int, error) {
	var best int
	err := repository.database.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(best_streak), 0) FROM routines WHERE user_id = ?", userID,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("finding best streak: %w", err)
	}
	return best, nil
}
