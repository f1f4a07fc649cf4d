package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/google/uuid"
)

const routineLogColumns = "id, routine_id, date, completed, created_at, updated_at"

type RoutineLogRepository interface {
	FindByDate(ctx context.Context, routineID string, date string) (models.RoutineLog, error)
	Upsert(ctx context.Context, routineID string, date string, completed bool) (models.RoutineLog, error)
	FindRecent(ctx context.Context, routineID string, limit int) ([]models.RoutineLog, error)
	FindAllByRoutine(ctx context.Context, routineID string) ([]models.RoutineLog, error)
	FindByUserAndDate(ctx context.Context, userID string, date string) (map[string][]models.RoutineLog, error)
}

type SQLiteRoutineLogRepository struct {
	database DBTX
}

func NewRoutineLogRepository(database DBTX) *SQLiteRoutineLogRepository {
	return &SQLiteRoutineLogRepository{database: database}
}

func scanRoutineLog(row rowScanner) (models.RoutineLog, error) {
	var log models.RoutineLog
	err := row.Scan(&log.ID, &log.RoutineID, &log.Date, &log.Completed, &log.CreatedAt, &log.UpdatedAt)
	return log, err
}

func (repository *SQLiteRoutineLogRepository) FindByDate(ctx context.Context, routineID string, date string) (models.RoutineLog, error) {
	log, err := scanRoutineLog(repository.database.QueryRowContext(ctx,
		"SELECT "+routineLogColumns+" FROM routine_logs WHERE routine_id = ? AND date = ?", routineID, date))
	if err != nil {
		return models.RoutineLog{}, fmt.Errorf("finding routine log by date: %w", notFound(err))
	}
	return log, nil
}

// Upsert writes the log for (routine, date), updating the existing row when there is one.
func (repository *SQLiteRoutineLogRepository) Upsert(ctx context.Context, routineID string, date string, completed bool) (models.RoutineLog, error) {
	now := time.Now()
	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO routine_logs (id, routine_id, date, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(routine_id, date) DO UPDATE SET completed = excluded.completed, updated_at = excluded.updated_at`,
		uuid.New().String(), routineID, date, completed, now, now,
	)
	if err != nil {
		return models.RoutineLog{}, fmt.Errorf("upserting routine log: %w", err)
	}
	return repository.FindByDate(ctx, routineID, date)
}

func (repository *SQLiteRoutineLogRepository) FindRecent(ctx context.Context, routineID string, limit int) ([]models.RoutineLog, error) {
	return repository.query(ctx, "finding recent routine logs",
		"SELECT "+routineLogColumns+" FROM routine_logs WHERE routine_id = ? ORDER BY date DESC LIMIT ?",
		routineID, limit)
}

func (repository *SQLiteRoutineLogRepository) FindAllByRoutine(ctx context.Context, routineID string) ([]models.RoutineLog, error) {
	return repository.query(ctx, "finding routine logs",
		"SELECT "+routineLogColumns+" FROM routine_logs WHERE routine_id = ? ORDER BY date ASC",
		routineID)
}

// FindByUserAndDate returns the logs of one day for all routines of a user, keyed by routine id.
func (repository *SQLiteRoutineLogRepository) FindByUserAndDate(ctx context.Context, userID string, date string) (map[string][]models.RoutineLog, error) {
	logs, err := repository.query(ctx, "finding routine logs for day",
		`SELECT l.id, l.routine_id, l.date, l.completed, l.created_at, l.updated_at
		FROM routine_logs l JOIN routines r ON r.id = l.routine_id
		WHERE r.user_id = ? AND l.date = ?`,
		userID, date)
	if err != nil {
		return nil, err
	}

	byRoutine := make(map[string][]models.RoutineLog, len(logs))
	for _, log := range logs {
		byRoutine[log.RoutineID] = append(byRoutine[log.RoutineID], log)
	}
	return byRoutine, nil
}

func (repository *SQLiteRoutineLogRepository) query(ctx context.Context, action string, query string, args ...any) ([]models.RoutineLog, error) {
	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	defer rows.Close()

	logs := []models.RoutineLog{}
	for rows.Next() {
		log, err := scanRoutineLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning routine log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
