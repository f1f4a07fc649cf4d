package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/google/uuid"
)

const goalColumns = `id, user_id, title, description, type, category, status, priority, progress,
	start_date, end_date, created_at, updated_at`

type GoalRepository interface {
	FindByID(ctx context.Context, userID string, id string) (models.Goal, error)
	FindAll(ctx context.Context, userID string) ([]models.Goal, error)
	Create(ctx context.Context, goal models.Goal) (models.Goal, error)
	Update(ctx context.Context, goal models.Goal) (models.Goal, error)
	Delete(ctx context.Context, userID string, id string) error
	Count(ctx context.Context, userID string) (int, error)
	CountByStatus(ctx context.Context, userID string, status models.GoalStatus) (int, error)
}

type SQLiteGoalRepository struct {
	database DBTX
}

func NewGoalRepository(database DBTX) *SQLiteGoalRepository {
	return &SQLiteGoalRepository{database: database}
}

func scanGoal(row rowScanner) (models.Goal, error) {
	var goal models.Goal
	err := row.Scan(
		&goal.ID, &goal.UserID, &goal.Title, &goal.Description, &goal.Type, &goal.Category, &goal.Status, &goal.Priority,
		&goal.Progress, &goal.StartDate, &goal.EndDate, &goal.CreatedAt, &goal.UpdatedAt,
	)
	return goal, err
}

func (repository *SQLiteGoalRepository) FindByID(ctx context.Context, userID string, id string) (models.Goal, error) {
	goal, err := scanGoal(repository.database.QueryRowContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE id = ? AND user_id = ?", id, userID))
	if err != nil {
		return models.Goal{}, fmt.Errorf("finding goal by id: %w", notFound(err))
	}
	return goal, nil
}

func (repository *SQLiteGoalRepository) FindAll(ctx context.Context, userID string) ([]models.Goal, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("finding goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (repository *SQLiteGoalRepository) Create(ctx context.Context, goal models.Goal) (models.Goal, error) {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	goal.ApplyDefaults()
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO goals ("+goalColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.Type, goal.Category, goal.Status, goal.Priority,
		goal.Progress, goal.StartDate, goal.EndDate, goal.CreatedAt, goal.UpdatedAt,
	)
	if err != nil {
		return models.Goal{}, fmt.Errorf("creating goal: %w", err)
	}
	return goal, nil
}

func (repository *SQLiteGoalRepository) Update(ctx context.Context, goal models.Goal) (models.Goal, error) {
	goal.UpdatedAt = time.Now()
	result, err := repository.database.ExecContext(ctx,
		`UPDATE goals SET title = ?, description = ?, type = ?, category = ?, status = ?, priority = ?,
			progress = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		goal.Title, goal.Description, goal.Type, goal.Category, goal.Status, goal.Priority,
		goal.Progress, goal.StartDate, goal.EndDate, goal.UpdatedAt,
		goal.ID, goal.UserID,
	)
	if err != nil {
		return models.Goal{}, fmt.Errorf("updating goal: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return models.Goal{}, fmt.Errorf("updating goal: %w", err)
	}
	return goal, nil
}

func (repository *SQLiteGoalRepository) Delete(ctx context.Context, userID string, id string) error {
	result, err := repository.database.ExecContext(ctx, "DELETE FROM goals WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return nil
}

func (repository *SQLiteGoalRepository) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := repository.database.QueryRowContext(ctx, "SELECT COUNT(*) FROM goals WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting goals: %w", err)
	}
	return count, nil
}

func (repository *SQLiteGoalRepository) CountByStatus(ctx context.Context, userID string, status models.GoalStatus) (int, error) {
	var count int
	err := repository.database.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM goals WHERE user_id = ? AND status = ?", userID, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting goals by status: %w", err)
	}
	return count, nil
}
