package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/google/uuid"
)

const taskColumns = `id, user_id, title, description, status, urgency, category, priority,
	due_date, sort_order, completed_at, created_at, updated_at`

type TaskFilter struct {
	Status   *models.TaskStatus
	Urgency  *models.Urgency
	Category *string
	HasDue   bool
}

type TaskRepository interface {
	FindByID(ctx context.Context, userID string, id string) (models.Task, error)
	FindAll(ctx context.Context, userID string, filter TaskFilter) ([]models.Task, error)
	Create(ctx context.Context, task models.Task) (models.Task, error)
	Update(ctx context.Context, task models.Task) (models.Task, error)
	Delete(ctx context.Context, userID string, id string) error
	CountByStatus(ctx context.Context, userID string, status models.TaskStatus) (int, error)
	CountOpenByUrgency(ctx context.Context, userID string) (map[models.Urgency]int, error)
}

type SQLiteTaskRepository struct {
	database DBTX
}

func NewTaskRepository(database DBTX) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{database: database}
}

func scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &task.Urgency, &task.Category, &task.Priority,
		&task.DueDate, &task.Order, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	return task, err
}

func (repository *SQLiteTaskRepository) FindByID(ctx context.Context, userID string, id string) (models.Task, error) {
	task, err := scanTask(repository.database.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND user_id = ?", id, userID))
	if err != nil {
		return models.Task{}, fmt.Errorf("finding task by id: %w", notFound(err))
	}
	return task, nil
}

func (repository *SQLiteTaskRepository) FindAll(ctx context.Context, userID string, filter TaskFilter) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = ?"
	args := []any{userID}

	if filter.Status != nil {
		query += " AND status = ?"
		args = append(args, *filter.Status)
	}
	if filter.Urgency != nil {
		query += " AND urgency = ?"
		args = append(args, *filter.Urgency)
	}
	if filter.Category != nil {
		query += " AND category = ?"
		args = append(args, *filter.Category)
	}
	if filter.HasDue {
		query += " AND due_date IS NOT NULL"
	}
	query += " ORDER BY sort_order ASC, created_at DESC"

	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (repository *SQLiteTaskRepository) Create(ctx context.Context, task models.Task) (models.Task, error) {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.ApplyDefaults()
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO tasks ("+taskColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.UserID, task.Title, task.Description, task.Status, task.Urgency, task.Category, task.Priority,
		task.DueDate, task.Order, task.CompletedAt, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

func (repository *SQLiteTaskRepository) Update(ctx context.Context, task models.Task) (models.Task, error) {
	task.UpdatedAt = time.Now()
	result, err := repository.database.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, urgency = ?, category = ?, priority = ?,
			due_date = ?, sort_order = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		task.Title, task.Description, task.Status, task.Urgency, task.Category, task.Priority,
		task.DueDate, task.Order, task.CompletedAt, task.UpdatedAt,
		task.ID, task.UserID,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("updating task: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return models.Task{}, fmt.Errorf("updating task: %w", err)
	}
	return task, nil
}

func (repository *SQLiteTaskRepository) Delete(ctx context.Context, userID string, id string) error {
	result, err := repository.database.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (repository *SQLiteTaskRepository) CountByStatus(ctx context.Context, userID string, status models.TaskStatus) (int, error) {
	var count int
	err := repository.database.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE user_id = ? AND status = ?",
		userID, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return count, nil
}

func (repository *SQLiteTaskRepository) CountOpenByUrgency(ctx context.Context, userID string) (map[models.Urgency]int, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT urgency, COUNT(*) FROM tasks WHERE user_id = ? AND status != ? GROUP BY urgency",
		userID, models.TaskStatusCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("counting open tasks by urgency: %w", err)
	}
	defer rows.Close()

	counts := map[models.Urgency]int{
		models.UrgencyUrgent:    0,
		models.UrgencyImportant: 0,
		models.UrgencyNormal:    0,
	}
	for rows.Next() {
		var urgency models.Urgency
		var count int
		if err := rows.Scan(&urgency, &count); err != nil {
			return nil, fmt.Errorf("scanning urgency count: %w", err)
		}
		counts[urgency] = count
	}
	return counts, rows.Err()
}
