package services

import (
	"context"
	"fmt"

	"github.com/bensuskins/habit-hub/internal/clock"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
)

// TaskInput carries the fields of a create or partial update. Nil fields are left alone.
type TaskInput struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
	Urgency     *models.Urgency    `json:"urgency"`
	Category    *string            `json:"category"`
	Priority    *models.Priority   `json:"priority"`
	DueDate     *string            `json:"dueDate"`
	Order       *int               `json:"order"`
}

func (input TaskInput) apply(task *models.Task) models.ValidationErrors {
	var errs models.ValidationErrors
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Urgency != nil {
		task.Urgency = *input.Urgency
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = parseDate("dueDate", *input.DueDate, &errs)
	}
	if input.Order != nil {
		task.Order = *input.Order
	}
	return errs
}

type TaskService struct {
	taskRepo repository.TaskRepository
	clock    clock.Clock
}

func NewTaskService(taskRepo repository.TaskRepository, clock clock.Clock) *TaskService {
	return &TaskService{taskRepo: taskRepo, clock: clock}
}

func (service *TaskService) List(ctx context.Context, userID string, filter repository.TaskFilter) ([]models.Task, error) {
	return service.taskRepo.FindAll(ctx, userID, filter)
}

func (service *TaskService) Get(ctx context.Context, userID string, id string) (models.Task, error) {
	return service.taskRepo.FindByID(ctx, userID, id)
}

func (service *TaskService) Create(ctx context.Context, userID string, input TaskInput) (models.Task, error) {
	task := models.Task{UserID: userID}
	if err := service.prepare(&task, input, models.TaskStatusNotStarted); err != nil {
		return models.Task{}, err
	}

	created, err := service.taskRepo.Create(ctx, task)
	if err != nil {
		return models.Task{}, fmt.Errorf("creating task: %w", err)
	}
	return created, nil
}

func (service *TaskService) Update(ctx context.Context, userID string, id string, input TaskInput) (models.Task, error) {
	task, err := service.taskRepo.FindByID(ctx, userID, id)
	if err != nil {
		return models.Task{}, err
	}

	if err := service.prepare(&task, input, task.Status); err != nil {
		return models.Task{}, err
	}

	updated, err := service.taskRepo.Update(ctx, task)
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

func (service *TaskService) Delete(ctx context.Context, userID string, id string) error {
	return service.taskRepo.Delete(ctx, userID, id)
}

// prepare applies input, validates, and keeps completed_at in step with the status.
func (service *TaskService) prepare(task *models.Task, input TaskInput, previous models.TaskStatus) error {
	errs := input.apply(task)
	task.ApplyDefaults()
	if err := task.Validate(); err != nil {
		errs = append(errs, err.(models.ValidationErrors)...)
	}
	if err := errs.Err(); err != nil {
		return err
	}

	switch {
	case task.Status == models.TaskStatusCompleted && (previous != models.TaskStatusCompleted || task.CompletedAt == nil):
		now := service.clock.Now()
		task.CompletedAt = &now
	case task.Status != models.TaskStatusCompleted:
		task.CompletedAt = nil
	}
	return nil
}
