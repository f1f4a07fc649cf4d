package services

import (
	"context"
	"fmt"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
)

type GoalInput struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Type        *models.GoalType   `json:"type"`
	Category    *string            `json:"category"`
	Status      *models.GoalStatus `json:"status"`
	Priority    *models.Priority   `json:"priority"`
	Progress    *int               `json:"progress"`
	StartDate   *string            `json:"startDate"`
	EndDate     *string            `json:"endDate"`
}

func (input GoalInput) apply(goal *models.Goal) models.ValidationErrors {
	var errs models.ValidationErrors
	if input.Title != nil {
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.Type != nil {
		goal.Type = *input.Type
	}
	if input.Category != nil {
		goal.Category = *input.Category
	}
	if input.Priority != nil {
		goal.Priority = *input.Priority
	}
	if input.Progress != nil {
		goal.Progress = models.ClampProgress(*input.Progress)
	}
	switch {
	case input.Status != nil:
		goal.Status = *input.Status
	case input.Progress != nil && goal.Progress >= 100:
		goal.Status = models.GoalStatusCompleted
	case input.Progress != nil:
		goal.Status = models.GoalStatusInProgress
	}
	if input.StartDate != nil {
		goal.StartDate = parseDate("startDate", *input.StartDate, &errs)
	}
	if input.EndDate != nil {
		goal.EndDate = parseDate("endDate", *input.EndDate, &errs)
	}
	return errs
}

type GoalService struct {
	goalRepo repository.GoalRepository
}

func NewGoalService(goalRepo repository.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

func (service *GoalService) List(ctx context.Context, userID string) ([]models.Goal, error) {
	return service.goalRepo.FindAll(ctx, userID)
}

func (service *GoalService) Get(ctx context.Context, userID string, id string) (models.Goal, error) {
	return service.goalRepo.FindByID(ctx, userID, id)
}

func (service *GoalService) Create(ctx context.Context, userID string, input GoalInput) (models.Goal, error) {
	goal := models.Goal{UserID: userID}
	if err := prepareGoal(&goal, input); err != nil {
		return models.Goal{}, err
	}

	created, err := service.goalRepo.Create(ctx, goal)
	if err != nil {
		return models.Goal{}, fmt.Errorf("creating goal: %w", err)
	}
	return created, nil
}

func (service *GoalService) Update(ctx context.Context, userID string, id string, input GoalInput) (models.Goal, error) {
	goal, err := service.goalRepo.FindByID(ctx, userID, id)
	if err != nil {
		return models.Goal{}, err
	}
	if err := prepareGoal(&goal, input); err != nil {
		return models.Goal{}, err
	}
	return service.goalRepo.Update(ctx, goal)
}

func (service *GoalService) Delete(ctx context.Context, userID string, id string) error {
	return service.goalRepo.Delete(ctx, userID, id)
}

func prepareGoal(goal *models.Goal, input GoalInput) error {
	errs := input.apply(goal)
	goal.ApplyDefaults()
	if err := goal.Validate(); err != nil {
		errs = append(errs, err.(models.ValidationErrors)...)
	}
	return errs.Err()
}
