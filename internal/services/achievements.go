package services

import (
	"context"
	"fmt"

	"github.com/bensuskins/habit-hub/internal/achievements"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"golang.org/x/sync/errgroup"
)

type AchievementReport struct {
	Achievements []achievements.Status `json:"achievements"`
	Stats        achievements.Stats    `json:"stats"`
}

type AchievementService struct {
	taskRepo    repository.TaskRepository
	goalRepo    repository.GoalRepository
	routineRepo repository.RoutineRepository
	catalog     []achievements.Definition
}

func NewAchievementService(
	taskRepo repository.TaskRepository,
	goalRepo repository.GoalRepository,
	routineRepo repository.RoutineRepository,
) *AchievementService {
	return &AchievementService{
		taskRepo:    taskRepo,
		goalRepo:    goalRepo,
		routineRepo: routineRepo,
		catalog:     achievements.Catalog(),
	}
}

// Counts reads the live totals the catalog is evaluated against.
func (service *AchievementService) Counts(ctx context.Context, userID string) (achievements.Counts, error) {
	var counts achievements.Counts
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		counts.CompletedTasks, err = service.taskRepo.CountByStatus(ctx, userID, models.TaskStatusCompleted)
		return err
	})
	group.Go(func() (err error) {
		counts.TotalGoals, err = service.goalRepo.Count(ctx, userID)
		return err
	})
	group.Go(func() (err error) {
		counts.CompletedGoals, err = service.goalRepo.CountByStatus(ctx, userID, models.GoalStatusCompleted)
		return err
	})
	group.Go(func() (err error) {
		counts.TotalRoutines, err = service.routineRepo.Count(ctx, userID)
		return err
	})
	group.Go(func() (err error) {
		counts.BestStreak, err = service.routineRepo.MaxBestStreak(ctx, userID)
		return err
	})

	if err := group.Wait(); err != nil {
		return achievements.Counts{}, fmt.Errorf("gathering achievement counts: %w", err)
	}
	return counts, nil
}

func (service *AchievementService) Report(ctx context.Context, userID string) (AchievementReport, error) {
	counts, err := service.Counts(ctx, userID)
	if err != nil {
		return AchievementReport{}, err
	}

	statuses := achievements.Evaluate(service.catalog, counts)
	return AchievementReport{
		Achievements: statuses,
		Stats:        achievements.Summarize(statuses, counts),
	}, nil
}
