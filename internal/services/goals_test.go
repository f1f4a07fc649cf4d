package services_test

import (
	"context"
	"testing"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/services"
	"github.com/bensuskins/habit-hub/internal/testutil"
)

func setupGoalService(t *testing.T) (*services.GoalService, models.User) {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	user := testutil.CreateUser(t, db, "Alice")
	return services.NewGoalService(repository.NewGoalRepository(db)), user
}

func intPointer(value int) *int {
	return &value
}

func TestGoalService_ProgressDrivesStatus(t *testing.T) {
	service, user := setupGoalService(t)
	ctx := context.Background()

	goal, err := service.Create(ctx, user.ID, services.GoalInput{Title: stringPointer("Read 12 books")})
	if err != nil {
		t.Fatalf("creating goal: %v", err)
	}
	if goal.Status != models.GoalStatusInProgress || goal.Progress != 0 {
		t.Errorf("unexpected new goal %+v", goal)
	}

	tests := []struct {
		progress         int
		expectedProgress int
		expectedStatus   models.GoalStatus
	}{
		{50, 50, models.GoalStatusInProgress},
		{100, 100, models.GoalStatusCompleted},
		{140, 100, models.GoalStatusCompleted},
		{80, 80, models.GoalStatusInProgress},
		{-20, 0, models.GoalStatusInProgress},
	}

	for _, test := range tests {
		updated, err := service.Update(ctx, user.ID, goal.ID, services.GoalInput{Progress: intPointer(test.progress)})
		if err != nil {
			t.Fatalf("updating progress to %d: %v", test.progress, err)
		}
		if updated.Progress != test.expectedProgress || updated.Status != test.expectedStatus {
			t.Errorf("progress %d: expected %d/%s, got %d/%s",
				test.progress, test.expectedProgress, test.expectedStatus, updated.Progress, updated.Status)
		}
	}
}

func TestGoalService_ExplicitStatusWins(t *testing.T) {
	service, user := setupGoalService(t)
	ctx := context.Background()

	goal, _ := service.Create(ctx, user.ID, services.GoalInput{Title: stringPointer("Ship it")})

	completed := models.GoalStatusCompleted
	updated, err := service.Update(ctx, user.ID, goal.ID, services.GoalInput{Progress: intPointer(60), Status: &completed})
	if err != nil {
		t.Fatalf("updating goal: %v", err)
	}
	if updated.Status != models.GoalStatusCompleted || updated.Progress != 60 {
		t.Errorf("expected completed at 60, got %s at %d", updated.Status, updated.Progress)
	}
}

func TestGoalService_DateRangeValidated(t *testing.T) {
	service, user := setupGoalService(t)

	_, err := service.Create(context.Background(), user.ID, services.GoalInput{
		Title:     stringPointer("Backwards"),
		StartDate: stringPointer("2025-06-01"),
		EndDate:   stringPointer("2025-05-01"),
	})
	if err == nil {
		t.Fatal("expected validation error for end before start")
	}
}
