package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/services"
	"github.com/bensuskins/habit-hub/internal/testutil"
)

func TestSearchService_Search(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "Alice")
	other := testutil.CreateUser(t, db, "Bob")

	taskRepo := repository.NewTaskRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	routineRepo := repository.NewRoutineRepository(db)

	taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: "Buy groceries", Description: "milk and bread"})
	taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: "File taxes"})
	taskRepo.Create(ctx, models.Task{UserID: other.ID, Title: "Buy groceries for Bob"})
	goalRepo.Create(ctx, models.Goal{UserID: user.ID, Title: "Run a marathon"})
	routineRepo.Create(ctx, models.Routine{UserID: user.ID, Title: "Morning run", Enabled: true})

	service := services.NewSearchService(taskRepo, goalRepo, routineRepo)

	t.Run("too short", func(t *testing.T) {
		results, err := service.Search(ctx, user.ID, " b ")
		if err != nil {
			t.Fatalf("searching: %v", err)
		}
		if results.Total != 0 || results.Tasks == nil || results.Goals == nil || results.Routines == nil {
			t.Errorf("expected empty non-nil results, got %+v", results)
		}
	})

	t.Run("matches own items only", func(t *testing.T) {
		results, err := service.Search(ctx, user.ID, "groceries")
		if err != nil {
			t.Fatalf("searching: %v", err)
		}
		if len(results.Tasks) != 1 || results.Tasks[0].Title != "Buy groceries" {
			t.Errorf("expected only the user's grocery task, got %+v", results.Tasks)
		}
		if results.Total != 1 {
			t.Errorf("expected total 1, got %d", results.Total)
		}
	})

	t.Run("across kinds", func(t *testing.T) {
		results, err := service.Search(ctx, user.ID, "run")
		if err != nil {
			t.Fatalf("searching: %v", err)
		}
		if len(results.Goals) != 1 || len(results.Routines) != 1 {
			t.Errorf("expected a goal and a routine, got %d goals %d routines", len(results.Goals), len(results.Routines))
		}
	})
}

func TestSearchService_LimitsResults(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "Alice")
	taskRepo := repository.NewTaskRepository(db)

	for i := 0; i < 15; i++ {
		taskRepo.Create(ctx, models.Task{UserID: user.ID, Title: fmt.Sprintf("Report %d", i)})
	}

	service := services.NewSearchService(taskRepo, repository.NewGoalRepository(db), repository.NewRoutineRepository(db))
	results, err := service.Search(ctx, user.ID, "report")
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(results.Tasks) != 10 {
		t.Errorf("expected 10 tasks, got %d", len(results.Tasks))
	}
}
