package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/testutil"
)

func TestRoutineLogRepository_UpsertKeepsOneRowPerDay(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	routineRepo := repository.NewRoutineRepository(db)
	logRepo := repository.NewRoutineLogRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "Alice")
	routine, _ := routineRepo.Create(ctx, models.Routine{UserID: user.ID, Title: "Meditate", Enabled: true})

	first, err := logRepo.Upsert(ctx, routine.ID, "2025-03-10", true)
	if err != nil {
		t.Fatalf("upserting log: %v", err)
	}
	second, err := logRepo.Upsert(ctx, routine.ID, "2025-03-10", false)
	if err != nil {
		t.Fatalf("upserting log again: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected the same row to be updated, got %s and %s", first.ID, second.ID)
	}
	if second.Completed {
		t.Error("expected latest value completed=false")
	}

	logs, _ := logRepo.FindAllByRoutine(ctx, routine.ID)
	if len(logs) != 1 {
		t.Errorf("expected exactly one stored row, got %d", len(logs))
	}
}

func TestRoutineLogRepository_FindByDateMissing(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	logRepo := repository.NewRoutineLogRepository(db)

	_, err := logRepo.FindByDate(context.Background(), "missing", "2025-03-10")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRoutineLogRepository_FindRecent(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	routineRepo := repository.NewRoutineRepository(db)
	logRepo := repository.NewRoutineLogRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "Alice")
	routine, _ := routineRepo.Create(ctx, models.Routine{UserID: user.ID, Title: "Meditate", Enabled: true})

	for _, date := range []string{"2025-03-01", "2025-03-03", "2025-03-02", "2025-03-04"} {
		logRepo.Upsert(ctx, routine.ID, date, true)
	}

	logs, err := logRepo.FindRecent(ctx, routine.ID, 3)
	if err != nil {
		t.Fatalf("finding recent logs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	for i, date := range []string{"2025-03-04", "2025-03-03", "2025-03-02"} {
		if logs[i].Date != date {
			t.Errorf("position %d: expected %s, got %s", i, date, logs[i].Date)
		}
	}
}

func TestRoutineLogRepository_FindByUserAndDate(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	routineRepo := repository.NewRoutineRepository(db)
	logRepo := repository.NewRoutineLogRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice")
	bob := testutil.CreateUser(t, db, "Bob")
	mine, _ := routineRepo.Create(ctx, models.Routine{UserID: alice.ID, Title: "Mine", Enabled: true})
	theirs, _ := routineRepo.Create(ctx, models.Routine{UserID: bob.ID, Title: "Theirs", Enabled: true})

	logRepo.Upsert(ctx, mine.ID, "2025-03-10", true)
	logRepo.Upsert(ctx, mine.ID, "2025-03-09", true)
	logRepo.Upsert(ctx, theirs.ID, "2025-03-10", true)

	byRoutine, err := logRepo.FindByUserAndDate(ctx, alice.ID, "2025-03-10")
	if err != nil {
		t.Fatalf("finding logs for day: %v", err)
	}
	if len(byRoutine) != 1 || len(byRoutine[mine.ID]) != 1 {
		t.Errorf("expected one log for alice's routine, got %v", byRoutine)
	}
}
