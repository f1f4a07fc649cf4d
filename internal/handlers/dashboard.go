package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bensuskins/habit-hub/internal/middleware"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/services"
)

type DashboardHandler struct {
	taskRepo           repository.TaskRepository
	goalRepo           repository.GoalRepository
	routineService     *services.RoutineService
	achievementService *services.AchievementService
}

func NewDashboardHandler(
	taskRepo repository.TaskRepository,
	goalRepo repository.GoalRepository,
	routineService *services.RoutineService,
	achievementService *services.AchievementService,
) *DashboardHandler {
	return &DashboardHandler{
		taskRepo:           taskRepo,
		goalRepo:           goalRepo,
		routineService:     routineService,
		achievementService: achievementService,
	}
}

// Dashboard summarizes the day. A section that fails to load is logged and left at
// its zero value so the rest still renders.
func (handler *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	openTasks, err := handler.taskRepo.CountOpenByUrgency(ctx, user.ID)
	if err != nil {
		slog.Error("counting open tasks", "error", err)
	}

	activeGoals, err := handler.goalRepo.CountByStatus(ctx, user.ID, models.GoalStatusInProgress)
	if err != nil {
		slog.Error("counting active goals", "error", err)
	}

	todayRoutines, err := handler.routineService.List(ctx, user.ID, true)
	if err != nil {
		slog.Error("finding today's routines", "error", err)
	}
	if todayRoutines == nil {
		todayRoutines = []models.Routine{}
	}

	completedToday := 0
	for _, routine := range todayRoutines {
		for _, log := range routine.Logs {
			if log.Completed {
				completedToday++
				break
			}
		}
	}

	report, err := handler.achievementService.Report(ctx, user.ID)
	if err != nil {
		slog.Error("evaluating achievements", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"openTasksByUrgency":     openTasks,
		"activeGoals":            activeGoals,
		"todayRoutines":          todayRoutines,
		"completedRoutinesToday": completedToday,
		"stats":                  report.Stats,
	})
}
