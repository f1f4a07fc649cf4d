package handlers

import (
	"net/http"

	"github.com/bensuskins/habit-hub/internal/middleware"
	"github.com/bensuskins/habit-hub/internal/services"
)

type AchievementHandler struct {
	achievementService *services.AchievementService
}

func NewAchievementHandler(achievementService *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (handler *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := handler.achievementService.Report(ctx, middleware.GetUser(ctx).ID)
	if err != nil {
		writeError(w, err, "evaluating achievements")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
