package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/services"
)

type ICalHandler struct {
	authService     *services.AuthService
	calendarService *services.CalendarService
}

func NewICalHandler(authService *services.AuthService, calendarService *services.CalendarService) *ICalHandler {
	return &ICalHandler{authService: authService, calendarService: calendarService}
}

// Feed serves the owner's routines and due tasks to calendar clients, which can only
// authenticate through the token query parameter.
func (handler *ICalHandler) Feed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := handler.authService.AuthenticateToken(ctx, r.URL.Query().Get("token"), models.TokenScopeICal)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	feed, err := handler.calendarService.Feed(ctx, user)
	if err != nil {
		slog.Error("building ical feed", "error", err)
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=habit-hub.ics")
	w.Write([]byte(feed))
}
