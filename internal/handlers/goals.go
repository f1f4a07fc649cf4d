package handlers

import (
	"net/http"

	"github.com/bensuskins/habit-hub/internal/middleware"
	"github.com/bensuskins/habit-hub/internal/services"
	"github.com/go-chi/chi/v5"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (handler *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	goals, err := handler.goalService.List(ctx, middleware.GetUser(ctx).ID)
	if err != nil {
		writeError(w, err, "listing goals")
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (handler *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	goal, err := handler.goalService.Get(ctx, middleware.GetUser(ctx).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "getting goal")
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (handler *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var input services.GoalInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err, "decoding goal")
		return
	}

	goal, err := handler.goalService.Create(ctx, middleware.GetUser(ctx).ID, input)
	if err != nil {
		writeError(w, err, "creating goal")
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (handler *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var input services.GoalInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err, "decoding goal")
		return
	}

	goal, err := handler.goalService.Update(ctx, middleware.GetUser(ctx).ID, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err, "updating goal")
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (handler *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := handler.goalService.Delete(ctx, middleware.GetUser(ctx).ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "deleting goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
