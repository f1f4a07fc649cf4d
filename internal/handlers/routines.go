package handlers

import (
	"net/http"

	"github.com/bensuskins/habit-hub/internal/middleware"
	"github.com/bensuskins/habit-hub/internal/services"
	"github.com/go-chi/chi/v5"
)

type RoutineHandler struct {
	routineService *services.RoutineService
}

func NewRoutineHandler(routineService *services.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// List returns the user's routines with today's logs. ?view=today narrows the list to
// enabled routines scheduled for today.
func (handler *RoutineHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scheduledToday := r.URL.Query().Get("view") == "today"

	routines, err := handler.routineService.List(ctx, middleware.GetUser(ctx).ID, scheduledToday)
	if err != nil {
		writeError(w, err, "listing routines")
		return
	}
	writeJSON(w, http.StatusOK, routines)
}

func (handler *RoutineHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	routine, err := handler.routineService.Get(ctx, middleware.GetUser(ctx).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "getting routine")
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (handler *RoutineHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var input services.RoutineInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err, "decoding routine")
		return
	}

	routine, err := handler.routineService.Create(ctx, middleware.GetUser(ctx).ID, input)
	if err != nil {
		writeError(w, err, "creating routine")
		return
	}
	writeJSON(w, http.StatusCreated, routine)
}

func (handler *RoutineHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var input services.RoutineInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err, "decoding routine")
		return
	}

	routine, err := handler.routineService.Update(ctx, middleware.GetUser(ctx).ID, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err, "updating routine")
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (handler *RoutineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := handler.routineService.Delete(ctx, middleware.GetUser(ctx).ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "deleting routine")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Log sets today's completion. The body is optional and completed defaults to true.
func (handler *RoutineHandler) Log(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body struct {
		Completed *bool `json:"completed"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err, "decoding routine log")
		return
	}

	completed := true
	if body.Completed != nil {
		completed = *body.Completed
	}

	result, err := handler.routineService.ToggleToday(ctx, middleware.GetUser(ctx).ID, chi.URLParam(r, "id"), completed)
	if err != nil {
		writeError(w, err, "logging routine")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
