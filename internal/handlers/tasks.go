package handlers

import (
	"net/http"

	"github.com/bensuskins/habit-hub/internal/middleware"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/services"
	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (handler *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)
	filter := repository.TaskFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		s := models.TaskStatus(status)
		filter.Status = &s
	}
	if urgency := r.URL.Query().Get("urgency"); urgency != "" {
		u := models.Urgency(urgency)
		filter.Urgency = &u
	}
	if category := r.URL.Query().Get("category"); category != "" {
		filter.Category = &category
	}

	tasks, err := handler.taskService.List(ctx, user.ID, filter)
	if err != nil {
		writeError(w, err, "listing tasks")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (handler *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	task, err := handler.taskService.Get(ctx, middleware.GetUser(ctx).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "getting task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (handler *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var input services.TaskInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err, "decoding task")
		return
	}

	task, err := handler.taskService.Create(ctx, middleware.GetUser(ctx).ID, input)
	if err != nil {
		writeError(w, err, "creating task")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (handler *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var input services.TaskInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err, "decoding task")
		return
	}

	task, err := handler.taskService.Update(ctx, middleware.GetUser(ctx).ID, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err, "updating task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (handler *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := handler.taskService.Delete(ctx, middleware.GetUser(ctx).ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "deleting task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
