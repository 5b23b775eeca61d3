package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/taskflow-be/internal/auth"
	"github.com/isdelr/taskflow-be/internal/services"
)

// TaskHandler handles HTTP requests for the task lifecycle. The requesting
// user is always taken from the verified token claims, never from the
// request body.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// GetAll handles retrieving all tasks.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAllTasks(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to get tasks")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Get handles retrieving a task by its ID.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	task, err := h.service.GetTaskByID(r.Context(), id)
	if err != nil {
		log.Warn().Err(err).Str("task_id", id).Msg("Failed to get task by ID")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Create handles task creation within a project.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	var input services.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.service.CreateTask(r.Context(), userID, input)
	if err != nil {
		log.Warn().Err(err).Str("project_id", input.ProjectID).Str("user_id", userID).Msg("Failed to create task")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Update handles a partial task update by its assignee.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	var input services.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), userID, id, input)
	if err != nil {
		log.Warn().Err(err).Str("task_id", id).Str("user_id", userID).Msg("Failed to update task")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles task deletion by its assignee or the project owner.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteTask(r.Context(), userID, id); err != nil {
		log.Warn().Err(err).Str("task_id", id).Str("user_id", userID).Msg("Failed to delete task")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
