package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/taskflow-be/internal/auth"
	"github.com/isdelr/taskflow-be/internal/services"
)

// ProjectHandler handles HTTP requests for project management.
type ProjectHandler struct {
	service services.ProjectServiceProvider
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service services.ProjectServiceProvider) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// CreateProjectPayload defines the structure for project creation requests.
type CreateProjectPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	OwnerID     string  `json:"owner_id"`
}

// GetAll handles retrieving all projects.
func (h *ProjectHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.GetAllProjects(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to get projects")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// Get handles retrieving a project by its ID.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	project, err := h.service.GetProjectByID(r.Context(), id)
	if err != nil {
		log.Warn().Err(err).Str("project_id", id).Msg("Failed to get project by ID")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Create handles project creation.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateProjectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	project, err := h.service.CreateProject(r.Context(), payload.Name, payload.Description, payload.OwnerID)
	if err != nil {
		log.Warn().Err(err).Str("owner_id", payload.OwnerID).Msg("Failed to create project")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Delete handles project deletion by its owner. Tasks in the project are
// left in place.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteProject(r.Context(), userID, id); err != nil {
		log.Warn().Err(err).Str("project_id", id).Str("user_id", userID).Msg("Failed to delete project")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}
