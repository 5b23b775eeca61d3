package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/taskflow-be/internal/apperr"
	"github.com/isdelr/taskflow-be/internal/models"
	"github.com/isdelr/taskflow-be/internal/store"
)

// ProjectServiceProvider defines the interface for project services.
type ProjectServiceProvider interface {
	GetAllProjects(ctx context.Context) ([]models.Project, error)
	GetProjectByID(ctx context.Context, id string) (models.Project, error)
	CreateProject(ctx context.Context, name string, description *string, ownerID string) (models.Project, error)
	DeleteProject(ctx context.Context, requestingUserID, id string) error
}

// ProjectService provides business logic for project management.
type ProjectService struct {
	projects store.ProjectStore
	users    store.UserStore
	events   EventServiceProvider
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects store.ProjectStore, users store.UserStore, events EventServiceProvider) *ProjectService {
	return &ProjectService{projects: projects, users: users, events: events}
}

// GetAllProjects retrieves all projects.
func (s *ProjectService) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}

// GetProjectByID retrieves a single project.
func (s *ProjectService) GetProjectByID(ctx context.Context, id string) (models.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// CreateProject creates a project owned by ownerID. The owner must exist.
func (s *ProjectService) CreateProject(ctx context.Context, name string, description *string, ownerID string) (models.Project, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(ownerID) == "" {
		return models.Project{}, apperr.New(apperr.Validation, "project name and owner_id are required")
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return models.Project{}, err
	}

	project := models.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.projects.Insert(ctx, project); err != nil {
		return models.Project{}, err
	}

	s.recordEvent(ctx, "project.created", fmt.Sprintf("Project %q created", project.Name), &project.ID)
	return project, nil
}

// DeleteProject deletes a project. Only its owner may do so. Tasks in the
// project are not cascaded; deleting them afterwards stays subject to the
// task lifecycle rules.
func (s *ProjectService) DeleteProject(ctx context.Context, requestingUserID, id string) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if project.OwnerID != requestingUserID {
		return apperr.New(apperr.Forbidden, "you are not authorized to delete this project")
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.recordEvent(ctx, "project.deleted", fmt.Sprintf("Project %q deleted", project.Name), &project.ID)
	return nil
}

func (s *ProjectService) recordEvent(ctx context.Context, eventType, message string, projectID *string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(ctx, eventType, "info", message, projectID); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("Failed to record project event")
	}
}
