package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/taskflow-be/internal/apperr"
	"github.com/isdelr/taskflow-be/internal/authz"
	"github.com/isdelr/taskflow-be/internal/models"
	"github.com/isdelr/taskflow-be/internal/store"
)

// CreateTaskInput carries the fields for a new task.
type CreateTaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StatusID    int     `json:"status_id"`
	ProjectID   string  `json:"project_id"`
	AssignedTo  *string `json:"assigned_to"`
}

// UpdateTaskInput carries a partial task update; nil fields are left
// unchanged. The project a task belongs to can never be changed.
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StatusID    *int    `json:"status_id"`
	AssignedTo  *string `json:"assigned_to"`
}

// TaskServiceProvider defines the interface for the task lifecycle service.
type TaskServiceProvider interface {
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	GetTaskByID(ctx context.Context, id string) (models.Task, error)
	CreateTask(ctx context.Context, requestingUserID string, input CreateTaskInput) (models.Task, error)
	UpdateTask(ctx context.Context, requestingUserID, taskID string, input UpdateTaskInput) (models.Task, error)
	DeleteTask(ctx context.Context, requestingUserID, taskID string) error
}

// TaskService orchestrates the authorization-aware task lifecycle: every
// mutation fetches the referenced state, evaluates the authz decision
// against it, and only then writes.
type TaskService struct {
	tasks    store.TaskStore
	projects store.ProjectStore
	events   EventServiceProvider
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks store.TaskStore, projects store.ProjectStore, events EventServiceProvider) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, events: events}
}

// GetAllTasks retrieves all tasks.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	return s.tasks.List(ctx)
}

// GetTaskByID retrieves a single task.
func (s *TaskService) GetTaskByID(ctx context.Context, id string) (models.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// CreateTask creates a task in a project. Only the project owner may do so.
func (s *TaskService) CreateTask(ctx context.Context, requestingUserID string, input CreateTaskInput) (models.Task, error) {
	if strings.TrimSpace(input.Title) == "" || input.StatusID == 0 || strings.TrimSpace(input.ProjectID) == "" {
		return models.Task{}, apperr.New(apperr.Validation, "title, status_id and project_id are required")
	}

	project, err := s.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return models.Task{}, err
	}

	if d := authz.CanCreateTask(requestingUserID, project); !d.Allowed {
		return models.Task{}, apperr.New(apperr.Forbidden, d.Reason)
	}

	task := models.Task{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		StatusID:    input.StatusID,
		ProjectID:   input.ProjectID,
		AssignedTo:  input.AssignedTo,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.tasks.Insert(ctx, task); err != nil {
		return models.Task{}, err
	}

	s.recordEvent(ctx, "task.created", fmt.Sprintf("Task %q created", task.Title), &project.ID)
	return task, nil
}

// UpdateTask applies a partial update to a task. Only the current assignee
// may do so; omitted fields are left unchanged.
func (s *TaskService) UpdateTask(ctx context.Context, requestingUserID, taskID string, input UpdateTaskInput) (models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}

	if d := authz.CanUpdateTask(requestingUserID, task); !d.Allowed {
		return models.Task{}, apperr.New(apperr.Forbidden, d.Reason)
	}

	patch := store.TaskPatch{
		Title:       input.Title,
		Description: input.Description,
		StatusID:    input.StatusID,
		AssignedTo:  input.AssignedTo,
	}
	updated, err := s.tasks.UpdateAssigned(ctx, taskID, requestingUserID, patch)
	if err != nil {
		return models.Task{}, err
	}

	s.recordEvent(ctx, "task.updated", fmt.Sprintf("Task %q updated", updated.Title), &updated.ProjectID)
	return updated, nil
}

// DeleteTask deletes a task. The task's assignee and the project owner may
// do so. A task whose project no longer exists is denied: without the
// project the owner cannot be confirmed.
func (s *TaskService) DeleteTask(ctx context.Context, requestingUserID, taskID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return apperr.New(apperr.Forbidden, "you are not authorized to delete this task")
		}
		return err
	}

	if d := authz.CanDeleteTask(requestingUserID, task, project); !d.Allowed {
		return apperr.New(apperr.Forbidden, d.Reason)
	}

	if err := s.tasks.DeleteAuthorized(ctx, taskID, requestingUserID); err != nil {
		return err
	}

	s.recordEvent(ctx, "task.deleted", fmt.Sprintf("Task %q deleted", task.Title), &task.ProjectID)
	return nil
}

// recordEvent logs an activity event; failures are logged, never surfaced,
// since the mutation itself already committed.
func (s *TaskService) recordEvent(ctx context.Context, eventType, message string, projectID *string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(ctx, eventType, "info", message, projectID); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("Failed to record task event")
	}
}
