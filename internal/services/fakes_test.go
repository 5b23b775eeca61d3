package services_test

import (
	"context"
	"time"

	"github.com/isdelr/taskflow-be/internal/apperr"
	"github.com/isdelr/taskflow-be/internal/models"
	"github.com/isdelr/taskflow-be/internal/services"
	"github.com/isdelr/taskflow-be/internal/store"
)

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

// memoryUserStore is an in-memory UserStore double.
type memoryUserStore struct {
	users map[string]models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]models.User)}
}

func (m *memoryUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, apperr.Newf(apperr.NotFound, "user with ID %s not found", id)
	}
	user.PasswordHash = ""
	return user, nil
}

func (m *memoryUserStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, apperr.Newf(apperr.NotFound, "user with email %s not found", email)
}

func (m *memoryUserStore) List(_ context.Context) ([]models.User, error) {
	var users []models.User
	for _, user := range m.users {
		user.PasswordHash = ""
		users = append(users, user)
	}
	return users, nil
}

func (m *memoryUserStore) Insert(_ context.Context, user models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memoryUserStore) Update(_ context.Context, id string, patch store.UserPatch) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, apperr.Newf(apperr.NotFound, "user with ID %s not found", id)
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = patch.AvatarURL
	}
	m.users[id] = user
	user.PasswordHash = ""
	return user, nil
}

func (m *memoryUserStore) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// memoryProjectStore is an in-memory ProjectStore double.
type memoryProjectStore struct {
	projects map[string]models.Project
}

func newMemoryProjectStore() *memoryProjectStore {
	return &memoryProjectStore{projects: make(map[string]models.Project)}
}

func (m *memoryProjectStore) GetByID(_ context.Context, id string) (models.Project, error) {
	project, ok := m.projects[id]
	if !ok {
		return models.Project{}, apperr.Newf(apperr.NotFound, "project with ID %s not found", id)
	}
	return project, nil
}

func (m *memoryProjectStore) List(_ context.Context) ([]models.Project, error) {
	var projects []models.Project
	for _, project := range m.projects {
		projects = append(projects, project)
	}
	return projects, nil
}

func (m *memoryProjectStore) Insert(_ context.Context, project models.Project) error {
	m.projects[project.ID] = project
	return nil
}

func (m *memoryProjectStore) Delete(_ context.Context, id string) error {
	delete(m.projects, id)
	return nil
}

// memoryTaskStore is an in-memory TaskStore double mirroring the guarded
// write semantics of the SQLite implementation.
type memoryTaskStore struct {
	tasks    map[string]models.Task
	projects *memoryProjectStore
}

func newMemoryTaskStore(projects *memoryProjectStore) *memoryTaskStore {
	return &memoryTaskStore{tasks: make(map[string]models.Task), projects: projects}
}

func (m *memoryTaskStore) GetByID(_ context.Context, id string) (models.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return models.Task{}, apperr.Newf(apperr.NotFound, "task with ID %s not found", id)
	}
	return task, nil
}

func (m *memoryTaskStore) List(_ context.Context) ([]models.Task, error) {
	var tasks []models.Task
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (m *memoryTaskStore) Insert(_ context.Context, task models.Task) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *memoryTaskStore) UpdateAssigned(_ context.Context, id, assigneeID string, patch store.TaskPatch) (models.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return models.Task{}, apperr.Newf(apperr.NotFound, "task with ID %s not found", id)
	}
	if task.AssignedTo == nil || *task.AssignedTo != assigneeID {
		return models.Task{}, apperr.New(apperr.Forbidden, "you are not allowed to update this task")
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = patch.Description
	}
	if patch.StatusID != nil {
		task.StatusID = *patch.StatusID
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = patch.AssignedTo
	}
	m.tasks[id] = task
	return task, nil
}

func (m *memoryTaskStore) DeleteAuthorized(_ context.Context, id, userID string) error {
	task, ok := m.tasks[id]
	if !ok {
		return apperr.Newf(apperr.NotFound, "task with ID %s not found", id)
	}
	if task.AssignedTo != nil && *task.AssignedTo == userID {
		delete(m.tasks, id)
		return nil
	}
	if project, ok := m.projects.projects[task.ProjectID]; ok && project.OwnerID == userID {
		delete(m.tasks, id)
		return nil
	}
	return apperr.New(apperr.Forbidden, "you are not authorized to delete this task")
}

// recordedEvent captures a CreateEvent call.
type recordedEvent struct {
	Type      string
	Level     string
	Message   string
	ProjectID *string
}

// memoryEventRecorder is an EventServiceProvider double.
type memoryEventRecorder struct {
	events []recordedEvent
}

func (m *memoryEventRecorder) CreateEvent(_ context.Context, eventType, level, message string, projectID *string) error {
	m.events = append(m.events, recordedEvent{Type: eventType, Level: level, Message: message, ProjectID: projectID})
	return nil
}

func (m *memoryEventRecorder) GetRecentEvents(_ context.Context, _ int) ([]models.Event, error) {
	return nil, nil
}

func (m *memoryEventRecorder) PruneEventsBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

var _ services.EventServiceProvider = (*memoryEventRecorder)(nil)
var _ store.UserStore = (*memoryUserStore)(nil)
var _ store.ProjectStore = (*memoryProjectStore)(nil)
var _ store.TaskStore = (*memoryTaskStore)(nil)
