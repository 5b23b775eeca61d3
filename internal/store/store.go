// Package store is the record store gateway: per-entity read/write
// capabilities over the backing database. Services receive these as
// injected interfaces so tests can substitute in-memory doubles.
package store

import (
	"context"
	"time"

	"github.com/isdelr/taskflow-be/internal/models"
)

// UserPatch carries a partial update of a user; nil fields are left unchanged.
type UserPatch struct {
	Name      *string
	Email     *string
	AvatarURL *string
}

// TaskPatch carries a partial update of a task; nil fields are left
// unchanged. There is deliberately no ProjectID field: a task cannot move
// between projects after creation.
type TaskPatch struct {
	Title       *string
	Description *string
	StatusID    *int
	AssignedTo  *string
}

// UserStore reads and writes rows of the users table.
type UserStore interface {
	GetByID(ctx context.Context, id string) (models.User, error)
	// GetByEmail is the only read that includes the password hash; it exists
	// for the login check.
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Insert(ctx context.Context, user models.User) error
	Update(ctx context.Context, id string, patch UserPatch) (models.User, error)
	Delete(ctx context.Context, id string) error
}

// ProjectStore reads and writes rows of the projects table.
type ProjectStore interface {
	GetByID(ctx context.Context, id string) (models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Insert(ctx context.Context, project models.Project) error
	Delete(ctx context.Context, id string) error
}

// TaskStore reads and writes rows of the tasks table.
type TaskStore interface {
	GetByID(ctx context.Context, id string) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Insert(ctx context.Context, task models.Task) error
	// UpdateAssigned applies the patch only while the row is still assigned
	// to the given user, re-asserting the authorization predicate at write
	// time to narrow the check-then-act window.
	UpdateAssigned(ctx context.Context, id, assigneeID string, patch TaskPatch) (models.Task, error)
	// DeleteAuthorized deletes the row only while the given user is still
	// its assignee or the owner of its project.
	DeleteAuthorized(ctx context.Context, id, userID string) error
}

// EventStore reads and writes rows of the events table.
type EventStore interface {
	Insert(ctx context.Context, event models.Event) error
	ListRecent(ctx context.Context, limit int) ([]models.Event, error)
	// DeleteOlderThan prunes events created before the cutoff and reports
	// how many rows were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
