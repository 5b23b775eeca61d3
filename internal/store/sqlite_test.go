package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/isdelr/taskflow-be/internal/apperr"
	"github.com/isdelr/taskflow-be/internal/database"
	"github.com/isdelr/taskflow-be/internal/models"
	"github.com/isdelr/taskflow-be/internal/store"
)

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// In-memory databases are per-connection.
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

// seedProjectAndTask inserts owner/assignee users, one project and one task.
func seedProjectAndTask(t *testing.T, db *sql.DB) (models.Project, models.Task) {
	t.Helper()
	ctx := context.Background()

	users := store.NewUserStore(db)
	require.NoError(t, users.Insert(ctx, models.User{ID: "owner", Name: "Owner", Email: "owner@example.com", PasswordHash: "x", CreatedAt: time.Now().UTC()}))
	require.NoError(t, users.Insert(ctx, models.User{ID: "assignee", Name: "Assignee", Email: "assignee@example.com", PasswordHash: "x", CreatedAt: time.Now().UTC()}))

	projects := store.NewProjectStore(db)
	project := models.Project{ID: "p1", Name: "Backend", OwnerID: "owner", CreatedAt: time.Now().UTC()}
	require.NoError(t, projects.Insert(ctx, project))

	tasks := store.NewTaskStore(db)
	task := models.Task{
		ID:         "t1",
		Title:      "Write docs",
		StatusID:   1,
		ProjectID:  "p1",
		AssignedTo: strptr("assignee"),
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, tasks.Insert(ctx, task))
	return project, task
}

func TestTaskRoundTripOptionalFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedProjectAndTask(t, db)

	tasks := store.NewTaskStore(db)
	require.NoError(t, tasks.Insert(ctx, models.Task{
		ID:        "t2",
		Title:     "Bare task",
		StatusID:  2,
		ProjectID: "p1",
		CreatedAt: time.Now().UTC(),
	}))

	got, err := tasks.GetByID(ctx, "t2")
	require.NoError(t, err)
	require.Nil(t, got.Description)
	require.Nil(t, got.AssignedTo)
	require.Equal(t, "p1", got.ProjectID)
}

func TestTaskGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)

	tasks := store.NewTaskStore(db)
	_, err := tasks.GetByID(context.Background(), "missing")
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestUpdateAssignedPartial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedProjectAndTask(t, db)

	tasks := store.NewTaskStore(db)
	got, err := tasks.UpdateAssigned(ctx, "t1", "assignee", store.TaskPatch{StatusID: intptr(3)})
	require.NoError(t, err)
	require.Equal(t, 3, got.StatusID)
	require.Equal(t, "Write docs", got.Title)
	require.NotNil(t, got.AssignedTo)
	require.Equal(t, "assignee", *got.AssignedTo)
	require.Equal(t, "p1", got.ProjectID)
}

func TestUpdateAssignedGuard(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedProjectAndTask(t, db)

	tasks := store.NewTaskStore(db)
	// Someone who is not the current assignee never matches the guarded WHERE.
	_, err := tasks.UpdateAssigned(ctx, "t1", "owner", store.TaskPatch{Title: strptr("x")})
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	got, err := tasks.GetByID(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "Write docs", got.Title)
}

func TestDeleteAuthorized(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedProjectAndTask(t, db)
	tasks := store.NewTaskStore(db)

	require.Equal(t, apperr.Forbidden, apperr.KindOf(tasks.DeleteAuthorized(ctx, "t1", "stranger")))

	// The project owner matches via the ownership subquery.
	require.NoError(t, tasks.DeleteAuthorized(ctx, "t1", "owner"))
	_, err := tasks.GetByID(ctx, "t1")
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))

	require.Equal(t, apperr.NotFound, apperr.KindOf(tasks.DeleteAuthorized(ctx, "t1", "owner")))
}

func TestUserEmailRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedProjectAndTask(t, db)

	users := store.NewUserStore(db)

	byID, err := users.GetByID(ctx, "owner")
	require.NoError(t, err)
	require.Empty(t, byID.PasswordHash, "GetByID must not read the hash")

	byEmail, err := users.GetByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	require.Equal(t, "x", byEmail.PasswordHash)
}

func TestEventPruning(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	events := store.NewEventStore(db)
	old := models.Event{ID: "e1", Type: "task.created", Level: "info", Message: "old", CreatedAt: time.Now().Add(-48 * time.Hour).UTC()}
	fresh := models.Event{ID: "e2", Type: "task.created", Level: "info", Message: "fresh", CreatedAt: time.Now().UTC()}
	require.NoError(t, events.Insert(ctx, old))
	require.NoError(t, events.Insert(ctx, fresh))

	n, err := events.DeleteOlderThan(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	remaining, err := events.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "e2", remaining[0].ID)
}
