package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/isdelr/taskflow-be/internal/apperr"
	"github.com/isdelr/taskflow-be/internal/models"
)

// SQLiteTaskStore implements TaskStore on the shared sql.DB.
type SQLiteTaskStore struct {
	db *sql.DB
}

// NewTaskStore creates a new SQLiteTaskStore.
func NewTaskStore(db *sql.DB) *SQLiteTaskStore {
	return &SQLiteTaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...interface{}) error }) (models.Task, error) {
	var task models.Task
	var desc, assignedTo sql.NullString

	if err := scanner.Scan(&task.ID, &task.Title, &desc, &task.StatusID, &task.ProjectID, &assignedTo, &task.CreatedAt); err != nil {
		return models.Task{}, err
	}
	if desc.Valid {
		task.Description = &desc.String
	}
	if assignedTo.Valid {
		task.AssignedTo = &assignedTo.String
	}
	return task, nil
}

// GetByID retrieves a single task by its ID.
func (s *SQLiteTaskStore) GetByID(ctx context.Context, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, description, status_id, project_id, assigned_to, created_at FROM tasks WHERE id = ?", id)
	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, apperr.Newf(apperr.NotFound, "task with ID %s not found", id)
		}
		return models.Task{}, apperr.Wrap(apperr.Storage, "query task", err)
	}
	return task, nil
}

// List retrieves all tasks.
func (s *SQLiteTaskStore) List(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, description, status_id, project_id, assigned_to, created_at FROM tasks ORDER BY created_at")
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "query tasks", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.Storage, "scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "iterate tasks", err)
	}
	return tasks, nil
}

// Insert stores a new task row.
func (s *SQLiteTaskStore) Insert(ctx context.Context, task models.Task) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks(id, title, description, status_id, project_id, assigned_to, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.Title, task.Description, task.StatusID, task.ProjectID, task.AssignedTo, task.CreatedAt)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "insert task", err)
	}
	return nil
}

// UpdateAssigned applies the non-nil fields of the patch, but only while the
// row is still assigned to assigneeID. The project_id column is never part
// of the SET list.
func (s *SQLiteTaskStore) UpdateAssigned(ctx context.Context, id, assigneeID string, patch TaskPatch) (models.Task, error) {
	var sets []string
	var args []interface{}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.StatusID != nil {
		sets = append(sets, "status_id = ?")
		args = append(args, *patch.StatusID)
	}
	if patch.AssignedTo != nil {
		sets = append(sets, "assigned_to = ?")
		args = append(args, *patch.AssignedTo)
	}
	if len(sets) == 0 {
		return s.GetByID(ctx, id)
	}
	args = append(args, id, assigneeID)

	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ? AND assigned_to = ?", args...)
	if err != nil {
		return models.Task{}, apperr.Wrap(apperr.Storage, "update task", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// The row changed under us between fetch and write: either it is
		// gone, or it was reassigned.
		if _, getErr := s.GetByID(ctx, id); apperr.IsKind(getErr, apperr.NotFound) {
			return models.Task{}, getErr
		}
		return models.Task{}, apperr.New(apperr.Forbidden, "you are not allowed to update this task")
	}
	return s.GetByID(ctx, id)
}

// DeleteAuthorized removes the row only while userID is still its assignee
// or the owner of its project.
func (s *SQLiteTaskStore) DeleteAuthorized(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks
		WHERE id = ?
		  AND (assigned_to = ? OR project_id IN (SELECT id FROM projects WHERE owner_id = ?))`,
		id, userID, userID)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "delete task", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, getErr := s.GetByID(ctx, id); apperr.IsKind(getErr, apperr.NotFound) {
			return getErr
		}
		return apperr.New(apperr.Forbidden, "you are not authorized to delete this task")
	}
	return nil
}
