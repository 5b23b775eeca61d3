package store

import (
	"context"
	"database/sql"

	"github.com/isdelr/taskflow-be/internal/apperr"
	"github.com/isdelr/taskflow-be/internal/models"
)

// SQLiteProjectStore implements ProjectStore on the shared sql.DB.
type SQLiteProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new SQLiteProjectStore.
func NewProjectStore(db *sql.DB) *SQLiteProjectStore {
	return &SQLiteProjectStore{db: db}
}

func scanProject(scanner interface{ Scan(...interface{}) error }) (models.Project, error) {
	var project models.Project
	var desc sql.NullString

	if err := scanner.Scan(&project.ID, &project.Name, &desc, &project.OwnerID, &project.CreatedAt); err != nil {
		return models.Project{}, err
	}
	if desc.Valid {
		project.Description = &desc.String
	}
	return project, nil
}

// GetByID retrieves a single project by its ID.
func (s *SQLiteProjectStore) GetByID(ctx context.Context, id string) (models.Project, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, owner_id, created_at FROM projects WHERE id = ?", id)
	project, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Project{}, apperr.Newf(apperr.NotFound, "project with ID %s not found", id)
		}
		return models.Project{}, apperr.Wrap(apperr.Storage, "query project", err)
	}
	return project, nil
}

// List retrieves all projects.
func (s *SQLiteProjectStore) List(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, owner_id, created_at FROM projects ORDER BY created_at")
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "query projects", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.Storage, "scan project", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "iterate projects", err)
	}
	return projects, nil
}

// Insert stores a new project row.
func (s *SQLiteProjectStore) Insert(ctx context.Context, project models.Project) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO projects(id, name, description, owner_id, created_at) VALUES(?, ?, ?, ?, ?)",
		project.ID, project.Name, project.Description, project.OwnerID, project.CreatedAt)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "insert project", err)
	}
	return nil
}

// Delete removes a project row. Tasks referencing the project are left in
// place; task deletion on an orphaned project is denied by the lifecycle
// service.
func (s *SQLiteProjectStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "delete project", err)
	}
	return nil
}
