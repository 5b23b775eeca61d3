package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/isdelr/taskflow-be/internal/apperr"
	"github.com/isdelr/taskflow-be/internal/models"
)

// SQLiteEventStore implements EventStore on the shared sql.DB.
type SQLiteEventStore struct {
	db *sql.DB
}

// NewEventStore creates a new SQLiteEventStore.
func NewEventStore(db *sql.DB) *SQLiteEventStore {
	return &SQLiteEventStore{db: db}
}

// Insert stores a new event row.
func (s *SQLiteEventStore) Insert(ctx context.Context, event models.Event) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events(id, type, level, message, project_id, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.ProjectID, event.CreatedAt)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "insert event", err)
	}
	return nil
}

// ListRecent retrieves the most recent events.
func (s *SQLiteEventStore) ListRecent(ctx context.Context, limit int) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, type, level, message, project_id, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "query events", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var projectID sql.NullString
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &projectID, &event.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.Storage, "scan event", err)
		}
		if projectID.Valid {
			event.ProjectID = &projectID.String
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "iterate events", err)
	}
	return events, nil
}

// DeleteOlderThan prunes events created before the cutoff.
func (s *SQLiteEventStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE created_at < ?", cutoff.UTC())
	if err != nil {
		return 0, apperr.Wrap(apperr.Storage, "delete events", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperr.Wrap(apperr.Storage, "count deleted events", err)
	}
	return n, nil
}
