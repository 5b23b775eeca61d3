package models

import "time"

// Event represents a loggable action in the system, e.g. a task being
// created or deleted. Events feed the activity endpoint and the
// websocket stream.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "task.created", "project.deleted"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	ProjectID *string   `json:"project_id,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"created_at"`
}
