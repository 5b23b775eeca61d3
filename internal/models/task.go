package models

import "time"

// Task is a unit of work inside a project. ProjectID is set at creation
// and never changes; AssignedTo is optional.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	StatusID    int       `json:"status_id"`
	ProjectID   string    `json:"project_id"`
	AssignedTo  *string   `json:"assigned_to,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
