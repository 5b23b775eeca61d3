package models

import "time"

// Project groups tasks under a single owner. A project has exactly one
// owner at all times; ownership is not transferable.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}
