// Package authz holds the pure authorization decisions for the task
// lifecycle. The functions only ever see state freshly fetched from the
// store, never ownership claims supplied by the client.
package authz

import "github.com/isdelr/taskflow-be/internal/models"

// Decision is the outcome of an authorization check. Reason is set only
// on denials and is safe to show to the caller.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with a caller-facing reason.
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// CanCreateTask allows task creation only for the owner of the target project.
func CanCreateTask(userID string, project models.Project) Decision {
	if project.OwnerID == userID {
		return Allow()
	}
	return Deny("you are not authorized to create tasks in this project")
}

// CanUpdateTask allows task updates only for the task's current assignee.
// An unassigned task has no one allowed to update it.
func CanUpdateTask(userID string, task models.Task) Decision {
	if task.AssignedTo != nil && *task.AssignedTo == userID {
		return Allow()
	}
	return Deny("you are not allowed to update this task")
}

// CanDeleteTask allows task deletion for the task's assignee or the owner
// of its parent project.
func CanDeleteTask(userID string, task models.Task, project models.Project) Decision {
	if task.AssignedTo != nil && *task.AssignedTo == userID {
		return Allow()
	}
	if project.OwnerID == userID {
		return Allow()
	}
	return Deny("you are not authorized to delete this task")
}
