package authz_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/isdelr/taskflow-be/internal/authz"
	"github.com/isdelr/taskflow-be/internal/models"
)

func strptr(s string) *string { return &s }

func TestCanCreateTask(t *testing.T) {
	project := models.Project{ID: "p1", OwnerID: "owner"}

	d := authz.CanCreateTask("owner", project)
	require.True(t, d.Allowed)
	require.Empty(t, d.Reason)

	d = authz.CanCreateTask("someone-else", project)
	require.False(t, d.Allowed)
	require.Equal(t, "you are not authorized to create tasks in this project", d.Reason)
}

func TestCanUpdateTask(t *testing.T) {
	task := models.Task{ID: "t1", ProjectID: "p1", AssignedTo: strptr("assignee")}

	require.True(t, authz.CanUpdateTask("assignee", task).Allowed)

	d := authz.CanUpdateTask("owner", task)
	require.False(t, d.Allowed)
	require.Equal(t, "you are not allowed to update this task", d.Reason)
}

func TestCanUpdateTaskUnassigned(t *testing.T) {
	task := models.Task{ID: "t1", ProjectID: "p1"}
	require.False(t, authz.CanUpdateTask("anyone", task).Allowed)
}

func TestCanDeleteTask(t *testing.T) {
	project := models.Project{ID: "p1", OwnerID: "owner"}
	task := models.Task{ID: "t1", ProjectID: "p1", AssignedTo: strptr("assignee")}

	require.True(t, authz.CanDeleteTask("assignee", task, project).Allowed)
	require.True(t, authz.CanDeleteTask("owner", task, project).Allowed)

	d := authz.CanDeleteTask("stranger", task, project)
	require.False(t, d.Allowed)
	require.Equal(t, "you are not authorized to delete this task", d.Reason)
}

func TestCanDeleteTaskUnassigned(t *testing.T) {
	project := models.Project{ID: "p1", OwnerID: "owner"}
	task := models.Task{ID: "t1", ProjectID: "p1"}

	require.True(t, authz.CanDeleteTask("owner", task, project).Allowed)
	require.False(t, authz.CanDeleteTask("stranger", task, project).Allowed)
}
