package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessGuard_MembershipPredicates(t *testing.T) {
	env := newServiceEnv(t)
	tm := env.newTeam(t)

	ok, err := env.guard.IsWorkspaceMember(tm.workspace.ID, tm.member.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.guard.IsWorkspaceMember(tm.workspace.ID, tm.outsider.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.guard.IsWorkspaceOwner(tm.workspace.ID, tm.owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.guard.IsWorkspaceOwner(tm.workspace.ID, tm.member.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccessGuard_NotFoundBeforeMembership(t *testing.T) {
	env := newServiceEnv(t)
	tm := env.newTeam(t)

	_, err := env.guard.Workspace("missing", tm.outsider.ID)
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)

	_, err = env.guard.Project("missing", tm.outsider.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, _, err = env.guard.Section("missing", tm.outsider.ID)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	_, _, err = env.guard.Task("missing", tm.outsider.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestAccessGuard_ResolvesThroughParents(t *testing.T) {
	env := newServiceEnv(t)
	tm := env.newTeam(t)
	task := env.newTask(t, tm, "Write docs", nil)

	_, project, err := env.guard.Task(task.ID, tm.member.ID)
	require.NoError(t, err)
	assert.Equal(t, tm.project.ID, project.ID)

	_, _, err = env.guard.Task(task.ID, tm.outsider.ID)
	assert.ErrorIs(t, err, ErrNotWorkspaceMember)

	_, _, err = env.guard.Section(tm.sections[0].ID, tm.outsider.ID)
	assert.ErrorIs(t, err, ErrNotWorkspaceMember)

	_, err = env.guard.OwnedWorkspace(tm.workspace.ID, tm.member.ID)
	assert.ErrorIs(t, err, ErrNotWorkspaceOwner)

	otherWorkspace := env.personalWorkspace(t, tm.outsider.ID)
	_, err = env.guard.ProjectInWorkspace(tm.project.ID, otherWorkspace.ID, tm.outsider.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
