package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_CRUD(t *testing.T) {
	env := newServiceEnv(t)

	tag, err := env.tags.CreateTag(TagInput{Name: " frontend ", Color: "#3366ff"})
	require.NoError(t, err)
	assert.Equal(t, "frontend", tag.Name)

	_, err = env.tags.CreateTag(TagInput{Name: "frontend", Color: "#000000"})
	assert.ErrorIs(t, err, ErrTagNameTaken)

	_, err = env.tags.CreateTag(TagInput{Name: "backend", Color: "blue"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color")

	other, err := env.tags.CreateTag(TagInput{Name: "backend", Color: "#000000"})
	require.NoError(t, err)

	_, err = env.tags.UpdateTag(other.ID, TagInput{Name: "frontend", Color: "#000000"})
	assert.ErrorIs(t, err, ErrTagNameTaken)

	// Keeping its own name is not a conflict.
	recolored, err := env.tags.UpdateTag(other.ID, TagInput{Name: "backend", Color: "#ffffff"})
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", recolored.Color)

	tags, err := env.tags.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "backend", tags[0].Name)

	_, err = env.tags.GetTag("missing")
	assert.ErrorIs(t, err, ErrTagNotFound)
	assert.ErrorIs(t, env.tags.DeleteTag("missing"), ErrTagNotFound)
	require.NoError(t, env.tags.DeleteTag(other.ID))
}

func TestTagService_InUseAndSearch(t *testing.T) {
	env := newServiceEnv(t)
	tm := env.newTeam(t)
	tag, err := env.tags.CreateTag(TagInput{Name: "urgent", Color: "#ff0000"})
	require.NoError(t, err)

	task, _, err := env.tasks.CreateTask(tm.owner.ID, CreateTaskInput{
		ProjectID: tm.project.ID,
		SectionID: tm.sections[0].ID,
		Name:      "Hotfix",
		TagIDs:    []string{tag.ID},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, env.tags.DeleteTag(tag.ID), ErrTagInUse)

	found, err := env.tags.SearchTasks(tag.ID, tm.member.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, task.ID, found[0].ID)
	assert.Equal(t, tm.workspace.ID, found[0].Project.Workspace.ID)

	found, err = env.tags.SearchTasks(tag.ID, tm.outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, found)

	tags, err := env.tags.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.EqualValues(t, 1, tags[0].TaskCount)

	require.NoError(t, env.tasks.DeleteTask(task.ID, tm.owner.ID))
	require.NoError(t, env.tags.DeleteTag(tag.ID))
}
