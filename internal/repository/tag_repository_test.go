package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
)

func TestTagRepository_NameTakenAndCounts(t *testing.T) {
	f := newFixture(t)
	repo := NewTagRepository(f.db)
	bug := f.createTag(t, "bug")
	f.createTag(t, "api")

	taken, err := repo.NameTaken("bug", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.NameTaken("bug", bug.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	task := f.createTask(t, "Tagged", nil)
	require.NoError(t, NewTaskRepository(f.db).Update(task, &[]string{bug.ID}))

	tags, err := repo.ListWithCounts()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "api", tags[0].Name)
	assert.Zero(t, tags[0].TaskCount)
	assert.Equal(t, "bug", tags[1].Name)
	assert.EqualValues(t, 1, tags[1].TaskCount)
}

func TestTagRepository_DuplicateNameIsTranslated(t *testing.T) {
	f := newFixture(t)
	f.createTag(t, "bug")

	err := NewTagRepository(f.db).Create(&models.Tag{Name: "bug", Color: "#000000"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestTagRepository_DeleteIfUnused(t *testing.T) {
	f := newFixture(t)
	repo := NewTagRepository(f.db)
	tag := f.createTag(t, "bug")
	task := f.createTask(t, "Tagged", nil)
	require.NoError(t, NewTaskRepository(f.db).Update(task, &[]string{tag.ID}))

	assert.ErrorIs(t, repo.DeleteIfUnused(tag.ID), ErrTagInUse)

	require.NoError(t, NewTaskRepository(f.db).Update(task, &[]string{}))
	require.NoError(t, repo.DeleteIfUnused(tag.ID))

	_, err := repo.FindByID(tag.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.DeleteIfUnused(tag.ID), gorm.ErrRecordNotFound)
}
