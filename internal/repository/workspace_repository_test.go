package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/gorm"
)

func TestWorkspaceRepository_MembershipAndListing(t *testing.T) {
	f := newFixture(t)
	repo := NewWorkspaceRepository(f.db)

	bob := models.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, f.db.Create(&bob).Error)

	isMember, err := repo.IsMember(f.workspace.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, isMember)

	require.NoError(t, repo.AddMember(&models.WorkspaceMember{
		WorkspaceID: f.workspace.ID,
		UserID:      bob.ID,
		Role:        models.RoleMember,
		JoinedAt:    time.Now(),
	}))

	isMember, err = repo.IsMember(f.workspace.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	workspaces, err := repo.ListForUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, "Alice", workspaces[0].Owner.Name)
	assert.Len(t, workspaces[0].Members, 2)

	detail, err := repo.FindByIDWithMembers(f.workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, detail.Members[0].Role)

	counts, err := repo.CountProjects([]string{f.workspace.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[f.workspace.ID])

	require.NoError(t, repo.RemoveMember(f.workspace.ID, bob.ID))
	_, err = repo.FindMember(f.workspace.ID, bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWorkspaceRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	tag := f.createTag(t, "bug")
	task := f.createTask(t, "Parent", nil)
	f.createTask(t, "Child", func(tk *models.Task) { tk.ParentTaskID = &task.ID })
	require.NoError(t, NewTaskRepository(f.db).Update(task, &[]string{tag.ID}))
	require.NoError(t, NewCommentRepository(f.db).Create(&models.Comment{TaskID: task.ID, UserID: f.user.ID, Content: "hi"}))

	require.NoError(t, NewWorkspaceRepository(f.db).Delete(f.workspace.ID))

	assert.Zero(t, f.count(t, &models.Workspace{}))
	assert.Zero(t, f.count(t, &models.WorkspaceMember{}))
	assert.Zero(t, f.count(t, &models.Project{}))
	assert.Zero(t, f.count(t, &models.Section{}))
	assert.Zero(t, f.count(t, &models.Task{}))
	assert.Zero(t, f.count(t, &models.TaskTag{}))
	assert.Zero(t, f.count(t, &models.Comment{}))
	assert.EqualValues(t, 1, f.count(t, &models.Tag{}))
	assert.EqualValues(t, 1, f.count(t, &models.User{}))
}

func TestUserRepository_CreateWithPersonalWorkspace(t *testing.T) {
	f := newFixture(t)
	repo := NewUserRepository(f.db)

	user := &models.User{Name: "Carol", Email: "carol@example.com", PasswordHash: "x"}
	workspace := &models.Workspace{Name: "Carolのワークスペース", InviteCode: "1111-2222-3333"}
	member := &models.WorkspaceMember{Role: models.RoleOwner, JoinedAt: time.Now()}
	require.NoError(t, repo.CreateWithPersonalWorkspace(user, workspace, member))

	assert.Equal(t, user.ID, workspace.OwnerID)
	found, err := repo.FindByEmail("carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// Duplicate invite code rolls back the whole signup.
	dup := &models.User{Name: "Dave", Email: "dave@example.com", PasswordHash: "x"}
	err = repo.CreateWithPersonalWorkspace(dup,
		&models.Workspace{Name: "Dave", InviteCode: "1111-2222-3333"},
		&models.WorkspaceMember{Role: models.RoleOwner, JoinedAt: time.Now()})
	require.ErrorIs(t, err, ErrCreateWorkspace)

	_, err = repo.FindByEmail("dave@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
