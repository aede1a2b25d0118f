package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/testutil"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	user      models.User
	workspace models.Workspace
	project   models.Project
	sections  []models.Section
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)

	user := models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	workspace := &models.Workspace{Name: "Team", OwnerID: user.ID, InviteCode: "aaaa-bbbb-cccc"}
	owner := &models.WorkspaceMember{Role: models.RoleOwner, JoinedAt: time.Now()}
	require.NoError(t, NewWorkspaceRepository(db).CreateWithOwner(workspace, owner))

	project := &models.Project{WorkspaceID: workspace.ID, Name: "Launch", Status: models.ProjectStatusNotStarted}
	require.NoError(t, NewProjectRepository(db).CreateWithSections(project, []string{"未着手", "進行中", "完了"}))

	return fixture{
		db:        db,
		user:      user,
		workspace: *workspace,
		project:   *project,
		sections:  project.Sections,
	}
}

func (f fixture) createTask(t *testing.T, name string, mutate func(*models.Task)) *models.Task {
	t.Helper()
	task := &models.Task{
		ProjectID: f.project.ID,
		SectionID: f.sections[0].ID,
		Name:      name,
		Priority:  models.TaskPriorityMedium,
		Status:    models.TaskStatusNotStarted,
	}
	if mutate != nil {
		mutate(task)
	}
	require.NoError(t, NewTaskRepository(f.db).Create(task, nil))
	return task
}

func (f fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f fixture) createTag(t *testing.T, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: "#123456"}
	require.NoError(t, NewTagRepository(f.db).Create(tag))
	return tag
}

func (f fixture) createNotifications(t *testing.T, n int, base time.Time) []models.Notification {
	t.Helper()
	repo := NewNotificationRepository(f.db)
	created := make([]models.Notification, n)
	for i := 0; i < n; i++ {
		notification := models.Notification{
			UserID:  f.user.ID,
			Title:   fmt.Sprintf("n%d", i),
			Content: "content",
		}
		notification.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(&notification))
		created[i] = notification
	}
	return created
}
