package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/testutil"
	"gorm.io/gorm"
)

// failingNotificationRepo refuses every insert.
type failingNotificationRepo struct {
	repository.NotificationRepository
}

func (failingNotificationRepo) Create(*models.Notification) error {
	return errors.New("notification store unavailable")
}

type serviceEnv struct {
	db               *gorm.DB
	userRepo         repository.UserRepository
	workspaceRepo    repository.WorkspaceRepository
	notificationRepo repository.NotificationRepository
	guard            *AccessGuard
	emitter          *Emitter

	auth          *AuthService
	workspaces    *WorkspaceService
	projects      *ProjectService
	sections      *SectionService
	tasks         *TaskService
	tags          *TagService
	comments      *CommentService
	attachments   *AttachmentService
	notifications *NotificationService
}

func newServiceEnv(t *testing.T) *serviceEnv {
	return newServiceEnvWith(t, nil, nil)
}

// newServiceEnvWith builds the services over a fresh database. A non-nil
// emitterRepo replaces the notification store used by the emitter.
func newServiceEnvWith(t *testing.T, emitterRepo repository.NotificationRepository, aiService *AIService) *serviceEnv {
	t.Helper()
	db := testutil.NewDB(t)

	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tagRepo := repository.NewTagRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	if emitterRepo == nil {
		emitterRepo = notificationRepo
	}

	guard := NewAccessGuard(workspaceRepo, projectRepo, sectionRepo, taskRepo)
	emitter := NewEmitter(emitterRepo)

	return &serviceEnv{
		db:               db,
		userRepo:         userRepo,
		workspaceRepo:    workspaceRepo,
		notificationRepo: notificationRepo,
		guard:            guard,
		emitter:          emitter,

		auth:          NewAuthService(userRepo),
		workspaces:    NewWorkspaceService(workspaceRepo, userRepo, guard),
		projects:      NewProjectService(projectRepo, guard),
		sections:      NewSectionService(sectionRepo, guard),
		tasks:         NewTaskService(taskRepo, sectionRepo, guard, emitter, aiService),
		tags:          NewTagService(tagRepo, taskRepo),
		comments:      NewCommentService(repository.NewCommentRepository(db), userRepo, guard, emitter),
		attachments:   NewAttachmentService(repository.NewAttachmentRepository(db), userRepo, guard, emitter),
		notifications: NewNotificationService(notificationRepo, taskRepo, userRepo, emitter),
	}
}

func (env *serviceEnv) signup(t *testing.T, name, email string) *models.User {
	t.Helper()
	user, err := env.auth.Signup(SignupInput{Name: name, Email: email, Password: "supersecret"})
	require.NoError(t, err)
	return user
}

func (env *serviceEnv) personalWorkspace(t *testing.T, userID string) models.Workspace {
	t.Helper()
	summaries, err := env.workspaces.ListWorkspaces(userID)
	require.NoError(t, err)
	for _, s := range summaries {
		if s.Workspace.OwnerID == userID {
			return s.Workspace
		}
	}
	require.FailNow(t, "no owned workspace", "user %s", userID)
	return models.Workspace{}
}

// team is an owner and a member sharing a workspace with one project.
type team struct {
	owner     *models.User
	member    *models.User
	outsider  *models.User
	workspace models.Workspace
	project   *models.Project
	sections  []models.Section
}

func (env *serviceEnv) newTeam(t *testing.T) team {
	t.Helper()
	owner := env.signup(t, "Owner", "owner@example.com")
	member := env.signup(t, "Member", "member@example.com")
	outsider := env.signup(t, "Outsider", "outsider@example.com")
	workspace := env.personalWorkspace(t, owner.ID)

	_, err := env.workspaces.InviteMember(workspace.ID, owner.ID, member.ID)
	require.NoError(t, err)

	project, err := env.projects.CreateProject(owner.ID, CreateProjectInput{WorkspaceID: workspace.ID, Name: "Launch"})
	require.NoError(t, err)

	sections, err := env.sections.ListSections(project.ID, owner.ID)
	require.NoError(t, err)

	return team{
		owner:     owner,
		member:    member,
		outsider:  outsider,
		workspace: workspace,
		project:   project,
		sections:  sections,
	}
}

func (env *serviceEnv) newTask(t *testing.T, tm team, name string, assigneeID *string) *models.Task {
	t.Helper()
	task, _, err := env.tasks.CreateTask(tm.owner.ID, CreateTaskInput{
		ProjectID:  tm.project.ID,
		SectionID:  tm.sections[0].ID,
		Name:       name,
		AssigneeID: assigneeID,
	})
	require.NoError(t, err)
	return task
}

func (env *serviceEnv) inbox(t *testing.T, userID string) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	require.NoError(t, env.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&notifications).Error)
	return notifications
}
