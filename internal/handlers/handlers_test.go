package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-task-api/internal/constants"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/services"
	"github.com/yukikurage/workspace-task-api/internal/testutil"
	"gorm.io/gorm"
)

const testUserHeader = "X-Test-User"

type testEnv struct {
	db            *gorm.DB
	router        *gin.Engine
	authService   *services.AuthService
	workspaceRepo repository.WorkspaceRepository
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)

	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tagRepo := repository.NewTagRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	guard := services.NewAccessGuard(workspaceRepo, projectRepo, sectionRepo, taskRepo)
	emitter := services.NewEmitter(notificationRepo)
	authService := services.NewAuthService(userRepo)

	workspaceHandler := NewWorkspaceHandler(services.NewWorkspaceService(workspaceRepo, userRepo, guard))
	projectHandler := NewProjectHandler(services.NewProjectService(projectRepo, guard), services.NewSectionService(sectionRepo, guard))
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, sectionRepo, guard, emitter, nil))
	tagHandler := NewTagHandler(services.NewTagService(tagRepo, taskRepo))
	commentHandler := NewCommentHandler(
		services.NewCommentService(commentRepo, userRepo, guard, emitter),
		services.NewAttachmentService(attachmentRepo, userRepo, guard, emitter),
	)
	notificationHandler := NewNotificationHandler(services.NewNotificationService(notificationRepo, taskRepo, userRepo, emitter))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID := c.GetHeader(testUserHeader); userID != "" {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	})

	r.GET("/workspaces", workspaceHandler.ListWorkspaces)
	r.POST("/workspaces", workspaceHandler.CreateWorkspace)
	r.POST("/workspaces/join", workspaceHandler.JoinWorkspace)
	r.GET("/workspaces/:id", workspaceHandler.GetWorkspace)
	r.PUT("/workspaces/:id", workspaceHandler.UpdateWorkspace)
	r.DELETE("/workspaces/:id", workspaceHandler.DeleteWorkspace)
	r.POST("/workspaces/:id/members", workspaceHandler.InviteMember)
	r.DELETE("/workspaces/:id/members/:user_id", workspaceHandler.RemoveMember)
	r.GET("/workspaces/:id/projects", projectHandler.ListProjects)
	r.POST("/workspaces/:id/projects", projectHandler.CreateProject)
	r.GET("/workspaces/:id/projects/:project_id", projectHandler.GetProject)
	r.GET("/projects/:id/sections", projectHandler.ListSections)
	r.POST("/projects/:id/sections", projectHandler.CreateSection)
	r.GET("/projects/:id/tasks", taskHandler.ListTasks)
	r.POST("/projects/:id/tasks", taskHandler.CreateTask)
	r.POST("/projects/:id/tasks/suggest", taskHandler.SuggestTasks)
	r.GET("/projects/:id/views/:type", projectHandler.GetProjectView)
	r.POST("/sections/:id/reorder", projectHandler.ReorderSection)
	r.GET("/tasks/:id", taskHandler.GetTask)
	r.PUT("/tasks/:id", taskHandler.UpdateTask)
	r.DELETE("/tasks/:id", taskHandler.DeleteTask)
	r.POST("/tasks/:id/comments", commentHandler.CreateComment)
	r.DELETE("/comments/:id", commentHandler.DeleteComment)
	r.POST("/tasks/:id/attachments", commentHandler.CreateAttachment)
	r.POST("/tags", tagHandler.CreateTag)
	r.DELETE("/tags/:id", tagHandler.DeleteTag)
	r.GET("/notifications", notificationHandler.ListNotifications)
	r.GET("/notifications/unread-count", notificationHandler.GetUnreadCount)
	r.POST("/notifications/read-all", notificationHandler.MarkAllAsRead)

	return testEnv{
		db:            db,
		router:        r,
		authService:   authService,
		workspaceRepo: workspaceRepo,
	}
}

func (env testEnv) signup(t *testing.T, name, email string) *models.User {
	t.Helper()
	user, err := env.authService.Signup(services.SignupInput{
		Name:     name,
		Email:    email,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

// personalWorkspaceID returns the ID of the workspace created at signup.
func (env testEnv) personalWorkspaceID(t *testing.T, userID string) string {
	t.Helper()
	workspaces, err := env.workspaceRepo.ListForUser(userID)
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	return workspaces[0].ID
}

func (env testEnv) do(t *testing.T, method, path, userID string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

// createProject creates a project in workspaceID and returns its detail.
func (env testEnv) createProject(t *testing.T, workspaceID, userID, name string) projectDetail {
	t.Helper()

	w := env.do(t, http.MethodPost, "/workspaces/"+workspaceID+"/projects", userID, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decode(t, w, &created)

	w = env.do(t, http.MethodGet, "/workspaces/"+workspaceID+"/projects/"+created.ID, userID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var detail projectDetail
	decode(t, w, &detail)
	return detail
}

type projectDetail struct {
	ID       string `json:"id"`
	Sections []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Order int    `json:"order"`
	} `json:"sections"`
}
