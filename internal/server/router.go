package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/constants"
	"github.com/yukikurage/workspace-task-api/internal/handlers"
	"github.com/yukikurage/workspace-task-api/internal/middleware"
)

// Options configures the HTTP engine.
type Options struct {
	AllowedOrigins []string
	SessionStore   sessions.Store
}

// NewRouter builds the gin engine with session, CORS and every API route.
func NewRouter(opts Options, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(sessions.Sessions(constants.SessionCookieName, opts.SessionStore))

	authHandler := handlers.NewAuthHandler(svc.Auth)
	workspaceHandler := handlers.NewWorkspaceHandler(svc.Workspace)
	projectHandler := handlers.NewProjectHandler(svc.Project, svc.Section)
	taskHandler := handlers.NewTaskHandler(svc.Task)
	tagHandler := handlers.NewTagHandler(svc.Tag)
	commentHandler := handlers.NewCommentHandler(svc.Comment, svc.Attachment)
	notificationHandler := handlers.NewNotificationHandler(svc.Notification)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Workspace Task API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())

		workspaces := protected.Group("/workspaces")
		{
			workspaces.GET("", workspaceHandler.ListWorkspaces)
			workspaces.POST("", workspaceHandler.CreateWorkspace)
			workspaces.POST("/join", workspaceHandler.JoinWorkspace)
			workspaces.GET("/:id", workspaceHandler.GetWorkspace)
			workspaces.PUT("/:id", workspaceHandler.UpdateWorkspace)
			workspaces.DELETE("/:id", workspaceHandler.DeleteWorkspace)
			workspaces.POST("/:id/regenerate-code", workspaceHandler.RegenerateInviteCode)
			workspaces.POST("/:id/members", workspaceHandler.InviteMember)
			workspaces.DELETE("/:id/members/:user_id", workspaceHandler.RemoveMember)
			workspaces.GET("/:id/projects", projectHandler.ListProjects)
			workspaces.POST("/:id/projects", projectHandler.CreateProject)
			workspaces.GET("/:id/projects/:project_id", projectHandler.GetProject)
			workspaces.PUT("/:id/projects/:project_id", projectHandler.UpdateProject)
			workspaces.DELETE("/:id/projects/:project_id", projectHandler.DeleteProject)
		}

		projects := protected.Group("/projects")
		{
			projects.GET("/:id/sections", projectHandler.ListSections)
			projects.POST("/:id/sections", projectHandler.CreateSection)
			projects.GET("/:id/tasks", taskHandler.ListTasks)
			projects.POST("/:id/tasks", taskHandler.CreateTask)
			projects.POST("/:id/tasks/suggest", taskHandler.SuggestTasks)
			projects.GET("/:id/views/:type", projectHandler.GetProjectView)
		}

		sections := protected.Group("/sections")
		{
			sections.PUT("/:id", projectHandler.UpdateSection)
			sections.DELETE("/:id", projectHandler.DeleteSection)
			sections.POST("/:id/reorder", projectHandler.ReorderSection)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/move", taskHandler.MoveTask)
			tasks.GET("/:id/comments", commentHandler.ListComments)
			tasks.POST("/:id/comments", commentHandler.CreateComment)
			tasks.GET("/:id/attachments", commentHandler.ListAttachments)
			tasks.POST("/:id/attachments", commentHandler.CreateAttachment)
		}

		protected.PUT("/comments/:id", commentHandler.UpdateComment)
		protected.DELETE("/comments/:id", commentHandler.DeleteComment)
		protected.DELETE("/attachments/:id", commentHandler.DeleteAttachment)

		tags := protected.Group("/tags")
		{
			tags.GET("", tagHandler.ListTags)
			tags.POST("", tagHandler.CreateTag)
			tags.GET("/:id", tagHandler.GetTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
			tags.GET("/:id/tasks", tagHandler.SearchTasks)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("", notificationHandler.CreateNotification)
			notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
			notifications.POST("/read-all", notificationHandler.MarkAllAsRead)
			notifications.POST("/delete-old", notificationHandler.DeleteOldNotifications)
			notifications.POST("/:id/read", notificationHandler.MarkAsRead)
			notifications.DELETE("/:id", notificationHandler.DeleteNotification)
		}
	}

	return r
}
