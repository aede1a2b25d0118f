package server

import (
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/services"
	"gorm.io/gorm"
)

// Services holds every service the HTTP layer calls.
type Services struct {
	Auth         *services.AuthService
	Workspace    *services.WorkspaceService
	Project      *services.ProjectService
	Section      *services.SectionService
	Task         *services.TaskService
	Tag          *services.TagService
	Comment      *services.CommentService
	Attachment   *services.AttachmentService
	Notification *services.NotificationService
}

// NewServices builds repositories over db and the services on top of them.
// aiService may be nil, in which case task suggestions are unavailable.
func NewServices(db *gorm.DB, aiService *services.AIService) Services {
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

	return Services{
		Auth:         services.NewAuthService(userRepo),
		Workspace:    services.NewWorkspaceService(workspaceRepo, userRepo, guard),
		Project:      services.NewProjectService(projectRepo, guard),
		Section:      services.NewSectionService(sectionRepo, guard),
		Task:         services.NewTaskService(taskRepo, sectionRepo, guard, emitter, aiService),
		Tag:          services.NewTagService(tagRepo, taskRepo),
		Comment:      services.NewCommentService(commentRepo, userRepo, guard, emitter),
		Attachment:   services.NewAttachmentService(attachmentRepo, userRepo, guard, emitter),
		Notification: services.NewNotificationService(notificationRepo, taskRepo, userRepo, emitter),
	}
}
