package repository

import (
	"errors"
	"time"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

var (
	// ErrTagInUse is returned when deleting a tag that is still linked to a task.
	ErrTagInUse = errors.New("repository: tag is linked to tasks")
	// ErrUnknownTag is returned when a tag set references a tag that does not exist.
	ErrUnknownTag = errors.New("repository: unknown tag")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithPersonalWorkspace creates a user, their personal workspace,
	// and the owner membership within a single transaction.
	CreateWithPersonalWorkspace(user *models.User, workspace *models.Workspace, member *models.WorkspaceMember) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// WorkspaceRepository defines the interface for workspace data access
type WorkspaceRepository interface {
	// CreateWithOwner creates a workspace and its owner membership atomically
	CreateWithOwner(workspace *models.Workspace, owner *models.WorkspaceMember) error

	// FindByID finds a workspace by ID
	FindByID(id string) (*models.Workspace, error)

	// FindByIDWithMembers finds a workspace with its owner and members preloaded
	FindByIDWithMembers(id string) (*models.Workspace, error)

	// FindByInviteCode finds a workspace by invite code
	FindByInviteCode(code string) (*models.Workspace, error)

	// ListForUser lists the workspaces a user is a member of
	ListForUser(userID string) ([]models.Workspace, error)

	// CountProjects returns the number of projects per workspace ID
	CountProjects(workspaceIDs []string) (map[string]int64, error)

	// Update updates a workspace
	Update(workspace *models.Workspace) error

	// Delete deletes a workspace and everything it owns
	Delete(id string) error

	// AddMember adds a member to a workspace
	AddMember(member *models.WorkspaceMember) error

	// RemoveMember removes a member from a workspace
	RemoveMember(workspaceID, userID string) error

	// FindMember finds a specific workspace member
	FindMember(workspaceID, userID string) (*models.WorkspaceMember, error)

	// IsMember reports whether a membership row exists
	IsMember(workspaceID, userID string) (bool, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithSections creates a project and its initial sections atomically
	CreateWithSections(project *models.Project, sectionNames []string) error

	// FindByID finds a project by ID
	FindByID(id string) (*models.Project, error)

	// FindDetail finds a project with sections (ordered) and their tasks
	FindDetail(id string) (*models.Project, error)

	// ListByWorkspace lists projects of a workspace, most recently updated first
	ListByWorkspace(workspaceID string) ([]models.Project, error)

	// CountTasks returns the number of tasks per project ID
	CountTasks(projectIDs []string) (map[string]int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and everything it owns
	Delete(id string) error
}

// SectionRepository defines the interface for section data access
type SectionRepository interface {
	// CreateAtEnd creates a section ordered after every existing section of its project
	CreateAtEnd(section *models.Section) error

	// FindByID finds a section by ID
	FindByID(id string) (*models.Section, error)

	// ListByProject lists sections with their tasks, ordered by position
	ListByProject(projectID string) ([]models.Section, error)

	// Update updates a section
	Update(section *models.Section) error

	// Delete deletes a section and its tasks
	Delete(id string) error

	// Reorder moves a section to order, shifting every other section at or after it
	Reorder(id string, order int) (*models.Section, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID string
	SectionID *string
}

// TaskCounts holds the number of related rows of a task
type TaskCounts struct {
	Comments    int64 `json:"comments"`
	Attachments int64 `json:"attachments"`
	SubTasks    int64 `json:"sub_tasks"`
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task and links the given tags atomically
	Create(task *models.Task, tagIDs []string) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Task, error)

	// FindDetail finds a task with assignee, project, section, tags, sub-tasks,
	// comments and attachments (both newest first)
	FindDetail(id string) (*models.Task, error)

	// List retrieves tasks of a project, most recently updated first
	List(filter TaskFilter) ([]models.Task, error)

	// CountRelations returns comment, attachment and sub-task counts per task ID
	CountRelations(taskIDs []string) (map[string]TaskCounts, error)

	// Update updates a task; a non-nil tagIDs replaces the tag set in the same transaction
	Update(task *models.Task, tagIDs *[]string) error

	// MoveToSection changes the section of a task
	MoveToSection(id, sectionID string) error

	// Delete deletes a task, its sub-tasks and their comments, attachments and tag links
	Delete(id string) error

	// ListByTag lists tasks carrying a tag inside workspaces the user belongs to
	ListByTag(tagID, userID string) ([]models.Task, error)

	// ListDueBetween lists unfinished, assigned tasks due in [from, to)
	ListDueBetween(from, to time.Time) ([]models.Task, error)
}

// TagWithCount is a tag with the number of tasks linked to it
type TagWithCount struct {
	models.Tag
	TaskCount int64
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// Create creates a new tag
	Create(tag *models.Tag) error

	// FindByID finds a tag by ID
	FindByID(id string) (*models.Tag, error)

	// NameTaken reports whether another tag already uses name
	NameTaken(name, excludeID string) (bool, error)

	// ListWithCounts lists all tags by name with their task counts
	ListWithCounts() ([]TagWithCount, error)

	// Update updates a tag
	Update(tag *models.Tag) error

	// DeleteIfUnused deletes a tag unless a task references it (ErrTagInUse)
	DeleteIfUnused(id string) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByID(id string) (*models.Comment, error)
	// ListByTask lists comments of a task, oldest first
	ListByTask(taskID string) ([]models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id string) error
}

// AttachmentRepository defines the interface for attachment data access
type AttachmentRepository interface {
	Create(attachment *models.Attachment) error
	FindByID(id string) (*models.Attachment, error)
	// ListByTask lists attachments of a task, newest first
	ListByTask(taskID string) ([]models.Attachment, error)
	Delete(id string) error
}

// NotificationFilter selects notifications for one recipient
type NotificationFilter struct {
	UserID     string
	UnreadOnly bool
	Page       utils.CursorParams
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create inserts a notification
	Create(notification *models.Notification) error

	// FindByID finds a notification by ID
	FindByID(id string) (*models.Notification, error)

	// List returns up to Page.Limit+1 notifications, newest first, starting at Page.Cursor
	List(filter NotificationFilter) ([]models.Notification, error)

	// CountUnread counts unread notifications of a user
	CountUnread(userID string) (int64, error)

	// MarkRead marks one notification as read
	MarkRead(id string) error

	// MarkAllRead marks every unread notification of a user as read
	MarkAllRead(userID string) (int64, error)

	// Delete deletes a notification
	Delete(id string) error

	// DeleteReadOlderThan deletes a user's read notifications created before cutoff
	DeleteReadOlderThan(userID string, cutoff time.Time) (int64, error)
}
