package constants

const (
	// ContextKeyUserID is used both as the session key and the gin context key.
	ContextKeyUserID = "user_id"

	SessionCookieName = "task_session"

	MinPasswordLength = 8

	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 100

	MaxAIGeneratedTasks = 20
)

// DefaultSectionNames are created, in order, for every new project.
var DefaultSectionNames = []string{"未着手", "進行中", "完了"}
