package services

import (
	"fmt"
	"log"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
)

// EventKind identifies the template used for a notification.
type EventKind string

const (
	EventTaskAssigned  EventKind = "task_assigned"
	EventTaskDueSoon   EventKind = "task_due_soon"
	EventTaskCommented EventKind = "task_commented"
	EventFileAttached  EventKind = "file_attached"
	EventGeneric       EventKind = "generic"
)

// WarningNotificationFailed is reported to callers when a mutation succeeded
// but its notification could not be stored.
const WarningNotificationFailed = "notification could not be delivered"

// Event carries the parameters of one notification.
type Event struct {
	Kind        EventKind
	RecipientID string
	TaskName    string
	ProjectName string
	ActorName   string
	FileName    string
	DaysLeft    int
	// Title and Content are used verbatim by generic events.
	Title   string
	Content string
}

// TaskAssignedEvent notifies recipientID that a task was assigned to them.
func TaskAssignedEvent(recipientID, taskName, projectName string) Event {
	return Event{Kind: EventTaskAssigned, RecipientID: recipientID, TaskName: taskName, ProjectName: projectName}
}

// TaskDueSoonEvent notifies recipientID that a task is due in daysLeft days.
func TaskDueSoonEvent(recipientID, taskName, projectName string, daysLeft int) Event {
	return Event{Kind: EventTaskDueSoon, RecipientID: recipientID, TaskName: taskName, ProjectName: projectName, DaysLeft: daysLeft}
}

// TaskCommentedEvent notifies recipientID that actorName commented on a task.
func TaskCommentedEvent(recipientID, taskName, actorName string) Event {
	return Event{Kind: EventTaskCommented, RecipientID: recipientID, TaskName: taskName, ActorName: actorName}
}

// FileAttachedEvent notifies recipientID that actorName attached a file to a task.
func FileAttachedEvent(recipientID, taskName, actorName, fileName string) Event {
	return Event{Kind: EventFileAttached, RecipientID: recipientID, TaskName: taskName, ActorName: actorName, FileName: fileName}
}

// GenericEvent notifies recipientID with a free-form title and content.
func GenericEvent(recipientID, title, content string) Event {
	return Event{Kind: EventGeneric, RecipientID: recipientID, Title: title, Content: content}
}

// Render returns the title and content of the notification for e.
func (e Event) Render() (string, string, error) {
	switch e.Kind {
	case EventTaskAssigned:
		return "タスクが割り当てられました",
			fmt.Sprintf("タスク「%s」（プロジェクト：%s）があなたに割り当てられました。", e.TaskName, e.ProjectName),
			nil
	case EventTaskDueSoon:
		return "タスクの期限が近づいています",
			fmt.Sprintf("タスク「%s」（プロジェクト：%s）の期限まであと%d日です。", e.TaskName, e.ProjectName, e.DaysLeft),
			nil
	case EventTaskCommented:
		return "タスクにコメントが追加されました",
			fmt.Sprintf("%sさんがタスク「%s」にコメントを追加しました。", e.ActorName, e.TaskName),
			nil
	case EventFileAttached:
		return "タスクにファイルが追加されました",
			fmt.Sprintf("%sさんがタスク「%s」にファイル「%s」を追加しました。", e.ActorName, e.TaskName, e.FileName),
			nil
	case EventGeneric:
		return e.Title, e.Content, nil
	default:
		return "", "", fmt.Errorf("unknown notification kind %q", e.Kind)
	}
}

// Emitter stores one notification per event with a single insert.
type Emitter struct {
	notificationRepo repository.NotificationRepository
}

// NewEmitter creates a new Emitter
func NewEmitter(notificationRepo repository.NotificationRepository) *Emitter {
	return &Emitter{notificationRepo: notificationRepo}
}

// Emit persists the notification described by event.
func (e *Emitter) Emit(event Event) (*models.Notification, error) {
	title, content, err := event.Render()
	if err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:  event.RecipientID,
		Title:   title,
		Content: content,
	}
	if err := e.notificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to emit %s notification: %w", event.Kind, err)
	}

	return notification, nil
}

// EmitBestEffort emits event and turns a failure into a warning for the caller.
func (e *Emitter) EmitBestEffort(event Event) []string {
	if _, err := e.Emit(event); err != nil {
		log.Printf("Notification for %s not delivered: %v", event.RecipientID, err)
		return []string{WarningNotificationFailed}
	}
	return nil
}
