package models

import "time"

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "未着手"
	TaskStatusInProgress TaskStatus = "進行中"
	TaskStatusReview     TaskStatus = "レビュー待ち"
	TaskStatusDone       TaskStatus = "完了"
	TaskStatusOnHold     TaskStatus = "保留"
)

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "高"
	TaskPriorityMedium TaskPriority = "中"
	TaskPriorityLow    TaskPriority = "低"
)

type Task struct {
	Base
	ProjectID    string       `gorm:"type:varchar(36);not null;index" json:"project_id"`
	SectionID    string       `gorm:"type:varchar(36);not null;index" json:"section_id"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	Description  string       `gorm:"type:text" json:"description"`
	AssigneeID   *string      `gorm:"type:varchar(36);index" json:"assignee_id"`
	DueDate      *time.Time   `gorm:"index" json:"due_date"`
	Priority     TaskPriority `gorm:"type:varchar(10);not null;default:'中'" json:"priority"`
	Status       TaskStatus   `gorm:"type:varchar(20);not null;default:'未着手'" json:"status"`
	ParentTaskID *string      `gorm:"type:varchar(36);index" json:"parent_task_id"`

	// Relations
	Project     Project      `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Section     Section      `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Assignee    *User        `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	SubTasks    []Task       `gorm:"foreignKey:ParentTaskID" json:"sub_tasks,omitempty"`
	TaskTags    []TaskTag    `gorm:"foreignKey:TaskID" json:"-"`
	Comments    []Comment    `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:TaskID" json:"attachments,omitempty"`
}

// IsDone reports whether the task no longer needs attention.
func (t Task) IsDone() bool {
	return t.Status == TaskStatusDone
}
