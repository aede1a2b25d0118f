package models

import "time"

type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "未着手"
	ProjectStatusInProgress ProjectStatus = "進行中"
	ProjectStatusDone       ProjectStatus = "完了"
	ProjectStatusOnHold     ProjectStatus = "保留"
)

type Project struct {
	Base
	WorkspaceID string        `gorm:"type:varchar(36);not null;index" json:"workspace_id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	DueDate     *time.Time    `json:"due_date"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'未着手'" json:"status"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Sections  []Section `gorm:"foreignKey:ProjectID" json:"sections,omitempty"`
	Tasks     []Task    `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
