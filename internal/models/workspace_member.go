package models

import "time"

type WorkspaceRole string

const (
	RoleOwner  WorkspaceRole = "owner"
	RoleMember WorkspaceRole = "member"
)

type WorkspaceMember struct {
	WorkspaceID string        `gorm:"type:varchar(36);primarykey" json:"workspace_id"`
	UserID      string        `gorm:"type:varchar(36);primarykey" json:"user_id"`
	Role        WorkspaceRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt    time.Time     `json:"joined_at"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
