package models

type Workspace struct {
	Base
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	OwnerID     string `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	InviteCode  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"invite_code"`

	// Relations
	Owner    User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members  []WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
	Projects []Project         `gorm:"foreignKey:WorkspaceID" json:"projects,omitempty"`
}
