package models

type Attachment struct {
	Base
	TaskID   string `gorm:"type:varchar(36);not null;index" json:"task_id"`
	UserID   string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	FileName string `gorm:"type:varchar(255);not null" json:"file_name"`
	FileURL  string `gorm:"type:varchar(2048);not null" json:"file_url"`
	FileSize int64  `gorm:"not null" json:"file_size"`
	FileType string `gorm:"type:varchar(255)" json:"file_type"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
