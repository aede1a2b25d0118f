package models

type Comment struct {
	Base
	TaskID  string `gorm:"type:varchar(36);not null;index" json:"task_id"`
	UserID  string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Content string `gorm:"type:text;not null" json:"content"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
