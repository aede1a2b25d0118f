package models

// Notification is addressed to a single user and outlives the entity that triggered it.
type Notification struct {
	Base
	UserID  string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	Read    bool   `gorm:"column:is_read;not null;default:false" json:"read"`
}
