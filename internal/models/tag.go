package models

import "time"

type Tag struct {
	Base
	Name  string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Color string `gorm:"type:varchar(7);not null" json:"color"`

	// Relations
	TaskTags []TaskTag `gorm:"foreignKey:TagID" json:"-"`
}

// TaskTag links a task to a tag.
type TaskTag struct {
	TaskID    string    `gorm:"type:varchar(36);primarykey" json:"task_id"`
	TagID     string    `gorm:"type:varchar(36);primarykey;index" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
	Tag  Tag  `gorm:"foreignKey:TagID" json:"tag"`
}
