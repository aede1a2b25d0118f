package models

type User struct {
	Base
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Image        string `gorm:"type:varchar(1024)" json:"image"`

	// Relations
	Memberships []WorkspaceMember `gorm:"foreignKey:UserID" json:"-"`
}
