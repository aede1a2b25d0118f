package models

type Section struct {
	Base
	ProjectID string `gorm:"type:varchar(36);not null;index" json:"project_id"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	// Order is stored as "position"; ORDER is reserved in every supported dialect.
	Order int `gorm:"column:position;not null;default:0" json:"order"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Tasks   []Task  `gorm:"foreignKey:SectionID" json:"tasks,omitempty"`
}
