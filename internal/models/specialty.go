package models

type Specialty struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IconName    string `gorm:"size:50" json:"iconName"`

	Doctors []Doctor `gorm:"foreignKey:SpecialtyID" json:"-"`
}
