package models

import "time"

type UserRole string

const (
	RolePatient UserRole = "PATIENT"
	RoleDoctor  UserRole = "DOCTOR"
	RoleAdmin   UserRole = "ADMIN"
)

type User struct {
	BaseModel
	Email    string   `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string   `gorm:"size:255;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'PATIENT'" json:"role"`

	Patient *Patient `gorm:"foreignKey:UserID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:UserID" json:"doctor,omitempty"`
}

type Patient struct {
	BaseModel
	UserID         string     `gorm:"size:36;uniqueIndex" json:"userId"`
	FirstName      string     `gorm:"size:100;not null" json:"firstName"`
	LastName       string     `gorm:"size:100;not null" json:"lastName"`
	Phone          string     `gorm:"size:30" json:"phone"`
	City           string     `gorm:"size:100" json:"city"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         string     `gorm:"size:10" json:"gender"`
	MedicalHistory string     `gorm:"type:text" json:"medicalHistory"`
	Allergies      string     `gorm:"type:text" json:"allergies"`
}
