package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusNoShow    AppointmentStatus = "NO_SHOW"
)

// ValidAppointmentStatus reports whether s is one of the closed status enum
// values accepted on status updates.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Appointment rows are never deleted; cancellation is a status transition.
type Appointment struct {
	BaseModel
	DoctorID    string            `gorm:"size:36;index;not null" json:"doctorId"`
	PatientID   string            `gorm:"size:36;index;not null" json:"patientId"`
	ScheduledAt time.Time         `gorm:"index;not null" json:"scheduledAt"`
	Duration    int               `gorm:"default:30" json:"duration"` // minutes
	Status      AppointmentStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	Reason      string            `gorm:"type:text" json:"reason"`
	Notes       string            `gorm:"type:text" json:"notes"`

	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}
