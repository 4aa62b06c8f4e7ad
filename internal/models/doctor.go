package models

import "github.com/lib/pq"

type Doctor struct {
	BaseModel
	UserID          string         `gorm:"size:36;uniqueIndex" json:"userId"`
	FirstName       string         `gorm:"size:100;not null" json:"firstName"`
	LastName        string         `gorm:"size:100;not null" json:"lastName"`
	SpecialtyID     string         `gorm:"size:36;index;not null" json:"specialtyId"`
	Phone           string         `gorm:"size:30" json:"phone"`
	Address         string         `gorm:"size:255" json:"address"`
	City            string         `gorm:"size:100;index" json:"city"`
	Latitude        float64        `json:"latitude"`
	Longitude       float64        `json:"longitude"`
	Qualifications  string         `gorm:"size:255" json:"qualifications"`
	Experience      int            `json:"experience"`
	Rating          float64        `gorm:"default:0" json:"rating"`
	ReviewCount     int            `gorm:"default:0" json:"reviewCount"`
	ConsultationFee float64        `gorm:"default:0" json:"consultationFee"`
	AvailableFrom   string         `gorm:"size:5" json:"availableFrom"`
	AvailableTo     string         `gorm:"size:5" json:"availableTo"`
	WorkingDays     pq.StringArray `gorm:"type:text[]" json:"workingDays"`
	IsActive        bool           `gorm:"default:true" json:"isActive"`
	IsVerified      bool           `gorm:"default:false" json:"isVerified"`
	VapiAssistantID string         `gorm:"size:64" json:"vapiAssistantId,omitempty"`

	Specialty    Specialty     `gorm:"foreignKey:SpecialtyID" json:"specialty"`
	Reviews      []Review      `gorm:"foreignKey:DoctorID" json:"reviews,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}

// FullName is how doctors are displayed everywhere in API responses.
func (d *Doctor) FullName() string {
	return "Dr. " + d.FirstName + " " + d.LastName
}
