package models

// Review insertion recomputes the owning doctor's running average rating and
// review count inside the same transaction.
type Review struct {
	BaseModel
	DoctorID     string `gorm:"size:36;index;not null" json:"doctorId"`
	ReviewerName string `gorm:"size:100;not null" json:"reviewerName"`
	Rating       int    `gorm:"not null" json:"rating"` // 1-5
	Comment      string `gorm:"type:text" json:"comment"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}
