package models

import "github.com/lib/pq"

type Disease struct {
	BaseModel
	Name                   string         `gorm:"uniqueIndex;size:150;not null" json:"name"`
	Description            string         `gorm:"type:text" json:"description"`
	Precautions            pq.StringArray `gorm:"type:text[]" json:"precautions"`
	RecommendedSpecialtyID *string        `gorm:"size:36" json:"recommendedSpecialtyId,omitempty"`

	RecommendedSpecialty *Specialty       `gorm:"foreignKey:RecommendedSpecialtyID" json:"recommendedSpecialty,omitempty"`
	Symptoms             []DiseaseSymptom `gorm:"foreignKey:DiseaseID" json:"symptoms,omitempty"`
}

// DiseaseSymptom links a disease to one of its symptoms. Weight records the
// relative importance of the symptom to the disease; it is surfaced in detail
// responses but not factored into match scoring.
type DiseaseSymptom struct {
	DiseaseID string  `gorm:"size:36;primaryKey" json:"diseaseId"`
	SymptomID string  `gorm:"size:36;primaryKey" json:"symptomId"`
	Weight    float64 `gorm:"default:1" json:"weight"`

	Disease Disease `gorm:"foreignKey:DiseaseID" json:"-"`
	Symptom Symptom `gorm:"foreignKey:SymptomID" json:"symptom"`
}
