package models

// Symptom is immutable reference data. Names are stored title-cased and
// matched case-insensitively.
type Symptom struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Severity    int    `gorm:"default:1" json:"severity"` // 1-4, higher is more urgent

	Diseases []DiseaseSymptom `gorm:"foreignKey:SymptomID" json:"-"`
}
