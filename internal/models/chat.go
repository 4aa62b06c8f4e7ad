package models

type ChatSession struct {
	BaseModel
	UserID string `gorm:"size:36;index" json:"userId"`

	Messages    []ChatMessage `gorm:"foreignKey:SessionID" json:"messages,omitempty"`
	Predictions []Prediction  `gorm:"foreignKey:SessionID" json:"predictions,omitempty"`
}

type ChatMessage struct {
	BaseModel
	SessionID string `gorm:"size:36;index;not null" json:"sessionId"`
	Role      string `gorm:"size:20;not null" json:"role"` // user | assistant
	Content   string `gorm:"type:text;not null" json:"content"`
}

// Prediction records a disease guess produced for a chat session, either by
// the ML predictor or by the local fallback.
type Prediction struct {
	BaseModel
	SessionID  string  `gorm:"size:36;index;not null" json:"sessionId"`
	DiseaseID  *string `gorm:"size:36" json:"diseaseId,omitempty"`
	Confidence int     `json:"confidence"`

	Disease *Disease `gorm:"foreignKey:DiseaseID" json:"disease,omitempty"`
}
