package models

import "time"

type CallType string

const (
	CallIncoming CallType = "INCOMING"
	CallOutgoing CallType = "OUTGOING"
)

type CallStatus string

const (
	CallActive    CallStatus = "ACTIVE"
	CallCompleted CallStatus = "COMPLETED"
	CallMissed    CallStatus = "MISSED"
)

// CallLog records voice-assistant calls handled for a doctor's office.
type CallLog struct {
	BaseModel
	DoctorID    string     `gorm:"size:36;index" json:"doctorId"`
	CallerPhone string     `gorm:"size:30" json:"callerPhone"`
	CallerName  string     `gorm:"size:100" json:"callerName"`
	CallType    CallType   `gorm:"size:20" json:"callType"`
	Status      CallStatus `gorm:"size:20" json:"status"`
	VapiCallID  string     `gorm:"size:64;index" json:"vapiCallId"`
	StartedAt   time.Time  `gorm:"autoCreateTime" json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	Duration    int        `json:"duration"` // seconds
	Transcript  string     `gorm:"type:text" json:"transcript"`
	Summary     string     `gorm:"type:text" json:"summary"`
}
