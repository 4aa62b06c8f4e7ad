package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mediassist/mediassist-api/internal/models"
	"github.com/mediassist/mediassist-api/internal/services"
)

// CreateVoiceAssistant provisions a per-doctor phone assistant on the voice
// platform and stores its ID on the doctor row.
func (h *Handler) CreateVoiceAssistant(c *gin.Context) {
	var doctor models.Doctor
	err := h.DB.Preload("Specialty").First(&doctor, "id = ?", c.Param("doctorId")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorHandler(c, http.StatusNotFound, errors.New("doctor not found"))
			return
		}
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	if doctor.VapiAssistantID != "" {
		c.JSON(http.StatusOK, gin.H{
			"message":     "Voice assistant already exists for this doctor",
			"assistantId": doctor.VapiAssistantID,
		})
		return
	}

	assistantID, err := h.Voice.CreateAssistant(c.Request.Context(), services.VoiceDoctorProfile{
		Name:            doctor.FullName(),
		Specialty:       doctor.Specialty.Name,
		Address:         doctor.Address,
		City:            doctor.City,
		AvailableFrom:   doctor.AvailableFrom,
		AvailableTo:     doctor.AvailableTo,
		WorkingDays:     doctor.WorkingDays,
		ConsultationFee: doctor.ConsultationFee,
	})
	if err != nil {
		h.errorHandler(c, http.StatusBadGateway, errors.New("voice platform request failed"))
		return
	}

	if err := h.DB.Model(&doctor).Update("vapi_assistant_id", assistantID).Error; err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Voice assistant created successfully",
		"assistantId": assistantID,
	})
}

// StartOutboundCall places a call to a patient through the doctor's assistant
// and opens a call log entry.
func (h *Handler) StartOutboundCall(c *gin.Context) {
	var req struct {
		DoctorID    string `json:"doctorId" binding:"required"`
		PhoneNumber string `json:"phoneNumber" binding:"required"`
		CallerName  string `json:"callerName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("doctorId and phoneNumber are required"))
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		h.errorHandler(c, http.StatusNotFound, errors.New("doctor not found"))
		return
	}
	if doctor.VapiAssistantID == "" {
		h.errorHandler(c, http.StatusBadRequest, errors.New("doctor has no voice assistant configured"))
		return
	}

	callID, err := h.Voice.StartOutboundCall(c.Request.Context(), doctor.VapiAssistantID, req.PhoneNumber, doctor.ID)
	if err != nil {
		h.errorHandler(c, http.StatusBadGateway, errors.New("voice platform request failed"))
		return
	}

	callLog := models.CallLog{
		DoctorID:    doctor.ID,
		CallerPhone: req.PhoneNumber,
		CallerName:  req.CallerName,
		CallType:    models.CallOutgoing,
		Status:      models.CallActive,
		VapiCallID:  callID,
	}
	if err := h.DB.Create(&callLog).Error; err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Call started",
		"callId":  callID,
		"callLog": callLog,
	})
}

// GetCallLogs lists a doctor's call history, newest first.
func (h *Handler) GetCallLogs(c *gin.Context) {
	var logs []models.CallLog
	err := h.DB.Where("doctor_id = ?", c.Param("doctorId")).
		Order("started_at desc").Limit(50).
		Find(&logs).Error
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// GetAssistantTemplate exposes the base assistant configuration so the
// frontend can preview it before provisioning.
func (h *Handler) GetAssistantTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, services.AssistantTemplate())
}

// VoiceWebhook receives call lifecycle events from the voice platform. The
// platform retries on non-2xx, so unknown events are acknowledged and logged
// rather than rejected.
func (h *Handler) VoiceWebhook(c *gin.Context) {
	var event struct {
		Type string `json:"type"`
		Call struct {
			ID       string `json:"id"`
			Customer struct {
				Number string `json:"number"`
			} `json:"customer"`
			Metadata map[string]string `json:"metadata"`
		} `json:"call"`
		Transcript string `json:"transcript"`
		Summary    string `json:"summary"`
		DurationS  int    `json:"durationSeconds"`
	}
	if err := c.ShouldBindJSON(&event); err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("invalid webhook payload"))
		return
	}

	switch event.Type {
	case "call-started":
		// Outbound calls already have a log row; this covers inbound.
		var existing models.CallLog
		err := h.DB.Where("vapi_call_id = ?", event.Call.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.DB.Create(&models.CallLog{
				DoctorID:    event.Call.Metadata["doctorId"],
				CallerPhone: event.Call.Customer.Number,
				CallType:    models.CallIncoming,
				Status:      models.CallActive,
				VapiCallID:  event.Call.ID,
			})
		}

	case "call-ended":
		now := time.Now()
		h.DB.Model(&models.CallLog{}).
			Where("vapi_call_id = ?", event.Call.ID).
			Updates(map[string]interface{}{
				"status":   models.CallCompleted,
				"ended_at": &now,
				"duration": event.DurationS,
			})

	case "transcript":
		h.DB.Model(&models.CallLog{}).
			Where("vapi_call_id = ?", event.Call.ID).
			Update("transcript", event.Transcript)

	case "summary":
		h.DB.Model(&models.CallLog{}).
			Where("vapi_call_id = ?", event.Call.ID).
			Update("summary", event.Summary)

	default:
		log.Infof("unhandled voice webhook event type %q", event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
