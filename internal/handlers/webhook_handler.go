package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mediassist/mediassist-api/internal/models"
	"github.com/mediassist/mediassist-api/internal/scheduling"
)

// AppointmentWebhook lets workflow automations (n8n) act on appointments
// after contacting the patient: confirm, cancel or reschedule. Reschedules go
// through the same conflict gate as fresh bookings.
func (h *Handler) AppointmentWebhook(c *gin.Context) {
	var req struct {
		Action        string `json:"action" binding:"required"`
		AppointmentID string `json:"appointmentId" binding:"required"`
		NewTime       string `json:"newTime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("action and appointmentId are required"))
		return
	}

	var appointment models.Appointment
	err := h.DB.First(&appointment, "id = ?", req.AppointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorHandler(c, http.StatusNotFound, errors.New("appointment not found"))
			return
		}
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	switch req.Action {
	case "confirm":
		err = h.DB.Model(&appointment).Update("status", models.StatusConfirmed).Error

	case "cancel":
		err = h.DB.Model(&appointment).Update("status", models.StatusCancelled).Error

	case "reschedule":
		if req.NewTime == "" {
			h.errorHandler(c, http.StatusBadRequest, errors.New("newTime is required for reschedule"))
			return
		}
		newTime, parseErr := time.Parse(time.RFC3339, req.NewTime)
		if parseErr != nil {
			h.errorHandler(c, http.StatusBadRequest, errors.New("newTime must be RFC3339"))
			return
		}
		err = h.rescheduleAppointment(&appointment, newTime)
		if errors.Is(err, scheduling.ErrSlotTaken) {
			h.errorHandler(c, http.StatusConflict, errors.New("the requested time is already booked"))
			return
		}

	case "reminder":
		log.Infof("reminder sent for appointment %s", appointment.ID)

	default:
		h.errorHandler(c, http.StatusBadRequest, errors.New("action must be confirm, cancel, reschedule or reminder"))
		return
	}
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment " + req.Action + " processed",
		"appointment": appointment,
	})
}

func (h *Handler) rescheduleAppointment(appointment *models.Appointment, newTime time.Time) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		var doctor models.Doctor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&doctor, "id = ?", appointment.DoctorID).Error; err != nil {
			return err
		}

		dayStart := time.Date(newTime.Year(), newTime.Month(), newTime.Day(),
			0, 0, 0, 0, newTime.Location())
		var existing []models.Appointment
		err := tx.Where("doctor_id = ? AND id <> ? AND scheduled_at >= ? AND scheduled_at < ? AND status IN ?",
			doctor.ID, appointment.ID, dayStart, dayStart.AddDate(0, 0, 1), activeStatuses).
			Find(&existing).Error
		if err != nil {
			return err
		}

		starts := make([]time.Time, 0, len(existing))
		for _, a := range existing {
			starts = append(starts, a.ScheduledAt)
		}
		if scheduling.HasConflict(newTime, appointment.Duration, starts) {
			return scheduling.ErrSlotTaken
		}

		return tx.Model(appointment).Updates(map[string]interface{}{
			"scheduled_at": newTime,
			"status":       models.StatusPending,
		}).Error
	})
}

// CallWebhook lets automation workflows attach transcripts and summaries to
// call logs after post-processing a recording.
func (h *Handler) CallWebhook(c *gin.Context) {
	var req struct {
		Action string `json:"action" binding:"required"`
		CallID string `json:"callId" binding:"required"`
		Data   struct {
			Transcript string `json:"transcript"`
			Summary    string `json:"summary"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("action and callId are required"))
		return
	}

	var err error
	switch req.Action {
	case "transcribe":
		if req.Data.Transcript != "" {
			err = h.DB.Model(&models.CallLog{}).
				Where("id = ?", req.CallID).
				Update("transcript", req.Data.Transcript).Error
		}
	case "summarize":
		if req.Data.Summary != "" {
			err = h.DB.Model(&models.CallLog{}).
				Where("id = ?", req.CallID).
				Update("summary", req.Data.Summary).Error
		}
	default:
		h.errorHandler(c, http.StatusBadRequest, errors.New("action must be transcribe or summarize"))
		return
	}
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "action": req.Action})
}

// NotificationWebhook receives workflow-originated notification triggers.
// They are acknowledged and logged; delivery itself happens inside n8n.
func (h *Handler) NotificationWebhook(c *gin.Context) {
	var req struct {
		Type string                 `json:"type" binding:"required"`
		Data map[string]interface{} `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("type is required"))
		return
	}

	switch req.Type {
	case "APPOINTMENT_REMINDER", "FOLLOW_UP", "PRESCRIPTION_READY":
		log.WithField("type", req.Type).Info("notification trigger received")
	default:
		log.WithField("type", req.Type).Warn("unknown notification trigger")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "type": req.Type})
}

// Health reports service liveness, including database reachability.
func (h *Handler) Health(c *gin.Context) {
	status := gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	}

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	status["database"] = "ok"

	c.JSON(http.StatusOK, status)
}
