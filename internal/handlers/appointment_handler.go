package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mediassist/mediassist-api/internal/models"
	"github.com/mediassist/mediassist-api/internal/scheduling"
	"github.com/mediassist/mediassist-api/internal/services"
)

const (
	defaultWorkStart   = "09:00"
	defaultWorkEnd     = "17:00"
	defaultSlotMinutes = 30
)

// activeStatuses are the appointment states that occupy a doctor's calendar.
// Only PENDING and CONFIRMED block a slot; cancelled, completed and no-show
// appointments free it for rebooking.
var activeStatuses = []models.AppointmentStatus{
	models.StatusPending, models.StatusConfirmed,
}

type CreateAppointmentRequest struct {
	DoctorID    string `json:"doctorId" binding:"required"`
	PatientID   string `json:"patientId" binding:"required"`
	ScheduledAt string `json:"scheduledAt" binding:"required"`
	Duration    int    `json:"duration"`
	Reason      string `json:"reason"`
}

// CreateAppointment books a visit. The doctor row is locked for the duration
// of the conflict check and insert so two requests for the same time cannot
// both commit.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("doctorId, patientId and scheduledAt are required"))
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("scheduledAt must be RFC3339"))
		return
	}
	if scheduledAt.Before(time.Now()) {
		h.errorHandler(c, http.StatusBadRequest, errors.New("cannot book an appointment in the past"))
		return
	}
	duration := req.Duration
	if duration <= 0 {
		duration = defaultSlotMinutes
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		h.errorHandler(c, http.StatusNotFound, errors.New("patient not found"))
		return
	}

	var appointment models.Appointment
	var doctor models.Doctor

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Specialty").
			First(&doctor, "id = ? AND is_active = ?", req.DoctorID, true).Error; err != nil {
			return err
		}

		dayStart := time.Date(scheduledAt.Year(), scheduledAt.Month(), scheduledAt.Day(),
			0, 0, 0, 0, scheduledAt.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		var existing []models.Appointment
		if err := tx.Where("doctor_id = ? AND scheduled_at >= ? AND scheduled_at < ? AND status IN ?",
			doctor.ID, dayStart, dayEnd, activeStatuses).Find(&existing).Error; err != nil {
			return err
		}

		starts := make([]time.Time, 0, len(existing))
		for _, a := range existing {
			starts = append(starts, a.ScheduledAt)
		}
		if scheduling.HasConflict(scheduledAt, duration, starts) {
			return scheduling.ErrSlotTaken
		}

		appointment = models.Appointment{
			DoctorID:    doctor.ID,
			PatientID:   patient.ID,
			ScheduledAt: scheduledAt,
			Duration:    duration,
			Status:      models.StatusPending,
			Reason:      req.Reason,
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrSlotTaken):
			h.errorHandler(c, http.StatusConflict, errors.New("this time slot is already booked"))
		case errors.Is(err, gorm.ErrRecordNotFound):
			h.errorHandler(c, http.StatusNotFound, errors.New("doctor not found"))
		default:
			h.errorHandler(c, http.StatusInternalServerError, err)
		}
		return
	}

	h.Notifier.NotifyNewAppointment(services.AppointmentEvent{
		ID:           appointment.ID,
		PatientName:  patient.FirstName + " " + patient.LastName,
		PatientPhone: patient.Phone,
		DoctorName:   doctor.FullName(),
		Specialty:    doctor.Specialty.Name,
		ScheduledAt:  appointment.ScheduledAt,
		Reason:       appointment.Reason,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment booked successfully",
		"appointment": appointment,
		"doctor": gin.H{
			"id":        doctor.ID,
			"name":      doctor.FullName(),
			"specialty": doctor.Specialty.Name,
		},
	})
}

// GetAvailableSlots returns the bookable grid for a doctor on a given day.
// Non-working days short-circuit with an empty grid rather than an error.
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		h.errorHandler(c, http.StatusBadRequest, errors.New("date query parameter is required (YYYY-MM-DD)"))
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", c.Param("doctorId")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorHandler(c, http.StatusNotFound, errors.New("doctor not found"))
			return
		}
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	if !scheduling.IsWorkingDay(doctor.WorkingDays, date) {
		c.JSON(http.StatusOK, gin.H{
			"date":      dateStr,
			"available": false,
			"message":   "Doctor is not available on this day",
			"slots":     []scheduling.Slot{},
		})
		return
	}

	dayEnd := date.AddDate(0, 0, 1)
	var existing []models.Appointment
	err = h.DB.Where("doctor_id = ? AND scheduled_at >= ? AND scheduled_at < ? AND status IN ?",
		doctor.ID, date, dayEnd, activeStatuses).Find(&existing).Error
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}
	booked := make([]time.Time, 0, len(existing))
	for _, a := range existing {
		booked = append(booked, a.ScheduledAt)
	}

	workStart := doctor.AvailableFrom
	if workStart == "" {
		workStart = defaultWorkStart
	}
	workEnd := doctor.AvailableTo
	if workEnd == "" {
		workEnd = defaultWorkEnd
	}

	slots, err := scheduling.GenerateSlots(workStart, workEnd, defaultSlotMinutes, booked)
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      dateStr,
		"available": true,
		"slots":     slots,
	})
}

// GetPatientAppointments lists a patient's appointments, newest first.
func (h *Handler) GetPatientAppointments(c *gin.Context) {
	var appointments []models.Appointment
	err := h.DB.Preload("Doctor.Specialty").
		Where("patient_id = ?", c.Param("patientId")).
		Order("scheduled_at desc").
		Find(&appointments).Error
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]gin.H, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, gin.H{
			"id":          a.ID,
			"scheduledAt": a.ScheduledAt,
			"duration":    a.Duration,
			"status":      a.Status,
			"reason":      a.Reason,
			"notes":       a.Notes,
			"doctor": gin.H{
				"id":        a.Doctor.ID,
				"name":      a.Doctor.FullName(),
				"specialty": a.Doctor.Specialty.Name,
				"city":      a.Doctor.City,
			},
		})
	}

	c.JSON(http.StatusOK, out)
}

// GetDoctorAppointments lists a doctor's appointments, optionally restricted
// to one day, soonest first.
func (h *Handler) GetDoctorAppointments(c *gin.Context) {
	query := h.DB.Preload("Patient").
		Where("doctor_id = ?", c.Param("doctorId"))

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			h.errorHandler(c, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
			return
		}
		query = query.Where("scheduled_at >= ? AND scheduled_at < ?", date, date.AddDate(0, 0, 1))
	}

	var appointments []models.Appointment
	if err := query.Order("scheduled_at asc").Find(&appointments).Error; err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]gin.H, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, gin.H{
			"id":          a.ID,
			"scheduledAt": a.ScheduledAt,
			"duration":    a.Duration,
			"status":      a.Status,
			"reason":      a.Reason,
			"notes":       a.Notes,
			"patient": gin.H{
				"id":    a.Patient.ID,
				"name":  a.Patient.FirstName + " " + a.Patient.LastName,
				"phone": a.Patient.Phone,
			},
		})
	}

	c.JSON(http.StatusOK, out)
}

// UpdateAppointmentStatus moves an appointment through its status enum.
func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("status is required"))
		return
	}

	status := models.AppointmentStatus(req.Status)
	if !models.ValidAppointmentStatus(status) {
		h.errorHandler(c, http.StatusBadRequest, errors.New("invalid appointment status"))
		return
	}

	var appointment models.Appointment
	err := h.DB.Preload("Doctor.Specialty").Preload("Patient").
		First(&appointment, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorHandler(c, http.StatusNotFound, errors.New("appointment not found"))
			return
		}
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	updates := map[string]interface{}{"status": status}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if err := h.DB.Model(&appointment).Updates(updates).Error; err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	h.Notifier.NotifyStatusChange(services.AppointmentEvent{
		ID:           appointment.ID,
		PatientName:  appointment.Patient.FirstName + " " + appointment.Patient.LastName,
		PatientPhone: appointment.Patient.Phone,
		DoctorName:   appointment.Doctor.FullName(),
		Specialty:    appointment.Doctor.Specialty.Name,
		ScheduledAt:  appointment.ScheduledAt,
		NewStatus:    string(status),
	})

	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment status updated",
		"appointment": appointment,
	})
}
