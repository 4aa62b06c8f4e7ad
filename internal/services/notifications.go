package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// NotificationService posts appointment events to workflow-automation (n8n)
// webhooks. Delivery is best effort: failures are logged and swallowed, never
// surfaced to the caller.
type NotificationService struct {
	appointmentURL  string
	notificationURL string
	client          *http.Client
}

func NewNotificationService(appointmentURL, notificationURL string) *NotificationService {
	return &NotificationService{
		appointmentURL:  appointmentURL,
		notificationURL: notificationURL,
		client:          &http.Client{Timeout: 10 * time.Second},
	}
}

// AppointmentEvent is the payload shape n8n workflows consume.
type AppointmentEvent struct {
	ID           string    `json:"id"`
	PatientName  string    `json:"patientName"`
	PatientPhone string    `json:"patientPhone,omitempty"`
	DoctorName   string    `json:"doctorName"`
	Specialty    string    `json:"specialty,omitempty"`
	ScheduledAt  time.Time `json:"scheduledAt"`
	Reason       string    `json:"reason,omitempty"`
	NewStatus    string    `json:"newStatus,omitempty"`
}

// NotifyNewAppointment fires the new-appointment workflow. Runs in a
// goroutine so it never blocks the API response.
func (s *NotificationService) NotifyNewAppointment(event AppointmentEvent) {
	if s.appointmentURL == "" {
		return
	}
	go s.post(s.appointmentURL, map[string]interface{}{
		"type":        "NEW_APPOINTMENT",
		"appointment": event,
	})
}

// NotifyStatusChange fires the status-change workflow.
func (s *NotificationService) NotifyStatusChange(event AppointmentEvent) {
	if s.notificationURL == "" {
		return
	}
	go s.post(s.notificationURL, map[string]interface{}{
		"type":        "APPOINTMENT_STATUS_CHANGE",
		"appointment": event,
	})
}

func (s *NotificationService) post(url string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("notification payload marshal failed: %v", err)
		return
	}

	resp, err := s.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Warnf("n8n webhook not available: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Warnf("n8n webhook %s returned status %d", url, resp.StatusCode)
	}
}
