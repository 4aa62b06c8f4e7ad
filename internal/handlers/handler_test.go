package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mediassist/mediassist-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testRequest builds a context carrying a JSON body; the handler under test
// is expected to reject it before any collaborator is touched.
func testRequest(method, path, body string, params ...gin.Param) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	return w, c
}

func TestSearchDiseasesRequiresSymptoms(t *testing.T) {
	h := &Handler{}

	w, c := testRequest(http.MethodPost, "/api/symptoms/diseases/search", `{"symptoms": []}`)
	h.SearchDiseases(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, c = testRequest(http.MethodPost, "/api/symptoms/diseases/search", `{not json`)
	h.SearchDiseases(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddReviewValidatesRating(t *testing.T) {
	h := &Handler{}

	for _, rating := range []string{"0", "6", "-1"} {
		w, c := testRequest(http.MethodPost, "/api/doctors/d1/reviews",
			`{"reviewerName": "Ali", "rating": `+rating+`}`,
			gin.Param{Key: "id", Value: "d1"})
		h.AddReview(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %s must be rejected", rating)
	}

	w, c := testRequest(http.MethodPost, "/api/doctors/d1/reviews",
		`{"rating": 5}`, gin.Param{Key: "id", Value: "d1"})
	h.AddReview(c)
	assert.Equal(t, http.StatusBadRequest, w.Code, "reviewerName is required")
}

func TestCreateAppointmentValidatesInput(t *testing.T) {
	h := &Handler{}

	w, c := testRequest(http.MethodPost, "/api/appointments", `{"doctorId": "d1"}`)
	h.CreateAppointment(c)
	assert.Equal(t, http.StatusBadRequest, w.Code, "patientId and scheduledAt are required")

	w, c = testRequest(http.MethodPost, "/api/appointments",
		`{"doctorId": "d1", "patientId": "p1", "scheduledAt": "tomorrow at noon"}`)
	h.CreateAppointment(c)
	assert.Equal(t, http.StatusBadRequest, w.Code, "non-RFC3339 time must be rejected")

	w, c = testRequest(http.MethodPost, "/api/appointments",
		`{"doctorId": "d1", "patientId": "p1", "scheduledAt": "2020-01-01T10:00:00Z"}`)
	h.CreateAppointment(c)
	assert.Equal(t, http.StatusBadRequest, w.Code, "past bookings must be rejected")
}

func TestUpdateAppointmentStatusValidatesEnum(t *testing.T) {
	h := &Handler{}

	w, c := testRequest(http.MethodPatch, "/api/appointments/status/a1",
		`{"status": "RESCHEDULED"}`, gin.Param{Key: "id", Value: "a1"})
	h.UpdateAppointmentStatus(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, c = testRequest(http.MethodPatch, "/api/appointments/status/a1",
		`{}`, gin.Param{Key: "id", Value: "a1"})
	h.UpdateAppointmentStatus(c)
	assert.Equal(t, http.StatusBadRequest, w.Code, "status is required")
}

func TestActiveStatusesBlockOnlyPendingAndConfirmed(t *testing.T) {
	// The conflict gate and slot-occupancy queries filter on this set; a
	// completed or no-show appointment must free its slot for rebooking.
	assert.ElementsMatch(t,
		[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed},
		activeStatuses)
}

func TestGetAvailableSlotsRequiresDate(t *testing.T) {
	h := &Handler{}

	w, c := testRequest(http.MethodGet, "/api/appointments/slots/d1", "",
		gin.Param{Key: "doctorId", Value: "d1"})
	h.GetAvailableSlots(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, c = testRequest(http.MethodGet, "/api/appointments/slots/d1?date=03-03-2025", "",
		gin.Param{Key: "doctorId", Value: "d1"})
	h.GetAvailableSlots(c)
	assert.Equal(t, http.StatusBadRequest, w.Code, "date must be YYYY-MM-DD")
}

func TestAnalyzeSymptomsRequiresMessage(t *testing.T) {
	h := &Handler{}

	w, c := testRequest(http.MethodPost, "/api/chat/analyze", `{"message": ""}`)
	h.AnalyzeSymptoms(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAppointmentWebhookValidatesAction(t *testing.T) {
	h := &Handler{}

	w, c := testRequest(http.MethodPost, "/api/webhooks/appointment", `{"appointmentId": "a1"}`)
	h.AppointmentWebhook(c)
	assert.Equal(t, http.StatusBadRequest, w.Code, "action is required")
}

func TestStartOutboundCallValidatesInput(t *testing.T) {
	h := &Handler{}

	w, c := testRequest(http.MethodPost, "/api/voice/calls", `{"doctorId": "d1"}`)
	h.StartOutboundCall(c)
	assert.Equal(t, http.StatusBadRequest, w.Code, "phoneNumber is required")
}

func TestFoldRating(t *testing.T) {
	rating, count := foldRating(0, 0, 5)
	assert.Equal(t, 5.0, rating)
	assert.Equal(t, 1, count)

	// 4.0 over 3 reviews plus a 5 → 17/4.
	rating, count = foldRating(4.0, 3, 5)
	assert.InDelta(t, 4.25, rating, 1e-9)
	assert.Equal(t, 4, count)

	rating, _ = foldRating(5.0, 99, 1)
	assert.InDelta(t, 4.96, rating, 1e-9)
}

func TestErrorHandlerMasksServerErrors(t *testing.T) {
	h := &Handler{}

	w, c := testRequest(http.MethodGet, "/", "")
	h.errorHandler(c, http.StatusInternalServerError, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Internal Server Error"}`, w.Body.String())

	w, c = testRequest(http.MethodGet, "/", "")
	h.errorHandler(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "rating must be between 1 and 5"}`, w.Body.String())
}
