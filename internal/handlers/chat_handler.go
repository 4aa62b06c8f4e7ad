package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mediassist/mediassist-api/internal/matching"
	"github.com/mediassist/mediassist-api/internal/models"
	"github.com/mediassist/mediassist-api/internal/scheduling"
	"github.com/mediassist/mediassist-api/internal/services"
)

// cityProximity orders nearby cities for doctor recommendations. The first
// entry is the patient's own city.
var cityProximity = map[string][]string{
	"taxila":     {"taxila", "wah cantt", "rawalpindi", "islamabad"},
	"wah cantt":  {"wah cantt", "taxila", "rawalpindi", "islamabad"},
	"rawalpindi": {"rawalpindi", "islamabad", "wah cantt", "taxila"},
	"islamabad":  {"islamabad", "rawalpindi", "wah cantt", "taxila"},
}

const urgentBanner = "⚠️ **IMPORTANT**: Based on your symptoms, you should seek medical attention as soon as possible.\n\n"

// AnalyzeSymptoms runs one turn of the symptom-analysis conversation: the
// assistant replies (or a canned fallback does), structured directives are
// extracted and validated against the catalog, a disease prediction is made
// (external model first, local fallback second) and matching doctors are
// recommended by specialty and city proximity.
func (h *Handler) AnalyzeSymptoms(c *gin.Context) {
	var req struct {
		Message   string `json:"message" binding:"required"`
		SessionID string `json:"sessionId"`
		City      string `json:"city"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler(c, http.StatusBadRequest, errors.New("message is required"))
		return
	}

	session, err := h.resolveSession(c, req.SessionID)
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	history := make([]services.ChatMessage, 0, len(session.Messages))
	for _, m := range session.Messages {
		history = append(history, services.ChatMessage{Role: m.Role, Content: m.Content})
	}

	reply, err := h.Assistant.Complete(c.Request.Context(), history, req.Message)
	degraded := false
	if err != nil {
		reply = services.FallbackResponse(req.Message)
		degraded = true
	}

	rawSymptoms := services.ExtractSymptoms(reply)
	specialist := services.ExtractSpecialist(reply)
	urgent := services.IsUrgent(reply)
	displayReply := services.StripDirectives(reply)
	if urgent {
		displayReply = urgentBanner + displayReply
	}

	symptoms, err := h.validateSymptoms(rawSymptoms)
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	var prediction *matching.Prediction
	if len(symptoms) > 0 {
		prediction, err = h.Predictor.Predict(c.Request.Context(), symptoms)
		if err != nil {
			catalog, catErr := h.loadDiseaseCatalog()
			if catErr != nil {
				h.errorHandler(c, http.StatusInternalServerError, catErr)
				return
			}
			p := matching.Fallback(symptoms, catalog)
			prediction = &p
		}
		h.recordPrediction(session.ID, prediction)
	}

	specialty := h.resolveSpecialty(specialist, prediction)
	doctors, err := h.recommendDoctors(specialty, req.City)
	if err != nil {
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	// History writes are best effort; the reply still goes out, but a failure
	// is worth a log line since later turns replay this history.
	if err := h.DB.Create(&models.ChatMessage{SessionID: session.ID, Role: "user", Content: req.Message}).Error; err != nil {
		log.Errorf("failed to persist user chat message for session %s: %v", session.ID, err)
	}
	if err := h.DB.Create(&models.ChatMessage{SessionID: session.ID, Role: "assistant", Content: reply}).Error; err != nil {
		log.Errorf("failed to persist assistant chat message for session %s: %v", session.ID, err)
	}

	out := gin.H{
		"sessionId":          session.ID,
		"message":            displayReply,
		"symptoms":           symptoms,
		"urgent":             urgent,
		"degraded":           degraded,
		"recommendedDoctors": doctors,
	}
	if specialty != "" {
		out["recommendedSpecialty"] = specialty
	}
	if prediction != nil {
		out["prediction"] = prediction
	}

	c.JSON(http.StatusOK, out)
}

// GetChatSession returns a session with its message history and predictions.
func (h *Handler) GetChatSession(c *gin.Context) {
	var session models.ChatSession
	err := h.DB.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Preload("Predictions.Disease").
		First(&session, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorHandler(c, http.StatusNotFound, errors.New("chat session not found"))
			return
		}
		h.errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// resolveSession loads an existing session with its history, or starts a new
// one. Sessions work for anonymous visitors too; userID is attached only when
// the request is authenticated.
func (h *Handler) resolveSession(c *gin.Context, sessionID string) (*models.ChatSession, error) {
	if sessionID != "" {
		var session models.ChatSession
		err := h.DB.Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc").Limit(20)
		}).First(&session, "id = ?", sessionID).Error
		if err == nil {
			return &session, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	session := models.ChatSession{}
	if userID, ok := c.Get("userID"); ok {
		if id, ok := userID.(string); ok {
			session.UserID = id
		}
	}
	if err := h.DB.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// validateSymptoms keeps only extracted names that exist in the symptom
// catalog. Assistant output is untrusted free text.
func (h *Handler) validateSymptoms(extracted []string) ([]string, error) {
	if len(extracted) == 0 {
		return []string{}, nil
	}

	var known []models.Symptom
	if err := h.DB.Where("LOWER(name) IN ?", extracted).Find(&known).Error; err != nil {
		return nil, err
	}

	knownSet := make(map[string]struct{}, len(known))
	for _, s := range known {
		knownSet[strings.ToLower(s.Name)] = struct{}{}
	}

	valid := make([]string, 0, len(extracted))
	for _, s := range extracted {
		if _, ok := knownSet[s]; ok {
			valid = append(valid, s)
		}
	}
	return valid, nil
}

// resolveSpecialty prefers the assistant's recommendation when it names a real
// specialty, then falls back to the predicted disease's specialty.
func (h *Handler) resolveSpecialty(specialist string, prediction *matching.Prediction) string {
	if specialist != "" {
		var specialty models.Specialty
		if err := h.DB.Where("name ILIKE ?", specialist).First(&specialty).Error; err == nil {
			return specialty.Name
		}
	}
	if prediction != nil && prediction.Disease != "" {
		var disease models.Disease
		err := h.DB.Preload("RecommendedSpecialty").
			Where("name ILIKE ?", prediction.Disease).First(&disease).Error
		if err == nil && disease.RecommendedSpecialty != nil {
			return disease.RecommendedSpecialty.Name
		}
	}
	return ""
}

// recommendDoctors picks up to three active doctors for a specialty, nearest
// city first, best rated within the same city.
func (h *Handler) recommendDoctors(specialty, city string) ([]gin.H, error) {
	if specialty == "" {
		return []gin.H{}, nil
	}

	var doctors []models.Doctor
	err := h.DB.Preload("Specialty").
		Joins("JOIN specialties ON specialties.id = doctors.specialty_id").
		Where("specialties.name ILIKE ? AND doctors.is_active = ?", specialty, true).
		Order("doctors.rating desc").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}

	if order, ok := cityProximity[strings.ToLower(strings.TrimSpace(city))]; ok {
		rank := make(map[string]int, len(order))
		for i, name := range order {
			rank[name] = i
		}
		cityRank := func(d *models.Doctor) int {
			if r, ok := rank[strings.ToLower(d.City)]; ok {
				return r
			}
			return len(order)
		}
		sort.SliceStable(doctors, func(i, j int) bool {
			return cityRank(&doctors[i]) < cityRank(&doctors[j])
		})
	}

	if len(doctors) > 3 {
		doctors = doctors[:3]
	}

	now := time.Now()
	out := make([]gin.H, 0, len(doctors))
	for i := range doctors {
		d := &doctors[i]
		out = append(out, gin.H{
			"id":              d.ID,
			"name":            d.FullName(),
			"specialty":       d.Specialty.Name,
			"city":            d.City,
			"rating":          d.Rating,
			"reviewCount":     d.ReviewCount,
			"consultationFee": d.ConsultationFee,
			"availableNow": scheduling.AvailableNow(d.WorkingDays,
				d.AvailableFrom, d.AvailableTo, now),
		})
	}
	return out, nil
}

// recordPrediction stores a prediction against the session, resolving the
// disease row by name when it exists in the catalog.
func (h *Handler) recordPrediction(sessionID string, p *matching.Prediction) {
	record := models.Prediction{
		SessionID:  sessionID,
		Confidence: p.Confidence,
	}
	var disease models.Disease
	if err := h.DB.Where("name ILIKE ?", p.Disease).First(&disease).Error; err == nil {
		record.DiseaseID = &disease.ID
	}
	if err := h.DB.Create(&record).Error; err != nil {
		log.Errorf("failed to persist prediction for session %s: %v", sessionID, err)
	}
}
