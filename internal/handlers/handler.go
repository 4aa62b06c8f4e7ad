package handlers

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mediassist/mediassist-api/internal/services"
)

// Handler carries the data-access handle and external collaborators. It is
// constructed once at startup and shared by all routes; handlers themselves
// hold no per-request state.
type Handler struct {
	DB        *gorm.DB
	Assistant *services.AssistantService
	Predictor *services.PredictorService
	Notifier  *services.NotificationService
	Voice     *services.VoiceService
}

func NewHandler(db *gorm.DB, assistant *services.AssistantService, predictor *services.PredictorService,
	notifier *services.NotificationService, voice *services.VoiceService) *Handler {
	return &Handler{
		DB:        db,
		Assistant: assistant,
		Predictor: predictor,
		Notifier:  notifier,
		Voice:     voice,
	}
}

// errorHandler logs the underlying error and writes a structured JSON error.
// For 5xx the client only ever sees a generic message.
func (h *Handler) errorHandler(c *gin.Context, statusCode int, err error) {
	log.Error(err.Error())
	if statusCode >= 500 {
		c.JSON(statusCode, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(statusCode, gin.H{"error": err.Error()})
}
