package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mediassist/mediassist-api/internal/config"
	"github.com/mediassist/mediassist-api/internal/handlers"
	"github.com/mediassist/mediassist-api/internal/middleware"
	"github.com/mediassist/mediassist-api/internal/services"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	log.Info("connected to postgres")

	assistant := services.NewAssistantService(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	predictor := services.NewPredictorService(cfg.MLModelURL)
	notifier := services.NewNotificationService(cfg.N8NAppointmentWebhook, cfg.N8NNotificationWebhook)
	voice := services.NewVoiceService(cfg.VapiAPIKey)

	h := handlers.NewHandler(db, assistant, predictor, notifier, voice)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", h.Health)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
	}

	authed := r.Group("/auth")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/me", h.GetCurrentUser)
		authed.PATCH("/profile/patient", h.UpdatePatientProfile)
	}

	api := r.Group("/api")
	{
		api.GET("/symptoms", h.GetSymptoms)
		api.GET("/symptom/:id", h.GetSymptom)
		api.GET("/symptoms/diseases", h.GetDiseases)
		api.POST("/symptoms/diseases/search", h.SearchDiseases)
		api.GET("/diseases/:id", h.GetDisease)

		api.GET("/specialties", h.GetSpecialties)
		api.GET("/doctors", h.GetDoctors)
		api.GET("/doctors/:id", h.GetDoctor)
		api.POST("/doctors/:id/reviews", h.AddReview)

		api.GET("/appointments/slots/:doctorId", h.GetAvailableSlots)

		api.POST("/chat/analyze", h.AnalyzeSymptoms)
		api.GET("/chat/sessions/:id", h.GetChatSession)

		api.POST("/webhooks/appointment", h.AppointmentWebhook)
		api.POST("/webhooks/call", h.CallWebhook)
		api.POST("/webhooks/notification", h.NotificationWebhook)
		api.POST("/webhooks/voice", h.VoiceWebhook)
	}

	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/appointments", h.CreateAppointment)
		protected.GET("/appointments/patient/:patientId", h.GetPatientAppointments)
		protected.GET("/appointments/doctor/:doctorId", h.GetDoctorAppointments)
		protected.PATCH("/appointments/status/:id", h.UpdateAppointmentStatus)

		protected.GET("/voice/template", h.GetAssistantTemplate)
		protected.POST("/voice/assistants/:doctorId", h.CreateVoiceAssistant)
		protected.POST("/voice/calls", h.StartOutboundCall)
		protected.GET("/voice/calls/:doctorId", h.GetCallLogs)
	}

	addr := fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort)
	log.Infof("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
