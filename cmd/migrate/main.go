package main

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mediassist/mediassist-api/internal/config"
	"github.com/mediassist/mediassist-api/internal/models"
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

	err = db.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Specialty{},
		&models.Doctor{},
		&models.Symptom{},
		&models.Disease{},
		&models.DiseaseSymptom{},
		&models.Appointment{},
		&models.Review{},
		&models.ChatSession{},
		&models.ChatMessage{},
		&models.Prediction{},
		&models.CallLog{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Info("database schema migrated")
}
