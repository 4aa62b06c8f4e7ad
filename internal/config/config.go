package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int

	AllowedOrigins []string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	MLModelURL string
	VapiAPIKey string

	N8NAppointmentWebhook  string
	N8NNotificationWebhook string
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 5000)
	viper.SetDefault("AllowedOrigins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})

	if err := viper.ReadInConfig(); err != nil {
		// The config file only carries non-secret settings; running on
		// defaults plus environment variables is fine.
		log.Warnf("no config file loaded: %v", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.DBHost = envOr("DB_HOST", "localhost")
	cfg.DBPort = envOr("DB_PORT", "5432")
	cfg.DBUser = envOr("DB_USER", "postgres")
	cfg.DBPass = envOr("DB_PASS", "postgres")
	cfg.DBName = envOr("DB_NAME", "mediassist")

	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	cfg.OpenAIModel = os.Getenv("OPENAI_MODEL")
	cfg.MLModelURL = os.Getenv("ML_MODEL_API_URL")
	cfg.VapiAPIKey = os.Getenv("VAPI_API_KEY")
	cfg.N8NAppointmentWebhook = os.Getenv("N8N_WEBHOOK_APPOINTMENT")
	cfg.N8NNotificationWebhook = os.Getenv("N8N_WEBHOOK_NOTIFICATION")

	if port := os.Getenv("API_PORT"); port != "" {
		if _, err := fmt.Sscanf(port, "%d", &cfg.ServicePort); err != nil {
			return nil, fmt.Errorf("invalid API_PORT %q: %w", port, err)
		}
	}

	log.Info("config parsed")
	return cfg, nil
}

// DSN assembles the postgres connection string from the DB_* settings.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
