package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Delivery DeliveryConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	DeliveryLogPath    string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// DeliveryConfig drives artifact shipping: the pub/sub topic plus the fields
// rendered into every calendar event.
type DeliveryConfig struct {
	TopicName     string
	EventName     string
	EventURL      string
	EmailSubject  string
	AttachmentICS string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			DeliveryLogPath:    getEnv("DELIVERY_LOG_FILE_PATH", "delivery.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "AgroCalc"),
		},
		Delivery: DeliveryConfig{
			TopicName:     getEnv("SCHEDULE_DELIVERY_TOPIC_NAME", "SCHEDULE_DELIVERY"),
			EventName:     getEnv("CALENDAR_EVENT_NAME", "Nutrient feeding, %d L reservoir"),
			EventURL:      getEnv("CALENDAR_EVENT_URL", ""),
			EmailSubject:  getEnv("DELIVERY_EMAIL_SUBJECT", "Your feeding schedule"),
			AttachmentICS: getEnv("DELIVERY_ICS_FILENAME", "schedule.ics"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
