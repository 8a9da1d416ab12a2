package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBUrl     string
	JWTSecret string
	// Gemini Configuration
	GeminiAPIKey string
	GeminiModel  string
	// SMTP Configuration (recruiter alert emails)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Redis Configuration (chat endpoint rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds int
	RateLimitChatThreshold int
	// Matching Configuration
	MaxStoreDistanceKm  float64
	DistanceTieBandKm   float64
	MaxStoreResults     int
	DefaultMaxSalary    float64
	SalaryMarginPercent float64
	// Text generation retry policy
	GenerateMaxAttempts  int
	GenerateBackoffMs    int
	GenerateBackoffMaxMs int
	// Scheduled jobs (cron expressions)
	ReminderCronSpec string
	AlertCronSpec    string
	// Requisition alerting
	AlertDaysWithoutFill int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBUrl:     getEnv("DATABASE_URL", ""),
		JWTSecret: getEnv("JWT_SECRET", ""),
		// Gemini Configuration
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@reclutamiento.pe"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitChatThreshold: getEnvInt("RATE_LIMIT_CHAT_THRESHOLD", 30),
		// Matching Configuration
		MaxStoreDistanceKm:  getEnvFloat("MAX_STORE_DISTANCE_KM", 7.0),
		DistanceTieBandKm:   getEnvFloat("DISTANCE_TIE_BAND_KM", 0.5),
		MaxStoreResults:     getEnvInt("MAX_STORE_RESULTS", 3),
		DefaultMaxSalary:    getEnvFloat("DEFAULT_MAX_SALARY", 1500),
		SalaryMarginPercent: getEnvFloat("SALARY_MARGIN_PERCENT", 20),
		// Text generation retry policy
		GenerateMaxAttempts:  getEnvInt("GENERATE_MAX_ATTEMPTS", 4),
		GenerateBackoffMs:    getEnvInt("GENERATE_BACKOFF_MS", 500),
		GenerateBackoffMaxMs: getEnvInt("GENERATE_BACKOFF_MAX_MS", 8000),
		// Scheduled jobs
		ReminderCronSpec: getEnv("REMINDER_CRON", "0 18 * * *"),
		AlertCronSpec:    getEnv("ALERT_CRON", "0 8 * * *"),
		// Requisition alerting
		AlertDaysWithoutFill: getEnvInt("ALERT_DAYS_WITHOUT_FILL", 7),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not configured. Chat replies will fail.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}
