// Package config handles application configuration via environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configurable values for the app.
type Config struct {
	Env  string
	Addr string

	DatabaseURL string
	AutoMigrate bool

	JWTSecret string
	JWTExpiry time.Duration

	ScreenshotEnabled  bool
	ScreenshotInterval time.Duration
	ScreenshotQuality  float64

	CloudinaryURL    string
	ScreenshotFolder string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

// Load reads environment variables and populates a Config struct. A local
// .env file is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	interval, err := time.ParseDuration(getEnv("SCREENSHOT_INTERVAL", "5m"))
	if err != nil {
		log.Panicf("Invalid SCREENSHOT_INTERVAL: %v", err)
	}

	quality, err := strconv.ParseFloat(getEnv("SCREENSHOT_QUALITY", "0.8"), 64)
	if err != nil {
		log.Panicf("Invalid SCREENSHOT_QUALITY: %v", err)
	}
	if quality <= 0 || quality > 1 {
		log.Panicf("SCREENSHOT_QUALITY must be in (0, 1], got %v", quality)
	}

	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "24h"))
	if err != nil {
		log.Panicf("Invalid JWT_EXPIRY: %v", err)
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		log.Panicf("Invalid SMTP_PORT: %v", err)
	}

	return &Config{
		Env:                getEnv("ENV", "development"),
		Addr:               getEnv("ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "postgres://localhost:5432/teamlogger?sslmode=disable"),
		AutoMigrate:        getEnv("AUTO_MIGRATE", "1") == "1",
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiry:          expiry,
		ScreenshotEnabled:  getEnv("SCREENSHOT_ENABLED", "true") == "true",
		ScreenshotInterval: interval,
		ScreenshotQuality:  quality,
		CloudinaryURL:      os.Getenv("CLOUDINARY_URL"),
		ScreenshotFolder:   getEnv("SCREENSHOT_FOLDER", "teamlogger/screenshots"),
		SMTPHost:           getEnv("SMTP_HOST", "localhost"),
		SMTPPort:           smtpPort,
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		MailFrom:           getEnv("MAIL_FROM", "noreply@teamlogger.local"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
