package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration

	CloudinaryURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	ShopInbox    string

	AllowedOrigins []string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       requireEnv("MONGO_URI"),
		DBName:         getEnvOrDefault("DB_NAME", "wearluxe"),
		JWTSecret:      requireEnv("JWT_SECRET"),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),

		CloudinaryURL: requireEnv("CLOUDINARY_URL"),

		SMTPHost:     requireEnv("SMTP_HOST"),
		SMTPPort:     getIntEnv("SMTP_PORT", 587),
		SMTPUser:     requireEnv("SMTP_USER"),
		SMTPPassword: requireEnv("SMTP_PASSWORD"),
		MailFrom:     getEnvOrDefault("MAIL_FROM", "orders@wearluxe.shop"),
		ShopInbox:    getEnvOrDefault("SHOP_INBOX", "hello@wearluxe.shop"),

		AllowedOrigins: getListEnv("ALLOWED_ORIGINS"),
	}
}

// requireEnv has no fallback on purpose: secrets never live in source.
func requireEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		log.Fatalf("ENV %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getListEnv(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
