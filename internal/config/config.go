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
	Port           string
	Env            string
	JWTSecret      string
	AccessTokenTTL time.Duration

	DefaultAdminEmail    string
	DefaultAdminPassword string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:             getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:               getEnvOrDefault("DB_NAME", "shopapi"),
		Port:                 getEnvOrDefault("PORT", "3000"),
		Env:                  getEnvOrDefault("APP_ENV", "development"),
		JWTSecret:            getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:       getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		DefaultAdminEmail:    getEnvOrDefault("DEFAULT_ADMIN_EMAIL", ""),
		DefaultAdminPassword: getEnvOrDefault("DEFAULT_ADMIN_PASSWORD", ""),
		SMTPHost:             getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort:             getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser:             getEnvOrDefault("SMTP_USER", ""),
		SMTPPassword:         getEnvOrDefault("SMTP_PASSWORD", ""),
		SMTPFrom:             getEnvOrDefault("SMTP_FROM", ""),
	}
}

func (c Config) IsDevelopment() bool {
	return c.Env != "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
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
