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
	MongoURI        string
	DBName          string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	ResendAPIKey    string
	MailFrom        string
	StripeSecretKey string
	CORSOrigins     []string
	Port            string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:        getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:          getEnvOrDefault("DB_NAME", "coffeeShopDb"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:  getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),
		ResendAPIKey:    getEnvOrDefault("RESEND_API_KEY", ""),
		MailFrom:        getEnvOrDefault("MAIL_FROM", "Coffee-shop-bd <onboarding@resend.dev>"),
		StripeSecretKey: getEnvOrDefault("STRIPE_SECRET_KEY", ""),
		CORSOrigins:     getListEnv("CORS_ORIGINS", []string{"*"}),
		Port:            getEnvOrDefault("PORT", "5000"),
	}
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

func getListEnv(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
