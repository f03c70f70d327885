package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort           string
	AppEnv            string
	BackendBaseURL    string
	BackendToken      string
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		AppEnv:            os.Getenv("APP_ENV"),
		BackendBaseURL:    os.Getenv("BACKEND_BASE_URL"),
		BackendToken:      os.Getenv("BACKEND_API_TOKEN"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
	}

	if cfg.BackendBaseURL == "" {
		log.Fatal("BACKEND_BASE_URL is not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
