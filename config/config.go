package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JannatulNex/Ticketing-System/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const minSecretLength = 16

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	CORSOrigins []string
	UploadDir   string
	Env         string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		UploadDir:   os.Getenv("UPLOAD_DIR"),
		Env:         os.Getenv("APP_ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = "4000"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	switch cfg.Env {
	case "development", "test", "production":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q: must be development, test or production", cfg.Env)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}

	origins := os.Getenv("CORS_ORIGIN")
	if origins == "" {
		origins = "*"
	}
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, trimmed)
		}
	}

	return cfg, nil
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.User{}, &models.Ticket{}, &models.Comment{}, &models.ChatMessage{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
