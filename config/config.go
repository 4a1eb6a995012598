package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the runtime settings read from the environment
type Config struct {
	Env               string
	Port              string
	DatabaseURL       string
	MediaRoot         string
	JWTSecret         string
	RedisURL          string
	GoogleCredentials string
	DriveFolderID     string
	ChromePath        string
	LayoutFile        string
	LogLevel          string
}

// LoadEnv loads a .env file outside production.
// Overload is used so .env values win over the system environment.
func LoadEnv() {
	if os.Getenv("ENV") == "production" {
		return
	}
	envPath := ".env"
	if err := godotenv.Overload(envPath); err != nil {
		log.Debug().Err(err).Msgf(".env file not found at %s, using system environment variables", envPath)
		return
	}
	log.Debug().Msgf("Loaded environment variables from %s", envPath)
}

// Load builds a Config from environment variables
func Load() (*Config, error) {
	dbURL, err := databaseURL()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:               getenv("ENV", "development"),
		Port:              strings.TrimPrefix(getenv("PORT", "8080"), ":"),
		DatabaseURL:       dbURL,
		MediaRoot:         getenv("MEDIA_ROOT", "media"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RedisURL:          os.Getenv("REDIS_URL"),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DriveFolderID:     os.Getenv("BASE_GOOGLE_DRIVE_FOLDER_ID"),
		ChromePath:        os.Getenv("CHROME_PATH"),
		LayoutFile:        os.Getenv("FLYER_LAYOUT_FILE"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
	}

	if !filepath.IsAbs(cfg.MediaRoot) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg.MediaRoot = filepath.Join(wd, cfg.MediaRoot)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the listen address.
// 0.0.0.0 accepts connections from all interfaces (required in containers).
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// databaseURL returns DATABASE_URL or builds a connection string from DB_* variables
func databaseURL() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, getenv("DB_PORT", "5432"), user, os.Getenv("DB_PASSWORD"), dbname, getenv("DB_SSLMODE", "disable")), nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
