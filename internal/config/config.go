package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string // sqlite (default), postgres, mysql
	DatabasePath   string // sqlite file path
	DatabaseURL    string // postgres/mysql connection string
	MigrationsPath string

	// Google generative-language API
	GoogleAIAPIKey string
	GeminiModel    string
	AITimeout      time.Duration

	// Identity token signing
	TokenSecret string

	// Admin endpoints (bcrypt hash of the admin password; empty disables them)
	AdminPassHash string

	// Daily word generation
	DailyWordsEnabled bool
	DailyWordsHour    int // local hour of day, 0-23

	// Digest email (disabled when FromEmail is empty)
	AWSRegion string
	FromEmail string
	FromName  string
	ToEmail   string

	// CORS allowed origins; "*" matches the reference deployment
	CORSOrigins []string

	SessionIdleTimeout time.Duration
}

// ErrMissingAPIKey is returned when the required Google AI key is not set.
// The server refuses to start without it.
var ErrMissingAPIKey = errors.New("GOOGLE_AI_API_KEY is not set")

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./vocaday.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		GoogleAIAPIKey: os.Getenv("GOOGLE_AI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		AITimeout:      getDuration("AI_TIMEOUT", 30*time.Second),

		TokenSecret:   getEnv("TOKEN_SECRET", "vocaday-dev-secret"),
		AdminPassHash: os.Getenv("ADMIN_PASS_HASH"),

		DailyWordsEnabled: getBool("DAILY_WORDS_ENABLED", false),
		DailyWordsHour:    getInt("DAILY_WORDS_HOUR", 6),

		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		FromEmail: os.Getenv("SES_FROM_EMAIL"),
		FromName:  getEnv("SES_FROM_NAME", "VocaDay"),
		ToEmail:   os.Getenv("DIGEST_TO_EMAIL"),

		CORSOrigins: getCSV("CORS_ORIGINS", "*"),

		SessionIdleTimeout: getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
	}
}

// Validate checks the fatal configuration requirements
func (c *Config) Validate() error {
	if c.GoogleAIAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return defaultValue
	}
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getCSV(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
