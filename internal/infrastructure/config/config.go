// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Data source modes
const (
	ModeMock = "mock"
	ModeLive = "live"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion  string
	Environment string // test | production

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Data source
	Mode              string // mock | live
	AmadeusAPIKey     string
	AmadeusAPISecret  string
	MonthlyCallBudget int
	MockLatency       time.Duration

	// Fetch pipeline
	FetchInterval    time.Duration
	FetchConcurrency int
	FetchTimeout     time.Duration

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL (reference data)
	PostgresURI string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:  getEnv("APP_VERSION", "1.0.0"),
		Environment: getEnv("ENVIRONMENT", "test"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		Mode:              getEnv("DATA_SOURCE_MODE", ModeMock),
		AmadeusAPIKey:     getEnv("AMADEUS_API_KEY", ""),
		AmadeusAPISecret:  getEnv("AMADEUS_API_SECRET", ""),
		MonthlyCallBudget: getEnvAsInt("MONTHLY_CALL_BUDGET", 500),
		MockLatency:       time.Duration(getEnvAsInt("MOCK_LATENCY_MS", 0)) * time.Millisecond,

		FetchInterval:    time.Duration(getEnvAsInt("FETCH_INTERVAL", 3600)) * time.Second,
		FetchConcurrency: getEnvAsInt("FETCH_CONCURRENCY", 8),
		FetchTimeout:     time.Duration(getEnvAsInt("FETCH_TIMEOUT", 120)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "skywatch"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", "host=localhost user=postgres dbname=skywatch port=5432 sslmode=disable"),
	}

	if config.Mode != ModeMock && config.Mode != ModeLive {
		return nil, fmt.Errorf("invalid DATA_SOURCE_MODE %q: must be %q or %q", config.Mode, ModeMock, ModeLive)
	}
	if config.Mode == ModeLive && (config.AmadeusAPIKey == "" || config.AmadeusAPISecret == "") {
		return nil, fmt.Errorf("live mode requires AMADEUS_API_KEY and AMADEUS_API_SECRET")
	}

	return config, nil
}

// AmadeusBaseURL returns the API host for the configured environment tier.
func (c *Config) AmadeusBaseURL() string {
	if c.Environment == "production" {
		return "https://api.amadeus.com"
	}
	return "https://test.api.amadeus.com"
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
