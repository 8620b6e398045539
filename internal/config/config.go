package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	DatabaseURL       string
	ServerPort        string
	SharedSecret      string
	FrontendURL       string
	RedisURL          string
	RabbitMQURL       string
	RabbitMQPrefetch  int
	CallServiceURL    string
	CallServiceKey    string
	CallAssistantID   string
	CallPhoneNumberID string
	CalendarAPIURL    string
	CalendarToken     string
	Timezone          string
	EnableHSTS        bool
	WorkerDebugMode   bool
	ServerDebugMode   bool
	OTELEnabled       bool
	OTELEndpoint      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		SharedSecret:      getEnv("SHARED_SECRET", ""),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RabbitMQURL:       getEnv("RABBITMQ_URL", ""),
		RabbitMQPrefetch:  getEnvInt("RABBITMQ_PREFETCH", 1),
		CallServiceURL:    getEnv("CALL_SERVICE_URL", "https://api.vapi.ai"),
		CallServiceKey:    getEnv("CALL_SERVICE_KEY", ""),
		CallAssistantID:   getEnv("CALL_ASSISTANT_ID", ""),
		CallPhoneNumberID: getEnv("CALL_PHONE_NUMBER_ID", ""),
		CalendarAPIURL:    getEnv("CALENDAR_API_URL", ""),
		CalendarToken:     getEnv("CALENDAR_TOKEN", ""),
		Timezone:          getEnv("TIMEZONE", "UTC"),
		EnableHSTS:        getEnvBool("ENABLE_HSTS", false),
		WorkerDebugMode:   getEnvBool("WORKER_DEBUG_MODE", false),
		ServerDebugMode:   getEnvBool("SERVER_DEBUG_MODE", false),
		OTELEnabled:       getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.RabbitMQURL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL is required for call scheduling jobs")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
