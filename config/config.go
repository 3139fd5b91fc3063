package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the server configuration.
type Config struct {
	Port            int    `yaml:"port"`
	RedisAddr       string `yaml:"redis_addr"`
	PostgresDSN     string `yaml:"postgres_dsn"`
	RateLimit       int    `yaml:"rate_limit"`
	RateWindowSecs  int    `yaml:"rate_window_seconds"`
	OTELEndpoint    string `yaml:"otel_endpoint"`
	OTELServiceName string `yaml:"otel_service_name"`
}

// Load builds the configuration from defaults, an optional YAML file named
// by PLANNER_CONFIG, and environment variables, in that order (environment
// wins). A .env file is honored if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            8080,
		RateLimit:       5,
		RateWindowSecs:  60,
		OTELServiceName: "mortgage-planner",
	}

	if path := os.Getenv("PLANNER_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Port = getEnvInt("PORT", cfg.Port)
	cfg.RedisAddr = getEnvString("REDIS_ADDR", cfg.RedisAddr)
	cfg.PostgresDSN = getEnvString("POSTGRES_DSN", cfg.PostgresDSN)
	cfg.RateLimit = getEnvInt("RATE_LIMIT", cfg.RateLimit)
	cfg.RateWindowSecs = getEnvInt("RATE_WINDOW_SECONDS", cfg.RateWindowSecs)
	cfg.OTELEndpoint = getEnvString("OTEL_ENDPOINT", cfg.OTELEndpoint)
	cfg.OTELServiceName = getEnvString("OTEL_SERVICE_NAME", cfg.OTELServiceName)

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
