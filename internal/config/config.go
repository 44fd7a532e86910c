package config

import (
	"log/slog"
	"os"
	"strconv"
)

// Config holds process configuration, read from the environment after the
// optional .env file has been loaded.
type Config struct {
	APIKey          string
	BaseURL         string
	Port            string
	DefaultLocation string
	RateLimitRPS    float64
	RateLimitBurst  int
	LogLevel        slog.Level
}

// Load reads configuration from the environment. A missing API key is not
// fatal here: fetches will fail into the error state, which carries the
// guidance to configure a credential.
func Load() Config {
	return Config{
		APIKey:          os.Getenv("WEATHER_API_KEY"),
		BaseURL:         os.Getenv("WEATHER_API_BASE_URL"),
		Port:            getEnvOrDefault("PORT", "8080"),
		DefaultLocation: getEnvOrDefault("DEFAULT_LOCATION", "London, UK"),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 10),
		LogLevel:        parseLevel(os.Getenv("LOG_LEVEL")),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func parseLevel(value string) slog.Level {
	switch value {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
