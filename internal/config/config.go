// Package config loads server configuration from the environment, with an
// optional .env file for development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Verify    VerifyConfig
	Store     StoreConfig
	Discovery DiscoveryConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type VerifyConfig struct {
	MaxAgeMs        int64
	MaxSpeedMS      float64
	RequirePresence bool
	MinPresenceMs   int64
}

type StoreConfig struct {
	SweepInterval time.Duration
}

type DiscoveryConfig struct {
	Enabled     bool
	ServiceName string
}

func Load() (*Config, error) {
	godotenv.Load()

	sweep, err := time.ParseDuration(getEnv("STORE_SWEEP_INTERVAL", "30s"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnv("PORT", "8080"),
		},
		Verify: VerifyConfig{
			MaxAgeMs:        getEnvAsInt64("VERIFY_MAX_AGE_MS", 300_000),
			MaxSpeedMS:      getEnvAsFloat("VERIFY_MAX_SPEED_MS", 200),
			RequirePresence: getEnvAsBool("VERIFY_REQUIRE_PRESENCE", false),
			MinPresenceMs:   getEnvAsInt64("VERIFY_MIN_PRESENCE_MS", 60_000),
		},
		Store: StoreConfig{
			SweepInterval: sweep,
		},
		Discovery: DiscoveryConfig{
			Enabled:     getEnvAsBool("DISCOVERY_ENABLED", false),
			ServiceName: getEnv("DISCOVERY_NAME", "geoseal"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
