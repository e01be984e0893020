package types

import (
	"os"
	"strconv"

	"github.com/shirouto/dsprobe"
)

// Connect timeout applied when a config leaves it unset or non-positive.
const DEFAULT_CONNECT_TIMEOUT = 30

// connectTimeoutSeconds normalizes a configured connect timeout.
func connectTimeoutSeconds(v int) int {
	if v <= 0 {
		return DEFAULT_CONNECT_TIMEOUT
	}
	return v
}

// getEnvInt retrieves an integer from environment variable with validation.
// Returns the default value and logs a warning if env var is not set or invalid.
func getEnvInt(envKey string, defaultValue int) int {
	envValue := os.Getenv(envKey)
	if envValue == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(envValue)
	if err != nil {
		dsprobe.LogW("Configs: %s has invalid value '%s' in .env file, using default configuration (%d).", envKey, envValue, defaultValue)
		return defaultValue
	}

	if parsedValue <= 0 {
		dsprobe.LogW("Configs: %s must be positive, got %d, using default configuration (%d).", envKey, parsedValue, defaultValue)
		return defaultValue
	}

	return parsedValue
}
