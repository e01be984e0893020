package loader

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shirouto/dsprobe/types"
)

var EnvFile string
var SystemInfoConfig types.ISystemInfo
var Runtime *types.Environment

// SystemInfo provides default configuration for system information display
type SystemInfo struct {
	startupBanner bool
	targetInfo    bool
}

// NewSystemInfoFromEnv creates SystemInfo from environment variables
func NewSystemInfoFromEnv() *SystemInfo {
	return &SystemInfo{
		startupBanner: getEnvBool("DSPROBE_ENABLE_STARTUP_BANNER", true),
		targetInfo:    getEnvBool("DSPROBE_ENABLE_TARGET_INFO", true),
	}
}

func (s *SystemInfo) EnableStartupBanner() bool { return s.startupBanner }
func (s *SystemInfo) EnableTargetInfo() bool    { return s.targetInfo }

// getEnvBool retrieves boolean from environment variable with default fallback
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return result
}

// Environment loads .env variables into memory. An explicitly configured
// file must exist; the default .env is optional since probe targets can be
// configured entirely by flags.
func Environment() {
	if EnvFile != "" {
		if err := godotenv.Load(EnvFile); err != nil {
			log.Fatalf("Error loading env file %s", EnvFile)
		}
	} else {
		_ = godotenv.Load()
	}

	// Initialize SystemInfoConfig if not already set
	if SystemInfoConfig == nil {
		SystemInfoConfig = NewSystemInfoFromEnv()
	}

	if Runtime == nil {
		Runtime = &types.Environment{
			Name:  os.Getenv("DSPROBE_ENV"),
			Debug: os.Getenv("DSPROBE_DEBUG"),
		}
	}
}
