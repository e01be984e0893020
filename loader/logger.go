package loader

import (
	"os"

	"github.com/shirouto/dsprobe"
)

// Logger wires the log level from the environment. Must run after
// Environment() so .env values are visible.
func Logger() {
	level := os.Getenv("DSPROBE_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	dsprobe.SetLogLevel(level)
}
