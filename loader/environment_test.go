package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvBool(t *testing.T) {
	t.Run("Unset", func(t *testing.T) {
		assert.True(t, getEnvBool("DSPROBE_TEST_BOOL_UNSET", true))
		assert.False(t, getEnvBool("DSPROBE_TEST_BOOL_UNSET", false))
	})

	t.Run("Set", func(t *testing.T) {
		t.Setenv("DSPROBE_TEST_BOOL", "false")
		assert.False(t, getEnvBool("DSPROBE_TEST_BOOL", true))

		t.Setenv("DSPROBE_TEST_BOOL", "1")
		assert.True(t, getEnvBool("DSPROBE_TEST_BOOL", false))
	})

	t.Run("Invalid", func(t *testing.T) {
		t.Setenv("DSPROBE_TEST_BOOL", "yes-please")
		assert.True(t, getEnvBool("DSPROBE_TEST_BOOL", true))
	})
}

func TestNewSystemInfoFromEnv(t *testing.T) {
	t.Setenv("DSPROBE_ENABLE_STARTUP_BANNER", "false")
	t.Setenv("DSPROBE_ENABLE_TARGET_INFO", "true")

	info := NewSystemInfoFromEnv()
	assert.False(t, info.EnableStartupBanner())
	assert.True(t, info.EnableTargetInfo())
}

func TestEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.env")
	require.NoError(t, os.WriteFile(path, []byte("DSPROBE_TEST_FROM_FILE=loaded\n"), 0o600))

	oldEnvFile := EnvFile
	EnvFile = path
	t.Cleanup(func() {
		EnvFile = oldEnvFile
		os.Unsetenv("DSPROBE_TEST_FROM_FILE")
	})

	Environment()
	assert.Equal(t, "loaded", os.Getenv("DSPROBE_TEST_FROM_FILE"))
}
