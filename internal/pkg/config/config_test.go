//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("NoFileUsesDefaults", func(t *testing.T) {
		config, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), *config)
	})

	t.Run("PartialConfigMergesDefaults", func(t *testing.T) {
		configContent := `logging:
  level: debug
  format: compact

monitor:
  poll_interval: 10s
  retry_interval: 7s

gate:
  path: /sys/class/gpio/gpio94/value

store:
  path: /var/lib/ethmonitor

metrics:
  listen: 127.0.0.1:9110
`
		configFile := filepath.Join(tempDir, "partial.yml")
		require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

		config, err := Load(configFile)
		require.NoError(t, err)
		assert.Equal(t, "debug", config.Logging.Level)
		assert.Equal(t, "compact", config.Logging.Format)
		assert.Equal(t, "stdout", config.Logging.Output)
		assert.Equal(t, 10*time.Second, config.Monitor.PollInterval)
		assert.Equal(t, 7*time.Second, config.Monitor.RetryInterval)
		assert.Equal(t, 5*time.Second, config.Monitor.InitialPollInterval)
		assert.Equal(t, 60*time.Second, config.Monitor.AttemptTimeout)
		assert.Equal(t, 3, config.Monitor.MaxRenewFailures)
		assert.Equal(t, "/sys/class/gpio/gpio94/value", config.Gate.Path)
		assert.Equal(t, "/var/lib/ethmonitor", config.Store.Path)
		assert.Equal(t, "", config.DNS.ResolvConf)
		assert.Equal(t, "127.0.0.1:9110", config.Metrics.Listen)
		assert.NoError(t, config.Validate())
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := Load("/nonexistent/config.yml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		configFile := filepath.Join(tempDir, "invalid.yml")
		require.NoError(t, os.WriteFile(configFile, []byte("invalid: yaml: content: [\n"), 0644))

		_, err := Load(configFile)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("InvalidDuration", func(t *testing.T) {
		configFile := filepath.Join(tempDir, "duration.yml")
		require.NoError(t, os.WriteFile(configFile, []byte("monitor:\n  poll_interval: soon\n"), 0644))

		_, err := Load(configFile)
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		config := Default()
		assert.NoError(t, config.Validate())
	})

	t.Run("NegativeInterval", func(t *testing.T) {
		config := Default()
		config.Monitor.RetryInterval = -time.Second

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "monitor.retry_interval must be positive")
	})

	t.Run("RequestLongerThanAttempt", func(t *testing.T) {
		config := Default()
		config.Monitor.RequestTimeout = 2 * time.Minute

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must not exceed")
	})

	t.Run("NoRenewFailuresAllowed", func(t *testing.T) {
		config := Default()
		config.Monitor.MaxRenewFailures = -1

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "max_renew_failures")
	})
}
