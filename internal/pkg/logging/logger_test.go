//go:build unit

package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactFormatter_Format(t *testing.T) {
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2024, 1, 1, 9, 30, 15, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "Link state changed",
		Data: logrus.Fields{
			"interface": "eth0",
			"component": "supervisor",
			"state":     "up",
			"attempt":   "a1",
		},
	}

	t.Run("Simple", func(t *testing.T) {
		out, err := (&CompactFormatter{}).Format(entry)
		require.NoError(t, err)
		assert.Equal(t, "[INFO][supervisor][eth0] Link state changed (attempt=a1, state=up)\n", string(out))
	})

	t.Run("WithTime", func(t *testing.T) {
		out, err := (&CompactFormatter{ShowTime: true}).Format(entry)
		require.NoError(t, err)
		assert.Equal(t, "[09:30:15][INFO][supervisor][eth0] Link state changed (attempt=a1, state=up)\n", string(out))
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("InvalidLevelFallsBackToInfo", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(LogConfig{Level: "loud", Format: "simple"}, &buf)

		assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
		assert.Contains(t, buf.String(), "[WARNING] Invalid log level 'loud'")
	})

	t.Run("InvalidFormatFallsBackToText", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(LogConfig{Level: "debug", Format: "xml"}, &buf)

		assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
		assert.Contains(t, buf.String(), "Invalid log format 'xml'")
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(LogConfig{Level: "info", Format: "json"}, &buf)
		logger.WithField("interface", "eth0").Info("hello")

		assert.Contains(t, buf.String(), `"interface":"eth0"`)
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})
}
