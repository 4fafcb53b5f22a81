// Package gate decides at startup whether the wired interface should be supervised.
package gate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang-ethmonitor/internal/pkg/logging"
	"golang-ethmonitor/internal/port"
)

// ErrNoRadioState is returned when the radio state file does not exist.
var ErrNoRadioState = errors.New("radio state file not found")

// RadioGate reads a GPIO value file reporting whether the radio is on.
// A low value means the radio is off and the wired interface is in use.
type RadioGate struct {
	path    string
	fileMgr port.FileManager
}

// Ensure RadioGate implements the MonitorGate port
var _ port.MonitorGate = (*RadioGate)(nil)

// NewRadioGate creates a gate reading path. An empty path always monitors.
func NewRadioGate(path string, fileMgr port.FileManager) *RadioGate {
	return &RadioGate{path: path, fileMgr: fileMgr}
}

// ShouldMonitor reports whether the interface should be supervised.
// Callers treat an error as "monitor".
func (g *RadioGate) ShouldMonitor() (bool, error) {
	logger := logging.WithComponent("gate").WithField("path", g.path)

	if g.path == "" {
		return true, nil
	}

	if !g.fileMgr.FileExists(g.path) {
		return true, fmt.Errorf("%w: %s", ErrNoRadioState, g.path)
	}

	data, err := g.fileMgr.ReadFile(g.path)
	if err != nil {
		return true, fmt.Errorf("failed to read radio state: %w", err)
	}

	raw := strings.TrimSpace(string(data))
	flag, err := strconv.Atoi(raw)
	if err != nil {
		return true, fmt.Errorf("invalid radio state %q: %w", raw, err)
	}

	logger.WithField("radio", flag).Debug("Read radio state")
	return flag == 0, nil
}
