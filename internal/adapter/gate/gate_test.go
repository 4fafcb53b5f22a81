//go:build unit

package gate

import (
	"errors"
	"testing"

	"golang-ethmonitor/internal/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const gpioPath = "/sys/class/gpio/gpio94/value"

func TestRadioGate_ShouldMonitor(t *testing.T) {
	ctrl := gomock.NewController(t)
	fileMgr := mock.NewMockFileManager(ctrl)
	gate := NewRadioGate(gpioPath, fileMgr)

	t.Run("RadioOff", func(t *testing.T) {
		fileMgr.EXPECT().FileExists(gpioPath).Return(true)
		fileMgr.EXPECT().ReadFile(gpioPath).Return([]byte("0\n"), nil)

		monitor, err := gate.ShouldMonitor()
		assert.NoError(t, err)
		assert.True(t, monitor)
	})

	t.Run("RadioOn", func(t *testing.T) {
		fileMgr.EXPECT().FileExists(gpioPath).Return(true)
		fileMgr.EXPECT().ReadFile(gpioPath).Return([]byte("1\n"), nil)

		monitor, err := gate.ShouldMonitor()
		assert.NoError(t, err)
		assert.False(t, monitor)
	})

	t.Run("ReadErrorMonitors", func(t *testing.T) {
		fileMgr.EXPECT().FileExists(gpioPath).Return(true)
		fileMgr.EXPECT().ReadFile(gpioPath).Return(nil, errors.New("permission denied"))

		monitor, err := gate.ShouldMonitor()
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoRadioState)
		assert.True(t, monitor)
	})

	t.Run("MissingFileMonitors", func(t *testing.T) {
		fileMgr.EXPECT().FileExists(gpioPath).Return(false)

		monitor, err := gate.ShouldMonitor()
		assert.ErrorIs(t, err, ErrNoRadioState)
		assert.True(t, monitor)
	})

	t.Run("GarbageMonitors", func(t *testing.T) {
		fileMgr.EXPECT().FileExists(gpioPath).Return(true)
		fileMgr.EXPECT().ReadFile(gpioPath).Return([]byte("x"), nil)

		monitor, err := gate.ShouldMonitor()
		assert.Error(t, err)
		assert.True(t, monitor)
	})
}

func TestRadioGate_NoPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	fileMgr := mock.NewMockFileManager(ctrl)

	monitor, err := NewRadioGate("", fileMgr).ShouldMonitor()
	assert.NoError(t, err)
	assert.True(t, monitor)
}
