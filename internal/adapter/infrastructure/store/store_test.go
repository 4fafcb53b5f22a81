//go:build unit

package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *StatusStore {
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStatusStore_PublishLookup(t *testing.T) {
	s := newTestStore(t)

	t.Run("Missing", func(t *testing.T) {
		value, err := s.Lookup("net.eth0.status")
		assert.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, s.Publish("net.eth0.status", "up"))
		require.NoError(t, s.Publish("net.eth0.status", "dhcp"))

		value, err := s.Lookup("net.eth0.status")
		assert.NoError(t, err)
		assert.Equal(t, "dhcp", value)
	})
}

func TestStatusStore_GetRecordsTime(t *testing.T) {
	s := newTestStore(t)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Publish("net.device", "eth0"))

	rec, err := s.get("net.device")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "eth0", rec.Value)
	assert.True(t, fixed.Equal(rec.UpdatedAt))
}

func TestStatusStore_Snapshot(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Publish("net.eth0.dns1", "10.0.0.53"))
	require.NoError(t, s.Publish("net.eth0.dns2", ""))
	require.NoError(t, s.Publish("net.eth0.status", "dhcp"))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"net.eth0.dns1":   "10.0.0.53",
		"net.eth0.dns2":   "",
		"net.eth0.status": "dhcp",
	}, snap)
}

func TestStatusStore_ConcurrentPublish(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Publish("net.eth0.status", "up"))
		}()
	}
	wg.Wait()

	value, err := s.Lookup("net.eth0.status")
	require.NoError(t, err)
	assert.Equal(t, "up", value)
}
