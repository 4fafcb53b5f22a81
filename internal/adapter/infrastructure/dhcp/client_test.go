//go:build unit

package dhcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClientAdapter(t *testing.T) {
	adapter := NewClientAdapter()
	assert.NotNil(t, adapter)
}

func TestClientAdapter_RequestLease_UnknownInterface(t *testing.T) {
	adapter := NewClientAdapter()

	_, err := adapter.RequestLease(context.Background(), "nonexistent0", time.Second)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create DHCP client")
}

func TestClientAdapter_RenewLease_UnknownInterface(t *testing.T) {
	adapter := NewClientAdapter()

	_, err := adapter.RenewLease(context.Background(), "nonexistent0", nil, time.Second)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create DHCP client")
}
