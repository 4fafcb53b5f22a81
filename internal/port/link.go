package port

//go:generate mockgen -destination=../mock/mock_link.go -package=mock golang-ethmonitor/internal/port LinkController,LinkProber,LeaseAcquirer,LeaseRenewer,StatusPublisher,MonitorGate

import (
	"context"

	"golang-ethmonitor/internal/types"
)

// LinkController is a port for administrative interface control.
type LinkController interface {
	// BringUp sets the interface administratively up
	BringUp(interfaceName string) error

	// BringDown sets the interface administratively down
	BringDown(interfaceName string) error
}

// LinkProber samples the physical carrier state of an interface.
type LinkProber interface {
	// Carrier returns the current link state. A failed query says nothing about the link.
	Carrier(interfaceName string) (types.LinkState, error)
}

// LeaseAcquirer performs one address acquisition attempt.
type LeaseAcquirer interface {
	// AcquireLease blocks until a lease is obtained and applied, or the attempt fails.
	AcquireLease(ctx context.Context, interfaceName string) (*types.LeaseInfo, error)
}

// LeaseRenewer performs one renewal attempt against an existing lease.
type LeaseRenewer interface {
	// RenewLease refreshes lease in place on success.
	RenewLease(ctx context.Context, interfaceName string, lease *types.LeaseInfo) error
}

// StatusPublisher is the key/value sink other processes read interface status from.
type StatusPublisher interface {
	// Publish sets key to value
	Publish(key, value string) error

	// Lookup returns the value for key, or "" if it was never published
	Lookup(key string) (string, error)
}

// MonitorGate decides once at startup whether the interface should be supervised.
type MonitorGate interface {
	ShouldMonitor() (bool, error)
}
