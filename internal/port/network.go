// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"
)

// NetworkConfigurationManager is the primary port for network configuration.
// The link supervisor is the adapter that implements it.
type NetworkConfigurationManager interface {
	// Run supervises the interface until the context is cancelled.
	// It returns ctx.Err() on cancellation.
	Run(ctx context.Context) error

	// GetInterfaceName returns the name of the network interface managed by this manager.
	GetInterfaceName() string
}
