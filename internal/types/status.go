// Package types defines common types used across the application.
package types

// Status values published under the per-interface status key.
const (
	StatusDown = "down"
	StatusUp   = "up"
	StatusDHCP = "dhcp"
)
