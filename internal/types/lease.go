package types

import (
	"net"
	"time"
)

// LinkState is the sampled carrier state of a network interface.
type LinkState int

const (
	LinkDown LinkState = iota
	LinkUp
)

// String returns the status value published for the state.
func (s LinkState) String() string {
	if s == LinkUp {
		return "up"
	}
	return "down"
}

// LeaseInfo holds the parameters granted by a successful DHCP acquisition.
// The zero value is an invalid (absent) lease.
type LeaseInfo struct {
	Address       net.IP        // Assigned IPv4 address
	SubnetMask    net.IPMask    // Subnet mask, defaults to /24 when the server omits it
	Gateway       net.IP        // First router option, may be nil
	DNS1          net.IP        // Primary DNS server, may be nil
	DNS2          net.IP        // Secondary DNS server, may be nil
	ServerAddress net.IP        // DHCP server identifier
	LeaseDuration time.Duration // Lease time (option 51)
	RenewalTime   time.Duration // T1 (option 58); zero means renew whenever idle
	AcquiredAt    time.Time     // Time of the last successful acquisition or renewal
}

// Valid reports whether the lease holds an assigned address.
func (l *LeaseInfo) Valid() bool {
	return l != nil && len(l.Address) > 0 && !l.Address.IsUnspecified()
}

// Reset zeroes the lease in place.
func (l *LeaseInfo) Reset() {
	*l = LeaseInfo{}
}

// DNSString returns the server as a status value; absent servers map to "".
func DNSString(ip net.IP) string {
	if ip == nil {
		return ""
	}
	return ip.String()
}
