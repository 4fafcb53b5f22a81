package coordinator

import "fmt"

// DeviceKey points other processes at the interface currently supervised.
const DeviceKey = "net.device"

// StatusKey is the per-interface status key ("down", "up" or "dhcp").
func StatusKey(iface string) string {
	return fmt.Sprintf("net.%s.status", iface)
}

// InterfaceDNSKey is the per-interface DNS server slot n (1 or 2).
func InterfaceDNSKey(iface string, n int) string {
	return fmt.Sprintf("net.%s.dns%d", iface, n)
}

// DNSKey is the system-wide DNS server slot n (1 or 2).
func DNSKey(n int) string {
	return fmt.Sprintf("net.dns%d", n)
}
