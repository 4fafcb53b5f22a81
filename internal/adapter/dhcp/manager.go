package dhcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"golang-ethmonitor/internal/pkg/logging"
	"golang-ethmonitor/internal/port"
	"golang-ethmonitor/internal/types"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/insomniacslk/dhcp/dhcpv4/nclient4"
	"github.com/vishvananda/netlink"
)

const defaultLeaseTime = 60 * time.Second

// ErrNoLease is returned by RenewLease when no lease was acquired on the wire.
var ErrNoLease = errors.New("no DHCP lease to renew")

// LeaseManager performs DHCP acquisition and renewal for one interface and
// applies the result (address, default gateway, resolv.conf) with netlink.
// It implements the LeaseAcquirer and LeaseRenewer ports.
type LeaseManager struct {
	dhcpClient     port.DHCPClient
	networkMgr     port.NetworkManager
	fileMgr        port.FileManager
	requestTimeout time.Duration
	resolvConf     string
	now            func() time.Time

	mu      sync.Mutex
	current *nclient4.Lease
}

var (
	_ port.LeaseAcquirer = (*LeaseManager)(nil)
	_ port.LeaseRenewer  = (*LeaseManager)(nil)
)

// Options configures a LeaseManager.
type Options struct {
	RequestTimeout time.Duration // Per exchange timeout handed to the DHCP client
	ResolvConf     string        // File receiving nameserver lines; empty disables
}

// NewLeaseManager creates a lease manager using the given infrastructure adapters.
func NewLeaseManager(dhcpClient port.DHCPClient, networkMgr port.NetworkManager, fileMgr port.FileManager, opts Options) *LeaseManager {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	return &LeaseManager{
		dhcpClient:     dhcpClient,
		networkMgr:     networkMgr,
		fileMgr:        fileMgr,
		requestTimeout: opts.RequestTimeout,
		resolvConf:     opts.ResolvConf,
		now:            time.Now,
	}
}

// AcquireLease runs one DISCOVER/OFFER/REQUEST/ACK exchange and configures the interface.
func (m *LeaseManager) AcquireLease(ctx context.Context, interfaceName string) (*types.LeaseInfo, error) {
	logger := logging.WithComponentAndInterface("dhcp", interfaceName)

	lease, err := m.dhcpClient.RequestLease(ctx, interfaceName, m.requestTimeout)
	if err != nil {
		return nil, err
	}
	ack := lease.ACK
	logger.WithField("ip", ack.YourIPAddr.String()).Info("Successfully obtained DHCP lease")

	if err := m.applyDHCPLease(ctx, interfaceName, ack); err != nil {
		return nil, fmt.Errorf("failed to apply DHCP lease: %w", err)
	}

	m.mu.Lock()
	m.current = lease
	m.mu.Unlock()

	info := leaseInfoFromACK(ack, m.now())
	return &info, nil
}

// RenewLease renews the lease last acquired on the interface and refreshes info in place.
func (m *LeaseManager) RenewLease(ctx context.Context, interfaceName string, info *types.LeaseInfo) error {
	logger := logging.WithComponentAndInterface("dhcp", interfaceName)

	m.mu.Lock()
	current := m.current
	m.mu.Unlock()
	if current == nil || !info.Valid() || !current.ACK.YourIPAddr.Equal(info.Address) {
		return ErrNoLease
	}

	renewed, err := m.dhcpClient.RenewLease(ctx, interfaceName, current, m.requestTimeout)
	if err != nil {
		return err
	}
	ack := renewed.ACK

	if !ack.YourIPAddr.Equal(info.Address) {
		logger.WithFields(map[string]interface{}{
			"old_ip": info.Address.String(),
			"new_ip": ack.YourIPAddr.String(),
		}).Warn("Server assigned a different address on renewal")
		if err := m.applyDHCPLease(ctx, interfaceName, ack); err != nil {
			return fmt.Errorf("failed to apply renewed lease: %w", err)
		}
	} else if err := m.refreshAddress(interfaceName, ack); err != nil {
		return fmt.Errorf("failed to refresh address lifetime: %w", err)
	}

	m.mu.Lock()
	m.current = renewed
	m.mu.Unlock()

	*info = leaseInfoFromACK(ack, m.now())
	logger.WithField("lease_time", info.LeaseDuration.String()).Info("Renewed DHCP lease")
	return nil
}

// leaseInfoFromACK extracts the lease parameters from a DHCP ACK.
func leaseInfoFromACK(ack *dhcpv4.DHCPv4, now time.Time) types.LeaseInfo {
	info := types.LeaseInfo{
		Address:       ack.YourIPAddr,
		SubnetMask:    subnetMask(ack),
		ServerAddress: ack.ServerIdentifier(),
		LeaseDuration: ack.IPAddressLeaseTime(defaultLeaseTime),
		AcquiredAt:    now,
	}
	if info.ServerAddress == nil && ack.ServerIPAddr != nil && !ack.ServerIPAddr.IsUnspecified() {
		info.ServerAddress = ack.ServerIPAddr
	}
	info.RenewalTime = ack.IPAddressRenewalTime(info.LeaseDuration / 2)

	if routers := ack.Router(); len(routers) > 0 {
		info.Gateway = routers[0]
	}
	dns := ack.DNS()
	if len(dns) > 0 {
		info.DNS1 = dns[0]
	}
	if len(dns) > 1 {
		info.DNS2 = dns[1]
	}
	return info
}

func subnetMask(ack *dhcpv4.DHCPv4) net.IPMask {
	if mask := ack.SubnetMask(); mask != nil {
		return mask
	}
	// Default to /24 if no subnet mask provided
	return net.IPv4Mask(255, 255, 255, 0)
}

// applyDHCPLease configures the network interface with the received DHCP lease using netlink
func (m *LeaseManager) applyDHCPLease(ctx context.Context, interfaceName string, ack *dhcpv4.DHCPv4) error {
	logger := logging.WithComponentAndInterface("dhcp", interfaceName)

	ipNet := &net.IPNet{
		IP:   ack.YourIPAddr,
		Mask: subnetMask(ack),
	}

	logger.WithField("ip", ipNet.String()).Info("Configuring interface with IP")

	link, err := m.networkMgr.GetLinkByName(interfaceName)
	if err != nil {
		return fmt.Errorf("failed to get netlink interface: %w", err)
	}

	existingAddrs, err := m.networkMgr.ListAddresses(link)
	if err != nil {
		return fmt.Errorf("failed to list existing addresses: %w", err)
	}

	targetConfigured := false
	for _, addr := range existingAddrs {
		if addr.IPNet.IP.Equal(ipNet.IP) && addr.IPNet.Mask.String() == ipNet.Mask.String() {
			logger.WithField("ip", ipNet.String()).Info("IP address already configured, skipping")
			targetConfigured = true
			break
		}
	}

	// Stale addresses from an earlier lease go before the new one is added
	if !targetConfigured {
		for _, addr := range existingAddrs {
			if !addr.IPNet.IP.Equal(ipNet.IP) {
				if err := m.networkMgr.DeleteAddress(link, &addr); err != nil {
					logger.WithError(err).WithField("address", addr.IPNet.String()).Warn("Failed to remove existing address")
				} else {
					logger.WithField("address", addr.IPNet.String()).Debug("Removed existing address")
				}
			}
		}
	}

	leaseTime := ack.IPAddressLeaseTime(defaultLeaseTime)
	logger.WithField("lease_time", leaseTime.String()).Debug("Lease time extracted")

	if targetConfigured {
		if err := m.refreshAddress(interfaceName, ack); err != nil {
			logger.WithError(err).Warn("Failed to refresh address lifetime")
		}
	} else {
		addr := &netlink.Addr{
			IPNet:       ipNet,
			ValidLft:    int(leaseTime.Seconds()),
			PreferedLft: int(leaseTime.Seconds()),
		}
		if err := m.networkMgr.AddAddress(link, addr); err != nil {
			return fmt.Errorf("failed to add IP address %s: %w", ipNet.String(), err)
		}
		logger.WithField("ip", ipNet.String()).Info("Successfully added IP address")
	}

	if routers := ack.Router(); len(routers) > 0 {
		gateway := routers[0]
		logger.WithField("gateway", gateway.String()).Info("Setting default gateway")

		if err := m.configureDefaultRoute(ctx, interfaceName, link, gateway); err != nil {
			return fmt.Errorf("failed to set default gateway: %w", err)
		}
	}

	if dnsServers := ack.DNS(); len(dnsServers) > 0 {
		var dnsStrings []string
		for _, dns := range dnsServers {
			dnsStrings = append(dnsStrings, dns.String())
		}
		logger.WithField("dns_servers", strings.Join(dnsStrings, ", ")).Info("DNS servers received")

		if err := m.configureDNS(ctx, interfaceName, dnsServers); err != nil {
			logger.WithError(err).Warn("Failed to configure DNS")
		}
	}

	return nil
}

// refreshAddress resets the kernel lifetimes of the leased address to the new lease time.
func (m *LeaseManager) refreshAddress(interfaceName string, ack *dhcpv4.DHCPv4) error {
	link, err := m.networkMgr.GetLinkByName(interfaceName)
	if err != nil {
		return fmt.Errorf("failed to get netlink interface: %w", err)
	}

	leaseTime := ack.IPAddressLeaseTime(defaultLeaseTime)
	addr := &netlink.Addr{
		IPNet:       &net.IPNet{IP: ack.YourIPAddr, Mask: subnetMask(ack)},
		ValidLft:    int(leaseTime.Seconds()),
		PreferedLft: int(leaseTime.Seconds()),
	}
	return m.networkMgr.ReplaceAddress(link, addr)
}

// configureDefaultRoute configures the default route using netlink
func (m *LeaseManager) configureDefaultRoute(ctx context.Context, interfaceName string, link netlink.Link, gateway net.IP) error {
	logger := logging.WithComponentAndInterface("dhcp", interfaceName).WithField("gateway", gateway.String())

	routes, err := m.networkMgr.ListRoutes()
	if err != nil {
		return fmt.Errorf("failed to list routes: %w", err)
	}

	isDefault := func(route netlink.Route) bool {
		return route.Dst == nil || route.Dst.String() == "0.0.0.0/0"
	}
	isTarget := func(route netlink.Route) bool {
		return isDefault(route) && route.Gw != nil && route.Gw.Equal(gateway) && route.LinkIndex == link.Attrs().Index
	}

	for _, route := range routes {
		if isTarget(route) {
			logger.Info("Default route already exists, skipping")
			return nil
		}
	}

	for _, route := range routes {
		if !isDefault(route) || route.LinkIndex != link.Attrs().Index {
			continue
		}
		if err := m.networkMgr.DeleteRoute(&route); err != nil {
			logger.WithError(err).Warn("Failed to remove existing default route")
		} else if route.Gw != nil {
			logger.WithField("old_gateway", route.Gw.String()).Debug("Removed existing default route")
		}
	}

	route := &netlink.Route{
		LinkIndex: link.Attrs().Index,
		Gw:        gateway,
	}
	if err := m.networkMgr.AddRoute(route); err != nil {
		return fmt.Errorf("failed to add default route: %w", err)
	}

	logger.Info("Successfully added default route")
	return nil
}

// configureDNS writes DNS servers to the configured resolv.conf
func (m *LeaseManager) configureDNS(ctx context.Context, interfaceName string, dnsServers []net.IP) error {
	logger := logging.WithComponentAndInterface("dhcp", interfaceName)

	if m.resolvConf == "" {
		return nil
	}

	newContent := "# Generated by golang-ethmonitor\n"
	for _, dns := range dnsServers {
		newContent += fmt.Sprintf("nameserver %s\n", dns.String())
	}

	if currentContent, err := m.fileMgr.ReadFile(m.resolvConf); err == nil {
		if string(currentContent) == newContent {
			logger.Debug("DNS configuration already up to date, skipping")
			return nil
		}
	}

	if err := m.fileMgr.WriteFile(m.resolvConf, []byte(newContent), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.resolvConf, err)
	}

	logger.WithField("path", m.resolvConf).Info("Updated resolv.conf with DNS servers")
	return nil
}
