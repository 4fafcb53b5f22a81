package network

import (
	"fmt"

	"golang-ethmonitor/internal/port"
	"golang-ethmonitor/internal/types"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// LinkAdapter implements the LinkProber and LinkController ports on top of a NetworkManager.
type LinkAdapter struct {
	networkMgr port.NetworkManager
}

var (
	_ port.LinkProber     = (*LinkAdapter)(nil)
	_ port.LinkController = (*LinkAdapter)(nil)
)

// NewLinkAdapter creates a link adapter using the given network manager.
func NewLinkAdapter(networkMgr port.NetworkManager) *LinkAdapter {
	return &LinkAdapter{networkMgr: networkMgr}
}

// Carrier samples the carrier of the interface. The link is up when the
// kernel reports IFF_LOWER_UP or an operational state of up.
func (l *LinkAdapter) Carrier(interfaceName string) (types.LinkState, error) {
	link, err := l.networkMgr.GetLinkByName(interfaceName)
	if err != nil {
		return types.LinkDown, fmt.Errorf("failed to query carrier: %w", err)
	}
	return carrierState(link.Attrs()), nil
}

func carrierState(attrs *netlink.LinkAttrs) types.LinkState {
	if attrs.RawFlags&unix.IFF_LOWER_UP != 0 || attrs.OperState == netlink.OperUp {
		return types.LinkUp
	}
	return types.LinkDown
}

// BringUp sets the interface administratively up.
func (l *LinkAdapter) BringUp(interfaceName string) error {
	link, err := l.networkMgr.GetLinkByName(interfaceName)
	if err != nil {
		return err
	}
	return l.networkMgr.SetLinkUp(link)
}

// BringDown sets the interface administratively down.
func (l *LinkAdapter) BringDown(interfaceName string) error {
	link, err := l.networkMgr.GetLinkByName(interfaceName)
	if err != nil {
		return err
	}
	return l.networkMgr.SetLinkDown(link)
}
