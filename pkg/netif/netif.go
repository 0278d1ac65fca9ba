// Package netif defines the boundary to the IP stack bound to a wireless
// interface.
package netif

import (
	"errors"
	"net/netip"
	"sync"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
)

// State is the IP acquisition state of an interface.
type State uint8

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateGotIP
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateGotIP:
		return "GOT_IP"
	default:
		return "UNKNOWN"
	}
}

// Info is an IPv4 configuration.
type Info struct {
	Addr    netip.Addr
	Netmask netip.Addr
	Gateway netip.Addr
}

// Stack is the IP stack collaborator.
type Stack interface {
	// SetIPInfo installs the address configuration of vif.
	SetIPInfo(vif int, info Info) error
	// SetDNS installs the DNS server list of vif, derived from its gateway.
	SetDNS(vif int) error
	// SetState records the IP acquisition state of vif.
	SetState(vif int, s State)
	// AddStaticARP adds a permanent neighbour entry.
	AddStaticARP(ip netip.Addr, hw dot11.MACAddr) error
}

var (
	ErrInvalidAddr = errors.New("invalid IPv4 address")
	ErrNoGateway   = errors.New("no gateway configured")
)

// Table is an in-memory Stack. It is safe for concurrent use.
type Table struct {
	mu    sync.Mutex
	info  map[int]Info
	dns   map[int][]netip.Addr
	state map[int]State
	arp   map[netip.Addr]dot11.MACAddr
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{
		info:  make(map[int]Info),
		dns:   make(map[int][]netip.Addr),
		state: make(map[int]State),
		arp:   make(map[netip.Addr]dot11.MACAddr),
	}
}

// SetIPInfo implements Stack.
func (t *Table) SetIPInfo(vif int, info Info) error {
	if !info.Addr.Is4() {
		return ErrInvalidAddr
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.info[vif] = info
	return nil
}

// SetDNS implements Stack. The gateway doubles as the DNS server.
func (t *Table) SetDNS(vif int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	info, ok := t.info[vif]
	if !ok || !info.Gateway.IsValid() || info.Gateway.IsUnspecified() {
		return ErrNoGateway
	}
	t.dns[vif] = []netip.Addr{info.Gateway}
	return nil
}

// SetState implements Stack.
func (t *Table) SetState(vif int, s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state[vif] = s
}

// AddStaticARP implements Stack.
func (t *Table) AddStaticARP(ip netip.Addr, hw dot11.MACAddr) error {
	if !ip.Is4() || ip.IsUnspecified() {
		return ErrInvalidAddr
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arp[ip] = hw
	return nil
}

// IPInfo returns the configuration of vif.
func (t *Table) IPInfo(vif int) (Info, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	info, ok := t.info[vif]
	return info, ok
}

// DNS returns the DNS servers of vif.
func (t *Table) DNS(vif int) []netip.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]netip.Addr(nil), t.dns[vif]...)
}

// State returns the IP acquisition state of vif.
func (t *Table) State(vif int) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state[vif]
}

// Neighbor returns the static ARP entry for ip.
func (t *Table) Neighbor(ip netip.Addr) (dot11.MACAddr, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	hw, ok := t.arp[ip]
	return hw, ok
}

// Compile-time interface satisfaction check.
var _ Stack = (*Table)(nil)
