package driver

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/keepalive"
	"github.com/wlanshim/wlanshim-go/pkg/keystore"
	"github.com/wlanshim/wlanshim-go/pkg/log"
	"github.com/wlanshim/wlanshim-go/pkg/metrics"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

var (
	ErrUnknownInterface   = errors.New("unknown interface")
	ErrDuplicateInterface = errors.New("interface already exists")
	ErrNoTransmitter      = errors.New("no frame transmitter")
	ErrNotAssociated      = errors.New("interface not associated")
)

// Role is the operating mode of an interface.
type Role uint8

const (
	// RoleSTA is a client interface.
	RoleSTA Role = iota
	// RoleAP is an access point interface.
	RoleAP
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleSTA:
		return "STA"
	case RoleAP:
		return "AP"
	default:
		return "UNKNOWN"
	}
}

// ParseRole parses "sta" or "ap" (case-insensitive).
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(s) {
	case "sta":
		return RoleSTA, true
	case "ap":
		return RoleAP, true
	default:
		return 0, false
	}
}

func (r Role) trace() log.Role {
	if r == RoleAP {
		return log.RoleAP
	}
	return log.RoleSTA
}

// DefaultMaxStations is the AP peer table size used when none is configured.
const DefaultMaxStations = 8

// MaxScanResults bounds the scan result list of an interface.
const MaxScanResults = 32

// Capability bits of a scan result.
const (
	CapESS     uint16 = 0x0001
	CapPrivacy uint16 = 0x0010
)

// Options configures a Driver.
type Options struct {
	// Clock drives keep-alive timers and last-tx stamps.
	// If nil, the wall clock is used.
	Clock keepalive.Clock

	// Tracer records the structured driver trace (optional).
	Tracer *log.Tracer

	// Metrics collects Prometheus metrics (optional).
	Metrics *metrics.Registry

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// InterfaceConfig configures one virtual interface.
type InterfaceConfig struct {
	// VIF is the virtual interface index on the radio.
	VIF int

	// Name is a human-readable interface name (e.g. "wlan0").
	Name string

	// Addr is the interface's own MAC address.
	Addr dot11.MACAddr

	// Role selects STA or AP operation.
	Role Role

	// MaxStations is the AP peer table size (AP role only).
	// Zero means DefaultMaxStations.
	MaxStations int
}

// BSS holds the identity and timing of the current BSS.
type BSS struct {
	BSSID          dot11.MACAddr
	SSID           []byte
	BeaconInterval uint16

	// MaxIdle is the AP's BSS max idle period in native units (1000 TU).
	MaxIdle uint16

	Authorized8021X bool

	// LastTx is when a frame was last sent to the AP.
	LastTx time.Time
}

// ConnectParams describes a completed live association (STA role).
type ConnectParams struct {
	BSSID          dot11.MACAddr
	SSID           []byte
	Frequency      uint16
	BeaconInterval uint16
	AID            uint16
	MaxIdle        uint16
	QoS            bool
	KeyMgmt        dot11.KeyMgmt
}

// AssocState is the association state restored without radio traffic.
type AssocState struct {
	BSSID          dot11.MACAddr
	SSID           []byte
	BeaconInterval uint16
	Frequency      uint16
	AID            uint16
	QoS            bool
	BlockAck       [station.NumTIDs]station.BlockAck
	MaxIdle        uint16
}

// ScanResult is one BSS found by a scan.
type ScanResult struct {
	BSSID          dot11.MACAddr
	SSID           []byte
	Frequency      uint16
	BeaconInterval uint16
	Caps           uint16
	Level          int
	IEs            []byte
}

// KeyStatus is a copy of one key slot.
type KeyStatus struct {
	Installed bool
	Cipher    dot11.Cipher
	Index     uint8
	Pairwise  bool
	TSC       uint64
	Material  []byte
}

// Status is a point-in-time copy of an interface's state.
type Status struct {
	VIF        int
	Name       string
	Role       Role
	Addr       dot11.MACAddr
	BSS        BSS
	Frequency  uint16
	KeyMgmt    dot11.KeyMgmt
	Associated bool

	// Self station (STA role).
	AID      uint16
	QoS      bool
	BlockAck [station.NumTIDs]station.BlockAck

	// Keys holds the pairwise key at index 0 (STA role) and the group
	// keys at indexes 1-3.
	Keys [keystore.NumSlots]KeyStatus

	// Stations is the number of AP-role peer records.
	Stations int

	KeepAliveArmed bool
	KeepAliveDelay time.Duration
}
