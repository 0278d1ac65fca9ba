package radio

import (
	"fmt"
	"strings"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

// CommandKind identifies a radio command.
type CommandKind uint8

const (
	// CmdSet pushes one or more parameters.
	CmdSet CommandKind = iota
	// CmdStart starts the virtual interface.
	CmdStart
	// CmdStop stops the virtual interface.
	CmdStop
	// CmdStaCmd adds, removes or updates a peer in the radio's station table.
	CmdStaCmd
	// CmdScanStart begins a scan.
	CmdScanStart
	// CmdSetKey installs a key.
	CmdSetKey
	// CmdDisableKey removes a key.
	CmdDisableKey
)

// String returns the command kind name.
func (k CommandKind) String() string {
	switch k {
	case CmdSet:
		return "SET"
	case CmdStart:
		return "START"
	case CmdStop:
		return "STOP"
	case CmdStaCmd:
		return "STA_CMD"
	case CmdScanStart:
		return "SCAN_START"
	case CmdSetKey:
		return "SET_KEY"
	case CmdDisableKey:
		return "DISABLE_KEY"
	default:
		return "UNKNOWN"
	}
}

// ParamKind identifies a typed command parameter.
type ParamKind uint8

const (
	ParamBSSID ParamKind = iota
	ParamAID
	ParamShortBeaconInterval
	ParamChannel
	ParamKey
	ParamSta
	ParamMACAddr
)

// String returns the parameter kind name.
func (k ParamKind) String() string {
	switch k {
	case ParamBSSID:
		return "BSSID"
	case ParamAID:
		return "AID"
	case ParamShortBeaconInterval:
		return "SHORT_BCN_INTV"
	case ParamChannel:
		return "CHANNEL"
	case ParamKey:
		return "KEY"
	case ParamSta:
		return "STA"
	case ParamMACAddr:
		return "MACADDR"
	default:
		return "UNKNOWN"
	}
}

// Param is a typed command parameter.
type Param interface {
	Kind() ParamKind
	String() string
}

// Command is one message for the radio.
type Command struct {
	VIF    int
	Kind   CommandKind
	Params []Param
}

// NewCommand creates a command for vif with the given parameters.
func NewCommand(vif int, kind CommandKind, params ...Param) Command {
	return Command{VIF: vif, Kind: kind, Params: params}
}

// Param returns the first parameter of the given kind.
func (c Command) Param(kind ParamKind) (Param, bool) {
	for _, p := range c.Params {
		if p.Kind() == kind {
			return p, true
		}
	}
	return nil, false
}

// String returns a one-line description of the command.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Params))
	for _, p := range c.Params {
		parts = append(parts, p.Kind().String()+"="+p.String())
	}
	return fmt.Sprintf("vif%d %s [%s]", c.VIF, c.Kind, strings.Join(parts, " "))
}

// BSSIDParam carries the BSSID of the current BSS.
type BSSIDParam struct {
	BSSID dot11.MACAddr
}

func (BSSIDParam) Kind() ParamKind  { return ParamBSSID }
func (p BSSIDParam) String() string { return p.BSSID.String() }

// AIDParam carries the station's association ID.
type AIDParam struct {
	AID uint16
}

func (AIDParam) Kind() ParamKind  { return ParamAID }
func (p AIDParam) String() string { return fmt.Sprintf("%d", p.AID) }

// BeaconIntervalParam carries the beacon interval in TU.
type BeaconIntervalParam struct {
	Interval uint16
}

func (BeaconIntervalParam) Kind() ParamKind  { return ParamShortBeaconInterval }
func (p BeaconIntervalParam) String() string { return fmt.Sprintf("%d", p.Interval) }

// ChannelParam carries a centre frequency in MHz.
type ChannelParam struct {
	Frequency uint16
}

func (ChannelParam) Kind() ParamKind  { return ParamChannel }
func (p ChannelParam) String() string { return fmt.Sprintf("%dMHz", p.Frequency) }

// MACAddrParam carries the interface's own address.
type MACAddrParam struct {
	Addr dot11.MACAddr
}

func (MACAddrParam) Kind() ParamKind  { return ParamMACAddr }
func (p MACAddrParam) String() string { return p.Addr.String() }

// KeyParam describes a key for the radio's station-indexed key table.
type KeyParam struct {
	Cipher   dot11.Cipher
	Index    uint8
	Addr     dot11.MACAddr
	AID      uint16
	Pairwise bool
	Material []byte
}

func (KeyParam) Kind() ParamKind { return ParamKey }

// String omits the key material.
func (p KeyParam) String() string {
	scope := "group"
	if p.Pairwise {
		scope = "pairwise"
	}
	return fmt.Sprintf("%s/%d %s aid=%d %s len=%d", p.Cipher, p.Index, p.Addr, p.AID, scope, len(p.Material))
}

// StaCmd is the operation carried by a StaParam.
type StaCmd uint8

const (
	StaCmdAdd StaCmd = iota
	StaCmdRemove
	StaCmdState
)

// String returns the station command name.
func (c StaCmd) String() string {
	switch c {
	case StaCmdAdd:
		return "ADD"
	case StaCmdRemove:
		return "REMOVE"
	case StaCmdState:
		return "STATE"
	default:
		return "UNKNOWN"
	}
}

// StaParam describes a peer for the radio's station table.
type StaParam struct {
	Cmd   StaCmd
	Addr  dot11.MACAddr
	AID   uint16
	State station.State
}

func (StaParam) Kind() ParamKind { return ParamSta }

func (p StaParam) String() string {
	if p.Cmd == StaCmdState {
		return fmt.Sprintf("%s(%s) %s aid=%d", p.Cmd, p.State, p.Addr, p.AID)
	}
	return fmt.Sprintf("%s %s aid=%d", p.Cmd, p.Addr, p.AID)
}
