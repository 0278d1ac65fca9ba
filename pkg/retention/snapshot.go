package retention

import (
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/keystore"
	"github.com/wlanshim/wlanshim-go/pkg/netif"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

// FormatVersion is the current snapshot format version.
const FormatVersion = 1

const (
	// PMKLen is the length of the pairwise master key.
	PMKLen = 32

	// KeyLen is the length of a retained CCMP key.
	KeyLen = 16
)

var (
	ErrNoSnapshot         = errors.New("no retention snapshot")
	ErrInvalidSnapshot    = errors.New("invalid retention snapshot")
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrNotAssociated      = errors.New("interface not associated")
	ErrUnsupportedKeyMgmt = errors.New("key management cannot be retained")
	ErrPassphrase         = errors.New("passphrase must be 8-63 printable characters or 64 hex digits")
)

// Snapshot is the connection state retained across a deep sleep.
type Snapshot struct {
	// Version is the snapshot format version.
	Version int `cbor:"1,keyasint"`

	// Recovered is set while the snapshot may be replayed.
	Recovered bool `cbor:"2,keyasint"`

	AP      APInfo                     `cbor:"3,keyasint"`
	Channel ChannelInfo                `cbor:"4,keyasint"`
	Station StationInfo                `cbor:"5,keyasint"`
	TID     TIDInfo                    `cbor:"6,keyasint"`
	Keys    [keystore.NumSlots]KeyInfo `cbor:"7,keyasint"`
	IP      IPInfo                     `cbor:"8,keyasint"`

	// PMK is the pairwise master key; all zero means none.
	PMK [PMKLen]byte `cbor:"9,keyasint"`

	// SavedAt is when the snapshot was captured.
	SavedAt time.Time `cbor:"10,keyasint"`
}

// APInfo identifies the AP.
type APInfo struct {
	SSID           []byte         `cbor:"1,keyasint"`
	BSSID          dot11.MACAddr  `cbor:"2,keyasint"`
	Security       dot11.Security `cbor:"3,keyasint"`
	BeaconInterval uint16         `cbor:"4,keyasint"`
}

// ChannelInfo is the operating channel.
type ChannelInfo struct {
	Frequency uint16 `cbor:"1,keyasint"`
}

// StationInfo is the association state.
type StationInfo struct {
	AID uint16 `cbor:"1,keyasint"`

	// MaxIdle is the BSS max idle period in native units.
	MaxIdle uint16 `cbor:"2,keyasint"`
}

// TIDInfo is the block-ack state per traffic identifier.
type TIDInfo struct {
	BlockAck [station.NumTIDs]station.BlockAck `cbor:"1,keyasint"`
}

// KeyInfo is one retained CCMP key.
type KeyInfo struct {
	Enabled  bool         `cbor:"1,keyasint"`
	Pairwise bool         `cbor:"2,keyasint"`
	Index    uint8        `cbor:"3,keyasint"`
	TSC      uint64       `cbor:"4,keyasint"`
	Material [KeyLen]byte `cbor:"5,keyasint"`
}

// IPInfo is the last IPv4 configuration. All zero means none.
type IPInfo struct {
	Addr    [4]byte `cbor:"1,keyasint"`
	Netmask [4]byte `cbor:"2,keyasint"`
	Gateway [4]byte `cbor:"3,keyasint"`
}

// IsZero reports whether no address was retained.
func (ip IPInfo) IsZero() bool {
	return ip.Addr == [4]byte{}
}

// Netif converts the configuration for the IP stack.
func (ip IPInfo) Netif() netif.Info {
	return netif.Info{
		Addr:    netip.AddrFrom4(ip.Addr),
		Netmask: netip.AddrFrom4(ip.Netmask),
		Gateway: netip.AddrFrom4(ip.Gateway),
	}
}

// IPInfoFrom converts an IP stack configuration. Non-IPv4 fields are
// left zero.
func IPInfoFrom(info netif.Info) IPInfo {
	var ip IPInfo
	if info.Addr.Is4() {
		ip.Addr = info.Addr.As4()
	}
	if info.Netmask.Is4() {
		ip.Netmask = info.Netmask.As4()
	}
	if info.Gateway.Is4() {
		ip.Gateway = info.Gateway.As4()
	}
	return ip
}

// HasAPInfo reports whether the AP is identified by SSID and BSSID.
func (s *Snapshot) HasAPInfo() bool {
	return len(s.AP.SSID) > 0 && !s.AP.BSSID.IsZero()
}

// HasPMK reports whether a pairwise master key was retained.
func (s *Snapshot) HasPMK() bool {
	return s.PMK != [PMKLen]byte{}
}

// Validate checks the structural invariants of the snapshot.
func (s *Snapshot) Validate() error {
	if s.Version != FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	if len(s.AP.SSID) > dot11.MaxSSIDLen {
		return fmt.Errorf("%w: SSID longer than %d bytes", ErrInvalidSnapshot, dot11.MaxSSIDLen)
	}
	for i, k := range s.Keys {
		if !k.Enabled {
			continue
		}
		if int(k.Index) >= keystore.NumSlots {
			return fmt.Errorf("%w: key %d has index %d", ErrInvalidSnapshot, i, k.Index)
		}
		if k.Pairwise != (k.Index == 0) {
			return fmt.Errorf("%w: key %d pairwise flag does not match index %d", ErrInvalidSnapshot, i, k.Index)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.AP.SSID = append([]byte(nil), s.AP.SSID...)
	return &c
}
