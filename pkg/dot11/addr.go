package dot11

import (
	"fmt"
	"net"
)

// MACAddr is a 48-bit IEEE 802 address.
type MACAddr [6]byte

// BroadcastAddr is the all-ones group address.
var BroadcastAddr = MACAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// ParseMAC parses a colon or dash separated 6-byte address.
func ParseMAC(s string) (MACAddr, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return MACAddr{}, err
	}
	if len(hw) != 6 {
		return MACAddr{}, fmt.Errorf("invalid MAC length %d: %s", len(hw), s)
	}
	var a MACAddr
	copy(a[:], hw)
	return a, nil
}

// String returns the address in aa:bb:cc:dd:ee:ff form.
func (a MACAddr) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[0], a[1], a[2], a[3], a[4], a[5])
}

// IsZero reports whether every octet is zero.
func (a MACAddr) IsZero() bool {
	return a == MACAddr{}
}

// IsBroadcast reports whether a is ff:ff:ff:ff:ff:ff.
func (a MACAddr) IsBroadcast() bool {
	return a == BroadcastAddr
}

// IsMulticast reports whether the group bit is set. Broadcast is multicast.
func (a MACAddr) IsMulticast() bool {
	return a[0]&0x01 != 0
}

// HardwareAddr returns a copy as a net.HardwareAddr.
func (a MACAddr) HardwareAddr() net.HardwareAddr {
	hw := make(net.HardwareAddr, 6)
	copy(hw, a[:])
	return hw
}

// MarshalText implements encoding.TextMarshaler.
func (a MACAddr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *MACAddr) UnmarshalText(text []byte) error {
	parsed, err := ParseMAC(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
