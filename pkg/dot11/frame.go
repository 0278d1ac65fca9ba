package dot11

import (
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// HeaderLen is the length of a three-address data header.
const HeaderLen = 24

// serializeOptions leaves the FCS to the radio.
var serializeOptions = gopacket.SerializeOptions{
	FixLengths: true,
}

// NullFrame builds a to-DS null data frame from sa to the AP at bssid.
// With qos set, a QoS-null frame carrying TID 0 is built instead.
func NullFrame(bssid, sa MACAddr, qos bool) ([]byte, error) {
	typ := layers.Dot11TypeDataNull
	if qos {
		typ = layers.Dot11TypeDataQOSNull
	}

	hdr := &layers.Dot11{
		Type:     typ,
		Flags:    layers.Dot11FlagsToDS,
		Address1: bssid.HardwareAddr(),
		Address2: sa.HardwareAddr(),
		Address3: bssid.HardwareAddr(),
	}

	buf := gopacket.NewSerializeBuffer()
	if err := hdr.SerializeTo(buf, serializeOptions); err != nil {
		return nil, fmt.Errorf("serialize null frame: %w", err)
	}
	if qos {
		qc, err := buf.AppendBytes(2)
		if err != nil {
			return nil, fmt.Errorf("append qos control: %w", err)
		}
		qc[0], qc[1] = 0, 0
	}
	return buf.Bytes(), nil
}
