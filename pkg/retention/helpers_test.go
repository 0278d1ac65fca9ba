package retention

import (
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

var (
	epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	bssid = dot11.MACAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0xaa}
)

// testSnapshot returns a recovered WPA2 snapshot with one pairwise and one
// group key and a static IPv4 configuration.
func testSnapshot() *Snapshot {
	s := &Snapshot{
		Version:   FormatVersion,
		Recovered: true,
		AP: APInfo{
			SSID:           []byte("HomeNet"),
			BSSID:          bssid,
			Security:       dot11.SecurityPSK,
			BeaconInterval: 100,
		},
		Channel: ChannelInfo{Frequency: 2437},
		Station: StationInfo{AID: 3, MaxIdle: 5},
		IP: IPInfo{
			Addr:    [4]byte{192, 168, 1, 20},
			Netmask: [4]byte{255, 255, 255, 0},
			Gateway: [4]byte{192, 168, 1, 1},
		},
		SavedAt: epoch,
	}
	s.TID.BlockAck[0] = station.BlockAckTXRX
	s.TID.BlockAck[5] = station.BlockAckRX
	s.Keys[0] = KeyInfo{Enabled: true, Pairwise: true, Index: 0, TSC: 42}
	s.Keys[1] = KeyInfo{Enabled: true, Index: 1, TSC: 7}
	for i := range s.Keys[0].Material {
		s.Keys[0].Material[i] = byte(i)
		s.Keys[1].Material[i] = byte(0xf0 + i)
	}
	for i := range s.PMK {
		s.PMK[i] = byte(i + 1)
	}
	return s
}
