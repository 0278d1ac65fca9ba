package retention

import (
	"encoding/hex"
	"fmt"
	"net/netip"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/keystore"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

// Template is the YAML description of a snapshot, used by operators to
// craft snapshots for bench testing.
type Template struct {
	SSID           string        `yaml:"ssid"`
	BSSID          dot11.MACAddr `yaml:"bssid"`
	Security       string        `yaml:"security"`
	BeaconInterval uint16        `yaml:"beacon_interval"`
	Frequency      uint16        `yaml:"frequency"`
	AID            uint16        `yaml:"aid"`
	MaxIdle        uint16        `yaml:"max_idle"`
	BlockAck       []string      `yaml:"block_ack"`

	// Passphrase or PMK (64 hex digits) yields the retained PMK.
	Passphrase string `yaml:"passphrase"`

	Keys []KeyTemplate `yaml:"keys"`
	IP   *IPTemplate   `yaml:"ip"`

	// Recovered defaults to true.
	Recovered *bool `yaml:"recovered"`
}

// KeyTemplate describes one retained key.
type KeyTemplate struct {
	Index    uint8  `yaml:"index"`
	TSC      uint64 `yaml:"tsc"`
	Material string `yaml:"material"`
}

// IPTemplate describes the retained IPv4 configuration.
type IPTemplate struct {
	Addr    string `yaml:"addr"`
	Netmask string `yaml:"netmask"`
	Gateway string `yaml:"gateway"`
}

// LoadTemplate reads a template from a YAML file.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return ParseTemplate(data)
}

// ParseTemplate parses a YAML template.
func ParseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &t, nil
}

// Snapshot builds the snapshot described by t.
func (t *Template) Snapshot(now time.Time) (*Snapshot, error) {
	sec := dot11.SecurityOpen
	if t.Security != "" {
		var ok bool
		if sec, ok = dot11.ParseSecurity(t.Security); !ok {
			return nil, fmt.Errorf("unknown security %q", t.Security)
		}
	}

	s := &Snapshot{
		Version:   FormatVersion,
		Recovered: t.Recovered == nil || *t.Recovered,
		AP: APInfo{
			SSID:           []byte(t.SSID),
			BSSID:          t.BSSID,
			Security:       sec,
			BeaconInterval: t.BeaconInterval,
		},
		Channel: ChannelInfo{Frequency: t.Frequency},
		Station: StationInfo{AID: t.AID, MaxIdle: t.MaxIdle},
		SavedAt: now,
	}

	if len(t.BlockAck) > station.NumTIDs {
		return nil, fmt.Errorf("block_ack lists %d TIDs, at most %d", len(t.BlockAck), station.NumTIDs)
	}
	for tid, name := range t.BlockAck {
		ba, ok := parseBlockAck(name)
		if !ok {
			return nil, fmt.Errorf("block_ack[%d]: unknown state %q", tid, name)
		}
		s.TID.BlockAck[tid] = ba
	}

	if t.Passphrase != "" {
		pmk, err := DerivePMK(t.Passphrase, s.AP.SSID)
		if err != nil {
			return nil, err
		}
		s.PMK = pmk
	}

	for _, k := range t.Keys {
		if int(k.Index) >= keystore.NumSlots {
			return nil, fmt.Errorf("key index %d out of range", k.Index)
		}
		material, err := hex.DecodeString(k.Material)
		if err != nil || len(material) != KeyLen {
			return nil, fmt.Errorf("key %d: material must be %d hex bytes", k.Index, KeyLen)
		}
		ki := KeyInfo{Enabled: true, Pairwise: k.Index == 0, Index: k.Index, TSC: k.TSC}
		copy(ki.Material[:], material)
		s.Keys[k.Index] = ki
	}

	if t.IP != nil {
		ip, err := t.IP.info()
		if err != nil {
			return nil, err
		}
		s.IP = ip
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (t *IPTemplate) info() (IPInfo, error) {
	var ip IPInfo
	for _, f := range []struct {
		name string
		in   string
		out  *[4]byte
	}{
		{"addr", t.Addr, &ip.Addr},
		{"netmask", t.Netmask, &ip.Netmask},
		{"gateway", t.Gateway, &ip.Gateway},
	} {
		if f.in == "" {
			continue
		}
		a, err := netip.ParseAddr(f.in)
		if err != nil || !a.Is4() {
			return IPInfo{}, fmt.Errorf("ip.%s: %q is not an IPv4 address", f.name, f.in)
		}
		*f.out = a.As4()
	}
	return ip, nil
}

func parseBlockAck(s string) (station.BlockAck, bool) {
	for _, ba := range []station.BlockAck{
		station.BlockAckInvalid,
		station.BlockAckTX,
		station.BlockAckRX,
		station.BlockAckTXRX,
	} {
		if ba.String() == s {
			return ba, true
		}
	}
	return 0, false
}
