package retention

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/driver"
	"github.com/wlanshim/wlanshim-go/pkg/netif"
)

// PBKDF2 parameters of the WPA2 passphrase-to-PMK mapping.
const (
	pmkIterations = 4096
	minPassphrase = 8
	maxPassphrase = 63
)

// Capture builds the pre-sleep snapshot of an associated STA interface.
// Only installed 16-byte CCMP keys are retained.
func Capture(st driver.Status, ip netif.Info, pmk [PMKLen]byte, now time.Time) (*Snapshot, error) {
	if st.Role != driver.RoleSTA || !st.Associated {
		return nil, fmt.Errorf("capture vif %d: %w", st.VIF, ErrNotAssociated)
	}
	sec, err := securityFor(st.KeyMgmt)
	if err != nil {
		return nil, fmt.Errorf("capture vif %d: %w", st.VIF, err)
	}

	s := &Snapshot{
		Version:   FormatVersion,
		Recovered: true,
		AP: APInfo{
			SSID:           append([]byte(nil), st.BSS.SSID...),
			BSSID:          st.BSS.BSSID,
			Security:       sec,
			BeaconInterval: st.BSS.BeaconInterval,
		},
		Channel: ChannelInfo{Frequency: st.Frequency},
		Station: StationInfo{AID: st.AID, MaxIdle: st.BSS.MaxIdle},
		TID:     TIDInfo{BlockAck: st.BlockAck},
		IP:      IPInfoFrom(ip),
		PMK:     pmk,
		SavedAt: now,
	}

	for i, k := range st.Keys {
		if !k.Installed || k.Cipher != dot11.CipherCCMP || len(k.Material) != KeyLen {
			continue
		}
		ki := KeyInfo{
			Enabled:  true,
			Pairwise: k.Index == 0,
			Index:    k.Index,
			TSC:      k.TSC,
		}
		copy(ki.Material[:], k.Material)
		s.Keys[i] = ki
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func securityFor(km dot11.KeyMgmt) (dot11.Security, error) {
	switch km {
	case dot11.KeyMgmtNone:
		return dot11.SecurityOpen, nil
	case dot11.KeyMgmtPSK:
		return dot11.SecurityPSK, nil
	case dot11.KeyMgmtSAE:
		return dot11.SecuritySAE, nil
	case dot11.KeyMgmtOWE:
		return dot11.SecurityOWE, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedKeyMgmt, km)
	}
}

// DerivePMK maps a WPA2 passphrase and SSID to the pairwise master key.
// A 64-digit hex string is taken as the PMK itself.
func DerivePMK(passphrase string, ssid []byte) ([PMKLen]byte, error) {
	var pmk [PMKLen]byte

	if len(passphrase) == 2*PMKLen {
		if raw, err := hex.DecodeString(passphrase); err == nil {
			copy(pmk[:], raw)
			return pmk, nil
		}
	}
	if len(passphrase) < minPassphrase || len(passphrase) > maxPassphrase {
		return pmk, ErrPassphrase
	}
	for i := 0; i < len(passphrase); i++ {
		if passphrase[i] < 0x20 || passphrase[i] > 0x7e {
			return pmk, ErrPassphrase
		}
	}
	if len(ssid) == 0 || len(ssid) > dot11.MaxSSIDLen {
		return pmk, fmt.Errorf("%w: SSID must be 1-%d bytes", ErrInvalidSnapshot, dot11.MaxSSIDLen)
	}

	copy(pmk[:], pbkdf2.Key([]byte(passphrase), ssid, pmkIterations, PMKLen, sha1.New))
	return pmk, nil
}
