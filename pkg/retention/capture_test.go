package retention

import (
	"encoding/hex"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/driver"
	"github.com/wlanshim/wlanshim-go/pkg/netif"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

func testStatus() driver.Status {
	st := driver.Status{
		VIF:        0,
		Name:       "wlan0",
		Role:       driver.RoleSTA,
		Associated: true,
		KeyMgmt:    dot11.KeyMgmtPSK,
		BSS: driver.BSS{
			BSSID:          bssid,
			SSID:           []byte("HomeNet"),
			BeaconInterval: 100,
			MaxIdle:        5,
		},
		Frequency: 2437,
		AID:       3,
	}
	st.BlockAck[2] = station.BlockAckTX

	ptk := make([]byte, 16)
	gtk := make([]byte, 16)
	for i := range ptk {
		ptk[i] = byte(i)
		gtk[i] = byte(0x80 + i)
	}
	st.Keys[0] = driver.KeyStatus{Installed: true, Cipher: dot11.CipherCCMP, Index: 0, Pairwise: true, TSC: 42, Material: ptk}
	st.Keys[1] = driver.KeyStatus{Installed: true, Cipher: dot11.CipherCCMP, Index: 1, TSC: 7, Material: gtk}
	st.Keys[2] = driver.KeyStatus{Installed: true, Cipher: dot11.CipherTKIP, Index: 2, Material: make([]byte, 32)}
	st.Keys[3] = driver.KeyStatus{Cipher: dot11.CipherCCMP, Index: 3, Material: gtk}
	return st
}

func TestCapture(t *testing.T) {
	ip := netif.Info{
		Addr:    netip.MustParseAddr("192.168.1.20"),
		Netmask: netip.MustParseAddr("255.255.255.0"),
		Gateway: netip.MustParseAddr("192.168.1.1"),
	}
	var pmk [PMKLen]byte
	pmk[0] = 0xaa

	s, err := Capture(testStatus(), ip, pmk, epoch)
	require.NoError(t, err)

	assert.Equal(t, FormatVersion, s.Version)
	assert.True(t, s.Recovered)
	assert.Equal(t, []byte("HomeNet"), s.AP.SSID)
	assert.Equal(t, bssid, s.AP.BSSID)
	assert.Equal(t, dot11.SecurityPSK, s.AP.Security)
	assert.Equal(t, uint16(100), s.AP.BeaconInterval)
	assert.Equal(t, uint16(2437), s.Channel.Frequency)
	assert.Equal(t, StationInfo{AID: 3, MaxIdle: 5}, s.Station)
	assert.Equal(t, station.BlockAckTX, s.TID.BlockAck[2])
	assert.Equal(t, [4]byte{192, 168, 1, 1}, s.IP.Gateway)
	assert.Equal(t, pmk, s.PMK)
	assert.Equal(t, epoch, s.SavedAt)

	assert.True(t, s.Keys[0].Enabled)
	assert.True(t, s.Keys[0].Pairwise)
	assert.Equal(t, uint64(42), s.Keys[0].TSC)
	assert.Equal(t, byte(15), s.Keys[0].Material[15])

	assert.True(t, s.Keys[1].Enabled)
	assert.False(t, s.Keys[1].Pairwise)
	assert.Equal(t, uint8(1), s.Keys[1].Index)

	assert.False(t, s.Keys[2].Enabled, "TKIP keys are not retained")
	assert.False(t, s.Keys[3].Enabled, "uninstalled keys are not retained")
}

func TestCaptureRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*driver.Status)
		wantErr error
	}{
		{"not associated", func(st *driver.Status) { st.Associated = false }, ErrNotAssociated},
		{"AP role", func(st *driver.Status) { st.Role = driver.RoleAP }, ErrNotAssociated},
		{"802.1X", func(st *driver.Status) { st.KeyMgmt = dot11.KeyMgmt8021X }, ErrUnsupportedKeyMgmt},
		{"SSID too long", func(st *driver.Status) { st.BSS.SSID = make([]byte, 40) }, ErrInvalidSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := testStatus()
			tt.mutate(&st)
			_, err := Capture(st, netif.Info{}, [PMKLen]byte{}, epoch)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCaptureOpenNetwork(t *testing.T) {
	st := testStatus()
	st.KeyMgmt = dot11.KeyMgmtNone
	st.Keys = [4]driver.KeyStatus{}

	s, err := Capture(st, netif.Info{}, [PMKLen]byte{}, epoch)
	require.NoError(t, err)
	assert.Equal(t, dot11.SecurityOpen, s.AP.Security)
	assert.True(t, s.IP.IsZero())
	assert.False(t, s.HasPMK())
}

func TestDerivePMK(t *testing.T) {
	t.Run("IEEE 802.11i test vector", func(t *testing.T) {
		pmk, err := DerivePMK("password", []byte("IEEE"))
		require.NoError(t, err)
		assert.Equal(t, "f42c6fc52df0ebef9ebb4b90b38a5f902e83fe1b135a70e23aed762e9710a12e", hex.EncodeToString(pmk[:]))
	})

	t.Run("raw hex PMK", func(t *testing.T) {
		raw := "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
		pmk, err := DerivePMK(raw, []byte("ignored"))
		require.NoError(t, err)
		assert.Equal(t, byte(0x1f), pmk[31])
	})

	for _, bad := range []string{"short", string(make([]byte, 64)), "not-hex-zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", "tab\tinside"} {
		_, err := DerivePMK(bad, []byte("IEEE"))
		assert.ErrorIs(t, err, ErrPassphrase, "passphrase %q", bad)
	}

	_, err := DerivePMK("password", nil)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}
