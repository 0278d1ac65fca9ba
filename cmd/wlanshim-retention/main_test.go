package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanshim/wlanshim-go/pkg/retention"
)

const stationTemplate = `
ssid: HomeNet
bssid: "02:00:00:00:00:aa"
security: psk
beacon_interval: 100
frequency: 2437
aid: 3
max_idle: 5
block_ack: [TXRX]
passphrase: password
keys:
  - index: 0
    tsc: 42
    material: 000102030405060708090a0b0c0d0e0f
ip:
  addr: 192.168.1.20
  netmask: 255.255.255.0
  gateway: 192.168.1.1
`

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "station.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestCreateWritesSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "retention.cbor")

	snap, err := create(writeTemplate(t, stationTemplate), out, now)
	require.NoError(t, err)
	assert.Equal(t, []byte("HomeNet"), snap.AP.SSID)

	loaded, err := retention.NewFileStore(out).Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.Recovered)
	assert.Equal(t, uint16(3), loaded.Station.AID)
	assert.True(t, loaded.HasPMK())
}

func TestCreateRejectsBadTemplate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "retention.cbor")

	_, err := create(writeTemplate(t, "ssid: HomeNet\nsecurity: wep\n"), out, now)
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no snapshot is written on error")
}

func TestPrintSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "retention.cbor")
	snap, err := create(writeTemplate(t, stationTemplate), out, now)
	require.NoError(t, err)

	var buf bytes.Buffer
	printSnapshot(&buf, snap, false)
	output := buf.String()

	for _, want := range []string{
		"Recovered:   true",
		`SSID:            "HomeNet"`,
		"BSSID:           02:00:00:00:00:aa",
		"Frequency:       2437 MHz",
		"AID:      3",
		"TID 0:    TXRX",
		"[0] pairwise tsc=42 material=<16 bytes>",
		"PMK: <32 bytes>",
		"Address: 192.168.1.20",
		"Gateway: 192.168.1.1",
	} {
		assert.Contains(t, output, want)
	}
	assert.NotContains(t, output, "000102030405060708090a0b0c0d0e0f")

	buf.Reset()
	printSnapshot(&buf, snap, true)
	assert.Contains(t, buf.String(), "material=000102030405060708090a0b0c0d0e0f")
}

func TestPrintSnapshotEmptySections(t *testing.T) {
	snap := &retention.Snapshot{Version: retention.FormatVersion}

	var buf bytes.Buffer
	printSnapshot(&buf, snap, false)
	output := buf.String()

	assert.Equal(t, 2, strings.Count(output, "(none)"))
	assert.NotContains(t, output, "PMK:")
	assert.NotContains(t, output, "Saved at:")
}
