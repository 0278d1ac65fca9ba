package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/driver"
)

const sampleConfig = `
interfaces:
  - name: wlan0
    vif: 0
    role: sta
    address: "02:00:00:00:00:10"
  - vif: 1
    role: ap
retention:
  path: /var/lib/wlanshim/snapshot.cbor
log:
  level: debug
  format: json
  trace: /var/log/wlanshim/driver.wtrace
metrics:
  listen: ":9100"
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	require.Len(t, c.Interfaces, 2)
	assert.Equal(t, "wlan0", c.Interfaces[0].Name)
	assert.Equal(t, dot11.MACAddr{0x02, 0, 0, 0, 0, 0x10}, c.Interfaces[0].Address)
	assert.Equal(t, 0, c.Interfaces[0].MaxStations)

	assert.Equal(t, "wlan1", c.Interfaces[1].Name)
	assert.Equal(t, dot11.MACAddr{0x02, 0, 0, 0, 0, 0x02}, c.Interfaces[1].Address)
	assert.Equal(t, driver.DefaultMaxStations, c.Interfaces[1].MaxStations)

	assert.Equal(t, "/var/lib/wlanshim/snapshot.cbor", c.Retention.Path)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, "/var/log/wlanshim/driver.wtrace", c.Log.Trace)
	assert.Equal(t, ":9100", c.Metrics.Listen)
}

func TestDefault(t *testing.T) {
	c := Default()
	require.Len(t, c.Interfaces, 1)
	assert.Equal(t, InterfaceConfig{Name: "wlan0", Role: "sta", Address: DefaultAddress}, c.Interfaces[0])
	assert.Equal(t, DefaultRetentionPath, c.Retention.Path)
	assert.Equal(t, DefaultLogLevel, c.Log.Level)
	assert.Equal(t, DefaultLogFormat, c.Log.Format)
	assert.Empty(t, c.Metrics.Listen)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate vif", "interfaces: [{vif: 1}, {vif: 1}]"},
		{"negative vif", "interfaces: [{vif: -1}]"},
		{"unknown role", "interfaces: [{role: mesh}]"},
		{"multicast address", "interfaces:\n  - address: \"01:00:5e:00:00:01\"\n"},
		{"negative max stations", "interfaces: [{role: ap, max_stations: -2}]"},
		{"unknown level", "log: {level: verbose}"},
		{"unknown format", "log: {format: xml}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("interfaces: [unterminated"))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "failed to parse YAML", le.Message)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wlanshim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Interfaces, 2)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log: {format: xml}"), 0644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), bad+": "), err.Error())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDriverInterfaces(t *testing.T) {
	c, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	ifaces := c.DriverInterfaces()
	require.Len(t, ifaces, 2)
	assert.Equal(t, driver.InterfaceConfig{
		VIF:  0,
		Name: "wlan0",
		Addr: dot11.MACAddr{0x02, 0, 0, 0, 0, 0x10},
		Role: driver.RoleSTA,
	}, ifaces[0])
	assert.Equal(t, driver.RoleAP, ifaces[1].Role)
	assert.Equal(t, driver.DefaultMaxStations, ifaces[1].MaxStations)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "vif", 0)
	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"kept"`)

	buf.Reset()
	logger, err = LogConfig{Level: "debug", Format: "text"}.NewLogger(&buf)
	require.NoError(t, err)
	logger.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	_, err = LogConfig{Level: "loud"}.NewLogger(&buf)
	assert.Error(t, err)
}
