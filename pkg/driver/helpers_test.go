package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wlanshim/wlanshim-go/internal/fakeclock"
	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/metrics"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
)

var (
	epoch   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ownAddr = dot11.MACAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	apAddr  = dot11.MACAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0xaa}
	peerA   = dot11.MACAddr{0x02, 0x00, 0x00, 0x00, 0x01, 0x0a}
	peerB   = dot11.MACAddr{0x02, 0x00, 0x00, 0x00, 0x01, 0x0b}
	peerC   = dot11.MACAddr{0x02, 0x00, 0x00, 0x00, 0x01, 0x0c}
)

type harness struct {
	drv     *Driver
	iface   *Interface
	radio   *radio.Recorder
	events  *event.Recorder
	clock   *fakeclock.Clock
	metrics *metrics.Registry
}

func newHarness(t *testing.T, role Role, maxStations int) *harness {
	t.Helper()

	h := &harness{
		radio:   radio.NewRecorder(),
		events:  event.NewRecorder(),
		clock:   fakeclock.New(epoch),
		metrics: metrics.NewRegistry(),
	}
	h.drv = New(h.radio, h.radio, h.events, h.events, Options{
		Clock:   h.clock,
		Metrics: h.metrics,
	})

	iface, err := h.drv.AddInterface(InterfaceConfig{
		VIF:         0,
		Name:        "wlan0",
		Addr:        ownAddr,
		Role:        role,
		MaxStations: maxStations,
	})
	require.NoError(t, err)
	h.iface = iface

	// Drop the bring-up commands so tests only see their own.
	h.radio.Reset()
	return h
}

// staParams returns the StaParam of every STA_CMD command.
func staParams(cmds []radio.Command) []radio.StaParam {
	var out []radio.StaParam
	for _, c := range cmds {
		if c.Kind != radio.CmdStaCmd {
			continue
		}
		if p, ok := c.Param(radio.ParamSta); ok {
			out = append(out, p.(radio.StaParam))
		}
	}
	return out
}

// keyParam returns the KeyParam of a SET_KEY or DISABLE_KEY command.
func keyParam(t *testing.T, c radio.Command) radio.KeyParam {
	t.Helper()
	p, ok := c.Param(radio.ParamKey)
	require.True(t, ok, "command %s has no key parameter", c)
	return p.(radio.KeyParam)
}

func addrPtr(a dot11.MACAddr) *dot11.MACAddr {
	return &a
}
