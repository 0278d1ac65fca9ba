package netif

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
)

func TestTableIPInfo(t *testing.T) {
	tbl := NewTable()
	info := Info{
		Addr:    netip.MustParseAddr("192.168.4.20"),
		Netmask: netip.MustParseAddr("255.255.255.0"),
		Gateway: netip.MustParseAddr("192.168.4.1"),
	}

	require.NoError(t, tbl.SetIPInfo(0, info))
	got, ok := tbl.IPInfo(0)
	require.True(t, ok)
	assert.Equal(t, info, got)

	require.NoError(t, tbl.SetDNS(0))
	assert.Equal(t, []netip.Addr{info.Gateway}, tbl.DNS(0))
}

func TestTableRejectsInvalid(t *testing.T) {
	tbl := NewTable()
	assert.ErrorIs(t, tbl.SetIPInfo(0, Info{}), ErrInvalidAddr)
	assert.ErrorIs(t, tbl.SetDNS(0), ErrNoGateway)
	assert.ErrorIs(t, tbl.AddStaticARP(netip.IPv4Unspecified(), dot11.MACAddr{}), ErrInvalidAddr)
}

func TestTableStateAndARP(t *testing.T) {
	tbl := NewTable()
	assert.Equal(t, StateIdle, tbl.State(1))
	tbl.SetState(1, StateGotIP)
	assert.Equal(t, StateGotIP, tbl.State(1))
	assert.Equal(t, "GOT_IP", tbl.State(1).String())

	gw := netip.MustParseAddr("10.0.0.1")
	hw := dot11.MACAddr{0x02, 1, 2, 3, 4, 5}
	require.NoError(t, tbl.AddStaticARP(gw, hw))
	got, ok := tbl.Neighbor(gw)
	require.True(t, ok)
	assert.Equal(t, hw, got)
}
