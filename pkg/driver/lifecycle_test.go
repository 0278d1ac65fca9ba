package driver

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/keystore"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

func TestAssociateUnknownPeerAuthenticatesFirst(t *testing.T) {
	h := newHarness(t, RoleAP, 4)

	require.True(t, h.iface.Associate(peerA, 5))

	assert.Equal(t, []radio.StaParam{
		{Cmd: radio.StaCmdState, Addr: peerA, AID: 0, State: station.StateAuth},
		{Cmd: radio.StaCmdAdd, Addr: peerA, AID: 5},
		{Cmd: radio.StaCmdState, Addr: peerA, AID: 5, State: station.StateAssoc},
	}, staParams(h.radio.Commands()))

	state, ok := h.iface.StationState(peerA)
	require.True(t, ok)
	assert.Equal(t, station.StateAssoc, state)

	sta, ok := h.iface.Station(peerA)
	require.True(t, ok)
	assert.Equal(t, uint16(5), sta.AID)
	assert.Empty(t, h.events.Events(), "implicit AUTH of a new peer emits nothing")
}

func TestTransitionToSameStateIsNoop(t *testing.T) {
	h := newHarness(t, RoleAP, 4)

	require.True(t, h.iface.Associate(peerA, 3))
	first := len(h.radio.Commands())

	assert.False(t, h.iface.Associate(peerA, 3))
	assert.Len(t, h.radio.Commands(), first, "no additional command sequence")
}

func TestReauthenticationDeauthsFirst(t *testing.T) {
	h := newHarness(t, RoleAP, 4)

	require.True(t, h.iface.Associate(peerA, 3))
	h.radio.Reset()

	require.True(t, h.iface.Authenticate(peerA))

	evs := h.events.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, event.KindDeauth, evs[0].Kind)
	assert.Equal(t, peerA, evs[0].Deauth.Addr)
	assert.True(t, evs[0].Deauth.LocallyGenerated)
	assert.Equal(t, event.ReasonDeauthLeaving, evs[0].Deauth.Reason)

	sta, ok := h.iface.Station(peerA)
	require.True(t, ok)
	assert.Equal(t, station.StateAuth, sta.State)
	assert.Zero(t, sta.AID, "the record is recreated")
}

func TestRemoveStation(t *testing.T) {
	h := newHarness(t, RoleAP, 4)

	require.True(t, h.iface.Associate(peerA, 7))
	h.radio.Reset()

	require.True(t, h.iface.RemoveStation(peerA))
	assert.Equal(t, []radio.StaParam{
		{Cmd: radio.StaCmdRemove, Addr: peerA, AID: 7},
	}, staParams(h.radio.Commands()), "no generic state command for NOTEXIST")

	_, ok := h.iface.StationState(peerA)
	assert.False(t, ok)

	h.radio.Reset()
	assert.False(t, h.iface.RemoveStation(peerA))
	assert.Empty(t, h.radio.Commands())
}

func TestRemoveStationDisablesInstalledKey(t *testing.T) {
	h := newHarness(t, RoleAP, 4)

	require.True(t, h.iface.Associate(peerA, 2))
	require.True(t, h.iface.SetKey(keystore.AlgCCMP, addrPtr(peerA), 0, make([]byte, 16), nil))
	h.radio.Reset()

	require.True(t, h.iface.RemoveStation(peerA))
	assert.Equal(t, []radio.CommandKind{radio.CmdStaCmd, radio.CmdDisableKey}, h.radio.Kinds())
	kp := keyParam(t, h.radio.Commands()[1])
	assert.Equal(t, peerA, kp.Addr)
	assert.Equal(t, uint16(2), kp.AID)
}

func TestPeerTableFull(t *testing.T) {
	h := newHarness(t, RoleAP, 2)

	require.True(t, h.iface.Authenticate(peerA))
	require.True(t, h.iface.Authenticate(peerB))
	h.radio.Reset()

	assert.False(t, h.iface.Authenticate(peerC))
	assert.False(t, h.iface.Associate(peerC, 9))
	assert.Empty(t, h.radio.Commands())

	_, ok := h.iface.StationState(peerC)
	assert.False(t, ok)
	assert.ElementsMatch(t, []dot11.MACAddr{peerA, peerB}, h.iface.Peers())
}

func TestDeauthenticate(t *testing.T) {
	h := newHarness(t, RoleAP, 4)

	assert.False(t, h.iface.Deauthenticate(peerA), "unknown peer")

	require.True(t, h.iface.Associate(peerA, 1))
	require.True(t, h.iface.Deauthenticate(peerA))
	state, _ := h.iface.StationState(peerA)
	assert.Equal(t, station.StateNone, state)

	assert.False(t, h.iface.Disassociate(peerA), "already NONE")
	assert.False(t, h.iface.Disassociate(peerB), "unknown peer")
}

func TestNewPeerGetsWEPGroupKey(t *testing.T) {
	h := newHarness(t, RoleAP, 4)

	wep := []byte{1, 2, 3, 4, 5}
	require.True(t, h.iface.SetKey(keystore.AlgWEP, addrPtr(dot11.BroadcastAddr), 1, wep, nil))
	h.radio.Reset()

	require.True(t, h.iface.Authenticate(peerA))

	cmds := h.radio.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, radio.CmdSetKey, cmds[0].Kind)
	kp := keyParam(t, cmds[0])
	assert.Equal(t, dot11.CipherWEP40, kp.Cipher)
	assert.Equal(t, peerA, kp.Addr)
	assert.Equal(t, uint8(1), kp.Index)
	assert.Equal(t, wep, kp.Material)
	assert.Equal(t, radio.CmdStaCmd, cmds[1].Kind)
}

func TestSTARoleTracksSelf(t *testing.T) {
	h := newHarness(t, RoleSTA, 0)

	_, ok := h.iface.StationState(apAddr)
	assert.False(t, ok)

	require.True(t, h.iface.Associate(apAddr, 4))
	state, ok := h.iface.StationState(apAddr)
	require.True(t, ok)
	assert.Equal(t, station.StateAssoc, state)
	assert.Equal(t, []dot11.MACAddr{apAddr}, h.iface.Peers())

	require.True(t, h.iface.RemoveStation(apAddr))
	assert.Empty(t, h.iface.Peers())
}

func TestStationGauge(t *testing.T) {
	h := newHarness(t, RoleAP, 4)
	gauge := h.metrics.Stations.WithLabelValues("0")

	h.iface.Authenticate(peerA)
	h.iface.Associate(peerB, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(gauge))

	h.iface.RemoveStation(peerA)
	assert.Equal(t, 1.0, testutil.ToFloat64(gauge))
}
