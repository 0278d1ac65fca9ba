package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanshim/wlanshim-go/pkg/radio"
)

func TestAddInterfaceBringsUpRadio(t *testing.T) {
	rec := radio.NewRecorder()
	d := New(rec, nil, nil, nil, Options{})

	iface, err := d.AddInterface(InterfaceConfig{VIF: 1, Name: "wlan1", Addr: ownAddr, Role: RoleAP})
	require.NoError(t, err)

	assert.Equal(t, 1, iface.VIF())
	assert.Equal(t, "wlan1", iface.Name())
	assert.Equal(t, RoleAP, iface.Role())
	assert.Equal(t, ownAddr, iface.BSS().BSSID, "an AP's BSSID is its own address")

	cmds := rec.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, radio.CmdSet, cmds[0].Kind)
	p, ok := cmds[0].Param(radio.ParamMACAddr)
	require.True(t, ok)
	assert.Equal(t, ownAddr, p.(radio.MACAddrParam).Addr)
	assert.Equal(t, radio.CmdStart, cmds[1].Kind)
}

func TestAddInterfaceDuplicate(t *testing.T) {
	d := New(radio.NewRecorder(), nil, nil, nil, Options{})

	_, err := d.AddInterface(InterfaceConfig{VIF: 0})
	require.NoError(t, err)

	_, err = d.AddInterface(InterfaceConfig{VIF: 0})
	assert.ErrorIs(t, err, ErrDuplicateInterface)
}

func TestInterfaceLookup(t *testing.T) {
	d := New(radio.NewRecorder(), nil, nil, nil, Options{})
	for _, vif := range []int{2, 0, 1} {
		_, err := d.AddInterface(InterfaceConfig{VIF: vif})
		require.NoError(t, err)
	}

	iface, err := d.Interface(1)
	require.NoError(t, err)
	assert.Equal(t, 1, iface.VIF())

	_, err = d.Interface(7)
	assert.ErrorIs(t, err, ErrUnknownInterface)

	var vifs []int
	for _, iface := range d.Interfaces() {
		vifs = append(vifs, iface.VIF())
	}
	assert.Equal(t, []int{0, 1, 2}, vifs)
}

func TestRemoveInterface(t *testing.T) {
	h := newHarness(t, RoleSTA, 0)

	require.True(t, h.iface.Connect(ConnectParams{BSSID: apAddr, SSID: []byte("net"), MaxIdle: 5}))
	require.True(t, h.iface.KeepAliveArmed())
	h.radio.Reset()

	require.NoError(t, h.drv.RemoveInterface(0))
	assert.False(t, h.iface.KeepAliveArmed())
	assert.Equal(t, []radio.CommandKind{radio.CmdStop}, h.radio.Kinds())

	_, err := h.drv.Interface(0)
	assert.ErrorIs(t, err, ErrUnknownInterface)
	assert.ErrorIs(t, h.drv.RemoveInterface(0), ErrUnknownInterface)
}

func TestCloseRemovesAll(t *testing.T) {
	d := New(radio.NewRecorder(), nil, nil, nil, Options{})
	for vif := 0; vif < 3; vif++ {
		_, err := d.AddInterface(InterfaceConfig{VIF: vif})
		require.NoError(t, err)
	}

	d.Close()
	assert.Empty(t, d.Interfaces())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"sta", RoleSTA, true},
		{"AP", RoleAP, true},
		{"mesh", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
