package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
)

func addr(b byte) dot11.MACAddr {
	return dot11.MACAddr{0x02, 0, 0, 0, 0, b}
}

func TestRegistryAddLookup(t *testing.T) {
	r := NewRegistry(2)

	_, ok := r.Lookup(addr(1))
	assert.False(t, ok, "unknown peer must be absent")

	sta, ok := r.Add(addr(1))
	require.True(t, ok)
	assert.Equal(t, addr(1), sta.Addr)
	assert.Equal(t, StateNotExist, sta.State)

	got, ok := r.Lookup(addr(1))
	require.True(t, ok)
	assert.Same(t, sta, got)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryAddExisting(t *testing.T) {
	r := NewRegistry(2)
	first, _ := r.Add(addr(1))
	first.AID = 7

	again, ok := r.Add(addr(1))
	require.True(t, ok)
	assert.Same(t, first, again)
	assert.Equal(t, uint16(7), again.AID)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryFull(t *testing.T) {
	r := NewRegistry(2)
	_, ok := r.Add(addr(1))
	require.True(t, ok)
	_, ok = r.Add(addr(2))
	require.True(t, ok)

	sta, ok := r.Add(addr(3))
	assert.False(t, ok)
	assert.Nil(t, sta)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 2, r.Cap())
}

func TestRegistryStableIndices(t *testing.T) {
	r := NewRegistry(3)
	r.Add(addr(1))
	r.Add(addr(2))
	r.Add(addr(3))

	before, _ := r.Slot(addr(3))
	require.True(t, r.Remove(addr(2)))
	after, ok := r.Slot(addr(3))
	require.True(t, ok)
	assert.Equal(t, before, after)

	// The freed slot is reused.
	r.Add(addr(4))
	slot, _ := r.Slot(addr(4))
	assert.Equal(t, 1, slot)
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry(1)
	assert.False(t, r.Remove(addr(1)))

	sta, _ := r.Add(addr(1))
	sta.State = StateAssoc
	require.True(t, r.Remove(addr(1)))

	_, ok := r.Lookup(addr(1))
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	// A new record in the same slot starts zeroed.
	sta, _ = r.Add(addr(1))
	assert.Equal(t, StateNotExist, sta.State)
}

func TestRegistryEach(t *testing.T) {
	r := NewRegistry(3)
	r.Add(addr(1))
	r.Add(addr(2))
	r.Remove(addr(1))
	r.Add(addr(3))

	var seen []dot11.MACAddr
	r.Each(func(s *Station) { seen = append(seen, s.Addr) })
	assert.Equal(t, []dot11.MACAddr{addr(3), addr(2)}, seen)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateNotExist, "NOTEXIST"},
		{StateNone, "NONE"},
		{StateAuth, "AUTH"},
		{StateAssoc, "ASSOC"},
		{StateAuthorized, "AUTHORIZED"},
		{State(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestResetBlockAck(t *testing.T) {
	var s Station
	s.BlockAck[3] = BlockAckTXRX
	s.ResetBlockAck()
	for tid, ba := range s.BlockAck {
		assert.Equal(t, BlockAckInvalid, ba, "tid %d", tid)
	}
}
