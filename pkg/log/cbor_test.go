package log

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
)

func TestEncodeDecodeCommandEvent(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	cmd := radio.NewCommand(0, radio.CmdSet,
		radio.BSSIDParam{BSSID: dot11.MACAddr{0x02, 1, 2, 3, 4, 5}},
		radio.AIDParam{AID: 4},
	)

	in := Event{
		Timestamp: ts,
		SessionID: "sess-1",
		VIF:       1,
		Direction: DirectionDown,
		Layer:     LayerRadio,
		Category:  CategoryCommand,
		Command:   NewCommandEvent(cmd),
	}

	data, err := EncodeEvent(in)
	require.NoError(t, err)

	out, err := DecodeEvent(data)
	require.NoError(t, err)

	assert.True(t, out.Timestamp.Equal(ts), "timestamp keeps nanoseconds")
	assert.Equal(t, "sess-1", out.SessionID)
	assert.Equal(t, 1, out.VIF)
	require.NotNil(t, out.Command)
	assert.Equal(t, radio.CmdSet, out.Command.Kind)
	assert.Equal(t, []ParamEvent{
		{Kind: radio.ParamBSSID, Value: "02:01:02:03:04:05"},
		{Kind: radio.ParamAID, Value: "4"},
	}, out.Command.Params)
	assert.Nil(t, out.Upstream)
}

func TestEncodeDecodeResumeEvent(t *testing.T) {
	in := Event{
		Timestamp: time.Now(),
		Layer:     LayerResume,
		Category:  CategoryResult,
		Resume: &ResumeEvent{
			Stage:    "ASSOC",
			Result:   "SUCCESS",
			Success:  true,
			Duration: 42 * time.Microsecond,
		},
	}

	data, err := EncodeEvent(in)
	require.NoError(t, err)
	out, err := DecodeEvent(data)
	require.NoError(t, err)

	require.NotNil(t, out.Resume)
	assert.Equal(t, *in.Resume, *out.Resume)
}

func TestEncodingIsDeterministic(t *testing.T) {
	ev := Event{
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Layer:     LayerUpstream,
		Category:  CategoryEvent,
		Upstream:  &UpstreamEvent{Kind: event.KindAssoc, Authorized: true, Frequency: 2437},
	}
	a, err := EncodeEvent(ev)
	require.NoError(t, err)
	b, err := EncodeEvent(ev)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncoderDecoderStream(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := 0; i < 3; i++ {
		require.NoError(t, enc.Encode(Event{VIF: i, Layer: LayerKeepAlive}))
	}

	dec := NewDecoder(&buf)
	for i := 0; i < 3; i++ {
		var ev Event
		require.NoError(t, dec.Decode(&ev))
		assert.Equal(t, i, ev.VIF)
	}
	var ev Event
	assert.ErrorIs(t, dec.Decode(&ev), io.EOF)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeEvent([]byte{0xff, 0x00})
	assert.Error(t, err)
}
