package resume_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wlanshim/wlanshim-go/internal/fakeclock"
	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/driver"
	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/log"
	"github.com/wlanshim/wlanshim-go/pkg/metrics"
	"github.com/wlanshim/wlanshim-go/pkg/netif"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
	"github.com/wlanshim/wlanshim-go/pkg/resume"
	"github.com/wlanshim/wlanshim-go/pkg/retention"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

var (
	epoch   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ownAddr = dot11.MACAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	apAddr  = dot11.MACAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0xaa}
)

// traceLog collects trace events.
type traceLog struct {
	mu     sync.Mutex
	events []log.Event
}

func (l *traceLog) Log(e log.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *traceLog) all() []log.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]log.Event(nil), l.events...)
}

type harness struct {
	engine  *resume.Engine
	iface   *driver.Interface
	radio   *radio.Recorder
	events  *event.Recorder
	clock   *fakeclock.Clock
	stack   *netif.Table
	store   *retention.MemoryStore
	handoff *retention.Handoff
	metrics *metrics.Registry
	trace   *traceLog
}

// newHarness wakes an interface in role with snap retained. A nil snap
// means nothing was retained.
func newHarness(t *testing.T, role driver.Role, snap *retention.Snapshot) *harness {
	t.Helper()

	h := &harness{
		radio:   radio.NewRecorder(),
		events:  event.NewRecorder(),
		clock:   fakeclock.New(epoch),
		stack:   netif.NewTable(),
		store:   retention.NewMemoryStore(),
		metrics: metrics.NewRegistry(),
		trace:   &traceLog{},
	}
	if snap != nil {
		require.NoError(t, h.store.Save(snap))
	}
	handoff, err := retention.Wake(h.store, nil)
	require.NoError(t, err)
	h.handoff = handoff

	tracer := log.NewTracer(h.trace, "test").WithClock(h.clock.Now)
	drv := driver.New(h.radio, h.radio, h.events, h.events, driver.Options{
		Clock:   h.clock,
		Tracer:  tracer,
		Metrics: h.metrics,
	})
	h.iface, err = drv.AddInterface(driver.InterfaceConfig{
		VIF:  0,
		Name: "wlan0",
		Addr: ownAddr,
		Role: role,
	})
	require.NoError(t, err)
	h.radio.Reset()

	h.engine = resume.New(resume.Config{
		Handoff: h.handoff,
		Stack:   h.stack,
		Tracer:  tracer,
		Metrics: h.metrics,
		Now:     h.clock.Now,
	})
	return h
}

func (h *harness) resume(req resume.Request) resume.Result {
	return h.engine.Resume(h.iface, req)
}

// newAssociated returns a harness whose interface was restored by a WPA2
// ASSOC replay. Recorders are reset afterwards.
func newAssociated(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, driver.RoleSTA, validSnapshot())
	require.Equal(t, resume.ResultSuccess, h.resume(resume.AssocRequest{KeyMgmt: dot11.KeyMgmtPSK}))
	h.radio.Reset()
	h.events.Reset()
	return h
}

// validSnapshot returns a recovered WPA2 snapshot with a pairwise and a
// group key, an address and no max idle period.
func validSnapshot() *retention.Snapshot {
	s := &retention.Snapshot{
		Version:   retention.FormatVersion,
		Recovered: true,
		AP: retention.APInfo{
			SSID:           []byte("Net-A"),
			BSSID:          apAddr,
			Security:       dot11.SecurityPSK,
			BeaconInterval: 100,
		},
		Channel: retention.ChannelInfo{Frequency: 2437},
		Station: retention.StationInfo{AID: 5},
		IP: retention.IPInfo{
			Addr:    [4]byte{192, 168, 1, 20},
			Netmask: [4]byte{255, 255, 255, 0},
			Gateway: [4]byte{192, 168, 1, 1},
		},
		SavedAt: epoch,
	}
	s.TID.BlockAck[0] = station.BlockAckTXRX
	s.Keys[0] = retention.KeyInfo{Enabled: true, Pairwise: true, Index: 0, TSC: 100}
	s.Keys[1] = retention.KeyInfo{Enabled: true, Index: 1, TSC: 50}
	for i := range s.Keys[0].Material {
		s.Keys[0].Material[i] = byte(i)
		s.Keys[1].Material[i] = byte(0x40 + i)
	}
	for i := range s.PMK {
		s.PMK[i] = 0xa5
	}
	return s
}

// requestFor returns a request for stage that succeeds on a valid
// snapshot after association.
func requestFor(stage resume.Stage) resume.Request {
	switch stage {
	case resume.StageInit:
		return resume.InitRequest{}
	case resume.StagePMK:
		return resume.PMKRequest{Credential: &resume.Credential{SSID: []byte("Net-A")}}
	case resume.StageSetKey:
		return resume.SetKeyRequest{}
	case resume.StageScan:
		return resume.ScanRequest{}
	case resume.StageAuth:
		return resume.AuthRequest{}
	case resume.StageAssoc:
		return resume.AssocRequest{KeyMgmt: dot11.KeyMgmtPSK}
	case resume.StagePort:
		return resume.PortRequest{}
	case resume.StageDHCP:
		return resume.DHCPRequest{}
	default:
		return resume.StaticRequest{}
	}
}
