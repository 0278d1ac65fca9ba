package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/driver"
	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/keepalive"
	"github.com/wlanshim/wlanshim-go/pkg/keystore"
	"github.com/wlanshim/wlanshim-go/pkg/log"
	"github.com/wlanshim/wlanshim-go/pkg/metrics"
	"github.com/wlanshim/wlanshim-go/pkg/netif"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
	"github.com/wlanshim/wlanshim-go/pkg/resume"
	"github.com/wlanshim/wlanshim-go/pkg/retention"
)

// Network is the simulated BSS the station joins.
type Network struct {
	SSID       string
	BSSID      dot11.MACAddr
	Passphrase string
	Frequency  uint16
	AID        uint16
	MaxIdle    uint16
	Addr       netip.Prefix
	Gateway    netip.Addr
}

// DefaultNetwork is the network used when no override is given.
var DefaultNetwork = Network{
	SSID:       "wlanshim-lab",
	BSSID:      dot11.MACAddr{0x02, 0x11, 0x22, 0x33, 0x44, 0x55},
	Passphrase: "correct horse battery",
	Frequency:  2437,
	AID:        1,
	MaxIdle:    5,
	Addr:       netip.MustParsePrefix("192.168.50.20/24"),
	Gateway:    netip.MustParseAddr("192.168.50.1"),
}

// Env holds the shared plumbing of a simulation run.
type Env struct {
	Interface driver.InterfaceConfig
	Network   Network
	Store     retention.Store
	Tracer    *log.Tracer
	Metrics   *metrics.Registry
	Logger    *slog.Logger

	// Clock drives keep-alive timers. If nil, the wall clock is used.
	Clock keepalive.Clock

	// Out receives the human-readable report.
	Out io.Writer
}

// ErrNotRecovered is returned when a resume run fell back to the live path.
var ErrNotRecovered = errors.New("resume fell back to the live path")

func (e *Env) now() time.Time {
	if e.Clock != nil {
		return e.Clock.Now()
	}
	return time.Now()
}

func (e *Env) newDriver(rec *radio.Recorder, events *event.Recorder) *driver.Driver {
	return driver.New(rec, rec, events, events, driver.Options{
		Clock:   e.Clock,
		Tracer:  e.Tracer,
		Metrics: e.Metrics,
		Logger:  e.Logger,
	})
}

// RunResume simulates one sleep/wake cycle: a live connection is captured
// into the store, the driver is torn down, and a fresh driver replays the
// connection from the stored snapshot.
func RunResume(env *Env) error {
	env.Interface.Role = driver.RoleSTA
	nw := env.Network

	pmk, err := retention.DerivePMK(nw.Passphrase, []byte(nw.SSID))
	if err != nil {
		return err
	}

	// Live connection before sleep.
	rec := radio.NewRecorder()
	drv := env.newDriver(rec, event.NewRecorder())
	iface, err := drv.AddInterface(env.Interface)
	if err != nil {
		return err
	}
	iface.Connect(driver.ConnectParams{
		BSSID:          nw.BSSID,
		SSID:           []byte(nw.SSID),
		Frequency:      nw.Frequency,
		BeaconInterval: 100,
		AID:            nw.AID,
		MaxIdle:        nw.MaxIdle,
		QoS:            true,
		KeyMgmt:        dot11.KeyMgmtPSK,
	})
	bssid := nw.BSSID
	if !iface.SetKey(keystore.AlgCCMP, &bssid, 0, sessionKey(0x10), nil) {
		return fmt.Errorf("install pairwise key")
	}
	bcast := dot11.BroadcastAddr
	if !iface.SetKey(keystore.AlgCCMP, &bcast, 1, sessionKey(0x20), nil) {
		return fmt.Errorf("install group key")
	}

	stack := netif.NewTable()
	ip := netif.Info{
		Addr:    nw.Addr.Addr(),
		Netmask: prefixMask(nw.Addr),
		Gateway: nw.Gateway,
	}
	if err := stack.SetIPInfo(iface.VIF(), ip); err != nil {
		return err
	}

	snap, err := retention.Capture(iface.Status(), ip, pmk, env.now())
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if err := env.Store.Save(snap); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	fmt.Fprintf(env.Out, "Captured %q on %d MHz after %d radio commands\n", nw.SSID, nw.Frequency, len(rec.Commands()))
	drv.Close()

	// Wake with a fresh driver.
	handoff, err := retention.Wake(env.Store, env.Logger)
	if err != nil {
		return err
	}
	rec = radio.NewRecorder()
	events := event.NewRecorder()
	drv = env.newDriver(rec, events)
	defer drv.Close()
	if iface, err = drv.AddInterface(env.Interface); err != nil {
		return err
	}
	rec.Reset()

	engine := resume.New(resume.Config{
		Handoff: handoff,
		Stack:   netif.NewTable(),
		Tracer:  env.Tracer,
		Metrics: env.Metrics,
		Logger:  env.Logger,
	})

	cred := &resume.Credential{SSID: []byte(nw.SSID)}
	steps := []resume.Request{
		resume.InitRequest{},
		resume.PMKRequest{Credential: cred},
		resume.ScanRequest{},
		resume.AuthRequest{},
		resume.AssocRequest{KeyMgmt: dot11.KeyMgmtPSK},
		resume.DHCPRequest{},
	}
	ok := true
	for _, req := range steps {
		res := engine.Resume(iface, req)
		fmt.Fprintf(env.Out, "  %-8s %s\n", req.Stage(), res)
		if !res.OK() {
			ok = false
			break
		}
	}
	if ok && cred.PSKSet && cred.PSK != pmk {
		ok = false
	}

	st := iface.Status()
	fmt.Fprintf(env.Out, "Resumed: associated=%t aid=%d keep-alive=%t events=%d radio-commands=%d window-open=%t\n",
		st.Associated, st.AID, st.KeepAliveArmed, len(events.Events()), len(rec.Commands()), engine.Recovered(iface))
	if !ok {
		return ErrNotRecovered
	}
	return nil
}

// RunAP simulates an access point admitting two stations, rotating the
// group key and dropping one station.
func RunAP(env *Env) error {
	env.Interface.Role = driver.RoleAP

	rec := radio.NewRecorder()
	events := event.NewRecorder()
	drv := env.newDriver(rec, events)
	defer drv.Close()

	iface, err := drv.AddInterface(env.Interface)
	if err != nil {
		return err
	}

	peers := []dot11.MACAddr{
		{0x02, 0xaa, 0x00, 0x00, 0x00, 0x01},
		{0x02, 0xaa, 0x00, 0x00, 0x00, 0x02},
	}
	for n, peer := range peers {
		if !iface.Associate(peer, uint16(n+1)) {
			return fmt.Errorf("associate %s", peer)
		}
		p := peer
		if !iface.SetKey(keystore.AlgCCMP, &p, 0, sessionKey(byte(0x30+n)), nil) {
			return fmt.Errorf("pairwise key for %s", peer)
		}
	}

	// Group key rotation alternates between indexes 1 and 2.
	bcast := dot11.BroadcastAddr
	for round, index := range []uint8{1, 2, 1} {
		if !iface.SetKey(keystore.AlgCCMP, &bcast, index, sessionKey(byte(0x40+round)), nil) {
			return fmt.Errorf("group key %d", index)
		}
	}

	if !iface.Deauthenticate(peers[1]) {
		return fmt.Errorf("deauthenticate %s", peers[1])
	}
	iface.RemoveStation(peers[1])

	st := iface.Status()
	fmt.Fprintf(env.Out, "AP %s: stations=%d radio-commands=%d\n", st.Addr, st.Stations, len(rec.Commands()))
	for _, peer := range iface.Peers() {
		state, _ := iface.StationState(peer)
		fmt.Fprintf(env.Out, "  %s %s\n", peer, state)
	}
	return nil
}

// sessionKey returns a deterministic 16-byte key starting at seed.
func sessionKey(seed byte) []byte {
	k := make([]byte, retention.KeyLen)
	for i := range k {
		k[i] = seed + byte(i)
	}
	return k
}

func prefixMask(p netip.Prefix) netip.Addr {
	var m [4]byte
	bits := p.Bits()
	for i := 0; i < 4; i++ {
		switch {
		case bits >= 8:
			m[i] = 0xff
			bits -= 8
		case bits > 0:
			m[i] = byte(0xff << (8 - bits))
			bits = 0
		}
	}
	return netip.AddrFrom4(m)
}
