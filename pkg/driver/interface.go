package driver

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/keepalive"
	"github.com/wlanshim/wlanshim-go/pkg/keystore"
	"github.com/wlanshim/wlanshim-go/pkg/log"
	"github.com/wlanshim/wlanshim-go/pkg/metrics"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

// Interface is the state of one virtual radio interface.
type Interface struct {
	mu sync.Mutex

	vif  int
	name string
	role Role
	addr dot11.MACAddr

	bss        BSS
	freq       uint16
	keyMgmt    dot11.KeyMgmt
	associated bool

	// self tracks the AP in the STA role.
	self station.Station
	// stations holds the peers in the AP role.
	stations  *station.Registry
	groupKeys keystore.Set

	scan []ScanResult

	keepalive *keepalive.Scheduler
	clock     keepalive.Clock

	radio   radio.Commander
	tx      radio.Transmitter
	sink    event.Sink
	app     event.AppNotifier
	logger  *slog.Logger
	tracer  *log.Tracer
	metrics *metrics.Registry
}

func newInterface(d *Driver, cfg InterfaceConfig) *Interface {
	i := &Interface{
		vif:     cfg.VIF,
		name:    cfg.Name,
		role:    cfg.Role,
		addr:    cfg.Addr,
		clock:   d.opts.Clock,
		radio:   d.radio,
		tx:      d.tx,
		sink:    d.sink,
		app:     d.app,
		logger:  d.opts.Logger,
		tracer:  d.opts.Tracer,
		metrics: d.opts.Metrics,
	}
	if cfg.Role == RoleAP {
		n := cfg.MaxStations
		if n <= 0 {
			n = DefaultMaxStations
		}
		i.stations = station.NewRegistry(n)
		i.bss.BSSID = cfg.Addr
	} else {
		i.stations = station.NewRegistry(0)
	}
	i.keepalive = keepalive.New(i.clock, i.onKeepAliveFire)
	return i
}

func (i *Interface) start() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.submit(radio.CmdSet, radio.MACAddrParam{Addr: i.addr})
	i.submit(radio.CmdStart)
	i.updateStationGauge()
}

func (i *Interface) stop() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.stopKeepAlive()
	i.associated = false
	i.submit(radio.CmdStop)
	i.metrics.DeleteStations(strconv.Itoa(i.vif))
}

// VIF returns the virtual interface index.
func (i *Interface) VIF() int {
	return i.vif
}

// Name returns the interface name.
func (i *Interface) Name() string {
	return i.name
}

// Role returns the operating mode.
func (i *Interface) Role() Role {
	return i.role
}

// Addr returns the interface's own address.
func (i *Interface) Addr() dot11.MACAddr {
	return i.addr
}

// Associated reports whether the interface is associated (STA role).
func (i *Interface) Associated() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.associated
}

// BSS returns a copy of the current BSS parameters.
func (i *Interface) BSS() BSS {
	i.mu.Lock()
	defer i.mu.Unlock()
	b := i.bss
	b.SSID = append([]byte(nil), i.bss.SSID...)
	return b
}

// Frequency returns the operating frequency in MHz.
func (i *Interface) Frequency() uint16 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.freq
}

// KeyMgmt returns the key management mode.
func (i *Interface) KeyMgmt() dot11.KeyMgmt {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.keyMgmt
}

// SetKeyMgmt records the key management mode chosen by the upstream
// framework.
func (i *Interface) SetKeyMgmt(k dot11.KeyMgmt) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.keyMgmt = k
}

// SetAuthorized8021X records whether the 802.1X port is authorized.
func (i *Interface) SetAuthorized8021X(authorized bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.bss.Authorized8021X = authorized
}

// SetChannel pushes a new operating frequency to the radio.
func (i *Interface) SetChannel(freq uint16) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.freq = freq
	i.submit(radio.CmdSet, radio.ChannelParam{Frequency: freq})
}

// FlushScan empties the scan result list.
func (i *Interface) FlushScan() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.scan = i.scan[:0]
}

// AddScanResult appends r to the scan result list. It returns false when
// the list is full.
func (i *Interface) AddScanResult(r ScanResult) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.scan) >= MaxScanResults {
		return false
	}
	i.scan = append(i.scan, r)
	return true
}

// ScanResults returns a copy of the scan result list.
func (i *Interface) ScanResults() []ScanResult {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]ScanResult(nil), i.scan...)
}

// EmitSynthetic delivers an event that replays a stage the radio never
// performed.
func (i *Interface) EmitSynthetic(ev event.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.emit(ev, true)
}

// NotifyApp delivers an application event.
func (i *Interface) NotifyApp(ev event.AppEvent) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.notifyApp(ev)
}

// Status returns a copy of the interface state.
func (i *Interface) Status() Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	s := Status{
		VIF:            i.vif,
		Name:           i.name,
		Role:           i.role,
		Addr:           i.addr,
		BSS:            i.bss,
		Frequency:      i.freq,
		KeyMgmt:        i.keyMgmt,
		Associated:     i.associated,
		AID:            i.self.AID,
		QoS:            i.self.QoS,
		BlockAck:       i.self.BlockAck,
		Stations:       i.stations.Len(),
		KeepAliveArmed: i.keepalive.Armed(),
		KeepAliveDelay: i.keepalive.Delay(),
	}
	s.BSS.SSID = append([]byte(nil), i.bss.SSID...)

	for idx := uint8(0); idx < keystore.NumSlots; idx++ {
		slot := i.groupKeys.Slot(idx)
		if idx == 0 && i.role == RoleSTA {
			slot = i.self.Keys.Slot(0)
		}
		s.Keys[idx] = KeyStatus{
			Installed: slot.Installed,
			Cipher:    slot.Cipher,
			Index:     idx,
			Pairwise:  idx == 0,
			TSC:       slot.TSC,
			Material:  append([]byte(nil), slot.Material...),
		}
	}
	return s
}

// submit sends a command to the radio. The caller holds i.mu.
func (i *Interface) submit(kind radio.CommandKind, params ...radio.Param) {
	cmd := radio.NewCommand(i.vif, kind, params...)
	i.metrics.RadioCommand(kind.String())
	i.tracer.Command(i.vif, i.role.trace(), cmd)
	if i.radio != nil {
		i.radio.Submit(cmd)
	}
}

// emit delivers an upstream event. The caller holds i.mu.
func (i *Interface) emit(ev event.Event, synthetic bool) {
	ev.VIF = i.vif
	i.metrics.UpstreamEvent(ev.Kind.String())
	i.tracer.Upstream(i.vif, i.role.trace(), ev, synthetic)
	i.debugLog("emit: upstream event", "vif", i.vif, "kind", ev.Kind, "synthetic", synthetic)
	if i.sink != nil {
		i.sink.HandleEvent(ev)
	}
}

// notifyApp delivers an application event. The caller holds i.mu.
func (i *Interface) notifyApp(ev event.AppEvent) {
	i.debugLog("notifyApp", "vif", i.vif, "event", ev)
	if i.app != nil {
		i.app.NotifyApp(i.vif, ev)
	}
}

func (i *Interface) updateStationGauge() {
	n := i.stations.Len()
	if i.role == RoleSTA && i.self.State != station.StateNotExist {
		n = 1
	}
	i.metrics.SetStations(strconv.Itoa(i.vif), n)
}

func (i *Interface) traceLink(oldState, newState, reason string) {
	i.tracer.StateChange(i.vif, i.role.trace(), i.bss.BSSID.String(), log.StateEntityLink, oldState, newState, reason)
}

// debugLog logs a debug message if logging is enabled.
func (i *Interface) debugLog(msg string, args ...any) {
	if i.logger != nil {
		i.logger.Debug(msg, args...)
	}
}

func (i *Interface) warnLog(msg string, args ...any) {
	if i.logger != nil {
		i.logger.Warn(msg, args...)
	}
}
