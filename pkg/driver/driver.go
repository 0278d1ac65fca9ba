package driver

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/keepalive"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
)

// Driver owns the virtual interfaces of one radio.
type Driver struct {
	mu sync.RWMutex

	radio radio.Commander
	tx    radio.Transmitter
	sink  event.Sink
	app   event.AppNotifier
	opts  Options

	ifaces map[int]*Interface
}

// New creates a Driver. The transmitter, sink and notifier may be nil,
// in which case frames fail with ErrNoTransmitter and events are dropped.
func New(cmd radio.Commander, tx radio.Transmitter, sink event.Sink, app event.AppNotifier, opts Options) *Driver {
	if opts.Clock == nil {
		opts.Clock = keepalive.SystemClock{}
	}
	return &Driver{
		radio:  cmd,
		tx:     tx,
		sink:   sink,
		app:    app,
		opts:   opts,
		ifaces: make(map[int]*Interface),
	}
}

// AddInterface brings up a virtual interface: it pushes the interface
// address to the radio and starts it.
func (d *Driver) AddInterface(cfg InterfaceConfig) (*Interface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.ifaces[cfg.VIF]; exists {
		return nil, fmt.Errorf("vif %d: %w", cfg.VIF, ErrDuplicateInterface)
	}

	iface := newInterface(d, cfg)
	d.ifaces[cfg.VIF] = iface
	iface.start()

	d.debugLog("AddInterface: interface up",
		"vif", cfg.VIF,
		"name", cfg.Name,
		"role", cfg.Role,
		"addr", cfg.Addr)
	return iface, nil
}

// RemoveInterface stops a virtual interface and drops its state.
func (d *Driver) RemoveInterface(vif int) error {
	d.mu.Lock()
	iface, ok := d.ifaces[vif]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("vif %d: %w", vif, ErrUnknownInterface)
	}
	delete(d.ifaces, vif)
	d.mu.Unlock()

	iface.stop()
	d.debugLog("RemoveInterface: interface down", "vif", vif)
	return nil
}

// Interface returns the interface for vif.
func (d *Driver) Interface(vif int) (*Interface, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	iface, ok := d.ifaces[vif]
	if !ok {
		return nil, fmt.Errorf("vif %d: %w", vif, ErrUnknownInterface)
	}
	return iface, nil
}

// Interfaces returns all interfaces ordered by VIF.
func (d *Driver) Interfaces() []*Interface {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Interface, 0, len(d.ifaces))
	for _, iface := range d.ifaces {
		out = append(out, iface)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].vif < out[b].vif })
	return out
}

// Close removes every interface.
func (d *Driver) Close() {
	for _, iface := range d.Interfaces() {
		_ = d.RemoveInterface(iface.vif)
	}
}

// debugLog logs a debug message if logging is enabled.
func (d *Driver) debugLog(msg string, args ...any) {
	if d.opts.Logger != nil {
		d.opts.Logger.Debug(msg, args...)
	}
}
