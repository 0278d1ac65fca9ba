package driver

import (
	"fmt"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/keepalive"
	"github.com/wlanshim/wlanshim-go/pkg/log"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

// Connect records a completed live association (STA role) and pushes the
// BSS to the radio. Keep-alive starts when the AP advertised a max idle
// period.
func (i *Interface) Connect(p ConnectParams) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.role != RoleSTA {
		return false
	}

	i.bss = BSS{
		BSSID:          p.BSSID,
		SSID:           append([]byte(nil), p.SSID...),
		BeaconInterval: p.BeaconInterval,
		MaxIdle:        p.MaxIdle,
		LastTx:         i.clock.Now(),
	}
	i.freq = p.Frequency
	i.keyMgmt = p.KeyMgmt
	i.associated = true

	i.self.Reset(p.BSSID)
	i.self.AID = p.AID
	i.self.QoS = p.QoS
	i.self.State = station.StateAssoc

	i.submit(radio.CmdSet,
		radio.BSSIDParam{BSSID: p.BSSID},
		radio.AIDParam{AID: p.AID},
		radio.BeaconIntervalParam{Interval: p.BeaconInterval},
	)
	i.submit(radio.CmdStaCmd, radio.StaParam{Cmd: radio.StaCmdAdd, Addr: p.BSSID, AID: p.AID})

	i.traceLink("DISCONNECTED", "CONNECTED", "")
	i.updateStationGauge()
	i.startKeepAlive()
	i.notifyApp(event.AppAssociated)
	return true
}

// Disconnect tears down the association (STA role). The keep-alive timer
// is cancelled unconditionally.
func (i *Interface) Disconnect() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.stopKeepAlive()
	if !i.associated {
		return false
	}

	bssid := i.bss.BSSID
	i.submit(radio.CmdSet,
		radio.BSSIDParam{},
		radio.AIDParam{},
	)
	i.submit(radio.CmdStaCmd, radio.StaParam{Cmd: radio.StaCmdRemove, Addr: bssid, AID: i.self.AID})

	i.associated = false
	i.self.AID = 0
	i.self.ResetBlockAck()
	if i.self.State != station.StateNotExist {
		i.self.State = station.StateNone
	}

	i.traceLink("CONNECTED", "DISCONNECTED", "")
	i.notifyApp(event.AppDisassociated)
	return true
}

// RestoreAssociation marks the interface associated with the state the
// radio kept across a power cycle. No radio command is issued.
func (i *Interface) RestoreAssociation(a AssocState) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.bss.BSSID = a.BSSID
	i.bss.SSID = append([]byte(nil), a.SSID...)
	i.bss.BeaconInterval = a.BeaconInterval
	i.bss.MaxIdle = a.MaxIdle
	i.bss.LastTx = i.clock.Now()
	i.freq = a.Frequency
	i.associated = true

	i.self.Reset(a.BSSID)
	i.self.AID = a.AID
	i.self.QoS = a.QoS
	i.self.BlockAck = a.BlockAck
	i.self.State = station.StateAssoc

	i.traceLink("DISCONNECTED", "CONNECTED", "restored")
	i.updateStationGauge()
}

// StartKeepAlive runs a keep-alive planning step and arms the timer. It
// returns false when the interface is not associated or the max idle
// period is zero or below the protocol floor.
func (i *Interface) StartKeepAlive() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.startKeepAlive()
}

// StopKeepAlive cancels the keep-alive timer and forgets the max idle
// period. Stopping an unarmed timer is a no-op.
func (i *Interface) StopKeepAlive() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stopKeepAlive()
}

// KeepAliveArmed reports whether the keep-alive timer is pending.
func (i *Interface) KeepAliveArmed() bool {
	return i.keepalive.Armed()
}

// KeepAliveDelay returns the delay the keep-alive timer was armed with.
func (i *Interface) KeepAliveDelay() time.Duration {
	return i.keepalive.Delay()
}

// KeepAliveStats returns the keep-alive scheduler counters.
func (i *Interface) KeepAliveStats() keepalive.Stats {
	return i.keepalive.Stats()
}

// SendQoSNull sends a QoS-null frame to the AP so it sees the station
// awake.
func (i *Interface) SendQoSNull() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.associated {
		return ErrNotAssociated
	}
	return i.sendNull(true)
}

// RecordTx records that the data path sent a frame at t.
func (i *Interface) RecordTx(t time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if t.After(i.bss.LastTx) {
		i.bss.LastTx = t
	}
}

func (i *Interface) startKeepAlive() bool {
	if !i.associated || i.bss.MaxIdle == 0 {
		return false
	}

	maxIdle := keepalive.MaxIdleDuration(i.bss.MaxIdle)
	d, ok := i.keepalive.Schedule(maxIdle, i.bss.LastTx, i.probe)
	if !ok {
		i.tracer.KeepAlive(i.vif, i.bss.BSSID.String(), log.KeepAliveRejected, 0, maxIdle)
		return false
	}
	i.tracer.KeepAlive(i.vif, i.bss.BSSID.String(), log.KeepAliveArmed, d.Delay, maxIdle)
	return true
}

func (i *Interface) stopKeepAlive() {
	if i.keepalive.Stop() {
		i.tracer.KeepAlive(i.vif, i.bss.BSSID.String(), log.KeepAliveCancelled, 0, 0)
	}
	i.bss.MaxIdle = 0
}

// onKeepAliveFire runs on the timer goroutine.
func (i *Interface) onKeepAliveFire() {
	i.mu.Lock()
	defer i.mu.Unlock()

	// The link may have gone down while the fire waited for the lock.
	if !i.associated || i.bss.MaxIdle == 0 {
		return
	}
	i.startKeepAlive()
}

// probe sends the idle probe. The caller holds i.mu.
func (i *Interface) probe() {
	if err := i.sendNull(i.self.QoS); err != nil {
		i.warnLog("keep-alive: probe failed", "vif", i.vif, "error", err)
		i.tracer.Error(i.vif, log.LayerKeepAlive, err, "probe")
		return
	}
	i.metrics.KeepAliveProbe()
	i.tracer.KeepAlive(i.vif, i.bss.BSSID.String(), log.KeepAliveProbe, 0, keepalive.MaxIdleDuration(i.bss.MaxIdle))
}

// sendNull transmits a null or QoS-null frame to the AP and stamps the
// last-tx time. The caller holds i.mu.
func (i *Interface) sendNull(qos bool) error {
	if i.tx == nil {
		return ErrNoTransmitter
	}
	frame, err := dot11.NullFrame(i.bss.BSSID, i.addr, qos)
	if err != nil {
		return err
	}
	if err := i.tx.Transmit(i.vif, frame); err != nil {
		return fmt.Errorf("transmit null frame: %w", err)
	}
	i.bss.LastTx = i.clock.Now()
	return nil
}
