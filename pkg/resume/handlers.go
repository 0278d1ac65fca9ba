package resume

import (
	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/driver"
	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/log"
	"github.com/wlanshim/wlanshim-go/pkg/netif"
)

// Replayed frame parameters.
const (
	scanLevel       = -10
	authTransaction = 2
)

// scan replaces the scan with the single retained BSS.
func (e *Engine) scan(iface *driver.Interface) Result {
	snap := e.handoff.Snapshot()

	channel, _ := dot11.ChannelFromFrequency(snap.Channel.Frequency)
	ies, err := dot11.BuildScanIEs(snap.AP.SSID, channel, snap.AP.Security)
	if err != nil {
		e.warnLog("resume: build scan elements", "vif", iface.VIF(), "error", err)
		e.tracer.Error(iface.VIF(), log.LayerResume, err, "build scan elements")
		return ResultFailMemory
	}

	caps := driver.CapESS
	if snap.AP.Security.Protected() {
		caps |= driver.CapPrivacy
	}

	iface.FlushScan()
	iface.AddScanResult(driver.ScanResult{
		BSSID:          snap.AP.BSSID,
		SSID:           append([]byte(nil), snap.AP.SSID...),
		Frequency:      snap.Channel.Frequency,
		BeaconInterval: snap.AP.BeaconInterval,
		Caps:           caps,
		Level:          scanLevel,
		IEs:            ies,
	})
	iface.EmitSynthetic(event.Event{
		Kind: event.KindScanResults,
		Scan: &event.ScanInfo{Count: 1},
	})
	return ResultSuccess
}

// auth replays a successful open authentication. SAE needs a fresh
// commit/confirm exchange and cannot be replayed.
func (e *Engine) auth(iface *driver.Interface) Result {
	snap := e.handoff.Snapshot()
	if snap.AP.Security == dot11.SecuritySAE {
		return ResultFail
	}

	iface.EmitSynthetic(event.Event{
		Kind: event.KindAuth,
		Auth: &event.AuthInfo{
			Peer:        snap.AP.BSSID,
			BSSID:       snap.AP.BSSID,
			AuthType:    event.AuthOpen,
			Transaction: authTransaction,
		},
	})
	return ResultSuccess
}

// assoc restores the association the radio kept and replays its events.
func (e *Engine) assoc(iface *driver.Interface, r AssocRequest) Result {
	snap := e.handoff.Snapshot()

	iface.SetKeyMgmt(r.KeyMgmt)
	iface.RestoreAssociation(driver.AssocState{
		BSSID:          snap.AP.BSSID,
		SSID:           snap.AP.SSID,
		BeaconInterval: snap.AP.BeaconInterval,
		Frequency:      snap.Channel.Frequency,
		AID:            snap.Station.AID,
		QoS:            true,
		BlockAck:       snap.TID.BlockAck,
		MaxIdle:        snap.Station.MaxIdle,
	})
	if snap.Station.MaxIdle != 0 {
		iface.StartKeepAlive()
	}

	authorized := r.KeyMgmt.Active()
	iface.EmitSynthetic(event.Event{
		Kind: event.KindAssoc,
		Assoc: &event.AssocInfo{
			BSSID:      snap.AP.BSSID,
			Freq:       snap.Channel.Frequency,
			Authorized: authorized,
		},
	})

	if authorized {
		for _, k := range snap.Keys {
			if !k.Enabled {
				continue
			}
			iface.RestoreKey(k.Index, k.Material[:], k.TSC)
		}
		iface.EmitSynthetic(event.Event{Kind: event.KindPortAuthorized})
	}

	iface.NotifyApp(event.AppAssociated)
	return ResultSuccess
}

// port handles de-authorization by clearing every installed key.
// Authorization is never short-circuited.
func (e *Engine) port(iface *driver.Interface, r PortRequest) Result {
	if r.Authorize || !iface.KeyMgmt().Active() {
		return ResultFail
	}
	iface.ClearAllKeys()
	return ResultSuccess
}

// dhcp installs the retained address and closes the resume window. A
// snapshot without an address leaves the window open.
func (e *Engine) dhcp(iface *driver.Interface) Result {
	snap := e.handoff.Snapshot()
	if snap.IP.IsZero() {
		return ResultFailNoIP
	}
	if e.stack == nil {
		return ResultFail
	}

	vif := iface.VIF()
	info := snap.IP.Netif()
	if err := e.stack.SetIPInfo(vif, info); err != nil {
		e.warnLog("resume: set IP info", "vif", vif, "error", err)
		e.tracer.Error(vif, log.LayerResume, err, "set IP info")
		return ResultFail
	}
	if err := e.stack.SetDNS(vif); err != nil {
		e.warnLog("resume: set DNS", "vif", vif, "error", err)
	}
	e.stack.SetState(vif, netif.StateGotIP)

	if err := e.stack.AddStaticARP(info.Gateway, snap.AP.BSSID); err != nil {
		e.warnLog("resume: add gateway ARP entry", "vif", vif, "error", err)
		e.tracer.Error(vif, log.LayerResume, err, "add gateway ARP entry")
	}
	if err := iface.SendQoSNull(); err != nil {
		e.warnLog("resume: send QoS null", "vif", vif, "error", err)
		e.tracer.Error(vif, log.LayerResume, err, "send QoS null")
	}

	e.invalidate(iface, "address restored")
	return ResultSuccess
}
