package driver

import (
	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/log"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

// Authenticate moves addr to AUTH.
func (i *Interface) Authenticate(addr dot11.MACAddr) bool {
	return i.Transition(addr, 0, station.StateAuth)
}

// Associate moves addr to ASSOC with the given association ID.
func (i *Interface) Associate(addr dot11.MACAddr, aid uint16) bool {
	return i.Transition(addr, aid, station.StateAssoc)
}

// Deauthenticate moves a known peer back to NONE.
func (i *Interface) Deauthenticate(addr dot11.MACAddr) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.lookup(addr); !ok {
		i.debugLog("Deauthenticate: unknown peer", "vif", i.vif, "addr", addr)
		return false
	}
	return i.transition(addr, 0, station.StateNone)
}

// Disassociate moves addr back to NONE.
func (i *Interface) Disassociate(addr dot11.MACAddr) bool {
	return i.Transition(addr, 0, station.StateNone)
}

// RemoveStation destroys the record of addr.
func (i *Interface) RemoveStation(addr dot11.MACAddr) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	sta, ok := i.lookup(addr)
	if !ok {
		i.debugLog("RemoveStation: unknown peer", "vif", i.vif, "addr", addr)
		return false
	}
	return i.transition(addr, sta.AID, station.StateNotExist)
}

// StationState returns the lifecycle state of addr, or false if the peer
// has no record.
func (i *Interface) StationState(addr dot11.MACAddr) (station.State, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	sta, ok := i.lookup(addr)
	if !ok {
		return station.StateNotExist, false
	}
	return sta.State, true
}

// Station returns a copy of the record of addr.
func (i *Interface) Station(addr dot11.MACAddr) (station.Station, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	sta, ok := i.lookup(addr)
	if !ok {
		return station.Station{}, false
	}
	return *sta, true
}

// Peers returns the addresses of all peers with a record.
func (i *Interface) Peers() []dot11.MACAddr {
	i.mu.Lock()
	defer i.mu.Unlock()

	var out []dot11.MACAddr
	if i.role == RoleSTA {
		if i.self.State != station.StateNotExist {
			out = append(out, i.self.Addr)
		}
		return out
	}
	i.stations.Each(func(sta *station.Station) {
		out = append(out, sta.Addr)
	})
	return out
}

// Transition moves addr to state and tells the radio. It returns false
// when nothing changed: the peer is already in state, it is unknown and
// state needs an existing record, or the peer table is full.
func (i *Interface) Transition(addr dot11.MACAddr, aid uint16, state station.State) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.transition(addr, aid, state)
}

func (i *Interface) transition(addr dot11.MACAddr, aid uint16, state station.State) bool {
	sta, known := i.lookup(addr)
	if known && sta.State == state {
		return false
	}

	reason := ""
	switch state {
	case station.StateNotExist:
		if !known {
			return false
		}
		old := sta.State
		i.submit(radio.CmdStaCmd, radio.StaParam{Cmd: radio.StaCmdRemove, Addr: addr, AID: sta.AID})
		i.releaseKeys(sta)
		i.removeStation(addr)
		i.traceStation(addr, old, state, "")
		i.updateStationGauge()
		return true

	case station.StateAuth:
		if known {
			// A peer authenticating again has lost its old session.
			i.emit(event.Event{
				Kind: event.KindDeauth,
				Deauth: &event.DeauthInfo{
					Addr:             addr,
					Reason:           event.ReasonDeauthLeaving,
					LocallyGenerated: true,
				},
			}, false)
			i.removeStation(addr)
			reason = "reauthenticated"
		}
		var ok bool
		sta, ok = i.addStation(addr)
		if !ok {
			i.warnLog("transition: peer table full", "vif", i.vif, "addr", addr)
			i.updateStationGauge()
			return false
		}
		sta.AID = aid
		if i.role == RoleAP {
			sta.QoS = true
			i.shareWEPGroupKey(sta)
		}

	case station.StateAssoc:
		if !known {
			// The peer skipped deauth, e.g. after resetting; start it over.
			if !i.transition(addr, 0, station.StateAuth) {
				return false
			}
			sta, _ = i.lookup(addr)
			reason = "implicit auth"
		}
		sta.AID = aid
		i.submit(radio.CmdStaCmd, radio.StaParam{Cmd: radio.StaCmdAdd, Addr: addr, AID: aid})

	default:
		if !known {
			return false
		}
	}

	old := sta.State
	sta.State = state
	i.submit(radio.CmdStaCmd, radio.StaParam{Cmd: radio.StaCmdState, Addr: addr, AID: aid, State: state})
	i.traceStation(addr, old, state, reason)
	i.updateStationGauge()
	return true
}

// lookup finds the record of addr. In the STA role only the self record
// exists. The caller holds i.mu.
func (i *Interface) lookup(addr dot11.MACAddr) (*station.Station, bool) {
	if i.role == RoleSTA {
		if i.self.State != station.StateNotExist && i.self.Addr == addr {
			return &i.self, true
		}
		return nil, false
	}
	return i.stations.Lookup(addr)
}

func (i *Interface) addStation(addr dot11.MACAddr) (*station.Station, bool) {
	if i.role == RoleSTA {
		i.self.Reset(addr)
		return &i.self, true
	}
	return i.stations.Add(addr)
}

func (i *Interface) removeStation(addr dot11.MACAddr) {
	if i.role == RoleSTA {
		i.self = station.Station{}
		return
	}
	i.stations.Remove(addr)
}

// releaseKeys removes the current key of a departing peer from the radio.
// WEP keys are always removed since every peer shares the group key.
func (i *Interface) releaseKeys(sta *station.Station) {
	slot := sta.Keys.Current()
	if slot.Cipher.IsWEP() || slot.Installed {
		i.disableKey(slot, sta.AID)
	}
}

// shareWEPGroupKey installs an installed WEP group key for a new peer's
// unicast traffic.
func (i *Interface) shareWEPGroupKey(sta *station.Station) {
	g := i.groupKeys.Current()
	if !g.Cipher.IsWEP() || !g.Installed {
		return
	}
	i.submit(radio.CmdSetKey, radio.KeyParam{
		Cipher:   g.Cipher,
		Index:    g.Index,
		Addr:     sta.Addr,
		AID:      sta.AID,
		Pairwise: g.Index == 0,
		Material: append([]byte(nil), g.Material...),
	})
}

func (i *Interface) traceStation(addr dot11.MACAddr, oldState, newState station.State, reason string) {
	i.debugLog("transition",
		"vif", i.vif,
		"addr", addr,
		"from", oldState,
		"to", newState)
	i.tracer.StateChange(i.vif, i.role.trace(), addr.String(), log.StateEntityStation,
		oldState.String(), newState.String(), reason)
}
