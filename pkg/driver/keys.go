package driver

import (
	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/keystore"
	"github.com/wlanshim/wlanshim-go/pkg/log"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

// SetKey installs or removes a key.
//
// addr is the peer for a pairwise key, a broadcast or multicast address
// for a group key, or nil for a default key. alg AlgNone, or a non-WEP
// alg without addr, removes the key at index. seq is the little-endian
// receive sequence counter.
//
// An installed slot is always removed from the radio before it is
// written again. SetKey returns false when the request is rejected.
func (i *Interface) SetKey(alg keystore.Alg, addr *dot11.MACAddr, index uint8, material, seq []byte) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if int(index) >= keystore.NumSlots || len(material) > keystore.MaxKeyLen {
		i.debugLog("SetKey: rejected", "vif", i.vif, "index", index, "len", len(material))
		return false
	}

	remove := alg == keystore.AlgNone || (alg != keystore.AlgWEP && addr == nil)
	if index == 0 && addr == nil {
		// Pairwise keys are only cleared for a specific peer.
		i.debugLog("SetKey: pairwise key without peer", "vif", i.vif)
		return false
	}

	set, ok := i.keySet(addr)
	if !ok {
		i.debugLog("SetKey: unknown peer", "vif", i.vif, "addr", addr)
		return false
	}
	aid := i.aidFor(addr)

	slot := set.Slot(index)
	if remove && !slot.Installed {
		return true
	}

	keyAddr := dot11.BroadcastAddr
	if addr != nil {
		keyAddr = *addr
	}
	slot.Fill(alg.Cipher(len(material)), index, keyAddr, material, keystore.SeqToTSC(seq))
	set.SetCurrent(index)

	if alg == keystore.AlgWEP {
		// The radio keys WEP by BSSID and has no separate pairwise slot.
		pw := i.self.Keys.Slot(0)
		pw.Cipher = slot.Cipher
		pw.Index = slot.Index
		i.submit(radio.CmdSet, radio.BSSIDParam{BSSID: i.bss.BSSID})
		slot.Addr = i.bss.BSSID
	}

	broadcast := addr != nil && addr.IsBroadcast()
	if slot.Installed {
		i.disableKey(slot, aid)
		// Group key rotation is always seen by the radio as two commands.
		if !remove || (i.role == RoleAP && broadcast) {
			i.installKey(slot, aid)
		}
		return true
	}

	i.installKey(slot, aid)
	return true
}

// ClearAllKeys removes every installed key of the interface and its
// peers, one command per slot.
func (i *Interface) ClearAllKeys() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.clearAllKeys()
}

func (i *Interface) clearAllKeys() {
	clearSet := func(set *keystore.Set, aid uint16) {
		for _, idx := range set.Installed() {
			i.disableKey(set.Slot(idx), aid)
		}
	}

	clearSet(&i.self.Keys, i.self.AID)
	i.stations.Each(func(sta *station.Station) {
		clearSet(&sta.Keys, sta.AID)
	})
	clearSet(&i.groupKeys, i.self.AID)
}

// RestoreKey marks a CCMP key as installed without telling the radio,
// for keys the radio kept across a power cycle. Index 0 is the pairwise
// key of the current BSSID; other indexes are group keys.
func (i *Interface) RestoreKey(index uint8, material []byte, tsc uint64) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if int(index) >= keystore.NumSlots || len(material) > keystore.MaxKeyLen {
		return false
	}

	set, addr := &i.groupKeys, dot11.BroadcastAddr
	if index == 0 {
		set, addr = &i.self.Keys, i.bss.BSSID
	}
	slot := set.Slot(index)
	slot.Fill(dot11.CipherCCMP, index, addr, material, tsc)
	slot.Installed = true
	set.SetCurrent(index)

	i.traceKey(slot, "RESTORED")
	return true
}

// keySet selects the key set addressed by addr. The caller holds i.mu.
func (i *Interface) keySet(addr *dot11.MACAddr) (*keystore.Set, bool) {
	if addr == nil || addr.IsMulticast() {
		return &i.groupKeys, true
	}
	if i.role == RoleAP && i.groupKeys.Current().Cipher.IsWEP() {
		return &i.groupKeys, true
	}
	if i.role == RoleSTA {
		return &i.self.Keys, true
	}
	sta, ok := i.stations.Lookup(*addr)
	if !ok {
		return nil, false
	}
	return &sta.Keys, true
}

// aidFor returns the association ID recorded for addr, or 0.
func (i *Interface) aidFor(addr *dot11.MACAddr) uint16 {
	if addr == nil || addr.IsMulticast() || i.role == RoleSTA {
		return i.self.AID
	}
	if sta, ok := i.stations.Lookup(*addr); ok {
		return sta.AID
	}
	return 0
}

func (i *Interface) keyParam(slot *keystore.Slot, aid uint16) radio.KeyParam {
	addr := slot.Addr
	if i.role == RoleAP && addr.IsBroadcast() {
		addr = i.addr
	}
	return radio.KeyParam{
		Cipher:   slot.Cipher,
		Index:    slot.Index,
		Addr:     addr,
		AID:      aid,
		Pairwise: slot.Pairwise(),
		Material: append([]byte(nil), slot.Material...),
	}
}

func (i *Interface) installKey(slot *keystore.Slot, aid uint16) {
	i.submit(radio.CmdSetKey, i.keyParam(slot, aid))
	slot.Installed = true
	i.traceKey(slot, "INSTALLED")
}

func (i *Interface) disableKey(slot *keystore.Slot, aid uint16) {
	i.submit(radio.CmdDisableKey, i.keyParam(slot, aid))
	slot.Installed = false
	i.traceKey(slot, "REMOVED")
}

func (i *Interface) traceKey(slot *keystore.Slot, newState string) {
	i.tracer.StateChange(i.vif, i.role.trace(), slot.Addr.String(), log.StateEntityKey,
		"", newState, slot.Cipher.String())
}
