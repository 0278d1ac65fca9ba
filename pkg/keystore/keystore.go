// Package keystore holds the cipher key slots of a peer or BSS.
//
// A Set has one Slot per key index. Index 0 bound to a concrete peer
// address is the pairwise key; indexes 1-3 are group keys. Slots are
// created zeroed and only become installed once the radio has been told
// about them.
package keystore

import (
	"encoding/binary"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
)

// NumSlots is the number of key indexes per set.
const NumSlots = 4

// MaxKeyLen is the longest key material a slot holds.
const MaxKeyLen = 32

// Alg is the key algorithm requested by the upstream framework.
type Alg uint8

const (
	// AlgNone requests removal of a key.
	AlgNone Alg = iota
	AlgWEP
	AlgTKIP
	AlgCCMP
)

// String returns the algorithm name.
func (a Alg) String() string {
	switch a {
	case AlgNone:
		return "NONE"
	case AlgWEP:
		return "WEP"
	case AlgTKIP:
		return "TKIP"
	case AlgCCMP:
		return "CCMP"
	default:
		return "UNKNOWN"
	}
}

// Cipher returns the slot cipher for alg with a key of keyLen bytes.
// WEP keys of 5 bytes are WEP40; any other WEP length is WEP104.
func (a Alg) Cipher(keyLen int) dot11.Cipher {
	switch a {
	case AlgWEP:
		if keyLen == 5 {
			return dot11.CipherWEP40
		}
		return dot11.CipherWEP104
	case AlgTKIP:
		return dot11.CipherTKIP
	case AlgCCMP:
		return dot11.CipherCCMP
	default:
		return dot11.CipherNone
	}
}

// Slot is a single cipher key slot.
type Slot struct {
	Cipher    dot11.Cipher
	Index     uint8
	Addr      dot11.MACAddr
	Material  []byte
	TSC       uint64
	Installed bool
}

// Pairwise reports whether the slot holds a unicast key.
func (s *Slot) Pairwise() bool {
	return s.Index == 0
}

// Fill replaces the slot contents except for the installed flag.
func (s *Slot) Fill(cipher dot11.Cipher, index uint8, addr dot11.MACAddr, material []byte, tsc uint64) {
	s.Cipher = cipher
	s.Index = index
	s.Addr = addr
	s.Material = append(s.Material[:0], material...)
	s.TSC = tsc
}

// Reset zeroes the slot.
func (s *Slot) Reset() {
	*s = Slot{}
}

// Set is the key slots of one owner, indexed by key index.
type Set struct {
	slots [NumSlots]Slot
	// current is the index of the last key written.
	current uint8
}

// Slot returns the slot for index, or nil if index is out of range.
func (k *Set) Slot(index uint8) *Slot {
	if int(index) >= NumSlots {
		return nil
	}
	return &k.slots[index]
}

// Current returns the slot written most recently.
func (k *Set) Current() *Slot {
	return &k.slots[k.current]
}

// SetCurrent records index as the most recently written slot.
func (k *Set) SetCurrent(index uint8) {
	if int(index) < NumSlots {
		k.current = index
	}
}

// Installed returns the indexes of all installed slots in ascending order.
func (k *Set) Installed() []uint8 {
	var out []uint8
	for i := range k.slots {
		if k.slots[i].Installed {
			out = append(out, uint8(i))
		}
	}
	return out
}

// Clear zeroes every slot.
func (k *Set) Clear() {
	*k = Set{}
}

// Snapshot returns copies of all slots.
func (k *Set) Snapshot() [NumSlots]Slot {
	var out [NumSlots]Slot
	for i, s := range k.slots {
		out[i] = s
		out[i].Material = append([]byte(nil), s.Material...)
	}
	return out
}

// SeqToTSC decodes a little-endian receive sequence counter of up to 8 bytes.
func SeqToTSC(seq []byte) uint64 {
	var b [8]byte
	copy(b[:], seq)
	return binary.LittleEndian.Uint64(b[:])
}
