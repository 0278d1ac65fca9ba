package station

import "github.com/wlanshim/wlanshim-go/pkg/dot11"

// Registry is a fixed-capacity table of peer records.
//
// Records live in an arena whose indices stay stable for the lifetime of a
// peer; a separate occupancy set tells free slots from live ones, so a
// removed peer never leaves a half-valid record behind.
type Registry struct {
	arena    []Station
	occupied []bool
	count    int
}

// NewRegistry creates a registry holding at most capacity peers.
func NewRegistry(capacity int) *Registry {
	if capacity < 0 {
		capacity = 0
	}
	return &Registry{
		arena:    make([]Station, capacity),
		occupied: make([]bool, capacity),
	}
}

// Lookup returns the record for addr.
func (r *Registry) Lookup(addr dot11.MACAddr) (*Station, bool) {
	i := r.index(addr)
	if i < 0 {
		return nil, false
	}
	return &r.arena[i], true
}

// Add creates a zeroed record for addr in the first free slot. If a record
// for addr already exists it is returned unchanged. Add returns false when
// the table is full.
func (r *Registry) Add(addr dot11.MACAddr) (*Station, bool) {
	if sta, ok := r.Lookup(addr); ok {
		return sta, true
	}
	for i, used := range r.occupied {
		if used {
			continue
		}
		r.arena[i].Reset(addr)
		r.occupied[i] = true
		r.count++
		return &r.arena[i], true
	}
	return nil, false
}

// Remove frees the record for addr. It reports whether a record existed.
func (r *Registry) Remove(addr dot11.MACAddr) bool {
	i := r.index(addr)
	if i < 0 {
		return false
	}
	r.arena[i] = Station{}
	r.occupied[i] = false
	r.count--
	return true
}

// Slot returns the arena index of addr's record.
func (r *Registry) Slot(addr dot11.MACAddr) (int, bool) {
	i := r.index(addr)
	return i, i >= 0
}

// Len returns the number of live records.
func (r *Registry) Len() int {
	return r.count
}

// Cap returns the table capacity.
func (r *Registry) Cap() int {
	return len(r.arena)
}

// Each calls fn for every live record in slot order.
func (r *Registry) Each(fn func(*Station)) {
	for i, used := range r.occupied {
		if used {
			fn(&r.arena[i])
		}
	}
}

func (r *Registry) index(addr dot11.MACAddr) int {
	for i, used := range r.occupied {
		if used && r.arena[i].Addr == addr {
			return i
		}
	}
	return -1
}
