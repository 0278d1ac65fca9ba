package retention

import (
	"fmt"
	"log/slog"
	"sync"
)

// Handoff carries the snapshot loaded at wake to the resume engine.
//
// The snapshot itself is never modified after the Handoff is created. Only
// the recovered flag changes: Invalidate clears it once and persists the
// change through the store.
type Handoff struct {
	snap   *Snapshot
	store  Store
	logger *slog.Logger

	mu        sync.Mutex
	recovered bool
}

// NewHandoff wraps snap, which may be nil when nothing was retained.
// store may be nil, in which case invalidation is not persisted.
func NewHandoff(snap *Snapshot, store Store, logger *slog.Logger) *Handoff {
	h := &Handoff{store: store, logger: logger}
	if snap != nil {
		h.snap = snap.Clone()
		h.recovered = snap.Recovered
	}
	return h
}

// Wake loads the snapshot from store and returns its Handoff. A store
// without a snapshot yields a Handoff holding none.
func Wake(store Store, logger *slog.Logger) (*Handoff, error) {
	snap, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load retention snapshot: %w", err)
	}
	h := NewHandoff(snap, store, logger)
	if snap == nil {
		h.debugLog("no retention snapshot")
	} else {
		h.debugLog("retention snapshot loaded",
			"ssid", string(snap.AP.SSID),
			"bssid", snap.AP.BSSID.String(),
			"recovered", snap.Recovered)
	}
	return h, nil
}

// Snapshot returns the retained snapshot, or nil. The result must not be
// modified.
func (h *Handoff) Snapshot() *Snapshot {
	if h == nil {
		return nil
	}
	return h.snap
}

// Recovered reports whether the snapshot may still be replayed.
func (h *Handoff) Recovered() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recovered
}

// Invalidate closes the resume window. It reports whether the flag was
// set before the call. A store failure is returned but the window stays
// closed in memory.
func (h *Handoff) Invalidate(reason string) (bool, error) {
	if h == nil {
		return false, nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.recovered {
		return false, nil
	}
	h.recovered = false
	h.debugLog("resume window closed", "reason", reason)

	if h.store == nil {
		return true, nil
	}
	if err := h.store.Invalidate(); err != nil {
		return true, fmt.Errorf("persist invalidation: %w", err)
	}
	return true, nil
}

func (h *Handoff) debugLog(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}
