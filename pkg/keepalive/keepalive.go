// Package keepalive schedules idle probes toward an AP so the station is
// not dropped when the AP's BSS max idle period expires.
//
// The scheduler owns a single one-shot timer. Each planning step either
// sends a probe right away or arms the timer for the moment the idle
// budget runs out; the owner re-plans from the fire callback, so the
// timer keeps re-arming itself until Stop is called.
package keepalive

import (
	"sync"
	"time"
)

const (
	// TimeUnit is one 802.11 time unit.
	TimeUnit = 1024 * time.Microsecond

	// MaxIdleUnit is the unit of the BSS max idle period field (1000 TU).
	MaxIdleUnit = 1000 * TimeUnit

	// MinMaxIdle is the smallest max idle period that is scheduled.
	MinMaxIdle = 1024 * time.Millisecond

	// Margin is subtracted from the max idle period so the probe reaches
	// the AP before its own timer expires.
	Margin = 1000 * time.Millisecond

	// MinDelay is the shortest timer ever armed.
	MinDelay = 10 * time.Millisecond
)

// MaxIdleDuration converts a max idle period in native units to a duration.
func MaxIdleDuration(native uint16) time.Duration {
	return time.Duration(native) * MaxIdleUnit
}

// Decision is the outcome of one planning step.
type Decision struct {
	// SendNow is set when the idle budget is already used up.
	SendNow bool

	// Delay is how long to wait before the next planning step.
	Delay time.Duration
}

// Plan computes the next keep-alive action. It returns false when maxIdle
// is below MinMaxIdle.
//
// When the probe is due, Delay is the full budget, since the probe itself
// resets the idle time.
func Plan(maxIdle time.Duration, lastTx, now time.Time) (Decision, bool) {
	if maxIdle < MinMaxIdle {
		return Decision{}, false
	}

	budget := maxIdle - Margin
	elapsed := now.Sub(lastTx)

	var d Decision
	if elapsed >= budget {
		d.SendNow = true
		d.Delay = budget
	} else {
		d.Delay = budget - elapsed
	}
	if d.Delay < MinDelay {
		d.Delay = MinDelay
	}
	return d, true
}

// Timer is a stoppable one-shot timer.
type Timer interface {
	Stop() bool
}

// Clock provides the current time and one-shot timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// AfterFunc wraps time.AfterFunc.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Stats holds scheduler counters.
type Stats struct {
	Armed     uint64
	Fired     uint64
	Probes    uint64
	Cancelled uint64
}

// Scheduler drives the keep-alive timer of one interface.
// It is safe for concurrent use.
type Scheduler struct {
	mu     sync.Mutex
	clock  Clock
	onFire func()

	timer Timer
	delay time.Duration
	// gen identifies the armed timer; fires from older timers are dropped.
	gen   uint64
	stats Stats
}

// New creates a Scheduler. onFire runs on the timer goroutine each time an
// armed timer expires; it is expected to call Schedule again while the
// link is up. A nil clock means SystemClock.
func New(clock Clock, onFire func()) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock:  clock,
		onFire: onFire,
	}
}

// Schedule runs one planning step. If the probe is due, probe is called
// before the timer is re-armed. It returns false, arming nothing, when
// maxIdle is below MinMaxIdle.
func (s *Scheduler) Schedule(maxIdle time.Duration, lastTx time.Time, probe func()) (Decision, bool) {
	d, ok := Plan(maxIdle, lastTx, s.clock.Now())
	if !ok {
		return d, false
	}

	if d.SendNow && probe != nil {
		probe()
		s.mu.Lock()
		s.stats.Probes++
		s.mu.Unlock()
	}

	s.Arm(d.Delay)
	return d, true
}

// Arm replaces any armed timer with one firing after d, clamped to
// MinDelay.
func (s *Scheduler) Arm(d time.Duration) {
	if d < MinDelay {
		d = MinDelay
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.delay = d
	s.stats.Armed++
	s.timer = s.clock.AfterFunc(d, func() { s.fire(gen) })
}

// Stop cancels the armed timer. Stopping an unarmed scheduler is a no-op.
// It reports whether a timer was armed.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer == nil {
		return false
	}
	s.timer.Stop()
	s.timer = nil
	s.delay = 0
	s.stats.Cancelled++
	return true
}

// Armed reports whether a timer is pending.
func (s *Scheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Delay returns the delay of the pending timer, or 0 when unarmed.
func (s *Scheduler) Delay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delay
}

// Stats returns a copy of the counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.timer == nil {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.delay = 0
	s.stats.Fired++
	cb := s.onFire
	s.mu.Unlock()

	if cb != nil {
		cb()
	}
}
