package log

import (
	"time"

	"github.com/google/uuid"

	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
)

// Tracer builds trace events and stamps them with a session ID and time.
// A nil *Tracer discards everything, so components can hold one
// unconditionally.
type Tracer struct {
	logger  Logger
	session string
	now     func() time.Time
}

// NewTracer creates a Tracer writing to logger. An empty session gets a
// fresh UUID. A nil logger yields a Tracer that discards events.
func NewTracer(logger Logger, session string) *Tracer {
	if logger == nil {
		logger = NoopLogger{}
	}
	if session == "" {
		session = uuid.New().String()
	}
	return &Tracer{logger: logger, session: session, now: time.Now}
}

// WithClock returns a copy of t reading time from now.
func (t *Tracer) WithClock(now func() time.Time) *Tracer {
	if t == nil {
		return nil
	}
	c := *t
	c.now = now
	return &c
}

// Session returns the session ID.
func (t *Tracer) Session() string {
	if t == nil {
		return ""
	}
	return t.session
}

// Log stamps and records e.
func (t *Tracer) Log(e Event) {
	if t == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = t.now()
	}
	if e.SessionID == "" {
		e.SessionID = t.session
	}
	t.logger.Log(e)
}

// Command records a radio command.
func (t *Tracer) Command(vif int, role Role, cmd radio.Command) {
	if t == nil {
		return
	}
	t.Log(Event{
		VIF:       vif,
		Role:      role,
		Direction: DirectionDown,
		Layer:     LayerRadio,
		Category:  CategoryCommand,
		Command:   NewCommandEvent(cmd),
	})
}

// Upstream records an upstream event. Synthetic marks replayed events.
func (t *Tracer) Upstream(vif int, role Role, ev event.Event, synthetic bool) {
	if t == nil {
		return
	}
	ue := &UpstreamEvent{Kind: ev.Kind, Synthetic: synthetic}
	var peer string
	switch {
	case ev.Auth != nil:
		peer = ev.Auth.Peer.String()
		ue.Status = ev.Auth.Status
	case ev.Assoc != nil:
		peer = ev.Assoc.BSSID.String()
		ue.Authorized = ev.Assoc.Authorized
		ue.Frequency = ev.Assoc.Freq
	case ev.Deauth != nil:
		peer = ev.Deauth.Addr.String()
		ue.Status = ev.Deauth.Reason
	case ev.TxStatus != nil:
		peer = ev.TxStatus.Dst.String()
	}
	t.Log(Event{
		VIF:       vif,
		Role:      role,
		Peer:      peer,
		Direction: DirectionUp,
		Layer:     LayerUpstream,
		Category:  CategoryEvent,
		Upstream:  ue,
	})
}

// StateChange records a state transition.
func (t *Tracer) StateChange(vif int, role Role, peer string, entity StateEntity, oldState, newState, reason string) {
	if t == nil {
		return
	}
	t.Log(Event{
		VIF:       vif,
		Role:      role,
		Peer:      peer,
		Direction: DirectionInternal,
		Layer:     LayerLifecycle,
		Category:  CategoryState,
		StateChange: &StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

// KeepAlive records scheduler activity.
func (t *Tracer) KeepAlive(vif int, peer string, action KeepAliveAction, delay, maxIdle time.Duration) {
	if t == nil {
		return
	}
	t.Log(Event{
		VIF:       vif,
		Peer:      peer,
		Direction: DirectionInternal,
		Layer:     LayerKeepAlive,
		Category:  CategoryState,
		KeepAlive: &KeepAliveEvent{Action: action, Delay: delay, MaxIdle: maxIdle},
	})
}

// Resume records a resume engine outcome.
func (t *Tracer) Resume(vif int, stage, result string, success bool, d time.Duration) {
	if t == nil {
		return
	}
	t.Log(Event{
		VIF:       vif,
		Direction: DirectionInternal,
		Layer:     LayerResume,
		Category:  CategoryResult,
		Resume: &ResumeEvent{
			Stage:    stage,
			Result:   result,
			Success:  success,
			Duration: d,
		},
	})
}

// Error records an error at layer.
func (t *Tracer) Error(vif int, layer Layer, err error, context string) {
	if t == nil || err == nil {
		return
	}
	t.Log(Event{
		VIF:       vif,
		Direction: DirectionInternal,
		Layer:     layer,
		Category:  CategoryError,
		Error: &ErrorEventData{
			Layer:   layer,
			Message: err.Error(),
			Context: context,
		},
	})
}
