package log

import (
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
)

// Event represents a driver trace event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the driver instance that produced the event (UUID).
	SessionID string `cbor:"2,keyasint"`

	// VIF is the virtual interface index.
	VIF int `cbor:"3,keyasint"`

	// Direction indicates flow relative to the driver core.
	Direction Direction `cbor:"4,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"5,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"6,keyasint"`

	// Role of the interface when the event was captured.
	Role Role `cbor:"7,keyasint,omitempty"`

	// Peer is the station or AP address the event concerns.
	Peer string `cbor:"8,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Command     *CommandEvent     `cbor:"10,keyasint,omitempty"` // Radio layer
	Upstream    *UpstreamEvent    `cbor:"11,keyasint,omitempty"` // Upstream layer
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Lifecycle layer
	KeepAlive   *KeepAliveEvent   `cbor:"13,keyasint,omitempty"` // Keep-alive layer
	Resume      *ResumeEvent      `cbor:"14,keyasint,omitempty"` // Resume layer
	Error       *ErrorEventData   `cbor:"15,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates flow relative to the driver core.
type Direction uint8

const (
	// DirectionInternal indicates a change inside the core.
	DirectionInternal Direction = 0
	// DirectionDown indicates output toward the radio.
	DirectionDown Direction = 1
	// DirectionUp indicates output toward the upstream framework.
	DirectionUp Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionInternal:
		return "INT"
	case DirectionDown:
		return "DOWN"
	case DirectionUp:
		return "UP"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerRadio is the radio command channel.
	LayerRadio Layer = 0
	// LayerUpstream is the upstream event sink.
	LayerUpstream Layer = 1
	// LayerLifecycle is the station lifecycle state machine.
	LayerLifecycle Layer = 2
	// LayerKeepAlive is the keep-alive scheduler.
	LayerKeepAlive Layer = 3
	// LayerResume is the retention resume engine.
	LayerResume Layer = 4
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerRadio:
		return "RADIO"
	case LayerUpstream:
		return "UPSTREAM"
	case LayerLifecycle:
		return "LIFECYCLE"
	case LayerKeepAlive:
		return "KEEPALIVE"
	case LayerResume:
		return "RESUME"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCommand indicates a radio command.
	CategoryCommand Category = 0
	// CategoryEvent indicates an upstream event.
	CategoryEvent Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryResult indicates a resume engine outcome.
	CategoryResult Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCommand:
		return "COMMAND"
	case CategoryEvent:
		return "EVENT"
	case CategoryState:
		return "STATE"
	case CategoryResult:
		return "RESULT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Role indicates the operating mode of the interface.
type Role uint8

const (
	// RoleSTA indicates a client interface.
	RoleSTA Role = 0
	// RoleAP indicates an access point interface.
	RoleAP Role = 1
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleSTA:
		return "STA"
	case RoleAP:
		return "AP"
	default:
		return "UNKNOWN"
	}
}

// CommandEvent captures a command submitted to the radio.
type CommandEvent struct {
	// Kind is the command kind.
	Kind radio.CommandKind `cbor:"1,keyasint"`

	// Params lists the typed parameters in submission order.
	Params []ParamEvent `cbor:"2,keyasint,omitempty"`
}

// ParamEvent is the printable form of one command parameter.
// Key material is never recorded.
type ParamEvent struct {
	Kind  radio.ParamKind `cbor:"1,keyasint"`
	Value string          `cbor:"2,keyasint"`
}

// NewCommandEvent converts a radio command for the trace.
func NewCommandEvent(cmd radio.Command) *CommandEvent {
	ce := &CommandEvent{Kind: cmd.Kind}
	for _, p := range cmd.Params {
		ce.Params = append(ce.Params, ParamEvent{Kind: p.Kind(), Value: p.String()})
	}
	return ce
}

// UpstreamEvent captures an event delivered to the upstream framework.
type UpstreamEvent struct {
	// Kind is the upstream event kind.
	Kind event.Kind `cbor:"1,keyasint"`

	// Status is the status or reason code carried by the event, if any.
	Status uint16 `cbor:"2,keyasint,omitempty"`

	// Authorized mirrors the assoc event's pre-authorized flag.
	Authorized bool `cbor:"3,keyasint,omitempty"`

	// Frequency is the channel of an assoc event in MHz.
	Frequency uint16 `cbor:"4,keyasint,omitempty"`

	// Synthetic marks events replayed from a retention snapshot.
	Synthetic bool `cbor:"5,keyasint,omitempty"`
}

// StateChangeEvent captures station, link and resume window transitions.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityStation indicates a peer lifecycle change.
	StateEntityStation StateEntity = 0
	// StateEntityLink indicates the interface association changed.
	StateEntityLink StateEntity = 1
	// StateEntityResumeWindow indicates the retention snapshot was invalidated.
	StateEntityResumeWindow StateEntity = 2
	// StateEntityKey indicates a key slot was installed or removed.
	StateEntityKey StateEntity = 3
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityStation:
		return "STATION"
	case StateEntityLink:
		return "LINK"
	case StateEntityResumeWindow:
		return "RESUME_WINDOW"
	case StateEntityKey:
		return "KEY"
	default:
		return "UNKNOWN"
	}
}

// KeepAliveEvent captures keep-alive scheduler activity.
type KeepAliveEvent struct {
	// Action taken by the scheduler.
	Action KeepAliveAction `cbor:"1,keyasint"`

	// Delay until the next planning step (armed only).
	Delay time.Duration `cbor:"2,keyasint,omitempty"`

	// MaxIdle is the max idle period the plan was computed for.
	MaxIdle time.Duration `cbor:"3,keyasint,omitempty"`
}

// KeepAliveAction is the scheduler activity recorded by a KeepAliveEvent.
type KeepAliveAction uint8

const (
	// KeepAliveArmed indicates the timer was armed.
	KeepAliveArmed KeepAliveAction = 0
	// KeepAliveProbe indicates an idle probe frame was sent.
	KeepAliveProbe KeepAliveAction = 1
	// KeepAliveCancelled indicates the timer was cancelled.
	KeepAliveCancelled KeepAliveAction = 2
	// KeepAliveRejected indicates the max idle period was below the floor.
	KeepAliveRejected KeepAliveAction = 3
)

// String returns the action name.
func (a KeepAliveAction) String() string {
	switch a {
	case KeepAliveArmed:
		return "ARMED"
	case KeepAliveProbe:
		return "PROBE"
	case KeepAliveCancelled:
		return "CANCELLED"
	case KeepAliveRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// ResumeEvent captures one resume engine call.
type ResumeEvent struct {
	// Stage is the protocol stage name.
	Stage string `cbor:"1,keyasint"`

	// Result is the result name.
	Result string `cbor:"2,keyasint"`

	// Success is set when the live path was short-circuited.
	Success bool `cbor:"3,keyasint,omitempty"`

	// Duration of the call.
	Duration time.Duration `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
