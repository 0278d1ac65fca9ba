// Package event defines the events the driver core reports upstream.
//
// The core only produces events. An Event carries a Kind and exactly one
// kind-specific payload.
package event

import (
	"sync"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
)

// Kind identifies an upstream event.
type Kind uint8

const (
	KindScanResults Kind = iota
	KindAuth
	KindAssoc
	KindDeauth
	KindDisassoc
	KindPortAuthorized
	KindEAPOLTxStatus
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case KindScanResults:
		return "SCAN_RESULTS"
	case KindAuth:
		return "AUTH"
	case KindAssoc:
		return "ASSOC"
	case KindDeauth:
		return "DEAUTH"
	case KindDisassoc:
		return "DISASSOC"
	case KindPortAuthorized:
		return "PORT_AUTHORIZED"
	case KindEAPOLTxStatus:
		return "EAPOL_TX_STATUS"
	default:
		return "UNKNOWN"
	}
}

// Authentication algorithm numbers.
const (
	AuthOpen   uint16 = 0
	AuthShared uint16 = 1
	AuthSAE    uint16 = 3
)

// ReasonDeauthLeaving is the reason code used for locally generated
// deauthentication.
const ReasonDeauthLeaving uint16 = 3

// ScanInfo is the payload of KindScanResults.
type ScanInfo struct {
	Aborted bool
	Count   int
}

// AuthInfo is the payload of KindAuth.
type AuthInfo struct {
	Peer        dot11.MACAddr
	BSSID       dot11.MACAddr
	AuthType    uint16
	Transaction uint16
	Status      uint16
	IEs         []byte
}

// AssocInfo is the payload of KindAssoc.
type AssocInfo struct {
	BSSID dot11.MACAddr
	Freq  uint16
	// Authorized tells the upstream framework the port is already
	// authorized and no key handshake will follow.
	Authorized bool
	ReqIEs     []byte
	RespIEs    []byte
}

// DeauthInfo is the payload of KindDeauth and KindDisassoc.
type DeauthInfo struct {
	Addr             dot11.MACAddr
	Reason           uint16
	LocallyGenerated bool
}

// TxStatusInfo is the payload of KindEAPOLTxStatus.
type TxStatusInfo struct {
	Dst  dot11.MACAddr
	Data []byte
	Ack  bool
}

// Event is one upstream notification.
type Event struct {
	Kind Kind
	VIF  int

	// Kind-specific payload (one of these is set).
	Scan     *ScanInfo
	Auth     *AuthInfo
	Assoc    *AssocInfo
	Deauth   *DeauthInfo
	TxStatus *TxStatusInfo
}

// Sink receives upstream events.
type Sink interface {
	HandleEvent(ev Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev Event)

// HandleEvent calls f(ev).
func (f SinkFunc) HandleEvent(ev Event) {
	f(ev)
}

// AppEvent is a notification for the application layer above the
// upstream framework.
type AppEvent uint8

const (
	AppAssociated AppEvent = iota
	AppDisassociated
	AppDeauthenticated
	AppGotIP
)

// String returns the application event name.
func (e AppEvent) String() string {
	switch e {
	case AppAssociated:
		return "ASSOCIATED"
	case AppDisassociated:
		return "DISASSOCIATED"
	case AppDeauthenticated:
		return "DEAUTHENTICATED"
	case AppGotIP:
		return "GOT_IP"
	default:
		return "UNKNOWN"
	}
}

// AppNotifier delivers application events.
type AppNotifier interface {
	NotifyApp(vif int, ev AppEvent)
}

// Recorder is an in-memory Sink and AppNotifier. It is safe for
// concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	app    []AppEvent
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// HandleEvent records ev.
func (r *Recorder) HandleEvent(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// NotifyApp records ev.
func (r *Recorder) NotifyApp(vif int, ev AppEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.app = append(r.app, ev)
}

// Events returns the recorded upstream events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of the recorded upstream events.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Kind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

// AppEvents returns the recorded application events.
func (r *Recorder) AppEvents() []AppEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]AppEvent, len(r.app))
	copy(out, r.app)
	return out
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.app = nil
}

// Compile-time interface satisfaction checks.
var (
	_ Sink        = (*Recorder)(nil)
	_ AppNotifier = (*Recorder)(nil)
	_ Sink        = SinkFunc(nil)
)
