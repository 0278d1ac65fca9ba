package station

import (
	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/keystore"
)

// NumTIDs is the number of traffic identifiers tracked per peer.
const NumTIDs = 8

// State is the lifecycle state of a peer.
type State uint8

const (
	// StateNotExist means no record exists for the peer.
	StateNotExist State = iota
	// StateNone means the peer is known but not authenticated.
	StateNone
	// StateAuth means the peer is authenticated.
	StateAuth
	// StateAssoc means the peer is associated.
	StateAssoc
	// StateAuthorized means the peer's port is open.
	StateAuthorized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotExist:
		return "NOTEXIST"
	case StateNone:
		return "NONE"
	case StateAuth:
		return "AUTH"
	case StateAssoc:
		return "ASSOC"
	case StateAuthorized:
		return "AUTHORIZED"
	default:
		return "UNKNOWN"
	}
}

// BlockAck is the block-ack agreement state of one TID.
type BlockAck uint8

const (
	BlockAckInvalid BlockAck = iota
	BlockAckTX
	BlockAckRX
	BlockAckTXRX
)

// String returns the block-ack state name.
func (b BlockAck) String() string {
	switch b {
	case BlockAckInvalid:
		return "INVALID"
	case BlockAckTX:
		return "TX"
	case BlockAckRX:
		return "RX"
	case BlockAckTXRX:
		return "TXRX"
	default:
		return "UNKNOWN"
	}
}

// Station is a peer record.
type Station struct {
	Addr     dot11.MACAddr
	AID      uint16
	QoS      bool
	BlockAck [NumTIDs]BlockAck
	State    State
	Keys     keystore.Set
}

// Reset returns the record to its zero state bound to addr.
func (s *Station) Reset(addr dot11.MACAddr) {
	*s = Station{Addr: addr}
}

// ResetBlockAck invalidates every TID agreement.
func (s *Station) ResetBlockAck() {
	for i := range s.BlockAck {
		s.BlockAck[i] = BlockAckInvalid
	}
}
