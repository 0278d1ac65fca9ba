package resume

import (
	"strings"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/retention"
)

// Stage identifies a connection stage.
type Stage uint8

const (
	StageInit Stage = iota
	StagePMK
	StageSetKey
	StageScan
	StageAuth
	StageAssoc
	StagePort
	StageDHCP
	StageStatic
)

// Stages lists every stage in connection order.
var Stages = []Stage{
	StageInit, StagePMK, StageSetKey, StageScan, StageAuth,
	StageAssoc, StagePort, StageDHCP, StageStatic,
}

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageInit:
		return "INIT"
	case StagePMK:
		return "PMK"
	case StageSetKey:
		return "SET_KEY"
	case StageScan:
		return "SCAN"
	case StageAuth:
		return "AUTH"
	case StageAssoc:
		return "ASSOC"
	case StagePort:
		return "PORT"
	case StageDHCP:
		return "DHCP"
	case StageStatic:
		return "STATIC"
	default:
		return "UNKNOWN"
	}
}

// ParseStage parses a stage name, case-insensitively.
func ParseStage(s string) (Stage, bool) {
	for _, st := range Stages {
		if strings.EqualFold(st.String(), s) {
			return st, true
		}
	}
	return 0, false
}

// Result is the outcome of a resume call.
type Result uint8

const (
	ResultSuccess Result = iota
	ResultFail
	ResultFailNoRetention
	ResultFailNotRecovered
	ResultFailNoAPInfo
	ResultFailMemory
	ResultFailNoIP
	ResultFailNoHandler
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "SUCCESS"
	case ResultFail:
		return "FAIL"
	case ResultFailNoRetention:
		return "FAIL_NO_RETENTION"
	case ResultFailNotRecovered:
		return "FAIL_NOT_RECOVERED"
	case ResultFailNoAPInfo:
		return "FAIL_NO_AP_INFO"
	case ResultFailMemory:
		return "FAIL_MEMORY"
	case ResultFailNoIP:
		return "FAIL_NO_IP"
	case ResultFailNoHandler:
		return "FAIL_NO_HANDLER"
	default:
		return "UNKNOWN"
	}
}

// OK reports whether the live path must be skipped.
func (r Result) OK() bool {
	return r == ResultSuccess
}

// Credential is the supplicant's network credential. The PMK stage fills
// PSK from the snapshot.
type Credential struct {
	SSID   []byte
	PSK    [retention.PMKLen]byte
	PSKSet bool
}

// Request is a resume call for one stage. The set of implementations is
// closed.
type Request interface {
	Stage() Stage
	isRequest()
}

// InitRequest checks whether a resume is possible at all.
type InitRequest struct{}

// PMKRequest asks for the retained PMK of Credential's network.
type PMKRequest struct {
	Credential *Credential
}

// SetKeyRequest replaces a supplicant key install.
type SetKeyRequest struct{}

// ScanRequest replaces a scan.
type ScanRequest struct{}

// AuthRequest replaces 802.11 authentication.
type AuthRequest struct{}

// AssocRequest replaces association using key management mode KeyMgmt.
type AssocRequest struct {
	KeyMgmt dot11.KeyMgmt
}

// PortRequest replaces a port (de)authorization.
type PortRequest struct {
	Authorize bool
}

// DHCPRequest replaces address acquisition by DHCP.
type DHCPRequest struct{}

// StaticRequest reports that a static address is used.
type StaticRequest struct{}

func (InitRequest) Stage() Stage   { return StageInit }
func (PMKRequest) Stage() Stage    { return StagePMK }
func (SetKeyRequest) Stage() Stage { return StageSetKey }
func (ScanRequest) Stage() Stage   { return StageScan }
func (AuthRequest) Stage() Stage   { return StageAuth }
func (AssocRequest) Stage() Stage  { return StageAssoc }
func (PortRequest) Stage() Stage   { return StagePort }
func (DHCPRequest) Stage() Stage   { return StageDHCP }
func (StaticRequest) Stage() Stage { return StageStatic }

func (InitRequest) isRequest()   {}
func (PMKRequest) isRequest()    {}
func (SetKeyRequest) isRequest() {}
func (ScanRequest) isRequest()   {}
func (AuthRequest) isRequest()   {}
func (AssocRequest) isRequest()  {}
func (PortRequest) isRequest()   {}
func (DHCPRequest) isRequest()   {}
func (StaticRequest) isRequest() {}
