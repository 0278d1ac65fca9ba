package resume

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/driver"
	"github.com/wlanshim/wlanshim-go/pkg/log"
	"github.com/wlanshim/wlanshim-go/pkg/metrics"
	"github.com/wlanshim/wlanshim-go/pkg/netif"
	"github.com/wlanshim/wlanshim-go/pkg/retention"
)

// Config configures an Engine.
type Config struct {
	// Handoff carries the snapshot loaded at wake. If nil, every gated
	// stage returns ResultFailNoRetention.
	Handoff *retention.Handoff

	// Stack is the IP stack configured by the DHCP stage.
	Stack netif.Stack

	// Tracer records one ResumeEvent per call. Optional.
	Tracer *log.Tracer

	// Metrics counts results per stage. Optional.
	Metrics *metrics.Registry

	// Logger is the logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Now is the time source for call durations. Defaults to time.Now.
	Now func() time.Time
}

// Engine replays connection stages from the retention snapshot.
type Engine struct {
	handoff *retention.Handoff
	stack   netif.Stack
	tracer  *log.Tracer
	metrics *metrics.Registry
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an Engine.
func New(cfg Config) *Engine {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		handoff: cfg.Handoff,
		stack:   cfg.Stack,
		tracer:  cfg.Tracer,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
		now:     now,
	}
}

// Resume runs the validation gate and the stage handler for req on iface.
// ResultFailNoHandler is returned for a nil request.
func (e *Engine) Resume(iface *driver.Interface, req Request) Result {
	start := e.now()

	stage := "NONE"
	if req != nil {
		stage = req.Stage().String()
	}
	res := e.resume(iface, req)

	vif := -1
	if iface != nil {
		vif = iface.VIF()
	}
	e.tracer.Resume(vif, stage, res.String(), res.OK(), e.now().Sub(start))
	e.metrics.ResumeResult(stage, res.String())
	e.debugLog("resume", "vif", vif, "stage", stage, "result", res.String())
	return res
}

// Recovered reports whether the resume window is open for iface.
func (e *Engine) Recovered(iface *driver.Interface) bool {
	return iface != nil &&
		iface.Role() == driver.RoleSTA &&
		e.handoff.Snapshot() != nil &&
		e.handoff.Recovered()
}

func (e *Engine) resume(iface *driver.Interface, req Request) Result {
	if req == nil {
		return ResultFailNoHandler
	}
	if iface == nil {
		return ResultFail
	}
	if res := e.gate(iface, req.Stage()); !res.OK() {
		return res
	}

	switch r := req.(type) {
	case InitRequest:
		return ResultSuccess
	case PMKRequest:
		return e.pmk(iface, r)
	case SetKeyRequest:
		return ResultSuccess
	case ScanRequest:
		return e.scan(iface)
	case AuthRequest:
		return e.auth(iface)
	case AssocRequest:
		return e.assoc(iface, r)
	case PortRequest:
		return e.port(iface, r)
	case DHCPRequest:
		return e.dhcp(iface)
	case StaticRequest:
		e.invalidate(iface, "static address")
		return ResultSuccess
	default:
		return ResultFailNoHandler
	}
}

// gate checks the preconditions shared by all stages.
func (e *Engine) gate(iface *driver.Interface, stage Stage) Result {
	if iface.Role() == driver.RoleAP {
		return ResultFailNotRecovered
	}
	if stage == StagePort {
		return ResultSuccess
	}

	snap := e.handoff.Snapshot()
	if snap == nil {
		return ResultFailNoRetention
	}
	if !e.handoff.Recovered() {
		return ResultFailNotRecovered
	}
	if !snap.HasAPInfo() {
		return ResultFailNoAPInfo
	}
	return ResultSuccess
}

func (e *Engine) pmk(iface *driver.Interface, r PMKRequest) Result {
	if r.Credential == nil {
		return ResultFail
	}
	snap := e.handoff.Snapshot()

	if len(r.Credential.SSID) == 0 || !bytes.Equal(r.Credential.SSID, snap.AP.SSID) {
		e.debugLog("resume: SSID differs from snapshot",
			"vif", iface.VIF(),
			"requested", string(r.Credential.SSID),
			"retained", string(snap.AP.SSID))
		e.invalidate(iface, "SSID mismatch")
		return ResultFail
	}
	if !snap.HasPMK() {
		return ResultFailNoRetention
	}

	r.Credential.PSK = snap.PMK
	r.Credential.PSKSet = true
	return ResultSuccess
}

// invalidate closes the resume window. A store failure is logged; the
// window stays closed in memory either way.
func (e *Engine) invalidate(iface *driver.Interface, reason string) {
	was, err := e.handoff.Invalidate(reason)
	if err != nil {
		e.warnLog("resume: invalidate snapshot", "vif", iface.VIF(), "error", err)
		e.tracer.Error(iface.VIF(), log.LayerResume, err, "invalidate snapshot")
	}
	if was {
		e.tracer.StateChange(iface.VIF(), log.RoleSTA, "", log.StateEntityResumeWindow, "OPEN", "CLOSED", reason)
	}
}

func (e *Engine) debugLog(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e *Engine) warnLog(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}
