// Package log provides the structured driver trace.
//
// The trace is separate from operational logging (slog): it records every
// radio command, upstream event, station state change, keep-alive action
// and resume engine outcome as a machine-readable event stream for
// debugging sleep/wake cycles after the fact.
//
// # Basic Usage
//
// Components take a Tracer, which stamps events with the session ID:
//
//	// For development: trace to console via slog
//	tracer := log.NewTracer(log.NewSlogAdapter(slog.Default()), sessionID)
//
//	// For field captures: write to a binary file
//	fl, _ := log.NewFileLogger("/var/log/wlanshim/vif0.wtrace")
//	tracer := log.NewTracer(fl, sessionID)
//
//	// Both: use MultiLogger
//	tracer := log.NewTracer(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fl,
//	), sessionID)
//
// # Event Types
//
// Events are captured at five layers:
//   - Radio: commands submitted to the firmware (CommandEvent)
//   - Upstream: events delivered to the supplicant (UpstreamEvent)
//   - Lifecycle: station, link and key state changes (StateChangeEvent)
//   - KeepAlive: timer and probe activity (KeepAliveEvent)
//   - Resume: retention replay outcomes (ResumeEvent)
//
// Errors at any layer use ErrorEventData.
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with the .wtrace
// extension. The wlanshim-log tool provides viewing, statistics and export.
package log
