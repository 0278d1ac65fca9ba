package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level.
// Useful during development to see the trace interleaved with
// operational logs.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.Int("vif", event.VIF),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Peer != "" {
		attrs = append(attrs, slog.String("peer", event.Peer))
	}

	switch {
	case event.Command != nil:
		attrs = append(attrs, slog.String("cmd", event.Command.Kind.String()))
		for _, p := range event.Command.Params {
			attrs = append(attrs, slog.String(p.Kind.String(), p.Value))
		}
	case event.Upstream != nil:
		attrs = append(attrs, slog.String("event", event.Upstream.Kind.String()))
		if event.Upstream.Status != 0 {
			attrs = append(attrs, slog.Int("status", int(event.Upstream.Status)))
		}
		if event.Upstream.Synthetic {
			attrs = append(attrs, slog.Bool("synthetic", true))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.KeepAlive != nil:
		attrs = append(attrs, slog.String("action", event.KeepAlive.Action.String()))
		if event.KeepAlive.Delay > 0 {
			attrs = append(attrs, slog.Duration("delay", event.KeepAlive.Delay))
		}
	case event.Resume != nil:
		attrs = append(attrs,
			slog.String("stage", event.Resume.Stage),
			slog.String("result", event.Resume.Result),
			slog.Duration("duration", event.Resume.Duration),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", *event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
