// Package commands implements the wlanshim-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session] vifN DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := shortenSessionID(event.SessionID)

	fmt.Fprintf(w, "%s [%s] vif%d %-4s %s %s\n",
		ts, session, event.VIF, event.Direction.String(), event.Layer.String(), eventType(event))

	if event.Peer != "" {
		fmt.Fprintf(w, "  Peer: %s\n", event.Peer)
	}

	switch {
	case event.Command != nil:
		formatCommandDetails(w, event.Command)
	case event.Upstream != nil:
		formatUpstreamDetails(w, event.Upstream)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.KeepAlive != nil:
		formatKeepAliveDetails(w, event.KeepAlive)
	case event.Resume != nil:
		formatResumeDetails(w, event.Resume)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// eventType returns the short label of the event payload.
func eventType(event log.Event) string {
	switch {
	case event.Command != nil:
		return event.Command.Kind.String()
	case event.Upstream != nil:
		if event.Upstream.Synthetic {
			return event.Upstream.Kind.String() + " (synthetic)"
		}
		return event.Upstream.Kind.String()
	case event.StateChange != nil:
		return "State"
	case event.KeepAlive != nil:
		return event.KeepAlive.Action.String()
	case event.Resume != nil:
		return event.Resume.Stage
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatCommandDetails(w io.Writer, cmd *log.CommandEvent) {
	if len(cmd.Params) == 0 {
		return
	}
	parts := make([]string, len(cmd.Params))
	for i, p := range cmd.Params {
		parts[i] = p.Kind.String() + "=" + p.Value
	}
	fmt.Fprintf(w, "  Params: %s\n", strings.Join(parts, ", "))
}

func formatUpstreamDetails(w io.Writer, ue *log.UpstreamEvent) {
	if ue.Status != 0 {
		fmt.Fprintf(w, "  Status: %d\n", ue.Status)
	}
	if ue.Frequency != 0 {
		fmt.Fprintf(w, "  Frequency: %d MHz\n", ue.Frequency)
	}
	if ue.Authorized {
		fmt.Fprintln(w, "  Authorized: yes")
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatKeepAliveDetails(w io.Writer, ka *log.KeepAliveEvent) {
	if ka.MaxIdle != 0 {
		fmt.Fprintf(w, "  MaxIdle: %s\n", formatDuration(ka.MaxIdle))
	}
	if ka.Delay != 0 {
		fmt.Fprintf(w, "  Delay: %s\n", formatDuration(ka.Delay))
	}
}

func formatResumeDetails(w io.Writer, re *log.ResumeEvent) {
	fmt.Fprintf(w, "  Result: %s\n", re.Result)
	if re.Duration != 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(re.Duration))
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// FilterFlags holds the raw filter flag values shared by view and filter.
type FilterFlags struct {
	Session   string
	VIF       string
	Peer      string
	TimeStart string
	TimeEnd   string
	Layer     string
	Direction string
	Category  string
}

// Filter converts the flag values into a trace filter.
func (f FilterFlags) Filter() (log.Filter, error) {
	filter := log.Filter{
		SessionID: f.Session,
		Peer:      strings.ToLower(f.Peer),
	}

	if f.VIF != "" {
		vif, err := strconv.Atoi(f.VIF)
		if err != nil || vif < 0 {
			return log.Filter{}, fmt.Errorf("invalid vif: %s", f.VIF)
		}
		filter.VIF = &vif
	}

	if f.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, f.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if f.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, f.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if f.Layer != "" {
		l, err := parseLayer(f.Layer)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Layer = &l
	}

	if f.Direction != "" {
		d, err := parseDirection(f.Direction)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Direction = &d
	}

	if f.Category != "" {
		c, err := parseCategory(f.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}

	return filter, nil
}

// parseLayer parses a layer string (case-insensitive).
func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "radio":
		return log.LayerRadio, nil
	case "upstream":
		return log.LayerUpstream, nil
	case "lifecycle":
		return log.LayerLifecycle, nil
	case "keepalive":
		return log.LayerKeepAlive, nil
	case "resume":
		return log.LayerResume, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be radio, upstream, lifecycle, keepalive, or resume)", s)
	}
}

// parseDirection parses a direction string (case-insensitive).
func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "int", "internal":
		return log.DirectionInternal, nil
	case "down":
		return log.DirectionDown, nil
	case "up":
		return log.DirectionUp, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be int, down, or up)", s)
	}
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "command":
		return log.CategoryCommand, nil
	case "event":
		return log.CategoryEvent, nil
	case "state":
		return log.CategoryState, nil
	case "result":
		return log.CategoryResult, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be command, event, state, result, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
