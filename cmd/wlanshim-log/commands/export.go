package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/log"
)

// RunExport exports the trace file in the given format ("jsonl" or "csv").
// An empty output path writes to stdout.
func RunExport(path, format, output string) error {
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return exportTo(path, format, w)
}

func exportTo(path, format string, w io.Writer) error {
	var write func(log.Event) error
	var flush func() error

	switch format {
	case "jsonl":
		enc := json.NewEncoder(w)
		write = func(e log.Event) error { return enc.Encode(e) }
		flush = func() error { return nil }
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"timestamp", "session_id", "vif", "direction", "layer", "category", "peer", "type"}); err != nil {
			return err
		}
		write = func(e log.Event) error {
			return cw.Write([]string{
				e.Timestamp.UTC().Format(time.RFC3339Nano),
				e.SessionID,
				strconv.Itoa(e.VIF),
				e.Direction.String(),
				e.Layer.String(),
				e.Category.String(),
				e.Peer,
				eventType(e),
			})
		}
		flush = func() error {
			cw.Flush()
			return cw.Error()
		}
	default:
		return fmt.Errorf("unsupported format: %s (must be jsonl or csv)", format)
	}

	reader, err := log.NewReader(path)
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
		if err := write(event); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
	}
	return flush()
}
