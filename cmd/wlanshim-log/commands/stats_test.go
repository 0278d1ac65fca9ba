package commands

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/wlanshim/wlanshim-go/pkg/log"
)

func TestCollectStats(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	stats, err := collectStats(path)
	if err != nil {
		t.Fatalf("collectStats failed: %v", err)
	}

	if stats.TotalEvents != 5 {
		t.Errorf("TotalEvents = %d, want 5", stats.TotalEvents)
	}
	if len(stats.Sessions) != 1 {
		t.Errorf("Sessions = %d, want 1", len(stats.Sessions))
	}
	if stats.ByVIF[0] != 4 || stats.ByVIF[1] != 1 {
		t.Errorf("ByVIF = %v", stats.ByVIF)
	}
	if stats.ByLayer[log.LayerResume] != 2 {
		t.Errorf("ByLayer[RESUME] = %d, want 2", stats.ByLayer[log.LayerResume])
	}
	if stats.Synthetic != 1 {
		t.Errorf("Synthetic = %d, want 1", stats.Synthetic)
	}
	if stats.Probes != 1 {
		t.Errorf("Probes = %d, want 1", stats.Probes)
	}

	assoc := stats.Resume["ASSOC"]
	if assoc == nil || assoc.Calls != 1 || assoc.Successes != 1 {
		t.Errorf("Resume[ASSOC] = %+v", assoc)
	}
	port := stats.Resume["PORT"]
	if port == nil || port.Successes != 0 || port.Results["FAIL"] != 1 {
		t.Errorf("Resume[PORT] = %+v", port)
	}
	if !stats.LastEvent.After(stats.FirstEvent) {
		t.Errorf("time range not tracked: %v - %v", stats.FirstEvent, stats.LastEvent)
	}
}

func TestRunStatsOutput(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total events: 5",
		"Sessions:     1",
		"RESUME",
		"Upstream events (1 synthetic)",
		"Keep-alive probes: 1",
		"ASSOC    calls=1 success=1",
		"PORT     calls=1 success=0",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Errors:") {
		t.Errorf("unexpected errors line:\n%s", output)
	}
}

func TestRunStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if got := buf.String(); got != "Total events: 0\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestRunStatsTruncatedFile(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)-2], 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Total events: 4") {
		t.Errorf("expected the complete events to be counted, got:\n%s", output)
	}
	if !strings.Contains(output, "truncated") {
		t.Errorf("expected truncation warning, got:\n%s", output)
	}
}
