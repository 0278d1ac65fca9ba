package commands

import (
	"path/filepath"
	"testing"

	"github.com/wlanshim/wlanshim-go/pkg/log"
)

func readAll(t *testing.T, path string) []log.Event {
	t.Helper()
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer reader.Close()

	var events []log.Event
	for {
		e, err := reader.Next()
		if err != nil {
			break
		}
		events = append(events, e)
	}
	return events
}

func TestRunFilterByPeer(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "peer"+log.FileExt)

	count, err := RunFilter(path, out, FilterFlags{Peer: testPeer})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	events := readAll(t, out)
	if len(events) != 2 {
		t.Fatalf("expected 2 events in output, got %d", len(events))
	}
	for _, e := range events {
		if e.Peer != testPeer {
			t.Errorf("unexpected peer %q", e.Peer)
		}
	}
}

func TestRunFilterByVIFAndCategory(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "vif0"+log.FileExt)

	count, err := RunFilter(path, out, FilterFlags{VIF: "0", Category: "result"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestRunFilterInvalidFlags(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out"+log.FileExt)

	if _, err := RunFilter(path, out, FilterFlags{Layer: "wire"}); err == nil {
		t.Fatal("expected error for invalid layer")
	}
}
