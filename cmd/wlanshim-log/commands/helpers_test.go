package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/event"
	"github.com/wlanshim/wlanshim-go/pkg/log"
	"github.com/wlanshim/wlanshim-go/pkg/radio"
)

var testTime = time.Date(2026, 3, 1, 10, 15, 32, 123456000, time.UTC)

const (
	testSession = "abc12345-6789-0123-4567-890abcdef012"
	testPeer    = "02:11:22:33:44:55"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+log.FileExt)

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

// sampleEvents returns a short resume sequence on vif 0 plus one radio
// command on vif 1.
func sampleEvents() []log.Event {
	return []log.Event{
		{
			Timestamp: testTime,
			SessionID: testSession,
			VIF:       1,
			Direction: log.DirectionDown,
			Layer:     log.LayerRadio,
			Category:  log.CategoryCommand,
			Command: &log.CommandEvent{
				Kind:   radio.CmdSet,
				Params: []log.ParamEvent{{Kind: radio.ParamAID, Value: "5"}},
			},
		},
		{
			Timestamp: testTime.Add(time.Millisecond),
			SessionID: testSession,
			Direction: log.DirectionUp,
			Layer:     log.LayerUpstream,
			Category:  log.CategoryEvent,
			Peer:      testPeer,
			Upstream:  &log.UpstreamEvent{Kind: event.KindAssoc, Authorized: true, Frequency: 2437, Synthetic: true},
		},
		{
			Timestamp: testTime.Add(2 * time.Millisecond),
			SessionID: testSession,
			Direction: log.DirectionInternal,
			Layer:     log.LayerResume,
			Category:  log.CategoryResult,
			Resume:    &log.ResumeEvent{Stage: "ASSOC", Result: "SUCCESS", Success: true, Duration: 150 * time.Microsecond},
		},
		{
			Timestamp: testTime.Add(3 * time.Millisecond),
			SessionID: testSession,
			Direction: log.DirectionInternal,
			Layer:     log.LayerResume,
			Category:  log.CategoryResult,
			Resume:    &log.ResumeEvent{Stage: "PORT", Result: "FAIL"},
		},
		{
			Timestamp: testTime.Add(4 * time.Millisecond),
			SessionID: testSession,
			Direction: log.DirectionInternal,
			Layer:     log.LayerKeepAlive,
			Category:  log.CategoryState,
			Peer:      testPeer,
			KeepAlive: &log.KeepAliveEvent{Action: log.KeepAliveProbe},
		},
	}
}
