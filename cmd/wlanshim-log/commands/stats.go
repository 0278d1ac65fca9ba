package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/log"
)

// Stats holds statistics about a trace file.
type Stats struct {
	TotalEvents int
	Sessions    map[string]int
	ByVIF       map[int]int
	ByLayer     map[log.Layer]int
	ByCategory  map[log.Category]int
	ByDirection map[log.Direction]int
	Commands    map[string]int
	Upstream    map[string]int
	Synthetic   int
	Probes      int
	Resume      map[string]*ResumeStats
	Errors      int
	Truncated   bool
	FirstEvent  time.Time
	LastEvent   time.Time
}

// ResumeStats aggregates resume engine outcomes for one stage.
type ResumeStats struct {
	Calls     int
	Successes int
	Results   map[string]int
}

func newStats() *Stats {
	return &Stats{
		Sessions:    make(map[string]int),
		ByVIF:       make(map[int]int),
		ByLayer:     make(map[log.Layer]int),
		ByCategory:  make(map[log.Category]int),
		ByDirection: make(map[log.Direction]int),
		Commands:    make(map[string]int),
		Upstream:    make(map[string]int),
		Resume:      make(map[string]*ResumeStats),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.Sessions[event.SessionID]++
	s.ByVIF[event.VIF]++
	s.ByLayer[event.Layer]++
	s.ByCategory[event.Category]++
	s.ByDirection[event.Direction]++

	if s.FirstEvent.IsZero() || event.Timestamp.Before(s.FirstEvent) {
		s.FirstEvent = event.Timestamp
	}
	if event.Timestamp.After(s.LastEvent) {
		s.LastEvent = event.Timestamp
	}

	switch {
	case event.Command != nil:
		s.Commands[event.Command.Kind.String()]++
	case event.Upstream != nil:
		s.Upstream[event.Upstream.Kind.String()]++
		if event.Upstream.Synthetic {
			s.Synthetic++
		}
	case event.KeepAlive != nil:
		if event.KeepAlive.Action == log.KeepAliveProbe {
			s.Probes++
		}
	case event.Resume != nil:
		rs := s.Resume[event.Resume.Stage]
		if rs == nil {
			rs = &ResumeStats{Results: make(map[string]int)}
			s.Resume[event.Resume.Stage] = rs
		}
		rs.Calls++
		if event.Resume.Success {
			rs.Successes++
		}
		rs.Results[event.Resume.Result]++
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats executes the stats command.
func RunStats(path string, output io.Writer) error {
	stats, err := collectStats(path)
	if err != nil {
		return err
	}
	printStats(output, stats)
	return nil
}

func collectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	stats.Truncated = reader.Truncated()
	return stats, nil
}

func printStats(w io.Writer, s *Stats) {
	fmt.Fprintf(w, "Total events: %d\n", s.TotalEvents)
	if s.Truncated {
		fmt.Fprintln(w, "Warning: trace ends inside an event (truncated)")
	}
	if s.TotalEvents == 0 {
		return
	}
	fmt.Fprintf(w, "Time range:   %s - %s (%s)\n",
		s.FirstEvent.UTC().Format(time.RFC3339),
		s.LastEvent.UTC().Format(time.RFC3339),
		s.LastEvent.Sub(s.FirstEvent).Round(time.Millisecond))
	fmt.Fprintf(w, "Sessions:     %d\n", len(s.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "By layer:")
	for _, l := range []log.Layer{log.LayerRadio, log.LayerUpstream, log.LayerLifecycle, log.LayerKeepAlive, log.LayerResume} {
		if n := s.ByLayer[l]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", l.String(), n)
		}
	}

	fmt.Fprintln(w, "By category:")
	for _, c := range []log.Category{log.CategoryCommand, log.CategoryEvent, log.CategoryState, log.CategoryResult, log.CategoryError} {
		if n := s.ByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", c.String(), n)
		}
	}

	fmt.Fprintln(w, "By direction:")
	for _, d := range []log.Direction{log.DirectionInternal, log.DirectionDown, log.DirectionUp} {
		if n := s.ByDirection[d]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", d.String(), n)
		}
	}

	fmt.Fprintln(w, "By interface:")
	vifs := make([]int, 0, len(s.ByVIF))
	for vif := range s.ByVIF {
		vifs = append(vifs, vif)
	}
	sort.Ints(vifs)
	for _, vif := range vifs {
		fmt.Fprintf(w, "  vif%-7d %d\n", vif, s.ByVIF[vif])
	}

	if len(s.Commands) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Radio commands:")
		printCounts(w, s.Commands)
	}

	if len(s.Upstream) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Upstream events (%d synthetic):\n", s.Synthetic)
		printCounts(w, s.Upstream)
	}

	if s.Probes > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Keep-alive probes: %d\n", s.Probes)
	}

	if len(s.Resume) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Resume stages:")
		stages := make([]string, 0, len(s.Resume))
		for stage := range s.Resume {
			stages = append(stages, stage)
		}
		sort.Strings(stages)
		for _, stage := range stages {
			rs := s.Resume[stage]
			fmt.Fprintf(w, "  %-8s calls=%d success=%d\n", stage, rs.Calls, rs.Successes)
			results := make([]string, 0, len(rs.Results))
			for r := range rs.Results {
				results = append(results, r)
			}
			sort.Strings(results)
			for _, r := range results {
				fmt.Fprintf(w, "    %-22s %d\n", r, rs.Results[r])
			}
		}
	}

	if s.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", s.Errors)
	}
}

func printCounts(w io.Writer, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-22s %d\n", k, counts[k])
	}
}
