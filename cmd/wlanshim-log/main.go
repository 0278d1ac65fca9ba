// Command wlanshim-log views and analyzes wlanshim driver trace files.
//
// Trace files are written by the driver core when a trace path is
// configured (see wlanshim-sim -trace).
//
// Usage:
//
//	wlanshim-log <command> [flags] <file.wtrace>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSON lines or CSV
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View only resume engine outcomes
//	wlanshim-log view -layer resume vif0.wtrace
//
//	# View radio commands of interface 1
//	wlanshim-log view -layer radio -vif 1 vif0.wtrace
//
//	# Export to CSV
//	wlanshim-log export -format csv -o trace.csv vif0.wtrace
//
//	# Keep only events about one peer
//	wlanshim-log filter -peer 02:11:22:33:44:55 -o peer.wtrace vif0.wtrace
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wlanshim/wlanshim-go/cmd/wlanshim-log/commands"
)

const usage = `wlanshim-log - wlanshim Driver Trace Analyzer

Usage:
  wlanshim-log <command> [flags] <file.wtrace>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSON lines or CSV
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "wlanshim-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func newFlagSet(name, summary string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "wlanshim-log %s - %s\n\nUsage:\n  wlanshim-log %s [flags] <file.wtrace>\n\nFlags:\n", name, summary, name)
		fs.PrintDefaults()
	}
	return fs
}

func registerFilterFlags(fs *flag.FlagSet, f *commands.FilterFlags) {
	fs.StringVar(&f.Layer, "layer", "", "Filter by layer (radio, upstream, lifecycle, keepalive, resume)")
	fs.StringVar(&f.Direction, "direction", "", "Filter by direction (int, down, up)")
	fs.StringVar(&f.Category, "category", "", "Filter by category (command, event, state, result, error)")
	fs.StringVar(&f.VIF, "vif", "", "Filter by virtual interface index")
	fs.StringVar(&f.Peer, "peer", "", "Filter by peer MAC address")
	fs.StringVar(&f.Session, "session", "", "Filter by session ID")
	fs.StringVar(&f.TimeStart, "time-start", "", "Filter events after this time (RFC3339)")
	fs.StringVar(&f.TimeEnd, "time-end", "", "Filter events before this time (RFC3339)")
}

func tracePath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := newFlagSet("view", "View trace file in human-readable format")
	var flags commands.FilterFlags
	registerFilterFlags(fs, &flags)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	filter, err := flags.Filter()
	if err != nil {
		fail(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export trace file to JSON lines or CSV")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter trace file and write to new file")
	output := fs.String("o", "", "Output file (required)")
	var flags commands.FilterFlags
	registerFilterFlags(fs, &flags)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	count, err := commands.RunFilter(path, *output, flags)
	if err != nil {
		fail(err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d events to %s\n", count, *output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the trace file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
