// Command wlanshim-retention creates and inspects retention snapshots.
//
// A snapshot is normally captured by the driver right before the host
// enters deep sleep. This tool builds one from a YAML template for bench
// testing and shows or invalidates existing snapshot files.
//
// Usage:
//
//	wlanshim-retention create -template station.yaml -o retention.cbor
//	wlanshim-retention show retention.cbor
//	wlanshim-retention invalidate retention.cbor
//	wlanshim-retention clear retention.cbor
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/config"
	"github.com/wlanshim/wlanshim-go/pkg/retention"
)

const usage = `wlanshim-retention - Retention Snapshot Tool

Usage:
  wlanshim-retention <command> [flags] [file]

Commands:
  create      Build a snapshot from a YAML template
  show        Print a snapshot in human-readable form
  invalidate  Clear the recovered flag of a snapshot
  clear       Delete a snapshot file

Use "wlanshim-retention <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "create":
		err = runCreate(args)
	case "show":
		err = runShow(args)
	case "invalidate":
		err = runInvalidate(args)
	case "clear":
		err = runClear(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newFlagSet(name, summary, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "wlanshim-retention %s - %s\n\nUsage:\n  wlanshim-retention %s [flags] %s\n\nFlags:\n", name, summary, name, args)
		fs.PrintDefaults()
	}
	return fs
}

// snapshotPath returns the positional file argument, or the configured
// default path when none is given.
func snapshotPath(fs *flag.FlagSet) string {
	if fs.NArg() > 0 {
		return fs.Arg(0)
	}
	return config.DefaultRetentionPath
}

func runCreate(args []string) error {
	fs := newFlagSet("create", "Build a snapshot from a YAML template", "")
	tmpl := fs.String("template", "", "YAML template file (required)")
	output := fs.String("o", config.DefaultRetentionPath, "Output snapshot file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tmpl == "" {
		fs.Usage()
		return fmt.Errorf("template file (-template) required")
	}

	snap, err := create(*tmpl, *output, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote snapshot for %q to %s\n", snap.AP.SSID, *output)
	return nil
}

func create(templatePath, output string, now time.Time) (*retention.Snapshot, error) {
	t, err := retention.LoadTemplate(templatePath)
	if err != nil {
		return nil, err
	}
	snap, err := t.Snapshot(now)
	if err != nil {
		return nil, err
	}
	if err := retention.NewFileStore(output).Save(snap); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return snap, nil
}

func runShow(args []string) error {
	fs := newFlagSet("show", "Print a snapshot in human-readable form", "[file]")
	showKeys := fs.Bool("keys", false, "Print key material")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap, err := retention.NewFileStore(snapshotPath(fs)).Load()
	if err != nil {
		return err
	}
	if snap == nil {
		return retention.ErrNoSnapshot
	}
	printSnapshot(os.Stdout, snap, *showKeys)
	return nil
}

func runInvalidate(args []string) error {
	fs := newFlagSet("invalidate", "Clear the recovered flag of a snapshot", "[file]")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return retention.NewFileStore(snapshotPath(fs)).Invalidate()
}

func runClear(args []string) error {
	fs := newFlagSet("clear", "Delete a snapshot file", "[file]")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return retention.NewFileStore(snapshotPath(fs)).Clear()
}
