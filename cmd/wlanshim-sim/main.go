// Command wlanshim-sim drives the wlanshim core against a recording radio.
//
// It runs one of two scenarios and prints a report:
//
//	resume  connect, capture a retention snapshot, tear the driver down,
//	        then replay the connection on a fresh driver
//	ap      admit two stations, rotate the group key, drop one station
//
// Usage:
//
//	wlanshim-sim [flags]
//
// Flags:
//
//	-config string     Configuration file path
//	-scenario string   Scenario to run: resume, ap (default "resume")
//	-snapshot string   Retention snapshot path (overrides config)
//	-trace string      Write the driver trace to this file (overrides config)
//	-log-level string  Log level: debug, info, warn, error (overrides config)
//	-metrics string    Serve Prometheus metrics on this address and wait for a signal
//
// Examples:
//
//	# Replay a sleep/wake cycle and keep the trace
//	wlanshim-sim -scenario resume -trace /tmp/vif0.wtrace
//
//	# Run the AP scenario and expose metrics
//	wlanshim-sim -scenario ap -metrics :9101
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/config"
	"github.com/wlanshim/wlanshim-go/pkg/log"
	"github.com/wlanshim/wlanshim-go/pkg/metrics"
	"github.com/wlanshim/wlanshim-go/pkg/retention"
)

// Flags holds the command line overrides.
type Flags struct {
	ConfigFile string
	Scenario   string
	Snapshot   string
	Trace      string
	LogLevel   string
	Metrics    string
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&flags.Scenario, "scenario", "resume", "Scenario to run: resume, ap")
	flag.StringVar(&flags.Snapshot, "snapshot", "", "Retention snapshot path (overrides config)")
	flag.StringVar(&flags.Trace, "trace", "", "Write the driver trace to this file (overrides config)")
	flag.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.StringVar(&flags.Metrics, "metrics", "", "Serve Prometheus metrics on this address and wait for a signal")
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("simulation failed", "scenario", flags.Scenario, "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, if any, and applies the
// command line overrides.
func loadConfig(f Flags) (*config.Config, error) {
	cfg := config.Default()
	if f.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(f.ConfigFile); err != nil {
			return nil, err
		}
	}
	if f.Snapshot != "" {
		cfg.Retention.Path = f.Snapshot
	}
	if f.Trace != "" {
		cfg.Log.Trace = f.Trace
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.Metrics != "" {
		cfg.Metrics.Listen = f.Metrics
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config, logger *slog.Logger) error {
	scenario, err := scenarioFor(flags.Scenario)
	if err != nil {
		return err
	}

	var traceLogger log.Logger = log.NoopLogger{}
	if cfg.Log.Trace != "" {
		fl, err := log.NewFileLogger(cfg.Log.Trace)
		if err != nil {
			return fmt.Errorf("open trace: %w", err)
		}
		defer fl.Close()
		traceLogger = fl
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		traceLogger = log.NewMultiLogger(traceLogger, log.NewSlogAdapter(logger))
	}
	tracer := log.NewTracer(traceLogger, "")

	reg := metrics.NewRegistry()
	env := &Env{
		Interface: cfg.DriverInterfaces()[0],
		Network:   DefaultNetwork,
		Store:     retention.NewFileStore(cfg.Retention.Path),
		Tracer:    tracer,
		Metrics:   reg,
		Logger:    logger,
		Out:       os.Stdout,
	}

	logger.Info("starting simulation",
		"scenario", flags.Scenario,
		"session", tracer.Session(),
		"interface", env.Interface.Name,
		"snapshot", cfg.Retention.Path)

	if err := scenario(env); err != nil {
		return err
	}

	if cfg.Metrics.Listen != "" {
		return serveMetrics(cfg.Metrics.Listen, reg, logger)
	}
	return nil
}

func scenarioFor(name string) (func(*Env) error, error) {
	switch name {
	case "resume":
		return RunResume, nil
	case "ap":
		return RunAP, nil
	default:
		return nil, fmt.Errorf("unknown scenario: %s (must be resume or ap)", name)
	}
}

// serveMetrics serves the registry until SIGINT or SIGTERM.
func serveMetrics(addr string, reg *metrics.Registry, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("serving metrics", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
