// Package config loads the wlanshim YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wlanshim/wlanshim-go/pkg/dot11"
	"github.com/wlanshim/wlanshim-go/pkg/driver"
)

// Defaults.
const (
	DefaultRetentionPath = "wlanshim-retention.cbor"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// DefaultAddress is the address given to an interface without one.
var DefaultAddress = dot11.MACAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the top-level configuration.
type Config struct {
	Interfaces []InterfaceConfig `yaml:"interfaces"`
	Retention  RetentionConfig   `yaml:"retention"`
	Log        LogConfig         `yaml:"log"`
	Metrics    MetricsConfig     `yaml:"metrics"`
}

// InterfaceConfig describes one virtual interface.
type InterfaceConfig struct {
	Name        string        `yaml:"name"`
	VIF         int           `yaml:"vif"`
	Role        string        `yaml:"role"`
	Address     dot11.MACAddr `yaml:"address"`
	MaxStations int           `yaml:"max_stations"`
}

// RetentionConfig locates the retention snapshot.
type RetentionConfig struct {
	Path string `yaml:"path"`
}

// LogConfig configures operational logging and the driver trace.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`

	// Trace is the path of the CBOR trace file. Empty disables it.
	Trace string `yaml:"trace"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Listen is the HTTP listen address. Empty disables the endpoint.
	Listen string `yaml:"listen"`
}

// LoadError describes a configuration that could not be loaded.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Parse parses YAML configuration, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, &LoadError{Message: "validation failed", Cause: err}
	}
	return &c, nil
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	c, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, err
	}
	return c, nil
}

// Default returns the configuration used when no file is given: a single
// STA interface.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if len(c.Interfaces) == 0 {
		c.Interfaces = []InterfaceConfig{{Name: "wlan0", VIF: 0}}
	}
	for i := range c.Interfaces {
		ic := &c.Interfaces[i]
		if ic.Name == "" {
			ic.Name = fmt.Sprintf("wlan%d", ic.VIF)
		}
		if ic.Role == "" {
			ic.Role = "sta"
		}
		if ic.Address.IsZero() {
			ic.Address = DefaultAddress
			ic.Address[5] += byte(ic.VIF)
		}
		if ic.MaxStations == 0 && strings.EqualFold(ic.Role, "ap") {
			ic.MaxStations = driver.DefaultMaxStations
		}
	}
	if c.Retention.Path == "" {
		c.Retention.Path = DefaultRetentionPath
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	seen := make(map[int]bool)
	for _, ic := range c.Interfaces {
		if ic.VIF < 0 {
			return fmt.Errorf("%w: interface %s: negative vif %d", ErrInvalidConfig, ic.Name, ic.VIF)
		}
		if seen[ic.VIF] {
			return fmt.Errorf("%w: vif %d configured twice", ErrInvalidConfig, ic.VIF)
		}
		seen[ic.VIF] = true

		if _, ok := driver.ParseRole(ic.Role); !ok {
			return fmt.Errorf("%w: interface %s: unknown role %q", ErrInvalidConfig, ic.Name, ic.Role)
		}
		if ic.Address.IsMulticast() {
			return fmt.Errorf("%w: interface %s: address %s is multicast", ErrInvalidConfig, ic.Name, ic.Address)
		}
		if ic.MaxStations < 0 {
			return fmt.Errorf("%w: interface %s: negative max_stations", ErrInvalidConfig, ic.Name)
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// DriverInterfaces converts the interface list for driver.AddInterface.
func (c *Config) DriverInterfaces() []driver.InterfaceConfig {
	out := make([]driver.InterfaceConfig, 0, len(c.Interfaces))
	for _, ic := range c.Interfaces {
		role, _ := driver.ParseRole(ic.Role)
		out = append(out, driver.InterfaceConfig{
			VIF:         ic.VIF,
			Name:        ic.Name,
			Addr:        ic.Address,
			Role:        role,
			MaxStations: ic.MaxStations,
		})
	}
	return out
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger creates the operational logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
