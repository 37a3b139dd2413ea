// Package config loads the YAML configuration of the demo client.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/LarsBremen/leshan/pkg/sensor"
)

// ErrInvalidConfig is returned for configurations that fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Sensor kinds.
const (
	KindHumidity    = "humidity"
	KindTemperature = "temperature"
)

// Seed mode names.
const (
	SeedSentinel = "sentinel"
	SeedCurrent  = "current"
)

// Defaults.
const (
	DefaultLogLevel    = "info"
	DefaultMetricsAddr = ":9100"
	DefaultPeriod      = 2 * time.Second
)

// Config is the client configuration.
type Config struct {
	// Endpoint is the client endpoint name. Defaults to the hostname.
	Endpoint string `yaml:"endpoint"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// EventLog is the path of the CBOR event capture file. Empty disables it.
	EventLog string `yaml:"event_log"`

	// Catalog is an optional YAML catalog merged over the built-in objects.
	Catalog string `yaml:"catalog"`

	Metrics   MetricsConfig   `yaml:"metrics"`
	Sensors   []SensorConfig  `yaml:"sensors"`
	WaterFlow WaterFlowConfig `yaml:"water_flow"`
}

// MetricsConfig configures the prometheus endpoint.
type MetricsConfig struct {
	Addr     string `yaml:"addr"`
	Disabled bool   `yaml:"disabled"`
}

// SensorConfig describes one simulated sensor instance.
type SensorConfig struct {
	Kind      string        `yaml:"kind"`
	Instance  uint16        `yaml:"instance"`
	Initial   *float64      `yaml:"initial"`
	Period    time.Duration `yaml:"period"`
	Scale     float64       `yaml:"scale"`
	Constant  *float64      `yaml:"constant"`
	Seed      string        `yaml:"seed"`
	RandSeed  uint64        `yaml:"rand_seed"`
	Precision *int32        `yaml:"precision"`
}

// WaterFlowConfig lists the stubbed water flow readings instances.
type WaterFlowConfig struct {
	Instances []uint16 `yaml:"instances"`
}

// Default returns the configuration used when no file is given: one
// temperature sensor on a random walk, one humidity sensor pinned at 10 and
// one water flow readings stub.
func Default() *Config {
	humidity := 10.0
	cfg := &Config{
		Sensors: []SensorConfig{
			{Kind: KindTemperature, Scale: 0.5, RandSeed: uint64(time.Now().UnixNano())},
			{Kind: KindHumidity, Constant: &humidity},
		},
		WaterFlow: WaterFlowConfig{Instances: []uint16{0}},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads, defaults and validates a configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes, defaults and validates YAML configuration data.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint()
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = DefaultMetricsAddr
	}
	for i := range c.Sensors {
		s := &c.Sensors[i]
		s.Kind = strings.ToLower(s.Kind)
		if s.Period == 0 {
			s.Period = DefaultPeriod
		}
		if s.Seed == "" {
			s.Seed = SeedSentinel
		}
	}
}

func (c *Config) validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for i, s := range c.Sensors {
		switch s.Kind {
		case KindHumidity, KindTemperature:
		default:
			return fmt.Errorf("%w: sensors[%d]: unknown kind %q", ErrInvalidConfig, i, s.Kind)
		}
		key := fmt.Sprintf("%s/%d", s.Kind, s.Instance)
		if seen[key] {
			return fmt.Errorf("%w: sensors[%d]: duplicate %s instance %d", ErrInvalidConfig, i, s.Kind, s.Instance)
		}
		seen[key] = true

		if s.Period < 0 {
			return fmt.Errorf("%w: sensors[%d]: period must be positive", ErrInvalidConfig, i)
		}
		if s.Scale < 0 {
			return fmt.Errorf("%w: sensors[%d]: scale must not be negative", ErrInvalidConfig, i)
		}
		if s.Precision != nil && *s.Precision < 0 {
			return fmt.Errorf("%w: sensors[%d]: precision must not be negative", ErrInvalidConfig, i)
		}
		if _, err := parseSeed(s.Seed); err != nil {
			return fmt.Errorf("sensors[%d]: %w", i, err)
		}
	}

	instances := make(map[uint16]bool)
	for _, id := range c.WaterFlow.Instances {
		if instances[id] {
			return fmt.Errorf("%w: water_flow: duplicate instance %d", ErrInvalidConfig, id)
		}
		instances[id] = true
	}
	return nil
}

// Config converts the entry into a sensor configuration. Runtime
// collaborators (notifier, scheduler, logger, events, metrics) are left for
// the caller to set.
func (s SensorConfig) Config() sensor.Config {
	cfg := sensor.DefaultConfig()
	cfg.InstanceID = s.Instance
	cfg.Period = s.Period
	cfg.Scale = s.Scale
	cfg.RandSeed = s.RandSeed
	cfg.Seed, _ = parseSeed(s.Seed)
	if s.Initial != nil {
		cfg.Initial = *s.Initial
	}
	if s.Precision != nil {
		p := *s.Precision
		cfg.Precision = &p
	}
	if s.Constant != nil {
		cfg.Source = sensor.Constant(*s.Constant)
	}
	return cfg
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, level)
	}
}

func parseSeed(s string) (sensor.Seed, error) {
	switch strings.ToLower(s) {
	case SeedSentinel:
		return sensor.SeedSentinel, nil
	case SeedCurrent:
		return sensor.SeedCurrent, nil
	default:
		return 0, fmt.Errorf("%w: unknown seed mode %q", ErrInvalidConfig, s)
	}
}

func defaultEndpoint() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "leshan-client-" + uuid.NewString()[:8]
}
