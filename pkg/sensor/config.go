package sensor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LarsBremen/leshan/pkg/client"
	"github.com/LarsBremen/leshan/pkg/log"
	"github.com/LarsBremen/leshan/pkg/model"
	"github.com/LarsBremen/leshan/pkg/schedule"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid sensor configuration")
)

// Config configures a Sensor.
type Config struct {
	// InstanceID is the instance id within the object.
	InstanceID uint16

	// Initial is the current value before the first tick.
	Initial float64

	// Period is the sampling period.
	Period time.Duration

	// Scale is the maximum step of the simulated random walk.
	// Zero keeps the value constant at Initial. Ignored when Source is set.
	Scale float64

	// RandSeed seeds the random walk.
	RandSeed uint64

	// Source overrides the simulated source.
	Source Source

	// Seed selects how min and max start.
	Seed Seed

	// Precision is the number of decimals of exposed values. Nil means
	// DefaultPrecision.
	Precision *int32

	// Notifier receives change notifications.
	Notifier client.Notifier

	// Scheduler runs the sampling task. Defaults to a ticker scheduler.
	Scheduler schedule.Scheduler

	// Endpoint names the client in captured events.
	Endpoint string

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Events receives TICK, STATE and ERROR events.
	Events log.Logger

	// Metrics records tick statistics. Nil disables metrics.
	Metrics *Metrics

	// Object is the catalog entry used for default responses.
	// Defaults to the entry of the default catalog.
	Object *model.ObjectModel
}

// DefaultConfig returns the configuration of the demo sensors: initial
// value 50, a 2s period, sentinel seeding and two decimals.
func DefaultConfig() Config {
	return Config{
		Initial: 50,
		Period:  2 * time.Second,
		Seed:    SeedSentinel,
	}
}

func (c *Config) validate() error {
	if c.Period <= 0 {
		return fmt.Errorf("%w: period must be positive, got %v", ErrInvalidConfig, c.Period)
	}
	if c.Scale < 0 {
		return fmt.Errorf("%w: scale must not be negative, got %v", ErrInvalidConfig, c.Scale)
	}
	if c.Precision != nil && *c.Precision < 0 {
		return fmt.Errorf("%w: precision must not be negative, got %d", ErrInvalidConfig, *c.Precision)
	}
	if c.Seed != SeedSentinel && c.Seed != SeedCurrent {
		return fmt.Errorf("%w: unknown seed mode %d", ErrInvalidConfig, c.Seed)
	}
	return nil
}

func (c *Config) precision() int32 {
	if c.Precision == nil {
		return DefaultPrecision
	}
	return *c.Precision
}

func (c *Config) source() Source {
	switch {
	case c.Source != nil:
		return c.Source
	case c.Scale > 0:
		return RandomWalk(c.Scale, c.RandSeed)
	default:
		return Constant(c.Initial)
	}
}
