package sensor

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/LarsBremen/leshan/pkg/client"
	"github.com/LarsBremen/leshan/pkg/log"
	"github.com/LarsBremen/leshan/pkg/model"
	"github.com/LarsBremen/leshan/pkg/node"
	"github.com/LarsBremen/leshan/pkg/response"
	"github.com/LarsBremen/leshan/pkg/schedule"
)

// Resource ids shared by the IPSO sensor objects.
const (
	ResourceMinMeasured uint16 = 5601
	ResourceMaxMeasured uint16 = 5602
	ResourceResetMinMax uint16 = 5605
	ResourceSensorValue uint16 = 5700
	ResourceSensorUnits uint16 = 5701
)

// Units of the demo sensors.
const (
	UnitsPercent = "%"
	UnitsCelsius = "Cel"
)

// Sampling errors.
var (
	ErrSampleFailed  = errors.New("sample failed")
	ErrInvalidSample = errors.New("invalid sample")
	ErrClosed        = errors.New("sensor closed")
)

// State is the sampler state of a sensor.
type State uint8

const (
	// StateIdle waits for the next tick.
	StateIdle State = iota

	// StateSampling is asking the source for a new value.
	StateSampling

	// StateCommitting is storing the sample and updating the bounds.
	StateCommitting

	// StateCancelled is terminal; no further ticks run.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateSampling:
		return "SAMPLING"
	case StateCommitting:
		return "COMMITTING"
	case StateCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Snapshot is the full-precision state of a sensor at one instant.
type Snapshot struct {
	Current float64
	Min     float64
	Max     float64
}

// Sensor is a simulated sensor instance.
type Sensor struct {
	*client.BaseInstance

	// mu guards every field below and is held for the whole of a read, an
	// execute and the commit step of a tick.
	mu        sync.Mutex
	current   float64
	tracker   Tracker
	state     State
	pending   []uint16
	units     string
	precision int32
	source    Source
	table     client.Table

	handle    schedule.Handle
	closeOnce sync.Once

	endpoint string
	labels   prometheus.Labels
	logger   *slog.Logger
	events   log.Logger
	metrics  *Metrics
}

// NewHumidity creates a relative humidity sensor (object 3304).
func NewHumidity(cfg Config) (*Sensor, error) {
	return New(model.ObjectHumidity, UnitsPercent, cfg)
}

// NewTemperature creates a temperature sensor (object 3303).
func NewTemperature(cfg Config) (*Sensor, error) {
	return New(model.ObjectTemperature, UnitsCelsius, cfg)
}

// New creates a sensor of the given object and starts sampling.
func New(objectID uint16, units string, cfg Config) (*Sensor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = schedule.NewTicker(cfg.Logger)
	}
	if cfg.Object == nil {
		if obj, err := model.DefaultCatalog().Object(objectID); err == nil {
			cfg.Object = obj
		}
	}

	s := &Sensor{
		BaseInstance: client.NewBaseInstance(objectID, cfg.InstanceID, cfg.Object, cfg.Notifier),
		current:      cfg.Initial,
		tracker:      NewTracker(cfg.Seed, cfg.Initial),
		state:        StateIdle,
		units:        units,
		precision:    cfg.precision(),
		source:       cfg.source(),
		endpoint:     cfg.Endpoint,
		labels:       instanceLabels(objectID, cfg.InstanceID),
		logger:       cfg.Logger.With("object", objectID, "instance", cfg.InstanceID),
		events:       log.OrNoop(cfg.Events),
		metrics:      cfg.Metrics,
	}
	s.table = client.Table{
		ResourceSensorValue: {Read: s.readRounded(ResourceSensorValue, func() float64 { return s.current })},
		ResourceSensorUnits: {Read: s.readUnits},
		ResourceMinMeasured: {Read: s.readRounded(ResourceMinMeasured, func() float64 { return s.tracker.Min })},
		ResourceMaxMeasured: {Read: s.readRounded(ResourceMaxMeasured, func() float64 { return s.tracker.Max })},
		ResourceResetMinMax: {Execute: s.resetMinMax},
	}

	handle, err := cfg.Scheduler.Schedule(cfg.Period, s.tick)
	if err != nil {
		return nil, fmt.Errorf("schedule sampling: %w", err)
	}
	s.handle = handle

	s.logEvent(log.CategoryState, func(e *log.Event) {
		e.StateChange = &log.StateChangeEvent{NewState: StateIdle.String(), Reason: "started"}
	})
	s.logger.Debug("sensor started", "period", cfg.Period, "seed", cfg.Seed)
	return s, nil
}

// Read returns a rounded value, the units or a base default.
func (s *Sensor) Read(resourceID uint16) *response.ReadResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Read(s.BaseInstance, resourceID)
}

// Execute runs the min/max reset or returns a base default.
func (s *Sensor) Execute(resourceID uint16, params string) *response.ExecuteResponse {
	s.mu.Lock()
	resp := s.table.Execute(s.BaseInstance, resourceID, params)
	changed := s.pending
	s.pending = nil
	s.mu.Unlock()

	s.notify(changed)
	return resp
}

// ReadInstance returns every readable resource from one snapshot, in
// ascending id order.
func (s *Sensor) ReadInstance() ([]node.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.table.ReadableIDs()
	out := make([]node.Resource, 0, len(ids))
	for _, id := range ids {
		r, err := s.table[id].Read()
		if err != nil {
			return nil, fmt.Errorf("read %d: %w", id, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Snapshot returns the unrounded state.
func (s *Sensor) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Current: s.current, Min: s.tracker.Min, Max: s.tracker.Max}
}

// State returns the sampler state.
func (s *Sensor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Units returns the unit label.
func (s *Sensor) Units() string { return s.units }

// Close stops sampling. It waits for an in-flight tick and is safe to call
// more than once. It must not be called from a Notifier.
func (s *Sensor) Close() error {
	s.closeOnce.Do(func() {
		s.handle.Cancel()

		s.mu.Lock()
		old := s.state
		s.state = StateCancelled
		s.mu.Unlock()

		s.logEvent(log.CategoryState, func(e *log.Event) {
			e.StateChange = &log.StateChangeEvent{OldState: old.String(), NewState: StateCancelled.String(), Reason: "closed"}
		})
		s.logger.Debug("sensor closed")
	})
	return nil
}

// tick runs one sampling cycle. Failures are logged and leave the state as
// it was; the schedule keeps running.
func (s *Sensor) tick() {
	changed, snap, elapsed, err := s.sample()

	if err != nil {
		if errors.Is(err, ErrClosed) {
			return
		}
		s.metrics.failure(s.labels)
		s.logger.Warn("sensor tick failed", "error", err)
		s.logEvent(log.CategoryError, func(e *log.Event) {
			e.Error = &log.ErrorEventData{Message: err.Error(), Context: "tick"}
		})
		return
	}

	s.metrics.tick(s.labels, snap.Current, elapsed)
	s.logEvent(log.CategoryTick, func(e *log.Event) {
		e.Tick = &log.TickEvent{
			Value:    snap.Current,
			Min:      snap.Min,
			Max:      snap.Max,
			Changed:  changed,
			Duration: elapsed,
		}
	})
	s.notify(changed)
}

// sample performs the locked part of a tick and returns the ids to report
// and how long the lock was held.
func (s *Sensor) sample() (changed []uint16, snap Snapshot, held time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() { held = time.Since(start) }()

	if s.state == StateCancelled {
		return nil, Snapshot{}, 0, ErrClosed
	}

	defer func() {
		if r := recover(); r != nil {
			changed = nil
			err = fmt.Errorf("%w: panic: %v", ErrSampleFailed, r)
		}
		s.state = StateIdle
	}()

	s.state = StateSampling
	v, err := s.source.Sample(s.current)
	if err != nil {
		return nil, Snapshot{}, 0, fmt.Errorf("%w: %w", ErrSampleFailed, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, Snapshot{}, 0, fmt.Errorf("%w: %v", ErrInvalidSample, v)
	}

	s.state = StateCommitting
	s.current = v
	c := s.tracker.Observe(v)

	changed = []uint16{ResourceSensorValue}
	if c.Has(ChangedMax) {
		changed = append(changed, ResourceMaxMeasured)
	}
	if c.Has(ChangedMin) {
		changed = append(changed, ResourceMinMeasured)
	}
	return changed, Snapshot{Current: s.current, Min: s.tracker.Min, Max: s.tracker.Max}, 0, nil
}

// resetMinMax runs under s.mu.
func (s *Sensor) resetMinMax(string) error {
	s.tracker.Reset(s.current)
	s.pending = []uint16{ResourceMinMeasured, ResourceMaxMeasured}
	s.metrics.reset(s.labels)
	s.logger.Debug("min/max reset", "value", s.current)
	return nil
}

// readRounded returns a read handler for a float resource. It runs under s.mu.
func (s *Sensor) readRounded(id uint16, get func() float64) func() (node.Resource, error) {
	return func() (node.Resource, error) {
		return node.NewFloatResource(id, RoundHalfUp(get(), s.precision)), nil
	}
}

func (s *Sensor) readUnits() (node.Resource, error) {
	return node.NewStringResource(ResourceSensorUnits, s.units), nil
}

// notify runs after the lock is released, so delivery order across a tick
// and a concurrent reset is not guaranteed to match commit order.
func (s *Sensor) notify(changed []uint16) {
	if len(changed) == 0 {
		return
	}
	s.metrics.notification(s.labels)
	s.logEvent(log.CategoryNotify, func(e *log.Event) {
		e.Notify = &log.NotifyEvent{ResourceIDs: changed}
	})
	s.FireResourcesChange(changed...)
}

func (s *Sensor) logEvent(cat log.Category, fill func(*log.Event)) {
	e := log.Event{
		Timestamp:  time.Now(),
		Endpoint:   s.endpoint,
		Category:   cat,
		ObjectID:   s.ObjectID(),
		InstanceID: s.InstanceID(),
	}
	fill(&e)
	s.events.Log(e)
}

// Compile-time interface satisfaction check.
var _ client.Instance = (*Sensor)(nil)
