package observe

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/LarsBremen/leshan/pkg/client"
	"github.com/LarsBremen/leshan/pkg/node"
)

// Registry errors.
var (
	ErrObservationNotFound = errors.New("observation not found")
	ErrResourceExhausted   = errors.New("too many observations")
	ErrNoCallback          = errors.New("observer callback required")
)

// DefaultMaxObservations bounds the number of live observations.
const DefaultMaxObservations = 64

// Notification is one change event delivered to one observer.
type Notification struct {
	// Token identifies the observation.
	Token string

	// ObjectID and InstanceID identify the instance that changed.
	ObjectID   uint16
	InstanceID uint16

	// ResourceIDs are the changed resources the observer asked for.
	ResourceIDs []uint16

	// Timestamp is when the change was reported.
	Timestamp time.Time
}

// Config configures a Registry.
type Config struct {
	// MaxObservations bounds the number of live observations.
	MaxObservations int

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default registry configuration.
func DefaultConfig() Config {
	return Config{MaxObservations: DefaultMaxObservations}
}

// Observation is a registered interest in an object instance.
type Observation struct {
	Token      string
	ObjectID   uint16
	InstanceID uint16

	// ResourceIDs restricts the observation. Empty observes every resource.
	ResourceIDs []uint16

	Created time.Time

	fn        func(Notification)
	delivered atomic.Uint64
}

// Delivered returns the number of notifications delivered so far.
func (o *Observation) Delivered() uint64 {
	return o.delivered.Load()
}

func (o *Observation) filter(ids []uint16) []uint16 {
	if len(o.ResourceIDs) == 0 {
		return slices.Clone(ids)
	}
	var out []uint16
	for _, id := range ids {
		if slices.Contains(o.ResourceIDs, id) {
			out = append(out, id)
		}
	}
	return out
}

type instanceKey struct {
	objectID   uint16
	instanceID uint16
}

// Registry tracks observations and dispatches change events to them.
type Registry struct {
	mu sync.RWMutex

	config       Config
	logger       *slog.Logger
	observations map[string]*Observation
	index        map[instanceKey][]*Observation
}

// NewRegistry creates an empty registry.
func NewRegistry(config Config) *Registry {
	if config.MaxObservations <= 0 {
		config.MaxObservations = DefaultMaxObservations
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Registry{
		config:       config,
		logger:       config.Logger,
		observations: make(map[string]*Observation),
		index:        make(map[instanceKey][]*Observation),
	}
}

// Observe registers fn for every change of an object instance and returns
// the observation token.
func (r *Registry) Observe(objectID, instanceID uint16, fn func(Notification)) (string, error) {
	return r.ObserveResources(objectID, instanceID, nil, fn)
}

// ObserveResources registers fn for changes of the given resources only.
func (r *Registry) ObserveResources(objectID, instanceID uint16, resourceIDs []uint16, fn func(Notification)) (string, error) {
	if fn == nil {
		return "", ErrNoCallback
	}

	obs := &Observation{
		Token:       uuid.NewString(),
		ObjectID:    objectID,
		InstanceID:  instanceID,
		ResourceIDs: slices.Clone(resourceIDs),
		Created:     time.Now(),
		fn:          fn,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.observations) >= r.config.MaxObservations {
		return "", fmt.Errorf("%w: limit %d", ErrResourceExhausted, r.config.MaxObservations)
	}
	r.observations[obs.Token] = obs
	key := instanceKey{objectID, instanceID}
	r.index[key] = append(r.index[key], obs)

	r.logger.Debug("observation added", "token", obs.Token, "object", objectID, "instance", instanceID, "resources", resourceIDs)
	return obs.Token, nil
}

// ObservePath registers fn for an instance path ("/3304/0") or a resource
// path ("/3304/0/5700").
func (r *Registry) ObservePath(path string, fn func(Notification)) (string, error) {
	p, err := node.ParsePath(path)
	if err != nil {
		return "", err
	}
	switch {
	case p.IsResource():
		return r.ObserveResources(p.ObjectID, *p.InstanceID, []uint16{*p.ResourceID}, fn)
	case p.IsInstance():
		return r.Observe(p.ObjectID, *p.InstanceID, fn)
	default:
		return "", fmt.Errorf("%w: %s does not address an instance", node.ErrInvalidArgument, path)
	}
}

// Cancel removes an observation.
func (r *Registry) Cancel(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	obs, exists := r.observations[token]
	if !exists {
		return fmt.Errorf("%w: %s", ErrObservationNotFound, token)
	}
	delete(r.observations, token)

	key := instanceKey{obs.ObjectID, obs.InstanceID}
	r.index[key] = slices.DeleteFunc(r.index[key], func(o *Observation) bool { return o == obs })
	if len(r.index[key]) == 0 {
		delete(r.index, key)
	}
	return nil
}

// CancelAll removes every observation.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.observations = make(map[string]*Observation)
	r.index = make(map[instanceKey][]*Observation)
}

// Get returns an observation by token.
func (r *Registry) Get(token string) (*Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obs, exists := r.observations[token]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrObservationNotFound, token)
	}
	return obs, nil
}

// Count returns the number of live observations.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.observations)
}

// ResourcesChanged delivers one change event to the matching observers.
func (r *Registry) ResourcesChanged(objectID, instanceID uint16, resourceIDs ...uint16) {
	if len(resourceIDs) == 0 {
		return
	}
	now := time.Now()

	r.mu.RLock()
	observers := slices.Clone(r.index[instanceKey{objectID, instanceID}])
	r.mu.RUnlock()

	for _, obs := range observers {
		ids := obs.filter(resourceIDs)
		if len(ids) == 0 {
			continue
		}
		r.deliver(obs, Notification{
			Token:       obs.Token,
			ObjectID:    objectID,
			InstanceID:  instanceID,
			ResourceIDs: ids,
			Timestamp:   now,
		})
	}
}

func (r *Registry) deliver(obs *Observation, n Notification) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("observer panicked", "token", obs.Token, "panic", fmt.Sprint(p))
		}
	}()
	obs.fn(n)
	obs.delivered.Add(1)
}

// Compile-time interface satisfaction check.
var _ client.Notifier = (*Registry)(nil)
