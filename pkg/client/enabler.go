package client

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/LarsBremen/leshan/pkg/model"
	"github.com/LarsBremen/leshan/pkg/response"
)

// Registry errors.
var (
	ErrDuplicateInstance = errors.New("duplicate instance")
	ErrInstanceNotFound  = errors.New("instance not found")
	ErrObjectNotFound    = errors.New("object not found")
	ErrObjectMismatch    = errors.New("instance belongs to another object")
	ErrClientClosed      = errors.New("client closed")
)

// ObjectEnabler holds the instances of one object.
type ObjectEnabler struct {
	mu sync.RWMutex

	id        uint16
	object    *model.ObjectModel
	instances map[uint16]Instance
}

// NewObjectEnabler creates an empty enabler. object may be nil.
func NewObjectEnabler(id uint16, object *model.ObjectModel) *ObjectEnabler {
	return &ObjectEnabler{
		id:        id,
		object:    object,
		instances: make(map[uint16]Instance),
	}
}

// ID returns the object id.
func (e *ObjectEnabler) ID() uint16 { return e.id }

// Object returns the catalog entry, or nil.
func (e *ObjectEnabler) Object() *model.ObjectModel { return e.object }

// AddInstance registers an instance.
func (e *ObjectEnabler) AddInstance(inst Instance) error {
	if inst.ObjectID() != e.id {
		return fmt.Errorf("%w: %d != %d", ErrObjectMismatch, inst.ObjectID(), e.id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.instances[inst.InstanceID()]; exists {
		return fmt.Errorf("%w: /%d/%d", ErrDuplicateInstance, e.id, inst.InstanceID())
	}
	e.instances[inst.InstanceID()] = inst
	return nil
}

// RemoveInstance unregisters an instance and returns it. The caller owns
// closing it.
func (e *ObjectEnabler) RemoveInstance(id uint16) (Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, exists := e.instances[id]
	if !exists {
		return nil, fmt.Errorf("%w: /%d/%d", ErrInstanceNotFound, e.id, id)
	}
	delete(e.instances, id)
	return inst, nil
}

// Instance returns an instance by id.
func (e *ObjectEnabler) Instance(id uint16) (Instance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	inst, exists := e.instances[id]
	if !exists {
		return nil, fmt.Errorf("%w: /%d/%d", ErrInstanceNotFound, e.id, id)
	}
	return inst, nil
}

// InstanceIDs returns the registered instance ids in ascending order.
func (e *ObjectEnabler) InstanceIDs() []uint16 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]uint16, 0, len(e.instances))
	for id := range e.instances {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Read reads a resource of an instance.
func (e *ObjectEnabler) Read(instanceID, resourceID uint16) *response.ReadResponse {
	inst, err := e.Instance(instanceID)
	if err != nil {
		return response.ReadNotFound()
	}
	return inst.Read(resourceID)
}

// Execute executes a resource of an instance.
func (e *ObjectEnabler) Execute(instanceID, resourceID uint16, params string) *response.ExecuteResponse {
	inst, err := e.Instance(instanceID)
	if err != nil {
		return response.ExecuteNotFound()
	}
	return inst.Execute(resourceID, params)
}

// Close closes every instance.
func (e *ObjectEnabler) Close() error {
	e.mu.RLock()
	insts := make([]Instance, 0, len(e.instances))
	for _, inst := range e.instances {
		insts = append(insts, inst)
	}
	e.mu.RUnlock()

	var errs []error
	for _, inst := range insts {
		if err := inst.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close /%d/%d: %w", e.id, inst.InstanceID(), err))
		}
	}
	return errors.Join(errs...)
}
