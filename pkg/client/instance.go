package client

import (
	"sync"

	"github.com/LarsBremen/leshan/pkg/model"
	"github.com/LarsBremen/leshan/pkg/response"
)

// Instance is one object instance exposed to the server side.
type Instance interface {
	// ObjectID returns the object this instance belongs to.
	ObjectID() uint16

	// InstanceID returns the instance id within its object.
	InstanceID() uint16

	// Read returns the current value of a resource.
	Read(resourceID uint16) *response.ReadResponse

	// Execute invokes an executable resource.
	Execute(resourceID uint16, params string) *response.ExecuteResponse

	// Close releases background work owned by the instance.
	Close() error
}

// Notifier receives change events. A single call reports every resource that
// changed in one step.
type Notifier interface {
	ResourcesChanged(objectID, instanceID uint16, resourceIDs ...uint16)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(objectID, instanceID uint16, resourceIDs ...uint16)

// ResourcesChanged calls f.
func (f NotifierFunc) ResourcesChanged(objectID, instanceID uint16, resourceIDs ...uint16) {
	f(objectID, instanceID, resourceIDs...)
}

// BaseInstance supplies the default results for resources an instance does
// not own, and the change notification plumbing.
type BaseInstance struct {
	objectID   uint16
	instanceID uint16
	object     *model.ObjectModel

	mu       sync.RWMutex
	notifier Notifier
}

// NewBaseInstance creates a base for the given instance. object may be nil
// when no catalog entry is known.
func NewBaseInstance(objectID, instanceID uint16, object *model.ObjectModel, notifier Notifier) *BaseInstance {
	return &BaseInstance{
		objectID:   objectID,
		instanceID: instanceID,
		object:     object,
		notifier:   notifier,
	}
}

// ObjectID returns the object id.
func (b *BaseInstance) ObjectID() uint16 { return b.objectID }

// InstanceID returns the instance id.
func (b *BaseInstance) InstanceID() uint16 { return b.instanceID }

// Object returns the catalog entry, or nil.
func (b *BaseInstance) Object() *model.ObjectModel { return b.object }

// Read is the default read: METHOD_NOT_ALLOWED for ids the catalog declares
// as not readable, NOT_FOUND otherwise.
func (b *BaseInstance) Read(resourceID uint16) *response.ReadResponse {
	if r, ok := b.declared(resourceID); ok && !r.Operations.IsReadable() {
		return response.ReadMethodNotAllowed()
	}
	return response.ReadNotFound()
}

// Execute is the default execute: METHOD_NOT_ALLOWED for ids the catalog
// declares as not executable, NOT_FOUND otherwise.
func (b *BaseInstance) Execute(resourceID uint16, _ string) *response.ExecuteResponse {
	if r, ok := b.declared(resourceID); ok && !r.Operations.IsExecutable() {
		return response.ExecuteMethodNotAllowed()
	}
	return response.ExecuteNotFound()
}

// Close does nothing.
func (b *BaseInstance) Close() error { return nil }

// SetNotifier replaces the change sink.
func (b *BaseInstance) SetNotifier(n Notifier) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifier = n
}

// FireResourcesChange reports the given resources as changed in one call.
// It must not be called while holding an instance lock the sink may need.
func (b *BaseInstance) FireResourcesChange(resourceIDs ...uint16) {
	if len(resourceIDs) == 0 {
		return
	}

	b.mu.RLock()
	n := b.notifier
	b.mu.RUnlock()

	if n != nil {
		n.ResourcesChanged(b.objectID, b.instanceID, resourceIDs...)
	}
}

func (b *BaseInstance) declared(resourceID uint16) (*model.ResourceModel, bool) {
	if b.object == nil {
		return nil, false
	}
	return b.object.Resource(resourceID)
}

// Compile-time interface satisfaction check.
var _ Instance = (*BaseInstance)(nil)
