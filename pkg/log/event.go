package log

import (
	"time"
)

// Event represents one captured event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Endpoint is the client endpoint name.
	Endpoint string `cbor:"2,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// ObjectID identifies the object.
	ObjectID uint16 `cbor:"4,keyasint"`

	// InstanceID identifies the object instance.
	InstanceID uint16 `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	Read        *ReadEvent        `cbor:"10,keyasint,omitempty"`
	Execute     *ExecuteEvent     `cbor:"11,keyasint,omitempty"`
	Notify      *NotifyEvent      `cbor:"12,keyasint,omitempty"`
	Tick        *TickEvent        `cbor:"13,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"14,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"15,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRead indicates a resource read.
	CategoryRead Category = 0
	// CategoryExecute indicates a resource execute.
	CategoryExecute Category = 1
	// CategoryNotify indicates a change notification.
	CategoryNotify Category = 2
	// CategoryTick indicates a completed sampling tick.
	CategoryTick Category = 3
	// CategoryState indicates a lifecycle state change.
	CategoryState Category = 4
	// CategoryError indicates an error event.
	CategoryError Category = 5
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRead:
		return "READ"
	case CategoryExecute:
		return "EXECUTE"
	case CategoryNotify:
		return "NOTIFY"
	case CategoryTick:
		return "TICK"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as printed by String.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryRead; c <= CategoryError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// ReadEvent captures a read of one resource.
type ReadEvent struct {
	// ResourceID is the resource that was read.
	ResourceID uint16 `cbor:"1,keyasint"`

	// Code is the response code name.
	Code string `cbor:"2,keyasint"`

	// Content is the CBOR-encoded resource (see node.EncodeResource).
	Content []byte `cbor:"3,keyasint,omitempty"`
}

// ExecuteEvent captures an execute of one resource.
type ExecuteEvent struct {
	// ResourceID is the resource that was executed.
	ResourceID uint16 `cbor:"1,keyasint"`

	// Params are the raw execute arguments.
	Params string `cbor:"2,keyasint,omitempty"`

	// Code is the response code name.
	Code string `cbor:"3,keyasint"`
}

// NotifyEvent captures one combined change notification.
type NotifyEvent struct {
	// ResourceIDs lists the changed resources, primary first.
	ResourceIDs []uint16 `cbor:"1,keyasint"`
}

// TickEvent captures a completed sampling tick.
type TickEvent struct {
	// Value is the new sample.
	Value float64 `cbor:"1,keyasint"`

	// Min and Max are the aggregates after the tick.
	Min float64 `cbor:"2,keyasint"`
	Max float64 `cbor:"3,keyasint"`

	// Changed lists the resources reported as changed.
	Changed []uint16 `cbor:"4,keyasint,omitempty"`

	// Duration is how long the tick held the instance lock.
	Duration time.Duration `cbor:"5,keyasint"`
}

// StateChangeEvent captures instance lifecycle changes.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
