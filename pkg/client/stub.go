package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/LarsBremen/leshan/pkg/model"
	"github.com/LarsBremen/leshan/pkg/node"
	"github.com/LarsBremen/leshan/pkg/response"
)

// ErrNoObjectModel is returned when a stub is built without a catalog entry.
var ErrNoObjectModel = errors.New("object model required")

// StubInstance serves every resource an object declares with a constant
// value of the declared type. Executable resources succeed and do nothing.
type StubInstance struct {
	*BaseInstance
	table Table
	clock func() time.Time
}

// StubOption configures a StubInstance.
type StubOption func(*StubInstance)

// WithStubInstanceID sets the instance id (default 0).
func WithStubInstanceID(id uint16) StubOption {
	return func(s *StubInstance) {
		s.BaseInstance.instanceID = id
	}
}

// WithStubClock sets the clock used for Time resources (default time.Now).
func WithStubClock(clock func() time.Time) StubOption {
	return func(s *StubInstance) {
		s.clock = clock
	}
}

// WithStubNotifier sets the change sink.
func WithStubNotifier(n Notifier) StubOption {
	return func(s *StubInstance) {
		s.BaseInstance.notifier = n
	}
}

// NewStubInstance builds a stub for obj.
func NewStubInstance(obj *model.ObjectModel, opts ...StubOption) (*StubInstance, error) {
	if obj == nil {
		return nil, ErrNoObjectModel
	}

	s := &StubInstance{
		BaseInstance: NewBaseInstance(obj.ID, 0, obj, nil),
		table:        make(Table),
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, id := range obj.ResourceIDs() {
		rm, _ := obj.Resource(id)
		var h Handler
		if rm.Operations.IsReadable() && rm.Type.IsValue() {
			h.Read = s.constant(*rm)
		}
		if rm.Operations.IsExecutable() {
			h.Execute = func(string) error { return nil }
		}
		if h.Read != nil || h.Execute != nil {
			s.table[id] = h
		}
	}
	return s, nil
}

// Read returns the constant for a declared readable resource.
func (s *StubInstance) Read(resourceID uint16) *response.ReadResponse {
	return s.table.Read(s.BaseInstance, resourceID)
}

// Execute succeeds for declared executable resources.
func (s *StubInstance) Execute(resourceID uint16, params string) *response.ExecuteResponse {
	return s.table.Execute(s.BaseInstance, resourceID, params)
}

// ResourceIDs returns the ids served by the stub.
func (s *StubInstance) ResourceIDs() []uint16 {
	return s.table.IDs()
}

func (s *StubInstance) constant(rm model.ResourceModel) func() (node.Resource, error) {
	return func() (node.Resource, error) {
		v := s.zero(rm.Type)
		if rm.Multiple {
			return node.NewMultiResource(rm.ID, map[uint16]any{0: v}, rm.Type)
		}
		return node.NewResource(rm.ID, v, rm.Type)
	}
}

func (s *StubInstance) zero(t model.Type) any {
	switch t {
	case model.TypeInteger:
		return int64(0)
	case model.TypeFloat:
		return float64(0)
	case model.TypeBoolean:
		return false
	case model.TypeString:
		return ""
	case model.TypeOpaque:
		return []byte{}
	case model.TypeTime:
		return s.clock()
	case model.TypeObjectLink:
		return node.ObjectLink{}
	default:
		panic(fmt.Sprintf("no constant for type %s", t))
	}
}

// Compile-time interface satisfaction check.
var _ Instance = (*StubInstance)(nil)
