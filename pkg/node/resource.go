package node

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/LarsBremen/leshan/pkg/model"
)

// Resource errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoSuchElement   = errors.New("no such element")
)

// Resource is a resource value, either single or multi-instance.
type Resource interface {
	// ID returns the resource id.
	ID() uint16

	// Type returns the declared value type.
	Type() model.Type

	// IsMultiInstances reports whether the resource holds indexed values.
	IsMultiInstances() bool

	// Value returns the scalar of a single resource, nil for multi-instance resources.
	Value() any

	// Values returns the indexed values of a multi-instance resource.
	// Single resources return ErrNoSuchElement.
	Values() (map[uint16]any, error)

	// ValueAt returns one indexed value of a multi-instance resource.
	// Single resources return ErrNoSuchElement.
	ValueAt(index uint16) (any, error)

	// Equal reports whether both resources have the same id, type and content.
	Equal(other Resource) bool

	// Hash returns a content hash consistent with Equal.
	Hash() uint64

	String() string
}

// SingleResource is a resource with one value.
type SingleResource struct {
	id    uint16
	typ   model.Type
	value any
}

// NewResource creates a single resource after checking that value has the
// representation required by typ.
func NewResource(id uint16, value any, typ model.Type) (*SingleResource, error) {
	v, err := checkValue(value, typ)
	if err != nil {
		return nil, err
	}
	return &SingleResource{id: id, typ: typ, value: v}, nil
}

// NewIntegerResource creates an INTEGER resource.
func NewIntegerResource(id uint16, value int64) *SingleResource {
	return &SingleResource{id: id, typ: model.TypeInteger, value: value}
}

// NewFloatResource creates a FLOAT resource.
func NewFloatResource(id uint16, value float64) *SingleResource {
	return &SingleResource{id: id, typ: model.TypeFloat, value: value}
}

// NewBooleanResource creates a BOOLEAN resource.
func NewBooleanResource(id uint16, value bool) *SingleResource {
	return &SingleResource{id: id, typ: model.TypeBoolean, value: value}
}

// NewStringResource creates a STRING resource.
func NewStringResource(id uint16, value string) *SingleResource {
	return &SingleResource{id: id, typ: model.TypeString, value: value}
}

// NewOpaqueResource creates an OPAQUE resource holding a copy of value.
func NewOpaqueResource(id uint16, value []byte) *SingleResource {
	return &SingleResource{id: id, typ: model.TypeOpaque, value: cloneBytes(value)}
}

// NewTimeResource creates a TIME resource.
func NewTimeResource(id uint16, value time.Time) *SingleResource {
	return &SingleResource{id: id, typ: model.TypeTime, value: value}
}

// NewObjectLinkResource creates an OBJLNK resource.
func NewObjectLinkResource(id uint16, value ObjectLink) *SingleResource {
	return &SingleResource{id: id, typ: model.TypeObjectLink, value: value}
}

// ID returns the resource id.
func (r *SingleResource) ID() uint16 { return r.id }

// Type returns the declared value type.
func (r *SingleResource) Type() model.Type { return r.typ }

// IsMultiInstances returns false.
func (r *SingleResource) IsMultiInstances() bool { return false }

// Value returns the resource value. Opaque values are returned as a copy.
func (r *SingleResource) Value() any {
	if b, ok := r.value.([]byte); ok {
		return cloneBytes(b)
	}
	return r.value
}

// Values always fails on a single resource; use Value instead.
func (r *SingleResource) Values() (map[uint16]any, error) {
	return nil, fmt.Errorf("%w: resource %d is single-valued, use Value()", ErrNoSuchElement, r.id)
}

// ValueAt always fails on a single resource; use Value instead.
func (r *SingleResource) ValueAt(uint16) (any, error) {
	return nil, fmt.Errorf("%w: resource %d is single-valued, use Value()", ErrNoSuchElement, r.id)
}

// Equal reports whether other is a single resource with the same id, type and content.
func (r *SingleResource) Equal(other Resource) bool {
	o, ok := other.(*SingleResource)
	if !ok || o == nil {
		return false
	}
	return r.id == o.id && r.typ == o.typ && valueEqual(r.typ, r.value, o.value)
}

// Hash returns a content hash consistent with Equal.
func (r *SingleResource) Hash() uint64 {
	h := fnv.New64a()
	writeHeader(h, r.id, r.typ, false)
	h.Write(payloadBytes(r.typ, r.value))
	return h.Sum64()
}

func (r *SingleResource) String() string {
	return fmt.Sprintf("SingleResource [id=%d, value=%v, type=%s]", r.id, r.value, r.typ)
}

// checkValue validates the runtime shape of value against typ.
func checkValue(value any, typ model.Type) (any, error) {
	ok := false
	switch typ {
	case model.TypeInteger:
		_, ok = value.(int64)
	case model.TypeFloat:
		_, ok = value.(float64)
	case model.TypeBoolean:
		_, ok = value.(bool)
	case model.TypeString:
		_, ok = value.(string)
	case model.TypeOpaque:
		if b, isBytes := value.([]byte); isBytes {
			return cloneBytes(b), nil
		}
	case model.TypeTime:
		_, ok = value.(time.Time)
	case model.TypeObjectLink:
		_, ok = value.(ObjectLink)
	default:
		return nil, fmt.Errorf("%w: type %s is not supported", ErrInvalidArgument, typ)
	}
	if !ok {
		return nil, fmt.Errorf("%w: value %T does not match the given data type %s", ErrInvalidArgument, value, typ)
	}
	return value, nil
}

func valueEqual(typ model.Type, a, b any) bool {
	switch typ {
	case model.TypeOpaque:
		return bytes.Equal(a.([]byte), b.([]byte))
	case model.TypeTime:
		return a.(time.Time).Equal(b.(time.Time))
	case model.TypeFloat:
		return math.Float64bits(a.(float64)) == math.Float64bits(b.(float64))
	default:
		return a == b
	}
}

// payloadBytes returns the canonical byte form of a value for hashing.
func payloadBytes(typ model.Type, v any) []byte {
	var buf [8]byte
	switch typ {
	case model.TypeInteger:
		binary.BigEndian.PutUint64(buf[:], uint64(v.(int64)))
		return buf[:]
	case model.TypeFloat:
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v.(float64)))
		return buf[:]
	case model.TypeBoolean:
		if v.(bool) {
			return []byte{1}
		}
		return []byte{0}
	case model.TypeString:
		return []byte(v.(string))
	case model.TypeOpaque:
		return v.([]byte)
	case model.TypeTime:
		binary.BigEndian.PutUint64(buf[:], uint64(v.(time.Time).UnixNano()))
		return buf[:]
	case model.TypeObjectLink:
		l := v.(ObjectLink)
		binary.BigEndian.PutUint16(buf[0:], l.ObjectID)
		binary.BigEndian.PutUint16(buf[2:], l.InstanceID)
		return buf[:4]
	}
	return nil
}

type byteWriter interface {
	Write(p []byte) (int, error)
}

func writeHeader(w byteWriter, id uint16, typ model.Type, multi bool) {
	hdr := []byte{byte(id >> 8), byte(id), byte(typ), 0}
	if multi {
		hdr[3] = 1
	}
	w.Write(hdr)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
