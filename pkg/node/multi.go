package node

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/LarsBremen/leshan/pkg/model"
)

// MultiResource is a resource holding indexed values of one type.
type MultiResource struct {
	id     uint16
	typ    model.Type
	values map[uint16]any
}

// NewMultiResource creates a multi-instance resource. Every value is checked
// like NewResource checks a single value.
func NewMultiResource(id uint16, values map[uint16]any, typ model.Type) (*MultiResource, error) {
	checked := make(map[uint16]any, len(values))
	for i, v := range values {
		cv, err := checkValue(v, typ)
		if err != nil {
			return nil, fmt.Errorf("resource %d instance %d: %w", id, i, err)
		}
		checked[i] = cv
	}
	return &MultiResource{id: id, typ: typ, values: checked}, nil
}

// ID returns the resource id.
func (r *MultiResource) ID() uint16 { return r.id }

// Type returns the declared value type.
func (r *MultiResource) Type() model.Type { return r.typ }

// IsMultiInstances returns true.
func (r *MultiResource) IsMultiInstances() bool { return true }

// Value returns nil; use Values or ValueAt.
func (r *MultiResource) Value() any { return nil }

// Values returns a copy of the indexed values.
func (r *MultiResource) Values() (map[uint16]any, error) {
	out := make(map[uint16]any, len(r.values))
	for i, v := range r.values {
		if b, ok := v.([]byte); ok {
			v = cloneBytes(b)
		}
		out[i] = v
	}
	return out, nil
}

// ValueAt returns the value at index.
func (r *MultiResource) ValueAt(index uint16) (any, error) {
	v, ok := r.values[index]
	if !ok {
		return nil, fmt.Errorf("%w: resource %d has no instance %d", ErrNoSuchElement, r.id, index)
	}
	if b, ok := v.([]byte); ok {
		return cloneBytes(b), nil
	}
	return v, nil
}

// Equal reports whether other is a multi-instance resource with the same content.
func (r *MultiResource) Equal(other Resource) bool {
	o, ok := other.(*MultiResource)
	if !ok || o == nil {
		return false
	}
	if r.id != o.id || r.typ != o.typ || len(r.values) != len(o.values) {
		return false
	}
	for i, v := range r.values {
		ov, exists := o.values[i]
		if !exists || !valueEqual(r.typ, v, ov) {
			return false
		}
	}
	return true
}

// Hash returns a content hash consistent with Equal.
func (r *MultiResource) Hash() uint64 {
	h := fnv.New64a()
	writeHeader(h, r.id, r.typ, true)
	for _, i := range r.indexes() {
		h.Write([]byte{byte(i >> 8), byte(i)})
		h.Write(payloadBytes(r.typ, r.values[i]))
	}
	return h.Sum64()
}

func (r *MultiResource) indexes() []uint16 {
	idx := make([]uint16, 0, len(r.values))
	for i := range r.values {
		idx = append(idx, i)
	}
	sort.Slice(idx, func(a, b int) bool { return idx[a] < idx[b] })
	return idx
}

func (r *MultiResource) String() string {
	return fmt.Sprintf("MultiResource [id=%d, values=%v, type=%s]", r.id, r.values, r.typ)
}
