package node

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/LarsBremen/leshan/pkg/model"
)

// encMode is the CBOR encoder mode for resource values.
// Configured for deterministic encoding with integer keys.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for resource values.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// wireResource is the CBOR form of a resource.
type wireResource struct {
	ID     uint16                     `cbor:"1,keyasint"`
	Type   model.Type                 `cbor:"2,keyasint"`
	Value  cbor.RawMessage            `cbor:"3,keyasint,omitempty"`
	Values map[uint16]cbor.RawMessage `cbor:"4,keyasint,omitempty"`
	Multi  bool                       `cbor:"5,keyasint,omitempty"`
}

// EncodeResource encodes a resource to CBOR bytes.
func EncodeResource(r Resource) ([]byte, error) {
	w := wireResource{ID: r.ID(), Type: r.Type(), Multi: r.IsMultiInstances()}

	if !w.Multi {
		raw, err := encMode.Marshal(r.Value())
		if err != nil {
			return nil, fmt.Errorf("failed to encode resource %d: %w", r.ID(), err)
		}
		w.Value = raw
		return encMode.Marshal(w)
	}

	values, err := r.Values()
	if err != nil {
		return nil, err
	}
	w.Values = make(map[uint16]cbor.RawMessage, len(values))
	for i, v := range values {
		raw, err := encMode.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode resource %d instance %d: %w", r.ID(), i, err)
		}
		w.Values[i] = raw
	}
	return encMode.Marshal(w)
}

// DecodeResource decodes CBOR bytes into a resource, re-validating the value
// against the encoded type.
func DecodeResource(data []byte) (Resource, error) {
	var w wireResource
	if err := decMode.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode resource: %w", err)
	}

	if !w.Multi {
		v, err := decodeValue(w.Type, w.Value)
		if err != nil {
			return nil, fmt.Errorf("resource %d: %w", w.ID, err)
		}
		return NewResource(w.ID, v, w.Type)
	}

	values := make(map[uint16]any, len(w.Values))
	for i, raw := range w.Values {
		v, err := decodeValue(w.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("resource %d instance %d: %w", w.ID, i, err)
		}
		values[i] = v
	}
	return NewMultiResource(w.ID, values, w.Type)
}

func decodeValue(typ model.Type, raw cbor.RawMessage) (any, error) {
	var err error
	switch typ {
	case model.TypeInteger:
		var v int64
		err = decMode.Unmarshal(raw, &v)
		return v, err
	case model.TypeFloat:
		var v float64
		err = decMode.Unmarshal(raw, &v)
		return v, err
	case model.TypeBoolean:
		var v bool
		err = decMode.Unmarshal(raw, &v)
		return v, err
	case model.TypeString:
		var v string
		err = decMode.Unmarshal(raw, &v)
		return v, err
	case model.TypeOpaque:
		var v []byte
		err = decMode.Unmarshal(raw, &v)
		return v, err
	case model.TypeTime:
		var v time.Time
		err = decMode.Unmarshal(raw, &v)
		return v, err
	case model.TypeObjectLink:
		var v ObjectLink
		err = decMode.Unmarshal(raw, &v)
		return v, err
	}
	return nil, fmt.Errorf("%w: type %s is not supported", ErrInvalidArgument, typ)
}
