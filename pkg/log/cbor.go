package log

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// ErrUnknownCategory is returned for events whose category this build does
// not know how to print or filter.
var ErrUnknownCategory = errors.New("unknown event category")

// Event logs are canonical CBOR with RFC 3339 nanosecond timestamps, so two
// clients capturing the same event produce the same bytes.
var (
	eventEnc = mustMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode())

	eventDec = mustMode(cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}.DecMode())
)

func mustMode[M any](mode M, err error) M {
	if err != nil {
		panic(fmt.Sprintf("event log cbor mode: %v", err))
	}
	return mode
}

func (e Event) check() error {
	if e.Category > CategoryError {
		return fmt.Errorf("%w %d at /%d/%d", ErrUnknownCategory, e.Category, e.ObjectID, e.InstanceID)
	}
	return nil
}

// EncodeEvent returns the event log encoding of event.
func EncodeEvent(event Event) ([]byte, error) {
	if err := event.check(); err != nil {
		return nil, err
	}
	return eventEnc.Marshal(event)
}

// DecodeEvent parses one event as written by EncodeEvent.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDec.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	if err := event.check(); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewEncoder returns an encoder that writes events to w back to back.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return eventEnc.NewEncoder(w)
}

// NewDecoder returns a decoder for a stream written by NewEncoder.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return eventDec.NewDecoder(r)
}
