package log

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter specifies criteria for filtering events.
// Empty/nil fields match all events for that criterion.
type Filter struct {
	// Endpoint filters by exact endpoint name.
	Endpoint string

	// Category filters by event category.
	Category *Category

	// ObjectID filters by object.
	ObjectID *uint16

	// InstanceID filters by object instance.
	InstanceID *uint16

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time
}

// Matches returns true if the event matches all filter criteria.
func (f *Filter) Matches(event Event) bool {
	if f.Endpoint != "" && event.Endpoint != f.Endpoint {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.ObjectID != nil && event.ObjectID != *f.ObjectID {
		return false
	}
	if f.InstanceID != nil && event.InstanceID != *f.InstanceID {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader reads events from a CBOR-encoded file.
// It provides an iterator interface for streaming large files.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader creates a Reader that reads all events from the specified file.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader that reads events matching the filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: NewDecoder(f),
		filter:  filter,
	}, nil
}

// Next returns the next event that matches the filter.
// Returns io.EOF when no more events are available. An event with an unknown
// category yields ErrUnknownCategory; the stream stays usable after it.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		if err := event.check(); err != nil {
			return Event{}, err
		}

		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
