package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends events to an event log as a CBOR sequence.
//
// Events arriving without a Timestamp are stamped when written. Events that
// cannot be encoded are counted and dropped; Log never reports an error back
// to the sensor or client that produced the event.
type FileLogger struct {
	mu  sync.Mutex
	w   io.WriteCloser
	enc *cbor.Encoder
	now func() time.Time

	written uint64
	dropped uint64
	closed  bool
}

// NewFileLogger opens path for appending, creating it with mode 0644.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return newFileLogger(f), nil
}

func newFileLogger(w io.WriteCloser) *FileLogger {
	return &FileLogger{w: w, enc: NewEncoder(w), now: time.Now}
}

func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}
	if event.check() != nil || l.enc.Encode(event) != nil {
		l.dropped++
		return
	}
	l.written++
}

// Counts reports how many events reached the file and how many were dropped.
// Events logged after Close are not counted.
func (l *FileLogger) Counts() (written, dropped uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written, l.dropped
}

// Close syncs and closes the file. Later calls to Close return nil and later
// events are ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	var syncErr error
	if s, ok := l.w.(interface{ Sync() error }); ok {
		syncErr = s.Sync()
	}
	if err := l.w.Close(); err != nil {
		return err
	}
	return syncErr
}

var _ Logger = (*FileLogger)(nil)
