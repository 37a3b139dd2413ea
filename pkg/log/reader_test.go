package log

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.elog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var read []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return read
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	now := time.Now()
	events := []Event{
		{Timestamp: now, Endpoint: "a", Category: CategoryRead, ObjectID: 3304},
		{Timestamp: now, Endpoint: "b", Category: CategoryTick, ObjectID: 3303},
		{Timestamp: now, Endpoint: "a", Category: CategoryError, ObjectID: 3304, Error: &ErrorEventData{Message: "boom"}},
	}
	reader, err := NewReader(createTestLogFile(t, events))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 3 {
		t.Fatalf("read %d events, want 3", len(read))
	}
	if read[2].Error == nil || read[2].Error.Message != "boom" {
		t.Errorf("third event error = %+v", read[2].Error)
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, Endpoint: "a", Category: CategoryRead, ObjectID: 3304},
		{Timestamp: base.Add(time.Second), Endpoint: "a", Category: CategoryNotify, ObjectID: 3304},
		{Timestamp: base.Add(2 * time.Second), Endpoint: "b", Category: CategoryNotify, ObjectID: 3303, InstanceID: 1},
	}
	path := createTestLogFile(t, events)

	notify := CategoryNotify
	temp := uint16(3303)
	inst := uint16(1)
	start := base.Add(time.Second)
	end := base.Add(2 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"none", Filter{}, 3},
		{"endpoint", Filter{Endpoint: "a"}, 2},
		{"category", Filter{Category: &notify}, 2},
		{"object", Filter{ObjectID: &temp}, 1},
		{"instance", Filter{InstanceID: &inst}, 1},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 1},
		{"combined", Filter{Endpoint: "a", Category: &notify}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()
			if got := len(readAll(t, reader)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.elog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderSkipsPastUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.elog")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	enc := NewEncoder(f)
	now := time.Now()
	for _, e := range []Event{
		{Timestamp: now, Category: Category(17)},
		{Timestamp: now, Category: CategoryTick, Tick: &TickEvent{}},
	} {
		if err := enc.Encode(e); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}
	f.Close()

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	if _, err := r.Next(); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("first Next() error = %v, want ErrUnknownCategory", err)
	}
	event, err := r.Next()
	if err != nil {
		t.Fatalf("second Next() failed: %v", err)
	}
	if event.Category != CategoryTick {
		t.Errorf("Category = %v, want TICK", event.Category)
	}
}
