package commands

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/LarsBremen/leshan/pkg/log"
)

func TestFilterOptionsBuild(t *testing.T) {
	filter, err := FilterOptions{
		Endpoint:  "dev-1",
		Category:  "Tick",
		Object:    "3304",
		Instance:  "2",
		TimeStart: "2026-01-28T10:00:00Z",
		TimeEnd:   "2026-01-28T11:00:00Z",
	}.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if filter.Endpoint != "dev-1" {
		t.Errorf("Endpoint = %q", filter.Endpoint)
	}
	if filter.Category == nil || *filter.Category != log.CategoryTick {
		t.Errorf("Category = %v", filter.Category)
	}
	if filter.ObjectID == nil || *filter.ObjectID != 3304 {
		t.Errorf("ObjectID = %v", filter.ObjectID)
	}
	if filter.InstanceID == nil || *filter.InstanceID != 2 {
		t.Errorf("InstanceID = %v", filter.InstanceID)
	}
	if filter.TimeStart == nil || filter.TimeEnd == nil {
		t.Error("expected time bounds")
	}
}

func TestFilterOptionsBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		opts FilterOptions
	}{
		{"category", FilterOptions{Category: "bogus"}},
		{"object", FilterOptions{Object: "70000"}},
		{"instance", FilterOptions{Instance: "-1"}},
		{"time-start", FilterOptions{TimeStart: "yesterday"}},
		{"time-end", FilterOptions{TimeEnd: "tomorrow"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.opts.Build(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunFilterByInstance(t *testing.T) {
	path := createTestLogFile(t, sampleEvents(t))
	out := filepath.Join(t.TempDir(), "out.elog")

	n, err := RunFilter(path, FilterOptions{Output: out, Object: "3303", Instance: "1"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 event, got %d", n)
	}

	reader, err := log.NewReader(out)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if event.Error == nil || event.Error.Message != "sample failed" {
		t.Errorf("unexpected event: %+v", event)
	}
	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestRunFilterTimeRange(t *testing.T) {
	path := createTestLogFile(t, sampleEvents(t))
	out := filepath.Join(t.TempDir(), "out.elog")

	n, err := RunFilter(path, FilterOptions{
		Output:    out,
		TimeStart: "2026-01-28T10:15:33Z",
		TimeEnd:   "2026-01-28T10:15:35Z",
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	// Tick and notify at :33.123, read at :34.123.
	if n != 3 {
		t.Errorf("expected 3 events, got %d", n)
	}
}
