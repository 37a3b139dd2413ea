package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/LarsBremen/leshan/pkg/log"
	"github.com/LarsBremen/leshan/pkg/node"
)

var testTime = time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

// createTestLogFile writes events to a temporary event file.
func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.elog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

// sampleEvents is a short session of one humidity sensor.
func sampleEvents(t *testing.T) []log.Event {
	t.Helper()
	content, err := node.EncodeResource(node.NewFloatResource(5700, 21.5))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return []log.Event{
		{Timestamp: testTime, Endpoint: "dev-1", Category: log.CategoryState, ObjectID: 3304,
			StateChange: &log.StateChangeEvent{NewState: "IDLE", Reason: "started"}},
		{Timestamp: testTime.Add(time.Second), Endpoint: "dev-1", Category: log.CategoryTick, ObjectID: 3304,
			Tick: &log.TickEvent{Value: 21.5, Min: 21.5, Max: 21.5, Changed: []uint16{5700, 5602, 5601}, Duration: 40 * time.Microsecond}},
		{Timestamp: testTime.Add(time.Second), Endpoint: "dev-1", Category: log.CategoryNotify, ObjectID: 3304,
			Notify: &log.NotifyEvent{ResourceIDs: []uint16{5700, 5602, 5601}}},
		{Timestamp: testTime.Add(2 * time.Second), Endpoint: "dev-1", Category: log.CategoryRead, ObjectID: 3304,
			Read: &log.ReadEvent{ResourceID: 5700, Code: "CONTENT", Content: content}},
		{Timestamp: testTime.Add(3 * time.Second), Endpoint: "dev-1", Category: log.CategoryExecute, ObjectID: 3304,
			Execute: &log.ExecuteEvent{ResourceID: 5605, Code: "CHANGED"}},
		{Timestamp: testTime.Add(4 * time.Second), Endpoint: "dev-1", Category: log.CategoryError, ObjectID: 3303, InstanceID: 1,
			Error: &log.ErrorEventData{Message: "sample failed", Context: "tick"}},
	}
}
