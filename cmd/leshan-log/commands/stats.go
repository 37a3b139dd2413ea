package commands

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/LarsBremen/leshan/pkg/log"
)

// Stats holds aggregate statistics about an event file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Instances        map[InstanceKey]*InstanceStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// InstanceKey identifies an object instance.
type InstanceKey struct {
	ObjectID   uint16
	InstanceID uint16
}

// InstanceStats holds statistics for a single instance.
type InstanceStats struct {
	Events        int
	Ticks         int
	Notifications int
	LastValue     float64
	Min           float64
	Max           float64
}

// RunStats analyzes the event file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Instances:        make(map[InstanceKey]*InstanceStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	key := InstanceKey{event.ObjectID, event.InstanceID}
	inst, ok := s.Instances[key]
	if !ok {
		inst = &InstanceStats{}
		s.Instances[key] = inst
	}
	inst.Events++

	switch {
	case event.Tick != nil:
		inst.Ticks++
		inst.LastValue = event.Tick.Value
		inst.Min = event.Tick.Min
		inst.Max = event.Tick.Max
	case event.Notify != nil:
		inst.Notifications++
	case event.Error != nil:
		s.Errors++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Client Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for c := log.CategoryRead; c <= log.CategoryError; c++ {
		if count := stats.EventsByCategory[c]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", c.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Instances: %d\n", len(stats.Instances))
	keys := make([]InstanceKey, 0, len(stats.Instances))
	for k := range stats.Instances {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b InstanceKey) int {
		if a.ObjectID != b.ObjectID {
			return int(a.ObjectID) - int(b.ObjectID)
		}
		return int(a.InstanceID) - int(b.InstanceID)
	})
	for _, k := range keys {
		inst := stats.Instances[k]
		fmt.Fprintf(w, "  /%d/%d %d events", k.ObjectID, k.InstanceID, inst.Events)
		if inst.Ticks > 0 {
			fmt.Fprintf(w, ", %d ticks, last %g (min %g, max %g)", inst.Ticks, inst.LastValue, inst.Min, inst.Max)
		}
		if inst.Notifications > 0 {
			fmt.Fprintf(w, ", %d notifications", inst.Notifications)
		}
		fmt.Fprintln(w)
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
