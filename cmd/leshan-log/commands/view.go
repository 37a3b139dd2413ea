// Package commands implements the leshan-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/LarsBremen/leshan/pkg/log"
	"github.com/LarsBremen/leshan/pkg/node"
)

const timeLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timeLayout)
	fmt.Fprintf(w, "%s [%s] %-7s /%d/%d\n", ts, event.Endpoint, event.Category, event.ObjectID, event.InstanceID)

	switch {
	case event.Read != nil:
		formatReadDetails(w, event.Read)
	case event.Execute != nil:
		fmt.Fprintf(w, "  Resource: %d\n", event.Execute.ResourceID)
		if event.Execute.Params != "" {
			fmt.Fprintf(w, "  Params: %s\n", event.Execute.Params)
		}
		fmt.Fprintf(w, "  Code: %s\n", event.Execute.Code)
	case event.Notify != nil:
		fmt.Fprintf(w, "  Resources: %v\n", event.Notify.ResourceIDs)
	case event.Tick != nil:
		formatTickDetails(w, event.Tick)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}

	fmt.Fprintln(w)
}

func formatReadDetails(w io.Writer, r *log.ReadEvent) {
	fmt.Fprintf(w, "  Resource: %d\n", r.ResourceID)
	fmt.Fprintf(w, "  Code: %s\n", r.Code)
	if len(r.Content) == 0 {
		return
	}
	res, err := node.DecodeResource(r.Content)
	if err != nil {
		fmt.Fprintf(w, "  Content: <%v>\n", err)
		return
	}
	fmt.Fprintf(w, "  Content: %s\n", res)
}

func formatTickDetails(w io.Writer, t *log.TickEvent) {
	fmt.Fprintf(w, "  Value: %g\n", t.Value)
	fmt.Fprintf(w, "  Min: %g  Max: %g\n", t.Min, t.Max)
	if len(t.Changed) > 0 {
		fmt.Fprintf(w, "  Changed: %v\n", t.Changed)
	}
	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(t.Duration))
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// RunView prints every event matching filter.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
	return nil
}
