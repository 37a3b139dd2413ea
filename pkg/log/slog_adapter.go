package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger.
// Useful for development when you want to see events in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level, or Warn for errors.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
		slog.Uint64("object", uint64(event.ObjectID)),
		slog.Uint64("instance", uint64(event.InstanceID)),
	}
	if event.Endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", event.Endpoint))
	}

	level := slog.LevelDebug
	switch {
	case event.Read != nil:
		attrs = append(attrs,
			slog.Uint64("resource", uint64(event.Read.ResourceID)),
			slog.String("code", event.Read.Code),
		)
	case event.Execute != nil:
		attrs = append(attrs,
			slog.Uint64("resource", uint64(event.Execute.ResourceID)),
			slog.String("code", event.Execute.Code),
		)
		if event.Execute.Params != "" {
			attrs = append(attrs, slog.String("params", event.Execute.Params))
		}
	case event.Notify != nil:
		attrs = append(attrs, slog.Any("resources", event.Notify.ResourceIDs))
	case event.Tick != nil:
		attrs = append(attrs,
			slog.Float64("value", event.Tick.Value),
			slog.Float64("min", event.Tick.Min),
			slog.Float64("max", event.Tick.Max),
			slog.Duration("duration", event.Tick.Duration),
		)
		if len(event.Tick.Changed) > 0 {
			attrs = append(attrs, slog.Any("changed", event.Tick.Changed))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), level, "event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
