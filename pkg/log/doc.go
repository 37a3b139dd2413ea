// Package log captures resource-level events of a device client.
//
// This package defines the Logger interface and Event types for recording
// what happens to object instances: reads, executes, change notifications,
// sampling ticks and their failures. It is separate from operational
// logging (slog) - event capture provides a complete machine-readable trace
// for debugging and analysis.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Events = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.Events, _ = log.NewFileLogger("/var/log/leshan/client.elog")
//
//	// Both: use MultiLogger
//	cfg.Events = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Every event names the object instance it concerns and carries exactly one
// payload: ReadEvent, ExecuteEvent, NotifyEvent, TickEvent, StateChangeEvent
// or ErrorEventData.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events. The leshan-log command
// prints and filters them.
package log
