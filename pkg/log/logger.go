package log

// Logger receives captured events. Log is called on the sampling path of
// an instance, so implementations must be safe for concurrent use and
// must not block.
type Logger interface {
	Log(event Event)
}

// NoopLogger drops every event. The zero value is ready to use.
type NoopLogger struct{}

func (NoopLogger) Log(Event) {}

// OrNoop returns l, or NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

// MultiLogger hands each event to every sink in order.
type MultiLogger []Logger

func (m MultiLogger) Log(event Event) {
	for _, l := range m {
		l.Log(event)
	}
}

// NewMultiLogger combines the console and file sinks of a client into one
// Logger. Nil sinks are dropped and nested MultiLoggers are flattened. It
// returns NoopLogger when no sink is left and the sink itself when only
// one is.
func NewMultiLogger(loggers ...Logger) Logger {
	var sinks MultiLogger
	for _, l := range loggers {
		switch l := l.(type) {
		case nil:
		case MultiLogger:
			sinks = append(sinks, l...)
		case NoopLogger:
		default:
			sinks = append(sinks, l)
		}
	}
	switch len(sinks) {
	case 0:
		return NoopLogger{}
	case 1:
		return sinks[0]
	}
	return sinks
}

var (
	_ Logger = NoopLogger{}
	_ Logger = MultiLogger(nil)
)
