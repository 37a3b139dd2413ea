package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Schedule errors.
var (
	ErrInvalidPeriod = errors.New("invalid schedule period")
)

// Scheduler starts recurring work.
type Scheduler interface {
	// Schedule runs work every period until the returned handle is cancelled.
	Schedule(period time.Duration, work func()) (Handle, error)
}

// Handle controls one scheduled unit of work.
type Handle interface {
	// Cancel stops the schedule and waits for an in-flight run to finish.
	Cancel()

	// State returns the current state of the schedule.
	State() State

	// Runs returns the number of completed runs.
	Runs() uint64
}

// State represents the state of a scheduled task.
type State uint8

const (
	// StateIdle indicates the task is waiting for its next run.
	StateIdle State = iota

	// StateRunning indicates the work function is executing.
	StateRunning

	// StateCancelled indicates the task will never run again.
	StateCancelled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// task holds the state shared by all Handle implementations.
type task struct {
	mu        sync.Mutex
	state     State
	cancelled bool
	runs      atomic.Uint64
	work      func()
	logger    *slog.Logger
}

// begin marks the task running. It returns false once the task is cancelled.
func (t *task) begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return false
	}
	t.state = StateRunning
	return true
}

func (t *task) end() {
	t.mu.Lock()
	if !t.cancelled {
		t.state = StateIdle
	}
	t.mu.Unlock()
	t.runs.Add(1)
}

// markCancelled reports whether this call performed the cancellation.
func (t *task) markCancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return false
	}
	t.cancelled = true
	t.state = StateCancelled
	return true
}

// run executes work once. A panic is logged and swallowed so that the
// schedule survives a faulty run.
func (t *task) run() {
	if !t.begin() {
		return
	}
	defer t.end()
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("scheduled work panicked", "panic", fmt.Sprint(r))
		}
	}()
	t.work()
}

// State returns the current state.
func (t *task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Runs returns the number of completed runs.
func (t *task) Runs() uint64 {
	return t.runs.Load()
}

// Ticker schedules work on dedicated goroutines driven by time.Ticker.
type Ticker struct {
	logger *slog.Logger
}

// NewTicker creates a Ticker scheduler. A nil logger uses slog.Default().
func NewTicker(logger *slog.Logger) *Ticker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ticker{logger: logger}
}

// Schedule starts a goroutine running work every period. The first run
// happens one period after scheduling.
func (s *Ticker) Schedule(period time.Duration, work func()) (Handle, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, period)
	}
	if work == nil {
		return nil, fmt.Errorf("%w: nil work", ErrInvalidPeriod)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &TickerHandle{
		task:   task{work: work, logger: s.logger},
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go h.loop(ctx, period)
	return h, nil
}

// TickerHandle is the handle returned by Ticker.
type TickerHandle struct {
	task
	cancel context.CancelFunc
	done   chan struct{}
}

func (h *TickerHandle) loop(ctx context.Context, period time.Duration) {
	defer close(h.done)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			h.run()
		}
	}
}

// Cancel stops the schedule and waits for an in-flight run to complete.
func (h *TickerHandle) Cancel() {
	if h.markCancelled() {
		h.cancel()
	}
	<-h.done
}
