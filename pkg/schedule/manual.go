package schedule

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Manual is a Scheduler that runs work only when Tick is called.
type Manual struct {
	mu     sync.Mutex
	tasks  []*ManualHandle
	logger *slog.Logger
}

// NewManual creates a manual scheduler.
func NewManual() *Manual {
	return &Manual{logger: slog.Default()}
}

// Schedule registers work. The period is validated but otherwise ignored.
func (m *Manual) Schedule(period time.Duration, work func()) (Handle, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, period)
	}
	if work == nil {
		return nil, fmt.Errorf("%w: nil work", ErrInvalidPeriod)
	}

	h := &ManualHandle{task: task{work: work, logger: m.logger}, period: period}

	m.mu.Lock()
	m.tasks = append(m.tasks, h)
	m.mu.Unlock()
	return h, nil
}

// Tick runs every live task once and returns how many ran.
func (m *Manual) Tick() int {
	m.mu.Lock()
	tasks := make([]*ManualHandle, len(m.tasks))
	copy(tasks, m.tasks)
	m.mu.Unlock()

	n := 0
	for _, h := range tasks {
		if h.tick() {
			n++
		}
	}
	return n
}

// Live returns the number of tasks that have not been cancelled.
func (m *Manual) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, h := range m.tasks {
		if h.State() != StateCancelled {
			n++
		}
	}
	return n
}

// ManualHandle is the handle returned by Manual.
type ManualHandle struct {
	task
	period time.Duration

	// runMu is held for the duration of a run so Cancel can wait for it.
	runMu sync.Mutex
}

// Period returns the period the task was scheduled with.
func (h *ManualHandle) Period() time.Duration {
	return h.period
}

func (h *ManualHandle) tick() bool {
	h.runMu.Lock()
	defer h.runMu.Unlock()

	before := h.Runs()
	h.run()
	return h.Runs() != before
}

// Cancel stops the task and waits for an in-flight run to complete.
func (h *ManualHandle) Cancel() {
	h.markCancelled()

	h.runMu.Lock()
	defer h.runMu.Unlock()
}
