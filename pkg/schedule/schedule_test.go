package schedule

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerRunsPeriodically(t *testing.T) {
	var count atomic.Int32
	h, err := NewTicker(nil).Schedule(10*time.Millisecond, func() {
		count.Add(1)
	})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	defer h.Cancel()

	deadline := time.Now().Add(time.Second)
	for count.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if count.Load() < 3 {
		t.Errorf("work ran %d times, want at least 3", count.Load())
	}
}

func TestTickerInvalidPeriod(t *testing.T) {
	for _, p := range []time.Duration{0, -time.Second} {
		_, err := NewTicker(nil).Schedule(p, func() {})
		if !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("Schedule(%v) error = %v, want ErrInvalidPeriod", p, err)
		}
	}
	if _, err := NewTicker(nil).Schedule(time.Second, nil); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("Schedule(nil work) error = %v, want ErrInvalidPeriod", err)
	}
}

func TestTickerCancelIsIdempotent(t *testing.T) {
	h, err := NewTicker(nil).Schedule(time.Hour, func() {})
	if err != nil {
		t.Fatal(err)
	}

	h.Cancel()
	h.Cancel()

	if h.State() != StateCancelled {
		t.Errorf("State() = %v, want CANCELLED", h.State())
	}
}

func TestTickerNoRunAfterCancel(t *testing.T) {
	var count atomic.Int32
	h, err := NewTicker(nil).Schedule(time.Millisecond, func() {
		count.Add(1)
	})
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(20 * time.Millisecond)
	h.Cancel()
	after := count.Load()

	time.Sleep(20 * time.Millisecond)
	if count.Load() != after {
		t.Errorf("work ran %d times after Cancel", count.Load()-after)
	}
	if h.Runs() != uint64(after) {
		t.Errorf("Runs() = %d, want %d", h.Runs(), after)
	}
}

func TestTickerCancelWaitsForInFlightRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	var once sync.Once

	h, err := NewTicker(nil).Schedule(time.Millisecond, func() {
		once.Do(func() { close(started) })
		<-release
		finished.Store(true)
	})
	if err != nil {
		t.Fatal(err)
	}

	<-started
	if h.State() != StateRunning {
		t.Errorf("State() = %v, want RUNNING", h.State())
	}

	cancelled := make(chan struct{})
	go func() {
		h.Cancel()
		close(cancelled)
	}()

	select {
	case <-cancelled:
		t.Fatal("Cancel returned while work was still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-cancelled
	if !finished.Load() {
		t.Error("in-flight run did not complete")
	}
}

func TestTickerSurvivesPanic(t *testing.T) {
	var count atomic.Int32
	h, err := NewTicker(nil).Schedule(5*time.Millisecond, func() {
		if count.Add(1) == 1 {
			panic("sensor exploded")
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer h.Cancel()

	deadline := time.Now().Add(time.Second)
	for count.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if count.Load() < 3 {
		t.Errorf("schedule stopped after panic: %d runs", count.Load())
	}
}

func TestManual(t *testing.T) {
	m := NewManual()

	var a, b int
	ha, err := m.Schedule(2*time.Second, func() { a++ })
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Schedule(time.Second, func() { b++ }); err != nil {
		t.Fatal(err)
	}

	if n := m.Tick(); n != 2 {
		t.Errorf("Tick() = %d, want 2", n)
	}

	ha.Cancel()
	ha.Cancel()

	if n := m.Tick(); n != 1 {
		t.Errorf("Tick() after cancel = %d, want 1", n)
	}
	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want a=1 b=2", a, b)
	}
	if m.Live() != 1 {
		t.Errorf("Live() = %d, want 1", m.Live())
	}
	if got := ha.(*ManualHandle).Period(); got != 2*time.Second {
		t.Errorf("Period() = %v, want 2s", got)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateIdle:      "IDLE",
		StateRunning:   "RUNNING",
		StateCancelled: "CANCELLED",
		State(9):       "UNKNOWN",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
