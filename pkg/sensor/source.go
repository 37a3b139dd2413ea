package sensor

import (
	"errors"
	"math/rand/v2"
	"sync"
)

// ErrSourceUnavailable may be returned by sources that cannot sample.
var ErrSourceUnavailable = errors.New("source unavailable")

// Source produces the next sample given the current value.
type Source interface {
	Sample(current float64) (float64, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(current float64) (float64, error)

// Sample calls f.
func (f SourceFunc) Sample(current float64) (float64, error) {
	return f(current)
}

// Constant returns a source that always yields v.
func Constant(v float64) Source {
	return SourceFunc(func(float64) (float64, error) {
		return v, nil
	})
}

// RandomWalk returns a source that moves the current value by a uniform
// step in [-scale, scale). The walk is reproducible for a given seed.
func RandomWalk(scale float64, seed uint64) Source {
	return &randomWalk{
		scale: scale,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

type randomWalk struct {
	mu    sync.Mutex
	scale float64
	rng   *rand.Rand
}

func (w *randomWalk) Sample(current float64) (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return current + (w.rng.Float64()*2-1)*w.scale, nil
}
