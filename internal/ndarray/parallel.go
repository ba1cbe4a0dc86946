package ndarray

import (
	"sync/atomic"

	"github.com/born-ml/dezero/internal/parallel"
)

var workers atomic.Pointer[parallel.Config]

func init() {
	cfg := parallel.DefaultConfig()
	workers.Store(&cfg)
}

// SetParallelism replaces the worker configuration used by elementwise
// loops and returns a func that restores the previous one.
func SetParallelism(cfg parallel.Config) (restore func()) {
	prev := workers.Swap(&cfg)
	return func() { workers.Store(prev) }
}

// Parallelism returns the current worker configuration.
func Parallelism() parallel.Config {
	return *workers.Load()
}

// fill sets dst[i] = f(i) for every index, splitting large arrays across
// workers.
func fill(dst []float64, f func(i int) float64) {
	parallel.For(len(dst), func(i int) { dst[i] = f(i) }, *workers.Load())
}
