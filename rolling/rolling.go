// Package rolling turns any revertible running statistic into a windowed one
// by replaying removals: when the window slides, the evicted observation is
// reverted from the wrapped statistic before the new one is applied.
package rolling

import (
	"errors"
	"fmt"

	"github.com/OctopusTakopi/watermill/stats"
)

// ErrZeroWindow is returned when a rolling window is constructed with a
// non-positive size.
var ErrZeroWindow = errors.New("window size must be positive")

// Rolling decorates a revertible statistic with a fixed-size FIFO of raw
// observations, so the wrapped statistic always reflects exactly the values
// currently in the window. The wrapped statistic is generic rather than an
// interface value to keep the Update/Revert calls direct on the hot path.
//
// Rolling is only well defined for statistics with a true algebraic inverse
// (sum, mean, variance). Min, max, and quantiles have dedicated window-based
// rolling variants instead.
//
// The wrapped statistic must not be observed or mutated by other code while
// the Rolling owns it.
//
// This type is not concurrency safe.
type Rolling[S stats.Revertible] struct {
	stat       S
	windowSize int

	// FIFO ring of raw observations. While filling, values grows by append
	// and head stays 0; once full, values[head] is the oldest observation.
	values []float64
	head   int
}

// New creates a Rolling decorator around stat with the given window size.
// New returns ErrZeroWindow if windowSize is not positive.
func New[S stats.Revertible](stat S, windowSize int) (*Rolling[S], error) {
	if windowSize <= 0 {
		return nil, ErrZeroWindow
	}
	return &Rolling[S]{
		stat:       stat,
		windowSize: windowSize,
		values:     make([]float64, 0, windowSize),
	}, nil
}

// Update slides the window forward by one observation. If the window is full
// the oldest observation is reverted from the wrapped statistic first. A
// failing revert panics: recovering would leave the wrapped statistic
// reflecting observations that are no longer in the window.
func (r *Rolling[S]) Update(x float64) {
	if len(r.values) == r.windowSize {
		oldest := r.values[r.head]
		if err := r.stat.Revert(oldest); err != nil {
			panic(fmt.Sprintf("revert failed: %v", err))
		}
		r.values[r.head] = x
		r.head = (r.head + 1) % r.windowSize
	} else {
		r.values = append(r.values, x)
	}
	r.stat.Update(x)
}

// Get returns the wrapped statistic's value over the current window.
func (r *Rolling[S]) Get() float64 {
	return r.stat.Get()
}

// Len returns the number of observations currently in the window.
func (r *Rolling[S]) Len() int {
	return len(r.values)
}

// Window returns a copy of the observations currently in the window, oldest
// first.
func (r *Rolling[S]) Window() []float64 {
	out := make([]float64, 0, len(r.values))
	out = append(out, r.values[r.head:]...)
	out = append(out, r.values[:r.head]...)
	return out
}
