// Package stats provides running univariate statistics over streams of float64
// observations, along with the contracts shared by every estimator in this
// module. Observations are expected to be finite; feeding NaN into an
// order-sensitive statistic is a contract violation.
package stats

import "errors"

// ErrNoObservations is returned by Revert when a statistic holds no
// observations to undo.
var ErrNoObservations = errors.New("no observations to revert")

// Univariate is a running statistic over a stream of float64 observations.
// Update incorporates a new observation; Get returns the current value of the
// statistic without mutating state.
type Univariate interface {
	Update(x float64)
	Get() float64
}

// Revertible is a Univariate whose updates have an algebraic inverse. Revert
// undoes the effect of a previous Update with the same value. Sums, means, and
// variances are revertible; order statistics such as min, max, and quantiles
// are not, and have dedicated window-based rolling variants instead.
type Revertible interface {
	Univariate
	Revert(x float64) error
}

// smooth computes an exponentially weighted value from the previous value and
// a new sample.
func smooth(value, newValue, alpha float64) float64 {
	return alpha*newValue + (1-alpha)*value
}
