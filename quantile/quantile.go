// Package quantile provides streaming quantile estimators: an O(1)-memory P²
// estimator over an unbounded stream, an exact rolling quantile over a
// sliding window, and interquantile-range compositions of the two.
package quantile

import (
	"errors"
	"math"
	"slices"

	"github.com/kelindar/binary"
)

// ErrInvalidQuantile is returned when a requested quantile falls outside
// [0, 1].
var ErrInvalidQuantile = errors.New("quantile must be between 0 and 1")

// Quantile estimates a single quantile of an unbounded stream using the P²
// algorithm. It tracks five markers whose heights approximate the quantile
// curve; no history is stored beyond those markers, so Update and Get are
// both O(1).
//
// The first five observations are collected raw. From the sixth observation
// on, each update slides the marker positions and adjusts interior marker
// heights with a piecewise-parabolic fit, falling back to linear
// interpolation whenever the parabolic estimate would break the ascending
// order of the heights.
//
// This type is not concurrency safe.
//
// References:
//   - Jain & Chlamtac, "The P² Algorithm for Dynamic Calculation of Quantiles
//     and Histograms Without Storing Observations"
//     https://www.cse.wustl.edu/~jain/papers/ftp/psqr.pdf
type Quantile struct {
	q                     float64
	desiredMarkerPosition [5]float64
	markerPosition        [5]float64
	position              [5]float64
	heights               []float64
	heightsSorted         bool
}

// New creates a P² estimator for the quantile q (0-1). New returns
// ErrInvalidQuantile if q is outside [0, 1].
func New(q float64) (*Quantile, error) {
	if q < 0 || q > 1 {
		return nil, ErrInvalidQuantile
	}
	return &Quantile{
		q:                     q,
		desiredMarkerPosition: [5]float64{0, q / 2, q, (1 + q) / 2, 1},
		markerPosition:        [5]float64{1, 1 + 2*q, 1 + 4*q, 3 + 2*q, 5},
		position:              [5]float64{1, 2, 3, 4, 5},
		heights:               make([]float64, 0, 5),
	}, nil
}

// NewMedian creates a P² estimator for the median.
func NewMedian() *Quantile {
	q, _ := New(0.5)
	return q
}

// Update incorporates x into the estimate.
func (e *Quantile) Update(x float64) {
	if len(e.heights) != 5 {
		e.heights = append(e.heights, x)
	} else {
		if !e.heightsSorted {
			slices.Sort(e.heights)
			e.heightsSorted = true
		}

		// Find the bucket k that x falls into, clamping the extreme marker
		// heights when x lies outside them.
		k := e.findK(x)

		// Markers at and to the right of the insertion point shift right.
		for i := k; i < 5; i++ {
			e.position[i]++
		}

		// The real-valued targets drift forward on every update regardless of
		// where x landed.
		for i := range e.markerPosition {
			e.markerPosition[i] += e.desiredMarkerPosition[i]
		}

		e.adjust()
	}
	slices.Sort(e.heights)
}

// Get returns the current quantile estimate. With five or more observations
// this is the middle marker height; before that it is an order-statistic
// approximation over the raw values seen so far. Get panics if no
// observations have been seen.
func (e *Quantile) Get() float64 {
	if e.heightsSorted {
		return e.heights[2]
	}
	length := float64(len(e.heights))
	index := int(math.Min(math.Max(length-1, 0), length*e.q))
	return e.heights[index]
}

// Q returns the quantile this estimator targets.
func (e *Quantile) Q() float64 {
	return e.q
}

// findK locates the marker bucket for x, clamping the lowest or highest
// marker height when x falls outside the tracked range.
func (e *Quantile) findK(x float64) int {
	k := -1
	if x < e.heights[0] {
		e.heights[0] = x
		k = 1
	} else {
		for i := 1; i <= 4; i++ {
			if e.heights[i-1] <= x && x < e.heights[i] {
				k = i
				break
			}
		}
		if k == -1 && e.heights[4] < x {
			e.heights[4] = x
		}
	}
	if k == -1 {
		k = 4
	}
	return k
}

// computeP2 evaluates the piecewise-parabolic height prediction for an
// interior marker from its neighbors.
func computeP2(qp1, q, qm1, d, np1, n, nm1 float64) float64 {
	outer := d / (np1 - nm1)
	innerLeft := (n - nm1 + d) * (qp1 - q) / (np1 - n)
	innerRight := (np1 - n - d) * (q - qm1) / (n - nm1)
	return q + outer*(innerLeft+innerRight)
}

// adjust moves each interior marker at most one position toward its desired
// position, predicting the new height parabolically and falling back to
// linear interpolation whenever the parabolic value would leave the heights
// out of ascending order.
func (e *Quantile) adjust() {
	for i := 1; i < 4; i++ {
		n := e.position[i]
		q := e.heights[i]

		d := e.markerPosition[i] - n
		if (d >= 1 && e.position[i+1]-n > 1) || (d <= -1 && e.position[i-1]-n < -1) {
			d = math.Copysign(1, d)
			qp1 := e.heights[i+1]
			qm1 := e.heights[i-1]
			np1 := e.position[i+1]
			nm1 := e.position[i-1]

			qn := computeP2(qp1, q, qm1, d, np1, n, nm1)
			if qm1 < qn && qn < qp1 {
				e.heights[i] = qn
			} else {
				j := i + int(d)
				e.heights[i] = q + d*(e.heights[j]-q)/(e.position[j]-n)
			}
			e.position[i] = n + d
		}
	}
}

// State is the serializable state of a P² estimator. The five marker arrays
// mirror the estimator's internals field for field so that a restored
// estimator behaves identically on any subsequent stream.
type State struct {
	Q                     float64    `json:"q"`
	DesiredMarkerPosition [5]float64 `json:"desired_marker_position"`
	MarkerPosition        [5]float64 `json:"marker_position"`
	Position              [5]float64 `json:"position"`
	Heights               []float64  `json:"heights"`
	HeightsSorted         bool       `json:"heights_sorted"`
}

// State returns a snapshot of the estimator's internal state.
func (e *Quantile) State() State {
	return State{
		Q:                     e.q,
		DesiredMarkerPosition: e.desiredMarkerPosition,
		MarkerPosition:        e.markerPosition,
		Position:              e.position,
		Heights:               slices.Clone(e.heights),
		HeightsSorted:         e.heightsSorted,
	}
}

// Restore reconstructs a P² estimator from a state snapshot.
func Restore(st State) *Quantile {
	heights := make([]float64, 0, 5)
	heights = append(heights, st.Heights...)
	return &Quantile{
		q:                     st.Q,
		desiredMarkerPosition: st.DesiredMarkerPosition,
		markerPosition:        st.MarkerPosition,
		position:              st.Position,
		heights:               heights,
		heightsSorted:         st.HeightsSorted,
	}
}

func (e *Quantile) MarshalBinary() ([]byte, error) {
	st := e.State()
	return binary.Marshal(&st)
}

func (e *Quantile) UnmarshalBinary(data []byte) error {
	var st State
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*e = *Restore(st)
	return nil
}
