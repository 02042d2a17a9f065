package quantile

import (
	"math"

	"github.com/kelindar/binary"

	"github.com/OctopusTakopi/watermill/window"
)

// RollingQuantile computes an exact quantile over a sliding window of the
// last windowSize observations, by linear interpolation between the two order
// statistics bracketing the requested quantile. The bracketing ranks and
// interpolation weight for a full window are fixed, so they are computed once
// at construction; while the window is still filling they are recomputed from
// the current length on every read.
//
// This type is not concurrency safe.
type RollingQuantile struct {
	window     *window.SortedWindow
	q          float64
	windowSize int
	lower      int
	higher     int
	frac       float64
}

// NewRolling creates a rolling estimator for the quantile q (0-1) over the
// given window size. NewRolling returns ErrInvalidQuantile if q is outside
// [0, 1].
func NewRolling(q float64, windowSize int) (*RollingQuantile, error) {
	if q < 0 || q > 1 {
		return nil, ErrInvalidQuantile
	}
	lower, higher, frac := interpolation(q, windowSize)
	return &RollingQuantile{
		window:     window.NewSortedWindow(windowSize),
		q:          q,
		windowSize: windowSize,
		lower:      lower,
		higher:     higher,
		frac:       frac,
	}, nil
}

// interpolation computes the bracketing ranks and fractional weight for
// reading quantile q from a sorted sequence of length n. When the upper rank
// would exceed the last valid rank it is pulled back below the lower rank;
// with a single-element window both ranks land on 0.
func interpolation(q float64, n int) (lower, higher int, frac float64) {
	idx := q * (float64(n) - 1)
	lower = int(math.Floor(idx))
	higher = lower + 1
	if higher > n-1 {
		higher = lower - 1
		if higher < 0 {
			higher = 0
		}
	}
	frac = idx - float64(lower)
	return lower, higher, frac
}

// Update pushes x into the window, evicting the oldest observation once the
// window is full. Update panics if x is NaN.
func (e *RollingQuantile) Update(x float64) {
	e.window.PushBack(x)
}

// Get returns the quantile of the values currently in the window. Get panics
// if the window is empty.
func (e *RollingQuantile) Get() float64 {
	lower, higher, frac := e.prepare()
	return e.window.At(lower) + (e.window.At(higher)-e.window.At(lower))*frac
}

func (e *RollingQuantile) prepare() (lower, higher int, frac float64) {
	if e.window.Len() < e.windowSize {
		return interpolation(e.q, e.window.Len())
	}
	return e.lower, e.higher, e.frac
}

// Q returns the quantile this estimator targets.
func (e *RollingQuantile) Q() float64 {
	return e.q
}

// RollingState is the serializable state of a RollingQuantile.
type RollingState struct {
	Window     window.State `json:"window"`
	Q          float64      `json:"q"`
	WindowSize int          `json:"window_size"`
	Lower      int          `json:"lower"`
	Higher     int          `json:"higher"`
	Frac       float64      `json:"frac"`
}

// State returns a snapshot of the estimator's internal state.
func (e *RollingQuantile) State() RollingState {
	return RollingState{
		Window:     e.window.State(),
		Q:          e.q,
		WindowSize: e.windowSize,
		Lower:      e.lower,
		Higher:     e.higher,
		Frac:       e.frac,
	}
}

// RestoreRolling reconstructs a RollingQuantile from a state snapshot.
func RestoreRolling(st RollingState) *RollingQuantile {
	return &RollingQuantile{
		window:     window.Restore(st.Window),
		q:          st.Q,
		windowSize: st.WindowSize,
		lower:      st.Lower,
		higher:     st.Higher,
		frac:       st.Frac,
	}
}

func (e *RollingQuantile) MarshalBinary() ([]byte, error) {
	st := e.State()
	return binary.Marshal(&st)
}

func (e *RollingQuantile) UnmarshalBinary(data []byte) error {
	var st RollingState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*e = *RestoreRolling(st)
	return nil
}
