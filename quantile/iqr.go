package quantile

import (
	"errors"

	"github.com/kelindar/binary"
)

// ErrInvalidRange is returned when the lower quantile of an interquantile
// range does not fall below the upper one.
var ErrInvalidRange = errors.New("lower quantile must be less than upper quantile")

// IQR estimates the interquantile range of an unbounded stream as the
// difference between two P² quantile estimates.
//
// This type is not concurrency safe.
type IQR struct {
	lower *Quantile
	upper *Quantile
}

// NewIQR creates an interquantile range estimator between the quantiles qInf
// and qSup. NewIQR returns ErrInvalidQuantile if either quantile is outside
// [0, 1] and ErrInvalidRange if qInf >= qSup.
func NewIQR(qInf, qSup float64) (*IQR, error) {
	if qInf >= qSup {
		return nil, ErrInvalidRange
	}
	lower, err := New(qInf)
	if err != nil {
		return nil, err
	}
	upper, err := New(qSup)
	if err != nil {
		return nil, err
	}
	return &IQR{lower: lower, upper: upper}, nil
}

// Update incorporates x into both quantile estimates.
func (e *IQR) Update(x float64) {
	e.lower.Update(x)
	e.upper.Update(x)
}

// Get returns the estimated difference between the upper and lower quantiles.
func (e *IQR) Get() float64 {
	return e.upper.Get() - e.lower.Get()
}

// RollingIQR is the interquantile range over a sliding window, composed of
// two rolling quantile estimators.
//
// This type is not concurrency safe.
type RollingIQR struct {
	lower *RollingQuantile
	upper *RollingQuantile
}

// NewRollingIQR creates a rolling interquantile range estimator between the
// quantiles qInf and qSup over the given window size.
func NewRollingIQR(qInf, qSup float64, windowSize int) (*RollingIQR, error) {
	if qInf >= qSup {
		return nil, ErrInvalidRange
	}
	lower, err := NewRolling(qInf, windowSize)
	if err != nil {
		return nil, err
	}
	upper, err := NewRolling(qSup, windowSize)
	if err != nil {
		return nil, err
	}
	return &RollingIQR{lower: lower, upper: upper}, nil
}

// Update pushes x into both windows. Update panics if x is NaN.
func (e *RollingIQR) Update(x float64) {
	e.lower.Update(x)
	e.upper.Update(x)
}

// Get returns the difference between the upper and lower quantiles of the
// current window. Get panics if the window is empty.
func (e *RollingIQR) Get() float64 {
	return e.upper.Get() - e.lower.Get()
}

// IQRState is the serializable state of an IQR.
type IQRState struct {
	Lower State `json:"lower"`
	Upper State `json:"upper"`
}

// State returns a snapshot of the estimator's internal state.
func (e *IQR) State() IQRState {
	return IQRState{Lower: e.lower.State(), Upper: e.upper.State()}
}

// RestoreIQR reconstructs an IQR from a state snapshot.
func RestoreIQR(st IQRState) *IQR {
	return &IQR{lower: Restore(st.Lower), upper: Restore(st.Upper)}
}

func (e *IQR) MarshalBinary() ([]byte, error) {
	st := e.State()
	return binary.Marshal(&st)
}

func (e *IQR) UnmarshalBinary(data []byte) error {
	var st IQRState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*e = *RestoreIQR(st)
	return nil
}

// RollingIQRState is the serializable state of a RollingIQR.
type RollingIQRState struct {
	Lower RollingState `json:"lower"`
	Upper RollingState `json:"upper"`
}

// State returns a snapshot of the estimator's internal state.
func (e *RollingIQR) State() RollingIQRState {
	return RollingIQRState{Lower: e.lower.State(), Upper: e.upper.State()}
}

// RestoreRollingIQR reconstructs a RollingIQR from a state snapshot.
func RestoreRollingIQR(st RollingIQRState) *RollingIQR {
	return &RollingIQR{lower: RestoreRolling(st.Lower), upper: RestoreRolling(st.Upper)}
}

func (e *RollingIQR) MarshalBinary() ([]byte, error) {
	st := e.State()
	return binary.Marshal(&st)
}

func (e *RollingIQR) UnmarshalBinary(data []byte) error {
	var st RollingIQRState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*e = *RestoreRollingIQR(st)
	return nil
}
