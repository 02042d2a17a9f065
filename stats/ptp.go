package stats

import (
	"math"

	"github.com/kelindar/binary"
)

// PeakToPeak is the running range (max - min) of all observations seen so far.
// It composes a running Min and Max.
//
// This type is not concurrency safe.
type PeakToPeak struct {
	min Min
	max Max
}

// NewPeakToPeak creates a new PeakToPeak.
func NewPeakToPeak() *PeakToPeak {
	return &PeakToPeak{
		min: Min{min: math.Inf(1)},
		max: Max{max: math.Inf(-1)},
	}
}

// Update incorporates x into the range.
func (p *PeakToPeak) Update(x float64) {
	p.min.Update(x)
	p.max.Update(x)
}

// Get returns max - min over all observations.
func (p *PeakToPeak) Get() float64 {
	return p.max.Get() - p.min.Get()
}

// RollingPeakToPeak is the range (max - min) over a sliding window of the
// last windowSize observations. It composes a RollingMin and RollingMax.
//
// This type is not concurrency safe.
type RollingPeakToPeak struct {
	min *RollingMin
	max *RollingMax
}

// NewRollingPeakToPeak creates a RollingPeakToPeak over the given window size.
func NewRollingPeakToPeak(windowSize int) *RollingPeakToPeak {
	return &RollingPeakToPeak{
		min: NewRollingMin(windowSize),
		max: NewRollingMax(windowSize),
	}
}

// Update pushes x into both windows. Update panics if x is NaN.
func (p *RollingPeakToPeak) Update(x float64) {
	p.min.Update(x)
	p.max.Update(x)
}

// Get returns max - min over the current window. Get panics if the window is
// empty.
func (p *RollingPeakToPeak) Get() float64 {
	return p.max.Get() - p.min.Get()
}

// PeakToPeakState is the serializable state of a PeakToPeak.
type PeakToPeakState struct {
	Min MinState `json:"min"`
	Max MaxState `json:"max"`
}

// State returns a snapshot of the range's internal state.
func (p *PeakToPeak) State() PeakToPeakState {
	return PeakToPeakState{Min: p.min.State(), Max: p.max.State()}
}

// RestorePeakToPeak reconstructs a PeakToPeak from a state snapshot.
func RestorePeakToPeak(st PeakToPeakState) *PeakToPeak {
	return &PeakToPeak{min: *RestoreMin(st.Min), max: *RestoreMax(st.Max)}
}

func (p *PeakToPeak) MarshalBinary() ([]byte, error) {
	return binary.Marshal(p.State())
}

func (p *PeakToPeak) UnmarshalBinary(data []byte) error {
	var st PeakToPeakState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*p = *RestorePeakToPeak(st)
	return nil
}

// RollingPeakToPeakState is the serializable state of a RollingPeakToPeak.
type RollingPeakToPeakState struct {
	Min RollingMinState `json:"min"`
	Max RollingMaxState `json:"max"`
}

// State returns a snapshot of the rolling range's internal state.
func (p *RollingPeakToPeak) State() RollingPeakToPeakState {
	return RollingPeakToPeakState{Min: p.min.State(), Max: p.max.State()}
}

// RestoreRollingPeakToPeak reconstructs a RollingPeakToPeak from a state
// snapshot.
func RestoreRollingPeakToPeak(st RollingPeakToPeakState) *RollingPeakToPeak {
	return &RollingPeakToPeak{min: RestoreRollingMin(st.Min), max: RestoreRollingMax(st.Max)}
}

func (p *RollingPeakToPeak) MarshalBinary() ([]byte, error) {
	return binary.Marshal(p.State())
}

func (p *RollingPeakToPeak) UnmarshalBinary(data []byte) error {
	var st RollingPeakToPeakState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*p = *RestoreRollingPeakToPeak(st)
	return nil
}
