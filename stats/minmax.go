package stats

import (
	"math"

	"github.com/kelindar/binary"

	"github.com/OctopusTakopi/watermill/window"
)

// Min is a running minimum. Get returns +Inf until the first observation.
//
// This type is not concurrency safe.
type Min struct {
	min float64
}

// NewMin creates a new Min.
func NewMin() *Min {
	return &Min{min: math.Inf(1)}
}

// Update incorporates x into the minimum.
func (m *Min) Update(x float64) {
	if x < m.min {
		m.min = x
	}
}

// Get returns the current minimum.
func (m *Min) Get() float64 {
	return m.min
}

// Max is a running maximum. Get returns -Inf until the first observation.
//
// This type is not concurrency safe.
type Max struct {
	max float64
}

// NewMax creates a new Max.
func NewMax() *Max {
	return &Max{max: math.Inf(-1)}
}

// Update incorporates x into the maximum.
func (m *Max) Update(x float64) {
	if x > m.max {
		m.max = x
	}
}

// Get returns the current maximum.
func (m *Max) Get() float64 {
	return m.max
}

// RollingMin is the minimum over a sliding window of the last windowSize
// observations.
//
// This type is not concurrency safe.
type RollingMin struct {
	window *window.SortedWindow
}

// NewRollingMin creates a RollingMin over the given window size.
func NewRollingMin(windowSize int) *RollingMin {
	return &RollingMin{window: window.NewSortedWindow(windowSize)}
}

// Update pushes x into the window, evicting the oldest observation once the
// window is full. Update panics if x is NaN.
func (m *RollingMin) Update(x float64) {
	m.window.PushBack(x)
}

// Get returns the smallest value currently in the window. Get panics if the
// window is empty.
func (m *RollingMin) Get() float64 {
	return m.window.Front()
}

// RollingMax is the maximum over a sliding window of the last windowSize
// observations.
//
// This type is not concurrency safe.
type RollingMax struct {
	window *window.SortedWindow
}

// NewRollingMax creates a RollingMax over the given window size.
func NewRollingMax(windowSize int) *RollingMax {
	return &RollingMax{window: window.NewSortedWindow(windowSize)}
}

// Update pushes x into the window, evicting the oldest observation once the
// window is full. Update panics if x is NaN.
func (m *RollingMax) Update(x float64) {
	m.window.PushBack(x)
}

// Get returns the largest value currently in the window. Get panics if the
// window is empty.
func (m *RollingMax) Get() float64 {
	return m.window.Back()
}

// MinState is the serializable state of a Min.
type MinState struct {
	Min float64 `json:"min"`
}

// State returns a snapshot of the minimum's internal state.
func (m *Min) State() MinState {
	return MinState{Min: m.min}
}

// RestoreMin reconstructs a Min from a state snapshot.
func RestoreMin(st MinState) *Min {
	return &Min{min: st.Min}
}

func (m *Min) MarshalBinary() ([]byte, error) {
	return binary.Marshal(m.State())
}

func (m *Min) UnmarshalBinary(data []byte) error {
	var st MinState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*m = *RestoreMin(st)
	return nil
}

// MaxState is the serializable state of a Max.
type MaxState struct {
	Max float64 `json:"max"`
}

// State returns a snapshot of the maximum's internal state.
func (m *Max) State() MaxState {
	return MaxState{Max: m.max}
}

// RestoreMax reconstructs a Max from a state snapshot.
func RestoreMax(st MaxState) *Max {
	return &Max{max: st.Max}
}

func (m *Max) MarshalBinary() ([]byte, error) {
	return binary.Marshal(m.State())
}

func (m *Max) UnmarshalBinary(data []byte) error {
	var st MaxState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*m = *RestoreMax(st)
	return nil
}

// RollingMinState is the serializable state of a RollingMin.
type RollingMinState struct {
	Window window.State `json:"window"`
}

// State returns a snapshot of the rolling minimum's internal state.
func (m *RollingMin) State() RollingMinState {
	return RollingMinState{Window: m.window.State()}
}

// RestoreRollingMin reconstructs a RollingMin from a state snapshot.
func RestoreRollingMin(st RollingMinState) *RollingMin {
	return &RollingMin{window: window.Restore(st.Window)}
}

func (m *RollingMin) MarshalBinary() ([]byte, error) {
	return binary.Marshal(m.State())
}

func (m *RollingMin) UnmarshalBinary(data []byte) error {
	var st RollingMinState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*m = *RestoreRollingMin(st)
	return nil
}

// RollingMaxState is the serializable state of a RollingMax.
type RollingMaxState struct {
	Window window.State `json:"window"`
}

// State returns a snapshot of the rolling maximum's internal state.
func (m *RollingMax) State() RollingMaxState {
	return RollingMaxState{Window: m.window.State()}
}

// RestoreRollingMax reconstructs a RollingMax from a state snapshot.
func RestoreRollingMax(st RollingMaxState) *RollingMax {
	return &RollingMax{window: window.Restore(st.Window)}
}

func (m *RollingMax) MarshalBinary() ([]byte, error) {
	return binary.Marshal(m.State())
}

func (m *RollingMax) UnmarshalBinary(data []byte) error {
	var st RollingMaxState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*m = *RestoreRollingMax(st)
	return nil
}
