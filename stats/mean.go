package stats

import "github.com/kelindar/binary"

// Mean is a running arithmetic mean.
//
// This type is not concurrency safe.
type Mean struct {
	n    uint64
	mean float64
}

// NewMean creates a new Mean.
func NewMean() *Mean {
	return &Mean{}
}

// Update incorporates x into the mean.
func (m *Mean) Update(x float64) {
	m.n++
	m.mean += (x - m.mean) / float64(m.n)
}

// Revert removes a previously incorporated x from the mean.
func (m *Mean) Revert(x float64) error {
	if m.n == 0 {
		return ErrNoObservations
	}
	m.n--
	if m.n == 0 {
		m.mean = 0
	} else {
		m.mean -= (x - m.mean) / float64(m.n)
	}
	return nil
}

// Get returns the current mean, or 0 if no observations have been seen.
func (m *Mean) Get() float64 {
	return m.mean
}

// MeanState is the serializable state of a Mean.
type MeanState struct {
	N    uint64  `json:"n"`
	Mean float64 `json:"mean"`
}

// State returns a snapshot of the mean's internal state.
func (m *Mean) State() MeanState {
	return MeanState{N: m.n, Mean: m.mean}
}

// RestoreMean reconstructs a Mean from a state snapshot.
func RestoreMean(st MeanState) *Mean {
	return &Mean{n: st.N, mean: st.Mean}
}

func (m *Mean) MarshalBinary() ([]byte, error) {
	return binary.Marshal(m.State())
}

func (m *Mean) UnmarshalBinary(data []byte) error {
	var st MeanState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*m = *RestoreMean(st)
	return nil
}
