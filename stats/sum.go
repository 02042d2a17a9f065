package stats

import "github.com/kelindar/binary"

// Sum is a running sum.
//
// This type is not concurrency safe.
type Sum struct {
	sum float64
}

// NewSum creates a new Sum.
func NewSum() *Sum {
	return &Sum{}
}

// Update adds x to the sum.
func (s *Sum) Update(x float64) {
	s.sum += x
}

// Revert removes a previously added x from the sum.
func (s *Sum) Revert(x float64) error {
	s.sum -= x
	return nil
}

// Get returns the current sum.
func (s *Sum) Get() float64 {
	return s.sum
}

// SumState is the serializable state of a Sum.
type SumState struct {
	Sum float64 `json:"sum"`
}

// State returns a snapshot of the sum's internal state.
func (s *Sum) State() SumState {
	return SumState{Sum: s.sum}
}

// RestoreSum reconstructs a Sum from a state snapshot.
func RestoreSum(st SumState) *Sum {
	return &Sum{sum: st.Sum}
}

func (s *Sum) MarshalBinary() ([]byte, error) {
	return binary.Marshal(s.State())
}

func (s *Sum) UnmarshalBinary(data []byte) error {
	var st SumState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*s = *RestoreSum(st)
	return nil
}
