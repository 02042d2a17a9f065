package stats

import "github.com/kelindar/binary"

// Count is a running count of observations.
//
// This type is not concurrency safe.
type Count struct {
	n uint64
}

// NewCount creates a new Count.
func NewCount() *Count {
	return &Count{}
}

// Update increments the count. The observation value is ignored.
func (c *Count) Update(x float64) {
	c.n++
}

// Revert decrements the count.
func (c *Count) Revert(x float64) error {
	if c.n == 0 {
		return ErrNoObservations
	}
	c.n--
	return nil
}

// Get returns the current count.
func (c *Count) Get() float64 {
	return float64(c.n)
}

// CountState is the serializable state of a Count.
type CountState struct {
	N uint64 `json:"n"`
}

// State returns a snapshot of the count's internal state.
func (c *Count) State() CountState {
	return CountState{N: c.n}
}

// RestoreCount reconstructs a Count from a state snapshot.
func RestoreCount(st CountState) *Count {
	return &Count{n: st.N}
}

func (c *Count) MarshalBinary() ([]byte, error) {
	return binary.Marshal(c.State())
}

func (c *Count) UnmarshalBinary(data []byte) error {
	var st CountState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*c = *RestoreCount(st)
	return nil
}
