package stats

import "github.com/kelindar/binary"

// Var is a running sample variance computed with Welford's algorithm. The
// reported variance uses the n-1 (Bessel) correction.
//
// This type is not concurrency safe.
type Var struct {
	n    uint64
	mean float64
	m2   float64
}

// NewVar creates a new Var.
func NewVar() *Var {
	return &Var{}
}

// Update incorporates x into the variance.
func (v *Var) Update(x float64) {
	v.n++
	delta := x - v.mean
	v.mean += delta / float64(v.n)
	v.m2 += delta * (x - v.mean)
}

// Revert removes a previously incorporated x from the variance. The reversal
// is algebraically exact; floating-point rounding may leave tiny residue in
// the accumulated sum of squares.
func (v *Var) Revert(x float64) error {
	switch v.n {
	case 0:
		return ErrNoObservations
	case 1:
		v.n = 0
		v.mean = 0
		v.m2 = 0
	default:
		prevMean := (float64(v.n)*v.mean - x) / float64(v.n-1)
		v.m2 -= (x - prevMean) * (x - v.mean)
		v.mean = prevMean
		v.n--
	}
	return nil
}

// Get returns the current sample variance, or 0 with fewer than two
// observations.
func (v *Var) Get() float64 {
	if v.n < 2 {
		return 0
	}
	return v.m2 / float64(v.n-1)
}

// VarState is the serializable state of a Var.
type VarState struct {
	N    uint64  `json:"n"`
	Mean float64 `json:"mean"`
	M2   float64 `json:"m2"`
}

// State returns a snapshot of the variance's internal state.
func (v *Var) State() VarState {
	return VarState{N: v.n, Mean: v.mean, M2: v.m2}
}

// RestoreVar reconstructs a Var from a state snapshot.
func RestoreVar(st VarState) *Var {
	return &Var{n: st.N, mean: st.Mean, m2: st.M2}
}

func (v *Var) MarshalBinary() ([]byte, error) {
	return binary.Marshal(v.State())
}

func (v *Var) UnmarshalBinary(data []byte) error {
	var st VarState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*v = *RestoreVar(st)
	return nil
}
