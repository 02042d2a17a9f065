package stats

import "github.com/kelindar/binary"

// EWMean is an exponentially weighted running mean. alpha controls how much
// weight recent observations carry: values close to 1 adapt quickly to recent
// changes, values close to 0 retain influence from older observations. The
// first observation initializes the mean directly.
//
// This type is not concurrency safe.
type EWMean struct {
	alpha float64
	n     uint64
	mean  float64
}

// NewEWMean creates a new EWMean with the given smoothing factor alpha (0-1).
func NewEWMean(alpha float64) *EWMean {
	return &EWMean{alpha: alpha}
}

// Update incorporates x into the weighted mean.
func (e *EWMean) Update(x float64) {
	e.n++
	if e.n == 1 {
		e.mean = x
		return
	}
	e.mean = smooth(e.mean, x, e.alpha)
}

// Get returns the current weighted mean.
func (e *EWMean) Get() float64 {
	return e.mean
}

// EWVar is an exponentially weighted running variance, tracking an
// exponentially weighted mean internally.
//
// This type is not concurrency safe.
type EWVar struct {
	alpha    float64
	n        uint64
	mean     float64
	variance float64
}

// NewEWVar creates a new EWVar with the given smoothing factor alpha (0-1).
func NewEWVar(alpha float64) *EWVar {
	return &EWVar{alpha: alpha}
}

// Update incorporates x into the weighted variance.
func (e *EWVar) Update(x float64) {
	e.n++
	if e.n == 1 {
		e.mean = x
		return
	}
	diff := x - e.mean
	incr := e.alpha * diff
	e.mean += incr
	e.variance = (1 - e.alpha) * (e.variance + diff*incr)
}

// Get returns the current weighted variance.
func (e *EWVar) Get() float64 {
	return e.variance
}

// EWMeanState is the serializable state of an EWMean.
type EWMeanState struct {
	Alpha float64 `json:"alpha"`
	N     uint64  `json:"n"`
	Mean  float64 `json:"mean"`
}

// State returns a snapshot of the weighted mean's internal state.
func (e *EWMean) State() EWMeanState {
	return EWMeanState{Alpha: e.alpha, N: e.n, Mean: e.mean}
}

// RestoreEWMean reconstructs an EWMean from a state snapshot.
func RestoreEWMean(st EWMeanState) *EWMean {
	return &EWMean{alpha: st.Alpha, n: st.N, mean: st.Mean}
}

func (e *EWMean) MarshalBinary() ([]byte, error) {
	return binary.Marshal(e.State())
}

func (e *EWMean) UnmarshalBinary(data []byte) error {
	var st EWMeanState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*e = *RestoreEWMean(st)
	return nil
}

// EWVarState is the serializable state of an EWVar.
type EWVarState struct {
	Alpha    float64 `json:"alpha"`
	N        uint64  `json:"n"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

// State returns a snapshot of the weighted variance's internal state.
func (e *EWVar) State() EWVarState {
	return EWVarState{Alpha: e.alpha, N: e.n, Mean: e.mean, Variance: e.variance}
}

// RestoreEWVar reconstructs an EWVar from a state snapshot.
func RestoreEWVar(st EWVarState) *EWVar {
	return &EWVar{alpha: st.Alpha, n: st.N, mean: st.Mean, variance: st.Variance}
}

func (e *EWVar) MarshalBinary() ([]byte, error) {
	return binary.Marshal(e.State())
}

func (e *EWVar) UnmarshalBinary(data []byte) error {
	var st EWVarState
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*e = *RestoreEWVar(st)
	return nil
}
