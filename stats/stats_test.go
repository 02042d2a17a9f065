package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Revertible = &Count{}
var _ Revertible = &Sum{}
var _ Revertible = &Mean{}
var _ Revertible = &Var{}
var _ Univariate = &Min{}
var _ Univariate = &Max{}
var _ Univariate = &RollingMin{}
var _ Univariate = &RollingMax{}
var _ Univariate = &PeakToPeak{}
var _ Univariate = &RollingPeakToPeak{}
var _ Univariate = &EWMean{}
var _ Univariate = &EWVar{}

// Asserts counting, and that reverting past zero is an error.
func TestCount(t *testing.T) {
	c := NewCount()
	assert.Equal(t, 0.0, c.Get())

	c.Update(3)
	c.Update(-1)
	assert.Equal(t, 2.0, c.Get())

	require.NoError(t, c.Revert(3))
	assert.Equal(t, 1.0, c.Get())

	require.NoError(t, c.Revert(-1))
	assert.ErrorIs(t, c.Revert(0), ErrNoObservations)
}

// Asserts summing and reverting.
func TestSum(t *testing.T) {
	s := NewSum()
	for _, x := range []float64{9, 7, 3, 2, 6, 1, 8, 5, 4} {
		s.Update(x)
	}
	assert.Equal(t, 45.0, s.Get())

	require.NoError(t, s.Revert(9))
	require.NoError(t, s.Revert(7))
	assert.Equal(t, 29.0, s.Get())
}

// Asserts the running mean, and that reverting restores earlier values.
func TestMean(t *testing.T) {
	m := NewMean()
	assert.Equal(t, 0.0, m.Get())

	for _, x := range []float64{9, 7, 3, 2, 6, 1, 8, 5, 4} {
		m.Update(x)
	}
	assert.InDelta(t, 5.0, m.Get(), 1e-12)

	require.NoError(t, m.Revert(4))
	assert.InDelta(t, 5.125, m.Get(), 1e-12)

	for _, x := range []float64{5, 8, 1, 6, 2, 3, 7, 9} {
		require.NoError(t, m.Revert(x))
	}
	assert.Equal(t, 0.0, m.Get())
	assert.ErrorIs(t, m.Revert(1), ErrNoObservations)
}

// Asserts the sample variance of a fixed stream and its reversal.
func TestVar(t *testing.T) {
	v := NewVar()
	assert.Equal(t, 0.0, v.Get())

	v.Update(1)
	assert.Equal(t, 0.0, v.Get())

	for _, x := range []float64{9, 7, 3, 2, 6, 8, 5, 4} {
		v.Update(x)
	}
	// Sample variance of 1..9 is 60/8.
	assert.InDelta(t, 7.5, v.Get(), 1e-12)

	require.NoError(t, v.Revert(4))
	require.NoError(t, v.Revert(5))
	fresh := NewVar()
	for _, x := range []float64{1, 9, 7, 3, 2, 6, 8} {
		fresh.Update(x)
	}
	assert.InDelta(t, fresh.Get(), v.Get(), 1e-9)

	single := NewVar()
	single.Update(2)
	require.NoError(t, single.Revert(2))
	assert.Equal(t, 0.0, single.Get())
	assert.ErrorIs(t, single.Revert(2), ErrNoObservations)
}

// Asserts that revertible statistics round-trip through their serialized
// state and continue identically.
func TestRevertibles_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		stat    Revertible
		restore func([]byte) (Revertible, error)
	}{
		{"count", NewCount(), func(b []byte) (Revertible, error) { c := new(Count); return c, c.UnmarshalBinary(b) }},
		{"sum", NewSum(), func(b []byte) (Revertible, error) { s := new(Sum); return s, s.UnmarshalBinary(b) }},
		{"mean", NewMean(), func(b []byte) (Revertible, error) { m := new(Mean); return m, m.UnmarshalBinary(b) }},
		{"variance", NewVar(), func(b []byte) (Revertible, error) { v := new(Var); return v, v.UnmarshalBinary(b) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			for i := 0; i < 20; i++ {
				tc.stat.Update(rng.Float64() * 100)
			}

			data, err := tc.stat.(interface{ MarshalBinary() ([]byte, error) }).MarshalBinary()
			require.NoError(t, err)
			restored, err := tc.restore(data)
			require.NoError(t, err)

			for i := 0; i < 50; i++ {
				x := rng.Float64() * 100
				tc.stat.Update(x)
				restored.Update(x)
				require.Equal(t, tc.stat.Get(), restored.Get())
			}
		})
	}
}
