package quantile

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Asserts that inverted or out-of-range quantile pairs are rejected.
func TestIQR_RejectsInvalidRanges(t *testing.T) {
	_, err := NewIQR(0.75, 0.25)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewIQR(0.5, 0.5)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewIQR(-0.1, 0.75)
	assert.ErrorIs(t, err, ErrInvalidQuantile)

	_, err = NewIQR(0.25, 1.1)
	assert.ErrorIs(t, err, ErrInvalidQuantile)

	_, err = NewRollingIQR(0.75, 0.25, 10)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

// Asserts that the estimate converges to the true interquartile range of a
// uniform distribution.
func TestIQR_ConvergesUniform(t *testing.T) {
	iqr, err := NewIQR(0.25, 0.75)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100000; i++ {
		iqr.Update(rng.Float64() * 1000)
	}

	assert.InDelta(t, 500, iqr.Get(), 25)
}

// Asserts the exact interquartile range of a window holding the whole
// stream.
func TestRollingIQR_ExactOverFullWindow(t *testing.T) {
	iqr, err := NewRollingIQR(0.25, 0.75, 101)
	require.NoError(t, err)
	for i := 0; i <= 100; i++ {
		iqr.Update(float64(i))
	}
	assert.Equal(t, 50.0, iqr.Get())
}

// Asserts that serializing mid-stream and resuming yields the same estimates
// as an estimator that was never serialized.
func TestIQR_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	iqr, err := NewIQR(0.1, 0.9)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		iqr.Update(rng.Float64() * 100)
	}

	data, err := iqr.MarshalBinary()
	require.NoError(t, err)
	restored := new(IQR)
	require.NoError(t, restored.UnmarshalBinary(data))

	for i := 0; i < 100; i++ {
		x := rng.Float64() * 100
		iqr.Update(x)
		restored.Update(x)
		require.Equal(t, iqr.Get(), restored.Get())
	}
}
