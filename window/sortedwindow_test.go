package window

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Asserts that a new window is empty and reports its capacity.
func TestSortedWindow_InitialState(t *testing.T) {
	w := NewSortedWindow(5)
	assert.True(t, w.Empty())
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 5, w.Capacity())
}

// Asserts that pushed values are kept in both insertion and ascending order.
func TestSortedWindow_PushAndSort(t *testing.T) {
	w := NewSortedWindow(5)
	w.PushBack(10)
	w.PushBack(5)
	w.PushBack(15)

	assert.False(t, w.Empty())
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []float64{5, 10, 15}, w.Sorted())
	assert.Equal(t, []float64{10, 5, 15}, w.Ordered())
	assert.Equal(t, 5.0, w.Front())
	assert.Equal(t, 15.0, w.Back())
	assert.Equal(t, 10.0, w.At(1))
}

// Asserts that once full, each push evicts the oldest insertion.
func TestSortedWindow_FullCycle(t *testing.T) {
	w := NewSortedWindow(3)
	w.PushBack(10)
	w.PushBack(20)
	w.PushBack(5)
	assert.Equal(t, []float64{5, 10, 20}, w.Sorted())

	// 10 is the oldest insertion and must go first.
	w.PushBack(15)
	assert.Equal(t, []float64{5, 15, 20}, w.Sorted())
	assert.Equal(t, []float64{20, 5, 15}, w.Ordered())

	// Then 20.
	w.PushBack(2)
	assert.Equal(t, []float64{2, 5, 15}, w.Sorted())
	assert.Equal(t, []float64{5, 15, 2}, w.Ordered())
	assert.Equal(t, 2.0, w.Front())
	assert.Equal(t, 15.0, w.Back())
}

// Asserts that duplicate values are treated as fungible on eviction.
func TestSortedWindow_Duplicates(t *testing.T) {
	w := NewSortedWindow(4)
	w.PushBack(10)
	w.PushBack(5)
	w.PushBack(10)
	w.PushBack(20)
	assert.Equal(t, []float64{5, 10, 10, 20}, w.Sorted())

	// Evicting the first 10 must leave exactly one 10 behind.
	w.PushBack(1)
	assert.Equal(t, []float64{1, 5, 10, 20}, w.Sorted())
	assert.Equal(t, []float64{5, 10, 20, 1}, w.Ordered())
}

// Asserts that a single-element window always holds the latest value.
func TestSortedWindow_SizeOne(t *testing.T) {
	w := NewSortedWindow(1)
	for _, x := range []float64{10, 5, 20} {
		w.PushBack(x)
		assert.Equal(t, 1, w.Len())
		assert.Equal(t, x, w.Front())
		assert.Equal(t, x, w.Back())
		assert.Equal(t, x, w.At(0))
	}
}

// Asserts that pushing into a zero-capacity window panics.
func TestSortedWindow_ZeroCapacityPanics(t *testing.T) {
	w := NewSortedWindow(0)
	assert.Panics(t, func() {
		w.PushBack(10)
	})
}

// Asserts that pushing NaN panics without altering the window's state.
func TestSortedWindow_NaNPanics(t *testing.T) {
	w := NewSortedWindow(3)
	w.PushBack(10)
	w.PushBack(20)

	assert.PanicsWithValue(t, "cannot push NaN into a sorted window", func() {
		w.PushBack(math.NaN())
	})
	assert.Equal(t, []float64{10, 20}, w.Sorted())
	assert.Equal(t, []float64{10, 20}, w.Ordered())
}

// Asserts that reading an empty window or an out-of-range rank panics.
func TestSortedWindow_AccessPanics(t *testing.T) {
	w := NewSortedWindow(3)
	assert.PanicsWithValue(t, "window is empty", func() { w.Front() })
	assert.PanicsWithValue(t, "window is empty", func() { w.Back() })
	assert.PanicsWithValue(t, "rank out of range", func() { w.At(0) })

	w.PushBack(1)
	assert.PanicsWithValue(t, "rank out of range", func() { w.At(1) })
	assert.PanicsWithValue(t, "rank out of range", func() { w.At(-1) })
}

// Asserts that at every step the sorted view equals the sorted last
// min(N, pushes) values of the stream.
func TestSortedWindow_MatchesSortedSuffix(t *testing.T) {
	for _, capacity := range []int{1, 2, 7, 64} {
		w := NewSortedWindow(capacity)
		rng := rand.New(rand.NewSource(42))

		var stream []float64
		for i := 0; i < 500; i++ {
			// Coarse values so duplicates occur.
			x := math.Floor(rng.Float64() * 50)
			w.PushBack(x)
			stream = append(stream, x)

			start := len(stream) - capacity
			if start < 0 {
				start = 0
			}
			expected := slices.Clone(stream[start:])
			slices.Sort(expected)
			require.Equal(t, expected, w.Sorted(), "capacity %d after %d pushes", capacity, i+1)
		}
	}
}

// Asserts that a serialized window behaves identically after restoration.
func TestSortedWindow_RoundTrip(t *testing.T) {
	w := NewSortedWindow(4)
	for _, x := range []float64{3, 1, 4, 1, 5} {
		w.PushBack(x)
	}

	data, err := w.MarshalBinary()
	require.NoError(t, err)

	restored := new(SortedWindow)
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, w.Sorted(), restored.Sorted())
	assert.Equal(t, w.Ordered(), restored.Ordered())

	// Continuing the same stream must evict in the same order.
	for _, x := range []float64{9, 2, 6} {
		w.PushBack(x)
		restored.PushBack(x)
		assert.Equal(t, w.Sorted(), restored.Sorted())
		assert.Equal(t, w.Ordered(), restored.Ordered())
	}
}
