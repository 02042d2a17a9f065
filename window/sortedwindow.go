// Package window provides a fixed-capacity sliding window that maintains both
// the insertion order and the ascending value order of its contents.
package window

import (
	"math"
	"slices"

	"github.com/kelindar/binary"
)

// SortedWindow holds the last capacity pushed values in two co-maintained
// views: a FIFO of insertion order and an ascending sorted view. Once full,
// each push evicts the oldest surviving insertion. Rank access into the
// sorted view is O(1); a push costs a binary search plus an O(N) shift.
//
// A capacity of 0 is permitted at construction but PushBack on such a window
// panics; zero-capacity windows are a degenerate, unsupported case.
//
// This type is not concurrency safe.
type SortedWindow struct {
	capacity int

	// Insertion-ordered ring. While filling, values grows by append and head
	// stays 0; once full, values[head] is the oldest element and is
	// overwritten in place.
	values []float64
	head   int

	// Ascending view of the same multiset.
	sorted []float64
}

// NewSortedWindow creates a SortedWindow with the given fixed capacity.
func NewSortedWindow(capacity int) *SortedWindow {
	return &SortedWindow{
		capacity: capacity,
		values:   make([]float64, 0, capacity),
		sorted:   make([]float64, 0, capacity),
	}
}

// Len returns the number of values currently held.
func (w *SortedWindow) Len() int {
	return len(w.sorted)
}

// Empty reports whether the window holds no values.
func (w *SortedWindow) Empty() bool {
	return len(w.sorted) == 0
}

// Capacity returns the fixed capacity set at construction.
func (w *SortedWindow) Capacity() int {
	return w.capacity
}

// Front returns the smallest value currently held. Front panics if the window
// is empty.
func (w *SortedWindow) Front() float64 {
	if len(w.sorted) == 0 {
		panic("window is empty")
	}
	return w.sorted[0]
}

// Back returns the largest value currently held. Back panics if the window is
// empty.
func (w *SortedWindow) Back() float64 {
	if len(w.sorted) == 0 {
		panic("window is empty")
	}
	return w.sorted[len(w.sorted)-1]
}

// At returns the i-th smallest value currently held. At panics if i is out of
// range.
func (w *SortedWindow) At(i int) float64 {
	if i < 0 || i >= len(w.sorted) {
		panic("rank out of range")
	}
	return w.sorted[i]
}

// PushBack inserts value, evicting the oldest insertion first if the window
// is full. PushBack panics if value is NaN; the window is left untouched in
// that case, since ordering comparisons against NaN are undefined.
func (w *SortedWindow) PushBack(value float64) {
	if math.IsNaN(value) {
		panic("cannot push NaN into a sorted window")
	}

	if len(w.sorted) == w.capacity {
		oldest := w.values[w.head]

		// Remove the evicted value from the sorted view. Duplicates are
		// fungible: any occurrence of the value may be removed.
		i, ok := slices.BinarySearch(w.sorted, oldest)
		if !ok {
			panic("evicted value missing from sorted view")
		}
		w.sorted = slices.Delete(w.sorted, i, i+1)

		w.values[w.head] = value
		w.head = (w.head + 1) % w.capacity
	} else {
		w.values = append(w.values, value)
	}

	i, _ := slices.BinarySearch(w.sorted, value)
	w.sorted = slices.Insert(w.sorted, i, value)
}

// Ordered returns a copy of the held values in insertion order, oldest first.
func (w *SortedWindow) Ordered() []float64 {
	out := make([]float64, 0, len(w.values))
	out = append(out, w.values[w.head:]...)
	out = append(out, w.values[:w.head]...)
	return out
}

// Sorted returns a copy of the held values in ascending order.
func (w *SortedWindow) Sorted() []float64 {
	return slices.Clone(w.sorted)
}

// State is the serializable state of a SortedWindow. Values holds the
// insertion-ordered view oldest first; Sorted holds the same multiset in
// ascending order.
type State struct {
	Capacity int       `json:"capacity"`
	Values   []float64 `json:"values"`
	Sorted   []float64 `json:"sorted"`
}

// State returns a snapshot of the window's internal state.
func (w *SortedWindow) State() State {
	return State{
		Capacity: w.capacity,
		Values:   w.Ordered(),
		Sorted:   w.Sorted(),
	}
}

// Restore reconstructs a SortedWindow from a state snapshot.
func Restore(st State) *SortedWindow {
	w := NewSortedWindow(st.Capacity)
	w.values = append(w.values, st.Values...)
	w.sorted = append(w.sorted, st.Sorted...)
	return w
}

func (w *SortedWindow) MarshalBinary() ([]byte, error) {
	return binary.Marshal(w.State())
}

func (w *SortedWindow) UnmarshalBinary(data []byte) error {
	var st State
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	*w = *Restore(st)
	return nil
}
