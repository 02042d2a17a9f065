package rolling

import (
	"encoding"
	"fmt"

	"github.com/kelindar/binary"
)

// State is the serializable state of a Rolling decorator. Values holds the
// raw observations currently in the window, oldest first; Stat holds the
// wrapped statistic's own serialized state.
type State struct {
	WindowSize int       `json:"window_size"`
	Values     []float64 `json:"values"`
	Stat       []byte    `json:"stat"`
}

// MarshalBinary serializes the window together with the wrapped statistic.
// The wrapped statistic must implement encoding.BinaryMarshaler.
func (r *Rolling[S]) MarshalBinary() ([]byte, error) {
	m, ok := any(r.stat).(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("wrapped statistic %T is not binary-marshalable", r.stat)
	}
	stat, err := m.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return binary.Marshal(State{
		WindowSize: r.windowSize,
		Values:     r.Window(),
		Stat:       stat,
	})
}

// UnmarshalBinary restores the window and the wrapped statistic from data.
// The receiver must already wrap a statistic of the serialized type, and that
// statistic must implement encoding.BinaryUnmarshaler.
func (r *Rolling[S]) UnmarshalBinary(data []byte) error {
	u, ok := any(r.stat).(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("wrapped statistic %T is not binary-unmarshalable", r.stat)
	}
	var st State
	if err := binary.Unmarshal(data, &st); err != nil {
		return err
	}
	if err := u.UnmarshalBinary(st.Stat); err != nil {
		return err
	}
	r.windowSize = st.WindowSize
	r.values = make([]float64, 0, st.WindowSize)
	r.values = append(r.values, st.Values...)
	r.head = 0
	return nil
}
