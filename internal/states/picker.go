package states

import "math/rand/v2"

// Picker chooses an index in [0, n). Tests inject a deterministic Picker.
type Picker interface {
	Intn(n int) int
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(n int) int

// Intn calls f(n).
func (f PickerFunc) Intn(n int) int {
	return f(n)
}

// randomPicker draws from the auto-seeded global source.
type randomPicker struct{}

func (randomPicker) Intn(n int) int {
	return rand.IntN(n)
}
