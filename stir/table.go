// Package stir generates the Fourier-space driving modes used to inject a
// turbulent forcing field into a particle-based fluid simulation. It builds
// the mode table only; neighbor search, force application, and integration
// are external collaborators.
package stir

import "math"

// ModeTable holds the generated driving modes in flat SoA layout. The caller
// owns the table and preallocates it to capacity; Generate overwrites every
// field on each invocation. Entries [0, ModeCount) of Amplitudes are valid,
// and mode i occupies Modes[NDim*i : NDim*i+NDim].
type ModeTable struct {
	// Variance is sqrt(energy / decayTime), the OU driving amplitude.
	Variance float64
	// SolWeight normalizes the RMS forcing magnitude independent of the
	// solenoidal/compressive mix.
	SolWeight float64

	NDim      int
	ModeCount int

	Amplitudes []float64
	Modes      []float64
	// Phases holds the Ornstein-Uhlenbeck phase vector consumed by the
	// forcing step: 2*NDim entries per mode (real and imaginary parts).
	Phases []float64
}

// NewModeTable allocates a table for up to capacity modes in ndim dimensions.
func NewModeTable(ndim, capacity int) *ModeTable {
	return &ModeTable{
		NDim:       ndim,
		Amplitudes: make([]float64, capacity),
		Modes:      make([]float64, ndim*capacity),
		Phases:     make([]float64, 2*ndim*capacity),
	}
}

// Capacity returns the maximum number of modes the table can hold.
func (t *ModeTable) Capacity() int { return len(t.Amplitudes) }

// Mode returns the wavevector components of mode i as a view into the table.
func (t *ModeTable) Mode(i int) []float64 {
	return t.Modes[t.NDim*i : t.NDim*i+t.NDim]
}

// Wavenumber returns |k| for mode i.
func (t *ModeTable) Wavenumber(i int) float64 {
	var sum float64
	for _, c := range t.Mode(i) {
		sum += c * c
	}
	return math.Sqrt(sum)
}

// appendMode writes one mode at the current count. The caller has already
// checked capacity.
func (t *ModeTable) appendMode(amplitude float64, k []float64) {
	i := t.ModeCount
	t.Amplitudes[i] = amplitude
	copy(t.Modes[t.NDim*i:], k[:t.NDim])
	t.ModeCount++
}
