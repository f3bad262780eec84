package stir

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for configuration validation. All of them fail fast before
// any mode is written.
var (
	ErrBoxExtent        = errors.New("stir: box extents must be positive")
	ErrEnergy           = errors.New("stir: energy and decay time must be positive")
	ErrShellBounds      = errors.New("stir: require 0 < stirMin < stirMax")
	ErrDimension        = errors.New("stir: ndim must be 1, 2, or 3")
	ErrSolenoidalWeight = errors.New("stir: solenoidal weight outside valid range")
	ErrTableStorage     = errors.New("stir: mode table storage does not match parameters")
	ErrSpectralForm     = errors.New("stir: unknown spectral form")
	ErrNilRNG           = errors.New("stir: PowerLawAngleSampled requires a generator")
)

// SpectralForm selects which energy-spectrum shape the generated modes
// approximate. Exactly one form runs per Generate call.
type SpectralForm int

const (
	// Band is a flat spectrum across the stirring shell.
	Band SpectralForm = iota
	// Parabolic peaks at the shell midpoint and vanishes at the edges.
	Parabolic
	// PowerLawAngleSampled is a power-law spectrum built by statistical
	// angular sampling of integer wavenumber shells instead of full
	// lattice enumeration.
	PowerLawAngleSampled
)

// String returns the config-file tag for the form.
func (f SpectralForm) String() string {
	switch f {
	case Band:
		return "band"
	case Parabolic:
		return "parabolic"
	case PowerLawAngleSampled:
		return "powerlaw"
	default:
		return fmt.Sprintf("SpectralForm(%d)", int(f))
	}
}

// ParseSpectralForm converts a config-file tag into a SpectralForm.
func ParseSpectralForm(s string) (SpectralForm, error) {
	switch s {
	case "band":
		return Band, nil
	case "parabolic":
		return Parabolic, nil
	case "powerlaw":
		return PowerLawAngleSampled, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrSpectralForm, s)
	}
}

// DefaultLatticeMax is the enumerated integer wavenumber bound used when
// Params.LatticeMax is zero.
const DefaultLatticeMax = 256

// Params configures one mode-generation run.
type Params struct {
	// Box extents of the periodic domain.
	Lx, Ly, Lz float64

	NDim int

	// Energy and DecayTime set the OU driving variance.
	Energy    float64
	DecayTime float64

	// StirMin and StirMax bound the wavenumber shell; every written mode
	// satisfies StirMin <= |k| <= StirMax.
	StirMin, StirMax float64

	// SolenoidalWeight mixes divergence-free and compressive forcing,
	// in [0, 1].
	SolenoidalWeight float64

	SpectralForm SpectralForm

	// PowerLawExp and AnglesExp apply to PowerLawAngleSampled only.
	PowerLawExp float64
	AnglesExp   float64

	// LatticeMax bounds the enumerated integer wavenumber index per axis.
	// Zero means DefaultLatticeMax.
	LatticeMax int
}

// latticeMax returns the effective enumeration bound.
func (p Params) latticeMax() int {
	if p.LatticeMax <= 0 {
		return DefaultLatticeMax
	}
	return p.LatticeMax
}

// Validate checks every configuration invariant. It does not touch the table
// or the RNG.
func (p Params) Validate() error {
	if p.Lx <= 0 || p.Ly <= 0 || p.Lz <= 0 {
		return fmt.Errorf("%w: got (%g, %g, %g)", ErrBoxExtent, p.Lx, p.Ly, p.Lz)
	}
	if p.NDim < 1 || p.NDim > 3 {
		return fmt.Errorf("%w: got %d", ErrDimension, p.NDim)
	}
	if p.Energy <= 0 || p.DecayTime <= 0 {
		return fmt.Errorf("%w: energy=%g decayTime=%g", ErrEnergy, p.Energy, p.DecayTime)
	}
	if p.StirMin <= 0 || p.StirMin >= p.StirMax {
		return fmt.Errorf("%w: got [%g, %g]", ErrShellBounds, p.StirMin, p.StirMax)
	}
	w := p.SolenoidalWeight
	if denom := 1.0 - 2.0*w + float64(p.NDim)*w*w; denom <= 0 {
		return fmt.Errorf("%w: w=%g ndim=%d", ErrSolenoidalWeight, w, p.NDim)
	}
	switch p.SpectralForm {
	case Band, Parabolic, PowerLawAngleSampled:
	default:
		return fmt.Errorf("%w: %d", ErrSpectralForm, int(p.SpectralForm))
	}
	return nil
}

// Report accumulates the diagnostics the generator used to print inline:
// how many modes a fully sampled lattice would produce, how many were
// actually written, and whether the capacity guard truncated the run.
type Report struct {
	TotalCandidates int
	Written         int
	Truncated       bool
}

// charWavenumber returns kc, the characteristic wavenumber the amplitude is
// normalized against: the shell midpoint for Parabolic, StirMin otherwise.
func (p Params) charWavenumber() float64 {
	if p.SpectralForm == Parabolic {
		return 0.5 * (p.StirMin + p.StirMax)
	}
	return p.StirMin
}

// Generate fills the table with driving modes for the configured spectral
// form. The table must be preallocated via NewModeTable with the same ndim;
// its scalar and array fields are fully overwritten. All pseudo-randomness
// (PowerLawAngleSampled only) comes from rng, whose state advances as a side
// effect and is the caller's reproducibility handle.
//
// Capacity overflow is not an error: generation truncates, the written
// prefix stays valid, and the report records Truncated=true.
func Generate(t *ModeTable, p Params, rng *SequentialRNG) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, err
	}
	if t.NDim != p.NDim || len(t.Modes) != t.NDim*len(t.Amplitudes) {
		return Report{}, fmt.Errorf("%w: table ndim=%d params ndim=%d",
			ErrTableStorage, t.NDim, p.NDim)
	}
	if p.SpectralForm == PowerLawAngleSampled && rng == nil {
		return Report{}, ErrNilRNG
	}

	// Spectrum-independent scalars come first, on every invocation.
	t.Variance = math.Sqrt(p.Energy / p.DecayTime)
	w := p.SolenoidalWeight
	t.SolWeight = math.Sqrt(3.0) * math.Sqrt(3.0/float64(p.NDim)) /
		math.Sqrt(1.0-2.0*w+float64(p.NDim)*w*w)

	t.ModeCount = 0
	kc := p.charWavenumber()

	rep := Report{TotalCandidates: countLatticeModes(p)}
	switch p.SpectralForm {
	case Band, Parabolic:
		rep.Written, rep.Truncated = enumerateModes(t, p, kc)
	case PowerLawAngleSampled:
		rep.Written, rep.Truncated = sampleShellModes(t, p, kc, rng)
	}
	return rep, nil
}
