package stir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// samplerParams maps integer shells directly onto wavenumbers (L = 2pi), so
// shells 1..3 are stirred.
func samplerParams(ndim int) Params {
	return Params{
		Lx: 2 * math.Pi, Ly: 2 * math.Pi, Lz: 2 * math.Pi,
		NDim:             ndim,
		Energy:           1.0,
		DecayTime:        1.0,
		StirMin:          1.0,
		StirMax:          3.0,
		SolenoidalWeight: 0.5,
		SpectralForm:     PowerLawAngleSampled,
		PowerLawExp:      -2.0,
		AnglesExp:        1.0,
	}
}

func TestSamplerDeterminism(t *testing.T) {
	p := samplerParams(3)
	p.AnglesExp = 2.0 // near-full angular coverage, nang = 8*ik^2

	a := NewModeTable(3, 4096)
	b := NewModeTable(3, 4096)
	rngA := NewSequentialRNG(140281)
	rngB := NewSequentialRNG(140281)

	repA, err := Generate(a, p, rngA)
	require.NoError(t, err)
	repB, err := Generate(b, p, rngB)
	require.NoError(t, err)

	require.Equal(t, repA, repB)
	require.Greater(t, a.ModeCount, 0)
	require.Equal(t, a.ModeCount, b.ModeCount)
	require.Equal(t, a.Modes, b.Modes)
	require.Equal(t, a.Amplitudes, b.Amplitudes)
	require.Equal(t, rngA.State(), rngB.State())
	require.NotEqual(t, int64(140281), rngA.State())
}

func TestSamplerShellMembership(t *testing.T) {
	for _, ndim := range []int{1, 2, 3} {
		p := samplerParams(ndim)
		table := NewModeTable(ndim, 4096)
		rep, err := Generate(table, p, NewSequentialRNG(42))
		require.NoError(t, err)
		require.False(t, rep.Truncated)

		for i := 0; i < table.ModeCount; i++ {
			k := table.Wavenumber(i)
			require.GreaterOrEqual(t, k, p.StirMin-1e-9, "ndim %d mode %d", ndim, i)
			require.LessOrEqual(t, k, p.StirMax+1e-9, "ndim %d mode %d", ndim, i)
			require.Greater(t, table.Amplitudes[i], 0.0, "ndim %d mode %d", ndim, i)
		}
	}
}

func TestSampler1DCollapsesToAxis(t *testing.T) {
	p := samplerParams(1)
	table := NewModeTable(1, 4096)
	_, err := Generate(table, p, NewSequentialRNG(7))
	require.NoError(t, err)
	require.Greater(t, table.ModeCount, 0)

	// With L = 2pi the snapped wavevectors are signed integers on the x
	// axis; both signs must occur (phi collapses to 0 or pi).
	sawPositive, sawNegative := false, false
	for i := 0; i < table.ModeCount; i++ {
		kx := table.Modes[i]
		require.InDelta(t, math.Round(kx), kx, 1e-12)
		if kx > 0 {
			sawPositive = true
		}
		if kx < 0 {
			sawNegative = true
		}
	}
	require.True(t, sawPositive)
	require.True(t, sawNegative)
}

// TestSamplerDrawBudget pins the fixed draw order: every sample attempt
// consumes exactly two uniforms below 3-D (phi, radial jitter) and three in
// 3-D (phi, theta, radial jitter), accepted or not.
func TestSamplerDrawBudget(t *testing.T) {
	for _, tt := range []struct {
		ndim         int
		drawsPerSamp int
	}{
		{1, 2},
		{2, 2},
		{3, 3},
	} {
		p := samplerParams(tt.ndim)
		rng := NewSequentialRNG(99)
		table := NewModeTable(tt.ndim, 8192)
		_, err := Generate(table, p, rng)
		require.NoError(t, err)

		samples := 0
		for ik := 1; ik <= 3; ik++ {
			samples += (1 << tt.ndim) * int(math.Ceil(math.Pow(float64(ik), p.AnglesExp)))
		}
		replay := NewSequentialRNG(99)
		for i := 0; i < samples*tt.drawsPerSamp; i++ {
			replay.Next()
		}
		require.Equal(t, replay.State(), rng.State(), "ndim %d", tt.ndim)
	}
}

func TestSamplerTruncation(t *testing.T) {
	p := samplerParams(2)
	p.AnglesExp = 2.0

	full := NewModeTable(2, 8192)
	repFull, err := Generate(full, p, NewSequentialRNG(1))
	require.NoError(t, err)
	require.False(t, repFull.Truncated)
	require.Greater(t, full.ModeCount, 4)

	small := NewModeTable(2, 5)
	rep, err := Generate(small, p, NewSequentialRNG(1))
	require.NoError(t, err)
	require.True(t, rep.Truncated)
	// The guard reserves a full mirror group (2 in 2-D) per accept, so the
	// last slot stays empty.
	require.Equal(t, 4, small.ModeCount)
	require.Equal(t, full.Amplitudes[:4], small.Amplitudes[:4])
	require.Equal(t, full.Modes[:8], small.Modes[:8])
}

func TestSamplerShellRange(t *testing.T) {
	// stirMin below the first shell still starts at ik=1.
	p := samplerParams(2)
	p.StirMin = 0.4
	ikMin := int(p.StirMin*p.Lx/(2*math.Pi) + 0.5)
	require.Equal(t, 0, ikMin)

	table := NewModeTable(2, 8192)
	_, err := Generate(table, p, NewSequentialRNG(5))
	require.NoError(t, err)
	for i := 0; i < table.ModeCount; i++ {
		require.GreaterOrEqual(t, table.Wavenumber(i), p.StirMin-1e-9)
	}
}
