package stir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewModeTableSizing(t *testing.T) {
	table := NewModeTable(3, 7)
	require.Equal(t, 7, table.Capacity())
	require.Len(t, table.Modes, 21)
	require.Len(t, table.Phases, 42)
	require.Zero(t, table.ModeCount)
}

func TestModeViewAndWavenumber(t *testing.T) {
	table := NewModeTable(3, 2)
	table.appendMode(1.5, []float64{3, 4, 12})

	require.Equal(t, 1, table.ModeCount)
	require.Equal(t, []float64{3, 4, 12}, table.Mode(0))
	require.InDelta(t, 13.0, table.Wavenumber(0), 1e-12)
	require.Equal(t, 1.5, table.Amplitudes[0])
}

func TestWavenumberLowerDim(t *testing.T) {
	table := NewModeTable(1, 2)
	table.appendMode(1.0, []float64{2 * math.Pi})
	require.InDelta(t, 2*math.Pi, table.Wavenumber(0), 1e-12)
}
