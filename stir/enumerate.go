package stir

import "math"

const twoPi = 2.0 * math.Pi

// axisMax returns the per-axis lattice bounds: unused axes collapse to {0}.
func axisMax(p Params) (ikxMax, ikyMax, ikzMax int) {
	ikxMax = p.latticeMax()
	if p.NDim > 1 {
		ikyMax = p.latticeMax()
	}
	if p.NDim > 2 {
		ikzMax = p.latticeMax()
	}
	return
}

// mirrorGroupSize is the number of modes one accepted lattice point expands
// to: 1, 2, or 4 for ndim 1, 2, or 3 (independent sign flips of ky and kz).
func mirrorGroupSize(ndim int) int { return 1 << (ndim - 1) }

// countLatticeModes performs the dry counting pass: the number of modes a
// full enumeration of the lattice would write, mirrors included. The result
// feeds the report only; nothing is stored.
func countLatticeModes(p Params) int {
	ikxMax, ikyMax, ikzMax := axisMax(p)
	group := mirrorGroupSize(p.NDim)

	total := 0
	for ikx := 0; ikx <= ikxMax; ikx++ {
		kx := twoPi * float64(ikx) / p.Lx
		for iky := 0; iky <= ikyMax; iky++ {
			ky := twoPi * float64(iky) / p.Ly
			for ikz := 0; ikz <= ikzMax; ikz++ {
				kz := twoPi * float64(ikz) / p.Lz
				k := math.Sqrt(kx*kx + ky*ky + kz*kz)
				if k >= p.StirMin && k <= p.StirMax {
					total += group
				}
			}
		}
	}
	return total
}

// enumerateModes is the write pass for the Band and Parabolic forms: the same
// lattice traversal as the counting pass, computing a shape-dependent
// amplitude per accepted point and appending the point plus its mirrors.
// Ordering is lexicographic on (ikx, iky, ikz), primary mode before mirrors.
//
// The capacity guard is sticky: once a group no longer fits, every later
// accepted point would fail the same check (the group size is constant), so
// the truncated flag short-circuits the remaining accepts without changing
// the observable result.
func enumerateModes(t *ModeTable, p Params, kc float64) (written int, truncated bool) {
	ikxMax, ikyMax, ikzMax := axisMax(p)
	group := mirrorGroupSize(p.NDim)

	// Normalizes the parabola to 1 at the shell midpoint.
	parabPrefact := -4.0 / ((p.StirMax - p.StirMin) * (p.StirMax - p.StirMin))

	for ikx := 0; ikx <= ikxMax; ikx++ {
		kx := twoPi * float64(ikx) / p.Lx
		for iky := 0; iky <= ikyMax; iky++ {
			ky := twoPi * float64(iky) / p.Ly
			for ikz := 0; ikz <= ikzMax; ikz++ {
				kz := twoPi * float64(ikz) / p.Lz
				k := math.Sqrt(kx*kx + ky*ky + kz*kz)
				if k < p.StirMin || k > p.StirMax {
					continue
				}
				if truncated || t.ModeCount+group > t.Capacity() {
					truncated = true
					continue
				}

				amplitude := 1.0
				if p.SpectralForm == Parabolic {
					amplitude = math.Abs(parabPrefact*(k-kc)*(k-kc) + 1.0)
				}
				// Power spectrum ~ amplitude^2 (1D), amplitude^2 * 2pi k (2D),
				// amplitude^2 * 4pi k^2 (3D).
				amplitude = 2.0 * math.Sqrt(amplitude) * math.Pow(kc/k, 0.5*float64(p.NDim-1))

				t.appendMode(amplitude, []float64{kx, ky, kz})
				if p.NDim > 1 {
					t.appendMode(amplitude, []float64{kx, -ky, kz})
				}
				if p.NDim > 2 {
					t.appendMode(amplitude, []float64{kx, ky, -kz})
					t.appendMode(amplitude, []float64{kx, -ky, -kz})
				}
			}
		}
	}
	return t.ModeCount, truncated
}
