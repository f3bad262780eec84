package stir

import "math"

// sampleShellModes is the write pass for the PowerLawAngleSampled form. Full
// lattice enumeration is prohibitively expensive at high wavenumber (shell
// population grows as k^(ndim-1)), so each integer wavenumber shell is
// covered by nang = 2^ndim * ceil(ik^anglesExp) angular samples instead. As
// anglesExp approaches 2 the sampling density approaches the true shell
// population.
//
// Draw order per sample is fixed by the reproducibility contract:
// phi, then theta (3-D only), then the radial jitter.
func sampleShellModes(t *ModeTable, p Params, kc float64, rng *SequentialRNG) (written int, truncated bool) {
	// The original guard reserves a full mirror group per accept even
	// though this branch appends single modes; preserved as observed.
	group := mirrorGroupSize(p.NDim)

	ikMin := int(p.StirMin*p.Lx/twoPi + 0.5)
	if ikMin < 1 {
		ikMin = 1
	}
	ikMax := int(p.StirMax*p.Lx/twoPi + 0.5)

	for ik := ikMin; ik <= ikMax; ik++ {
		nang := (1 << p.NDim) * int(math.Ceil(math.Pow(float64(ik), p.AnglesExp)))
		for iang := 0; iang < nang; iang++ {
			// Azimuth over the whole sphere; 1-D collapses it to +-x.
			phi := twoPi * rng.Next()
			if p.NDim == 1 {
				if phi < math.Pi {
					phi = 0.0
				} else {
					phi = math.Pi
				}
			}

			theta := 0.5 * math.Pi
			if p.NDim > 2 {
				// acos(1-2U) samples the sphere surface uniformly.
				theta = math.Acos(1.0 - 2.0*rng.Next())
			}

			// Radial jitter avoids exact-lattice aliasing; rounding
			// snaps the sample back onto a valid Fourier mode of the
			// periodic box.
			rad := float64(ik) + rng.Next() - 0.5
			kx := twoPi * math.Round(rad*math.Sin(theta)*math.Cos(phi)) / p.Lx
			ky := 0.0
			if p.NDim > 1 {
				ky = twoPi * math.Round(rad*math.Sin(theta)*math.Sin(phi)) / p.Ly
			}
			kz := 0.0
			if p.NDim > 2 {
				kz = twoPi * math.Round(rad*math.Cos(theta)) / p.Lz
			}

			k := math.Sqrt(kx*kx + ky*ky + kz*kz)
			if k < p.StirMin || k > p.StirMax {
				continue
			}
			if truncated || t.ModeCount+group > t.Capacity() {
				truncated = true
				continue
			}

			amplitude := math.Pow(k/kc, p.PowerLawExp)
			// Same dimensional rescale as the enumerated forms, with an
			// extra factor correcting for sampling only nang of the full
			// angular shell (k^(ndim-1) points per shell).
			amplitude = math.Sqrt(amplitude*(math.Pow(float64(ik), float64(p.NDim-1))*4.0*math.Sqrt(3.0)/float64(nang))) *
				math.Pow(kc/k, float64(p.NDim-1)/2.0)

			// Full-sphere theta/phi coverage replaces mirroring.
			t.appendMode(amplitude, []float64{kx, ky, kz})
		}
	}
	return t.ModeCount, truncated
}
