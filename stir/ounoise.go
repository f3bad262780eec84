package stir

import "math"

// The forcing step evolves one complex phase per mode component as an
// Ornstein-Uhlenbeck process with variance Variance and correlation time
// equal to the driving decay time. The table stores 2*NDim phase entries per
// mode (real and imaginary parts); only [0, 2*NDim*ModeCount) are active.

// activePhases returns the phase entries backing the written modes.
func (t *ModeTable) activePhases() []float64 {
	return t.Phases[:2*t.NDim*t.ModeCount]
}

// InitPhases seeds every active phase with an independent Gaussian draw of
// standard deviation Variance. Draws are strictly sequential on rng.
func (t *ModeTable) InitPhases(rng *SequentialRNG) {
	phases := t.activePhases()
	for i := range phases {
		phases[i] = t.Variance * rng.Gauss()
	}
}

// UpdatePhases advances every active phase by one OU step of length dt with
// correlation time corrTime:
//
//	p <- p*damp + Variance*sqrt(1-damp^2)*N(0,1), damp = exp(-dt/corrTime)
//
// dt=0 leaves the phases unchanged and consumes no draws.
func (t *ModeTable) UpdatePhases(dt, corrTime float64, rng *SequentialRNG) {
	if dt == 0 {
		return
	}
	damp := math.Exp(-dt / corrTime)
	diffusion := t.Variance * math.Sqrt(1.0-damp*damp)
	phases := t.activePhases()
	for i := range phases {
		phases[i] = phases[i]*damp + diffusion*rng.Gauss()
	}
}
