package stir

import "math"

// ran1s constants (Park-Miller minimal standard with Schrage's trick).
const (
	ran1sIA = 16807
	ran1sIM = 2147483647
	ran1sIQ = 127773
	ran1sIR = 2836

	ran1sAM   = 1.0 / float64(ran1sIM)
	ran1sRNMX = 1.0 - 1.2e-7
)

// SequentialRNG is the deterministic generator that supplies every
// pseudo-random draw in this package. A single integer state is the whole
// generator: two instances started from the same seed produce the same draw
// sequence, and every draw advances the state exactly once. Mode generation
// depends on the exact draw order, so callers must not interleave unrelated
// draws on the same instance mid-run.
type SequentialRNG struct {
	state int64
}

// NewSequentialRNG returns a generator seeded with the given value.
// Non-positive seeds are rehabilitated to a positive state on the first draw.
func NewSequentialRNG(seed int64) *SequentialRNG {
	return &SequentialRNG{state: seed}
}

// State returns the current internal state, so a caller can persist it and
// resume the exact same stream later.
func (r *SequentialRNG) State() int64 { return r.state }

// Next returns the next uniform variate in [0, 1) and advances the state.
func (r *SequentialRNG) Next() float64 {
	if r.state <= 0 {
		if -r.state > 1 {
			r.state = -r.state
		} else {
			r.state = 1
		}
	}
	k := r.state / ran1sIQ
	r.state = ran1sIA*(r.state-k*ran1sIQ) - ran1sIR*k
	if r.state < 0 {
		r.state += ran1sIM
	}
	v := ran1sAM * float64(r.state)
	if v > ran1sRNMX {
		v = ran1sRNMX
	}
	return v
}

// Gauss returns a standard normal variate via Box-Muller, consuming exactly
// two uniform draws.
func (r *SequentialRNG) Gauss() float64 {
	u1 := r.Next()
	u2 := r.Next()
	if u1 < ran1sAM {
		u1 = ran1sAM
	}
	return math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
}
