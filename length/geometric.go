package length

import (
	"math"
	"math/rand"
)

// Geometric models a self-looping state: the per-step continuation
// probability is folded into the owning state's self-transition by
// Model compilation (see ghmm.Model), so MinLen/MaxLen always report the
// single-step sentinel [1,2) regardless of the configured mean. LogP and
// RandLen exist for completeness (diagnostics, generation) but the Parse
// engine never consults anything past d=1 for a geometric state.
type Geometric struct {
	pSelf float64
}

// NewGeometric builds a Geometric length with the given mean occupancy.
func NewGeometric(mean float64) *Geometric {
	g := &Geometric{}
	g.SetMean(mean)
	return g
}

// NewGeometricPSelf builds a Geometric length directly from a
// self-transition probability rather than a mean.
func NewGeometricPSelf(pSelf float64) *Geometric {
	return &Geometric{pSelf: pSelf}
}

// SetMean recomputes the self-transition probability from a target mean
// occupancy: p_self = mean / (1 + mean).
func (g *Geometric) SetMean(mean float64) {
	g.pSelf = mean / (1 + mean)
}

// PSelf returns the self-transition probability ModelBuilder.Compile reconciles
// into the transition matrix's diagonal entry for this state.
func (g *Geometric) PSelf() float64 {
	return g.pSelf
}

// MinLen is always 1: a geometric state occupies exactly one position
// per visit, and repeat visits are modelled by self-transitions, not by
// a duration generator returning d>1.
func (g *Geometric) MinLen() int { return 1 }

// MaxLen is always 2 (the [1,2) sentinel), matching MinLen. This is
// deliberately coupled to the self-loop that ModelBuilder.Compile writes
// into the transition matrix from PSelf.
func (g *Geometric) MaxLen() int { return 2 }

func (g *Geometric) LogP(d int) float64 {
	return math.Log(g.pSelf) * float64(d)
}

func (g *Geometric) RandLen(rng *rand.Rand) int {
	return 1
}
