package length

import (
	"math"
	"math/rand"

	"ghmm_go/mathx"
)

// Uniform is a continuous uniform duration model over [a,b), discretised
// at construction time into a Discrete-style DPDF by integrating the CDF
// across half-open unit bins: P(x) = cdf(x+0.5) - cdf(x-0.5), after
// BoundedContinuous::discretise in the original. Bins run from the one
// containing a to the one containing b, so an integer end point gets
// half a bin's mass and the table sums to 1.
type Uniform struct {
	dMin, dMax float64
	vPDF       float64
	dpdf       *mathx.DPDF
}

// NewUniform builds a continuous Uniform(a,b) duration model, already
// discretised into its internal DPDF.
func NewUniform(a, b float64) *Uniform {
	u := &Uniform{dMin: a, dMax: b, vPDF: 1.0 / (b - a)}
	u.discretise()
	return u
}

func (u *Uniform) cdf(z float64) float64 {
	if z >= u.dMax {
		return 1.0
	}
	if z <= u.dMin {
		return 0.0
	}
	return (z - u.dMin) * u.vPDF
}

func (u *Uniform) discretise() {
	x1 := int(math.Floor(u.dMin + 0.5))
	x2 := int(math.Ceil(u.dMax + 0.5))
	d := mathx.NewDPDF()
	freqs := make([]float64, x2-x1)
	c := 0.0
	for x := x1; x < x2; x++ {
		nc := u.cdf(float64(x) + 0.5)
		freqs[x-x1] = nc - c
		c = nc
	}
	d.SetDistrib(x1, x2, freqs, false)
	u.dpdf = d
}

func (u *Uniform) MinLen() int { return u.dpdf.Min() }
func (u *Uniform) MaxLen() int { return u.dpdf.Max() }

func (u *Uniform) LogP(d int) float64 {
	return u.dpdf.LogP(d)
}

func (u *Uniform) RandLen(rng *rand.Rand) int {
	return u.dpdf.RandZ(rng)
}
