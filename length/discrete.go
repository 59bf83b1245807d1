package length

import (
	"math/rand"

	"ghmm_go/mathx"
)

// Discrete wraps an arbitrary DPDF as a duration model.
type Discrete struct {
	dpdf *mathx.DPDF
}

// NewDiscrete wraps dpdf as a Length; dpdf's support becomes [MinLen,MaxLen).
func NewDiscrete(dpdf *mathx.DPDF) *Discrete {
	return &Discrete{dpdf: dpdf}
}

func (d *Discrete) MinLen() int { return d.dpdf.Min() }
func (d *Discrete) MaxLen() int { return d.dpdf.Max() }

func (d *Discrete) LogP(l int) float64 {
	return d.dpdf.LogP(l)
}

func (d *Discrete) RandLen(rng *rand.Rand) int {
	return d.dpdf.RandZ(rng)
}
