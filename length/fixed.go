package length

import (
	"math/rand"

	"ghmm_go/mathx"
)

// Fixed emits exactly one duration with probability 1.
type Fixed struct {
	n int
}

// NewFixed returns a Length that always reports duration n.
func NewFixed(n int) *Fixed {
	return &Fixed{n: n}
}

func (f *Fixed) MinLen() int { return f.n }
func (f *Fixed) MaxLen() int { return f.n + 1 }

func (f *Fixed) LogP(d int) float64 {
	if d == f.n {
		return 0.0
	}
	return mathx.LogZero
}

func (f *Fixed) RandLen(rng *rand.Rand) int {
	return f.n
}
