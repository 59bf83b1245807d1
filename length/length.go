// Package length implements the duration models a GHMM state uses to
// decide how many symbols it stays occupied for: Fixed, Geometric,
// Discrete and Uniform.
package length

import (
	"math/rand"
)

// Length is the capability a state's duration model must satisfy. MinLen
// and MaxLen bound the admissible duration to [MinLen, MaxLen); LogP
// gives the log-probability of an exact duration d, and RandLen draws a
// sample duration for forward simulation.
type Length interface {
	MinLen() int
	MaxLen() int
	LogP(d int) float64
	RandLen(rng *rand.Rand) int
}
