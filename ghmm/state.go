// Package ghmm implements the compiled GHMM graph: states (a duration
// model paired with a symbol model), the Warshall-pruned, self-loop
// reconciled transition matrix of Model, and the builder that produces
// one from a sparse set of named states and transitions.
package ghmm

import (
	"math/rand"

	"ghmm_go/emission"
	"ghmm_go/length"
	"ghmm_go/mathx"
)

// State pairs a duration model with a symbol model. Unlike the
// original's State<Distrib,Emitter> template (multiple inheritance from
// a Length base and an Emission base), Go composes the two as plain
// interface-typed fields and dispatches through them directly.
type State struct {
	Length   length.Length
	Emission emission.Emission
}

// NewState builds a state from its duration and symbol models.
func NewState(l length.Length, e emission.Emission) *State {
	return &State{Length: l, Emission: e}
}

// ParseContext is the view into a running parse that a state needs to
// evaluate its own recurrence: the symbol sequence, the position
// currently being extended, and read-only access to already-computed
// delta/alpha cells of other states at earlier positions. Implemented by
// *parse.Parse; kept as an interface here to avoid a dependency cycle
// between ghmm and parse.
type ParseContext interface {
	Symbols() []int
	Pos() int
	DeltaAt(state, pos int) float64
	AlphaAt(state, pos int) float64
	BetaAt(state, pos int) float64
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// EvaluateFused computes the Viterbi (delta) and Forward (alpha) update
// for state j at the current position of ctx in one pass over admissible
// durations, exactly mirroring State<Distrib,Emitter>::alphaDelta: for
// each duration d yielded by the emission generator, every predecessor
// is considered for both the best-path delta and the log-summed alpha,
// iterating predecessors from last to first and keeping a non-strict
// ">=" comparison so the chosen traceback is bit-reproducible across
// runs.
func (s *State) EvaluateFused(j int, model *Model, ctx ParseContext, maxLen int) (alpha, delta float64, prevState, stateLength int) {
	pred := model.PredStates(j)

	lmin := minInt(maxLen+1, s.Length.MinLen())
	lmax := minInt(maxLen+1, s.Length.MaxLen())

	alpha = mathx.LogZero
	delta = mathx.LogZero
	prevState = j
	stateLength = 0

	gen := s.Emission.NewGenerator(ctx.Symbols(), ctx.Pos(), -1, lmin, lmax)

	for {
		d, eprob, ok := gen.Next()
		if !ok {
			break
		}
		dprob := s.Length.LogP(d)
		sprob := eprob + dprob
		if sprob == mathx.LogZero {
			continue
		}

		for k := len(pred) - 1; k >= 0; k-- {
			i := pred[k]
			dp := sprob + model.LogT(i, j) + ctx.DeltaAt(i, ctx.Pos()-d)
			if dp >= delta {
				delta = dp
				prevState = i
				stateLength = d
			}
		}

		temp := mathx.LogZero
		for k := len(pred) - 1; k >= 0; k-- {
			i := pred[k]
			ap := model.LogT(i, j) + ctx.AlphaAt(i, ctx.Pos()-d)
			if ap != mathx.LogZero {
				temp = mathx.LogAdd(ap, temp)
			}
		}
		if temp != mathx.LogZero {
			alpha = mathx.LogAdd(temp+sprob, alpha)
		}
	}

	if delta <= mathx.LogZero {
		delta = mathx.LogZero
		prevState = j
		stateLength = 0
	}

	return alpha, delta, prevState, stateLength
}

// EvaluateBackward computes the Backward (beta) update for state j,
// reading forward from the current position via successor states. It
// mirrors State<Distrib,Emitter>::beta. Not reachable from Parse's
// exported API (see the unexported Parse.backward); kept for the internal
// forward/backward agreement test and as the natural counterpart to
// EvaluateFused.
func (s *State) EvaluateBackward(j int, model *Model, ctx ParseContext, maxLen int) float64 {
	succ := model.SuccStates(j)

	lmin := minInt(maxLen+1, s.Length.MinLen())
	lmax := minInt(maxLen+1, s.Length.MaxLen())

	beta := mathx.LogZero

	// The forward generator (dir=-1) reads the d symbols ending at and
	// including Pos(), since Pos() counts symbols already consumed. The
	// backward generator instead needs the d symbols starting just past
	// Pos(), hence the +1 anchor.
	gen := s.Emission.NewGenerator(ctx.Symbols(), ctx.Pos()+1, +1, lmin, lmax)

	for {
		d, eprob, ok := gen.Next()
		if !ok {
			break
		}
		dprob := s.Length.LogP(d)
		sprob := eprob + dprob
		if sprob == mathx.LogZero {
			continue
		}

		temp := mathx.LogZero
		for k := len(succ) - 1; k >= 0; k-- {
			i := succ[k]
			bp := model.LogT(j, i) + ctx.BetaAt(i, ctx.Pos()+d)
			if bp != mathx.LogZero {
				temp = mathx.LogAdd(bp, temp)
			}
		}
		if temp != mathx.LogZero {
			beta = mathx.LogAdd(temp+sprob, beta)
		}
	}

	return beta
}

// Generate draws one visit's worth of symbols for forward simulation:
// a duration from the length model and that many symbols from the
// emission model, appended to result.
func (s *State) Generate(result []int, rng *rand.Rand) ([]int, int) {
	d := s.Length.RandLen(rng)
	result = s.Emission.RandSequence(result, d, rng)
	return result, d
}
