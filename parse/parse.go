// Package parse runs the fused Viterbi/Forward recurrence (and, for
// internal testing, the symmetric Backward recurrence) of a compiled
// ghmm.Model over an observed symbol sequence, producing a traceback
// that can be walked into a segmentation.
//
// Unlike the original's Parse, which ring-buffers its delta/alpha/beta
// rows to the lookback window a model actually needs, Parse here keeps
// one full row per position. Go's garbage collector and the modest
// sequence lengths this is built for (single proteins/transcripts, not
// genome-scale streams) make the ring buffer an optimisation not worth
// its complexity; keeping the full history also lets Alpha/Delta expose
// whole-sequence curves to the report package for free.
package parse

import (
	"fmt"

	"ghmm_go/ghmm"
	"ghmm_go/mathx"
)

// Parse holds the state of one decode: the 1-indexed symbol sequence
// (index 0 is an unused sentinel, matching the convention every
// emission Generator relies on) and the full delta/alpha/beta/psi
// tables across all positions and states.
type Parse struct {
	model      *ghmm.Model
	symbols    []int // symbols[0] is unused; real symbols occupy [1,length]
	length     int
	stateCount int
	pos        int // current position EvaluateFused/EvaluateBackward read through ParseContext

	delta []float64
	alpha []float64
	beta  []float64
	psi   []*ghmm.Traceback

	betaFilled bool
}

// New builds a Parse over symbols against model, ready for Decode.
func New(model *ghmm.Model, symbols []int) *Parse {
	stateCount := model.StateCount()
	length := len(symbols)

	padded := make([]int, length+1)
	copy(padded[1:], symbols)

	size := (length + 1) * stateCount
	p := &Parse{
		model:      model,
		symbols:    padded,
		length:     length,
		stateCount: stateCount,
		delta:      make([]float64, size),
		alpha:      make([]float64, size),
		beta:       make([]float64, size),
		psi:        make([]*ghmm.Traceback, size),
	}
	for i := range p.delta {
		p.delta[i] = mathx.LogZero
		p.alpha[i] = mathx.LogZero
		p.beta[i] = mathx.LogZero
	}
	p.setDelta(0, 0, 0.0)
	p.setAlpha(0, 0, 0.0)
	return p
}

func (p *Parse) cell(state, pos int) int { return pos*p.stateCount + state }

func (p *Parse) setDelta(state, pos int, v float64) { p.delta[p.cell(state, pos)] = v }
func (p *Parse) setAlpha(state, pos int, v float64) { p.alpha[p.cell(state, pos)] = v }
func (p *Parse) setBeta(state, pos int, v float64)  { p.beta[p.cell(state, pos)] = v }
func (p *Parse) setPsi(state, pos int, tb *ghmm.Traceback) {
	p.psi[p.cell(state, pos)] = tb
}
func (p *Parse) psiAt(state, pos int) *ghmm.Traceback {
	if state < 0 || pos < 0 {
		return nil
	}
	return p.psi[p.cell(state, pos)]
}

// Symbols implements ghmm.ParseContext.
func (p *Parse) Symbols() []int { return p.symbols }

// Pos implements ghmm.ParseContext.
func (p *Parse) Pos() int { return p.pos }

// DeltaAt implements ghmm.ParseContext. A negative position (looking
// back past the start of the sequence) is impossible territory.
func (p *Parse) DeltaAt(state, pos int) float64 {
	if pos < 0 {
		return mathx.LogZero
	}
	return p.delta[p.cell(state, pos)]
}

// AlphaAt implements ghmm.ParseContext.
func (p *Parse) AlphaAt(state, pos int) float64 {
	if pos < 0 {
		return mathx.LogZero
	}
	return p.alpha[p.cell(state, pos)]
}

// BetaAt implements ghmm.ParseContext.
func (p *Parse) BetaAt(state, pos int) float64 {
	if pos > p.length {
		return mathx.LogZero
	}
	return p.beta[p.cell(state, pos)]
}

// linkState extends prev's traceback node by length more positions in
// the same state, or wraps a new node around it, mirroring
// Parse::linkState's refcounted-node coalescing (here plain GC'd
// structs: consecutive visits to the same state, as a Geometric
// self-loop produces, collapse into a single segment instead of one
// node per position).
func linkState(state, length int, prev *ghmm.Traceback) *ghmm.Traceback {
	if length == 0 && (prev == nil || prev.State == state) {
		return nil
	}
	if prev != nil && prev.State == state {
		return &ghmm.Traceback{Prev: prev.Prev, State: state, Length: prev.Length + length}
	}
	return &ghmm.Traceback{Prev: prev, State: state, Length: length}
}

// Decode runs the forward Viterbi/Forward sweep over the full sequence
// and resolves the transition into END. It returns an error if no path
// through the model accounts for the sequence at all.
func (p *Parse) Decode() error {
	endIdx := p.stateCount - 1
	for pos := 1; pos <= p.length; pos++ {
		p.pos = pos
		for j := 1; j < endIdx; j++ {
			st := p.model.State(j)
			alpha, delta, prevState, stateLen := st.EvaluateFused(j, p.model, p, pos)
			prevTb := p.psiAt(prevState, pos-stateLen)
			p.setPsi(j, pos, linkState(j, stateLen, prevTb))
			p.setDelta(j, pos, delta)
			p.setAlpha(j, pos, alpha)
		}
	}

	pred := p.model.PredStates(endIdx)
	deltaEnd := mathx.LogZero
	alphaEnd := mathx.LogZero
	bestPred := -1
	for k := len(pred) - 1; k >= 0; k-- {
		i := pred[k]
		dp := p.model.LogT(i, endIdx) + p.DeltaAt(i, p.length)
		if dp >= deltaEnd {
			deltaEnd = dp
			bestPred = i
		}
		ap := p.model.LogT(i, endIdx) + p.AlphaAt(i, p.length)
		if ap != mathx.LogZero {
			alphaEnd = mathx.LogAdd(ap, alphaEnd)
		}
	}
	p.setDelta(endIdx, p.length, deltaEnd)
	p.setAlpha(endIdx, p.length, alphaEnd)
	if bestPred >= 0 {
		p.setPsi(endIdx, p.length, linkState(endIdx, 0, p.psiAt(bestPred, p.length)))
	}

	if deltaEnd == mathx.LogZero {
		return fmt.Errorf("parse: no path through the model accounts for this sequence")
	}
	return nil
}

// backward runs the Backward sweep. It is the counterpart to Decode's
// forward pass and exists for forward/backward consistency testing;
// nothing in the public decode path calls it, matching the original's
// own backward pass being compiled out (see State.EvaluateBackward).
func (p *Parse) backward() {
	endIdx := p.stateCount - 1
	p.setBeta(endIdx, p.length, 0.0)
	for pos := p.length - 1; pos >= 0; pos-- {
		p.pos = pos
		for j := 1; j < endIdx; j++ {
			st := p.model.State(j)
			beta := st.EvaluateBackward(j, p.model, p, p.length-pos)
			p.setBeta(j, pos, beta)
		}
	}

	p.pos = 0
	betaBegin := mathx.LogZero
	succ := p.model.SuccStates(0)
	for k := len(succ) - 1; k >= 0; k-- {
		i := succ[k]
		bp := p.model.LogT(0, i) + p.BetaAt(i, 0)
		if bp != mathx.LogZero {
			betaBegin = mathx.LogAdd(bp, betaBegin)
		}
	}
	p.setBeta(0, 0, betaBegin)
	p.betaFilled = true
}

// Delta returns the Viterbi log-probability of state at pos.
func (p *Parse) Delta(state, pos int) float64 { return p.DeltaAt(state, pos) }

// Alpha returns the Forward log-probability of state at pos.
func (p *Parse) Alpha(state, pos int) float64 { return p.AlphaAt(state, pos) }

// LogLikelihood returns the total Forward log-probability of the
// sequence, i.e. alpha at END after the full sweep. Decode must have
// run first.
func (p *Parse) LogLikelihood() float64 {
	return p.AlphaAt(p.stateCount-1, p.length)
}

// Traceback returns the Viterbi traceback chain ending at END, or nil
// if Decode found no path.
func (p *Parse) Traceback() *ghmm.Traceback {
	return p.psiAt(p.stateCount-1, p.length)
}

// TracebackAt returns the Viterbi traceback chain ending at state at
// pos, or nil if that cell was never reached. Scoring tools that
// compare alternative final states directly (rather than always
// funnelling through END) use this to read off each candidate's own
// path, mirroring Parse::psi being addressable by any (state,pos).
func (p *Parse) TracebackAt(state, pos int) *ghmm.Traceback {
	return p.psiAt(state, pos)
}

// Segments walks a traceback chain from END back to BEGIN and returns
// the visited (state, length) pairs in sequence order (BEGIN/END
// themselves are not included).
func Segments(model *ghmm.Model, tb *ghmm.Traceback) []Segment {
	var rev []Segment
	for n := tb; n != nil; n = n.Prev {
		if n.State == 0 || n.State == model.StateCount()-1 {
			continue
		}
		rev = append(rev, Segment{State: n.State, Name: model.StateName(n.State), Length: n.Length})
	}
	out := make([]Segment, len(rev))
	for i, seg := range rev {
		out[len(rev)-1-i] = seg
	}
	return out
}

// Segment is one visited run of a single state in a resolved
// traceback, in sequence order.
type Segment struct {
	State  int
	Name   string
	Length int
}
