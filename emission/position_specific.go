package emission

import (
	"math/rand"

	"ghmm_go/mathx"
)

// PositionSpecific is an ordered PSSM: one DPDF per offset in the
// segment. It only ever admits a single duration, equal to its own
// length, and is paired with a Fixed length of the same size.
type PositionSpecific struct {
	pssm []*mathx.DPDF
}

// NewPositionSpecific wraps an ordered list of per-position DPDFs.
func NewPositionSpecific(pssm []*mathx.DPDF) *PositionSpecific {
	return &PositionSpecific{pssm: pssm}
}

func (p *PositionSpecific) NewGenerator(seq []int, pos, dir, dMin, dMax int) Generator {
	n := len(p.pssm)
	emitted := !(n >= dMin && n < dMax)
	return &positionSpecificGenerator{pssm: p.pssm, seq: seq, pos: pos, dir: dir, emitted: emitted}
}

func (p *PositionSpecific) RandSequence(result []int, d int, rng *rand.Rand) []int {
	for i := 0; i < d; i++ {
		result = append(result, p.pssm[i].RandZ(rng))
	}
	return result
}

type positionSpecificGenerator struct {
	pssm    []*mathx.DPDF
	seq     []int
	pos     int
	dir     int
	emitted bool
}

func (g *positionSpecificGenerator) Next() (int, float64, bool) {
	if g.emitted {
		return 0, 0, false
	}
	d := len(g.pssm)
	start := g.pos
	if g.dir == -1 {
		start = g.pos - d + 1
	}
	logp := 0.0
	for i := 0; i < d; i++ {
		logp += g.pssm[i].LogP(g.seq[start+i])
	}
	g.emitted = true
	return d, logp, true
}
