package emission

import (
	"math/rand"

	"ghmm_go/mathx"
)

// Stateless is an i.i.d. symbol model: every position in the segment is
// drawn independently from the same DPDF over the alphabet.
type Stateless struct {
	dpdf *mathx.DPDF
}

// NewStateless wraps dpdf (typically built over [0,len(alphabet))) as a
// Stateless emission.
func NewStateless(dpdf *mathx.DPDF) *Stateless {
	return &Stateless{dpdf: dpdf}
}

func (s *Stateless) NewGenerator(seq []int, pos, dir, dMin, dMax int) Generator {
	g := &statelessGenerator{dpdf: s.dpdf, seq: seq, pos: pos, dir: dir, cur: 0, end: dMax - 1}
	if dMin == dMax {
		g.cur = g.end
	} else {
		for g.cur < dMin-1 {
			g.accum += s.dpdf.LogP(seq[pos+dir*g.cur])
			g.cur++
		}
	}
	return g
}

func (s *Stateless) RandSequence(result []int, d int, rng *rand.Rand) []int {
	for i := 0; i < d; i++ {
		result = append(result, s.dpdf.RandZ(rng))
	}
	return result
}

type statelessGenerator struct {
	dpdf  *mathx.DPDF
	seq   []int
	pos   int
	dir   int
	cur   int
	end   int
	accum float64
}

func (g *statelessGenerator) Next() (int, float64, bool) {
	if g.cur >= g.end {
		return 0, 0, false
	}
	g.accum += g.dpdf.LogP(g.seq[g.pos+g.dir*g.cur])
	g.cur++
	return g.cur, g.accum, true
}
