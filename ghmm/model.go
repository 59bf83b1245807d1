package ghmm

import (
	"math/rand"

	"ghmm_go/mathx"
)

// BeginName and EndName are the reserved names of the two non-emitting
// sentinel states every compiled Model carries, matching Model::BEGIN
// and Model::END.
const (
	BeginName = "__BEGIN__"
	EndName   = "__END__"
)

// Model is the compiled, immutable GHMM graph: an ordered list of
// states (index 0 is BEGIN, the last index is END, both non-emitting),
// a row-normalised transition matrix in both linear and log form, and
// derived predecessor/successor adjacency lists.
type Model struct {
	names      []string
	nameIndex  map[string]int
	states     []*State // states[0] and states[len-1] are nil (BEGIN/END)
	trans      []float64
	logTrans   []float64
	pred       [][]int
	succ       [][]int
	stateCount int
}

// StateCount returns the number of states, including BEGIN and END.
func (m *Model) StateCount() int { return m.stateCount }

// StateName returns the name assigned to state n.
func (m *Model) StateName(n int) string { return m.names[n] }

// StateNumber looks up a state's compiled index by name, or -1 if the
// name is unknown (for instance because it was pruned as unreachable).
func (m *Model) StateNumber(name string) int {
	if i, ok := m.nameIndex[name]; ok {
		return i
	}
	return -1
}

// State returns the emitting state at index n, or nil for BEGIN/END.
func (m *Model) State(n int) *State { return m.states[n] }

// PredStates returns the states with a nonzero transition into n.
func (m *Model) PredStates(n int) []int { return m.pred[n] }

// SuccStates returns the states n has a nonzero transition to.
func (m *Model) SuccStates(n int) []int { return m.succ[n] }

// T returns the linear transition probability from s to t.
func (m *Model) T(s, t int) float64 { return m.trans[s*m.stateCount+t] }

// LogT returns the log transition probability from s to t.
func (m *Model) LogT(s, t int) float64 { return m.logTrans[s*m.stateCount+t] }

// RandomTransition draws the next state from s's row of T using rng,
// mirroring Model::randomTransition's inverse-CDF scan.
func (m *Model) RandomTransition(rng *rand.Rand, s int) int {
	row := m.trans[s*m.stateCount : (s+1)*m.stateCount]
	r := rng.Float64()
	for i, p := range row {
		r -= p
		if r <= 0.0 {
			return i
		}
	}
	return m.stateCount - 1
}

// Generate runs a forward simulation from BEGIN until END is reached,
// returning the emitted symbol sequence, mirroring Model::generate.
func (m *Model) Generate(rng *rand.Rand) []int {
	state := 0
	var result []int
	for {
		state = m.RandomTransition(rng, state)
		if state == m.stateCount-1 {
			break
		}
		result, _ = m.states[state].Generate(result, rng)
	}
	return result
}

// logClipRow returns the clipped log form of every linear value in trans,
// used by ModelBuilder.Compile when constructing logTrans.
func logClipRow(trans []float64) []float64 {
	out := make([]float64, len(trans))
	for i, v := range trans {
		out[i] = mathx.LogClip(v)
	}
	return out
}
