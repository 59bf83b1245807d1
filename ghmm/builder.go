package ghmm

import (
	"fmt"

	"ghmm_go/length"
)

// transKey identifies a pending transition by source/target name before
// compilation has assigned numeric indices.
type transKey struct {
	src, tgt string
}

// ModelBuilder accumulates named states and named transitions and
// compiles them into an immutable Model, mirroring GHMM::ModelBuilder /
// the Model constructor's Warshall-reachability pipeline in lib/ghmm.cc.
type ModelBuilder struct {
	order    []string
	byName   map[string]*State
	present  map[string]bool
	transMap map[transKey]float64
}

// NewModelBuilder returns an empty builder.
func NewModelBuilder() *ModelBuilder {
	return &ModelBuilder{
		byName:   make(map[string]*State),
		present:  make(map[string]bool),
		transMap: make(map[transKey]float64),
	}
}

// AddState registers a named emitting state. Re-adding a name replaces
// its state.
func (b *ModelBuilder) AddState(name string, s *State) {
	if !b.present[name] {
		b.order = append(b.order, name)
	}
	b.byName[name] = s
	b.present[name] = true
}

// RemoveState deletes a state and every transition touching it.
func (b *ModelBuilder) RemoveState(name string) {
	if !b.present[name] {
		return
	}
	delete(b.byName, name)
	b.present[name] = false
	for k := range b.transMap {
		if k.src == name || k.tgt == name {
			delete(b.transMap, k)
		}
	}
}

// AddTransition records an unnormalised transition weight from src to
// tgt. src/tgt may be BeginName/EndName as well as any added state.
func (b *ModelBuilder) AddTransition(src, tgt string, weight float64) {
	b.transMap[transKey{src, tgt}] = weight
}

// Compile produces an immutable Model: states unreachable from BEGIN or
// unable to reach END are pruned (via a Warshall transitive closure over
// BEGIN/END sentinels), the survivors are renumbered with BEGIN at 0 and
// END last, each row of the transition matrix is normalised to sum to
// 1, and any Geometric-length state has its self-transition probability
// reconciled against its configured mean occupancy (the other outgoing
// weights in that row are rescaled by 1-p_self so the row still sums to
// 1). A state with no outgoing transitions cannot reach END and is pruned
// like any other unreachable state. Returns an error if a retained row
// sums to zero, which happens when no state survives pruning and BEGIN's
// row is left empty (a zero-sum row can't be normalised).
func (b *ModelBuilder) Compile() (*Model, error) {
	n := len(b.order)
	l := n + 2
	endIdx := n
	beginIdx := n + 1

	orderIndex := make(map[string]int, n)
	for i, nm := range b.order {
		orderIndex[nm] = i
	}
	toMatrixIndex := func(name string) int {
		switch name {
		case BeginName:
			return beginIdx
		case EndName:
			return endIdx
		default:
			if i, ok := orderIndex[name]; ok {
				return i
			}
			return -1
		}
	}

	adj := make([]bool, l*l)
	for k, w := range b.transMap {
		if w <= 0 {
			continue
		}
		s := toMatrixIndex(k.src)
		t := toMatrixIndex(k.tgt)
		if s < 0 || t < 0 {
			continue
		}
		adj[s*l+t] = true
	}
	for k := 0; k < l; k++ {
		for i := 0; i < l; i++ {
			if !adj[i*l+k] {
				continue
			}
			for j := 0; j < l; j++ {
				if adj[k*l+j] {
					adj[i*l+j] = true
				}
			}
		}
	}

	reachable := make([]bool, n)
	for i := 0; i < n; i++ {
		if adj[beginIdx*l+i] && adj[i*l+endIdx] {
			reachable[i] = true
		}
	}

	remap := make(map[int]int, n+2)
	remap[beginIdx] = 0

	names := []string{BeginName}
	states := []*State{nil}
	nameIndex := map[string]int{BeginName: 0}

	for i, name := range b.order {
		if reachable[i] && b.present[name] && b.byName[name] != nil {
			remap[i] = len(states)
			nameIndex[name] = len(states)
			names = append(names, name)
			states = append(states, b.byName[name])
		} else {
			remap[i] = -1
		}
	}

	remap[endIdx] = len(states)
	names = append(names, EndName)
	states = append(states, nil)
	nameIndex[EndName] = len(states) - 1

	stateCount := len(states)
	trans := make([]float64, stateCount*stateCount)

	for k, w := range b.transMap {
		s := remap[toMatrixIndex(k.src)]
		t := remap[toMatrixIndex(k.tgt)]
		if s < 0 || t < 0 {
			continue
		}
		trans[s*stateCount+t] = w
	}

	for s := 0; s < stateCount-1; s++ {
		row := trans[s*stateCount : (s+1)*stateCount]
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		if sum <= 0.0 {
			return nil, fmt.Errorf("ghmm: state %q has no outgoing transition weight", names[s])
		}
		for i := range row {
			row[i] /= sum
		}

		if st := states[s]; st != nil {
			if g, ok := st.Length.(*length.Geometric); ok {
				pSelf := g.PSelf()
				notPSelf := 1.0 - pSelf
				for t := 0; t < s; t++ {
					row[t] *= notPSelf
				}
				row[s] = pSelf
				for t := s + 1; t < stateCount; t++ {
					row[t] *= notPSelf
				}
			}
		}
	}

	pred := make([][]int, stateCount)
	succ := make([][]int, stateCount)
	for s := 0; s < stateCount-1; s++ {
		row := trans[s*stateCount : (s+1)*stateCount]
		for t, v := range row {
			if v != 0.0 {
				pred[t] = append(pred[t], s)
				succ[s] = append(succ[s], t)
			}
		}
	}

	logTrans := logClipRow(trans)

	return &Model{
		names:      names,
		nameIndex:  nameIndex,
		states:     states,
		trans:      trans,
		logTrans:   logTrans,
		pred:       pred,
		succ:       succ,
		stateCount: stateCount,
	}, nil
}
