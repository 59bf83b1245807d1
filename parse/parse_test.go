package parse

import (
	"math"
	"testing"

	"ghmm_go/emission"
	"ghmm_go/ghmm"
	"ghmm_go/length"
	"ghmm_go/mathx"
)

func uniform(n int) *mathx.DPDF {
	d := mathx.NewDPDF()
	freqs := make([]float64, n)
	for i := range freqs {
		freqs[i] = 1.0
	}
	d.SetDistrib(0, n, freqs, true)
	return d
}

func pointMass(n, at int) *mathx.DPDF {
	d := mathx.NewDPDF()
	freqs := make([]float64, n)
	freqs[at] = 1.0
	d.SetDistrib(0, n, freqs, true)
	return d
}

// biasedCoinModel builds a two-emitting-state model where "heads" always
// emits symbol 0 and "tails" always emits symbol 1, one symbol per
// visit, looping until it exits to END.
func biasedCoinModel(t *testing.T) *ghmm.Model {
	t.Helper()
	b := ghmm.NewModelBuilder()
	heads := ghmm.NewState(length.NewFixed(1), emission.NewStateless(pointMass(2, 0)))
	tails := ghmm.NewState(length.NewFixed(1), emission.NewStateless(pointMass(2, 1)))
	b.AddState("heads", heads)
	b.AddState("tails", tails)
	b.AddTransition(ghmm.BeginName, "heads", 0.6)
	b.AddTransition(ghmm.BeginName, "tails", 0.4)
	b.AddTransition("heads", "heads", 0.5)
	b.AddTransition("heads", "tails", 0.3)
	b.AddTransition("heads", ghmm.EndName, 0.2)
	b.AddTransition("tails", "heads", 0.5)
	b.AddTransition("tails", "tails", 0.3)
	b.AddTransition("tails", ghmm.EndName, 0.2)
	m, err := b.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return m
}

func TestDecodeRecoversExactStatePath(t *testing.T) {
	m := biasedCoinModel(t)
	// heads, heads, tails, heads: the two leading heads visits are joined
	// by a heads->heads transition, so they form one length-2 segment.
	p := New(m, []int{0, 0, 1, 0})
	if err := p.Decode(); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	tb := p.Traceback()
	if tb == nil {
		t.Fatal("Traceback() = nil, want a resolved path")
	}
	segs := Segments(m, tb)

	want := []struct {
		name   string
		length int
	}{{"heads", 2}, {"tails", 1}, {"heads", 1}}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %+v", len(segs), len(want), segs)
	}
	for i, w := range want {
		if segs[i].Name != w.name || segs[i].Length != w.length {
			t.Errorf("segment %d = %+v, want state %q length %d", i, segs[i], w.name, w.length)
		}
	}
}

func TestDecodeRejectsImpossibleSequence(t *testing.T) {
	// A model whose only emitting state can never emit symbol 1.
	b := ghmm.NewModelBuilder()
	s := ghmm.NewState(length.NewFixed(1), emission.NewStateless(pointMass(2, 0)))
	b.AddState("s", s)
	b.AddTransition(ghmm.BeginName, "s", 1.0)
	b.AddTransition("s", ghmm.EndName, 1.0)
	m, err := b.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	p := New(m, []int{1})
	if err := p.Decode(); err == nil {
		t.Error("Decode() should error when no path accounts for the sequence")
	}
}

func TestDecodeGeometricSelfLoopSegmentsCoalesce(t *testing.T) {
	b := ghmm.NewModelBuilder()
	loop := ghmm.NewState(length.NewGeometric(3.0), emission.NewStateless(pointMass(1, 0)))
	b.AddState("loop", loop)
	b.AddTransition(ghmm.BeginName, "loop", 1.0)
	b.AddTransition("loop", ghmm.EndName, 1.0)
	m, err := b.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	p := New(m, []int{0, 0, 0})
	if err := p.Decode(); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	segs := Segments(m, p.Traceback())
	if len(segs) != 1 {
		t.Fatalf("self-loop visits should coalesce into one segment, got %+v", segs)
	}
	if segs[0].Name != "loop" || segs[0].Length != 3 {
		t.Errorf("segment = %+v, want loop length 3", segs[0])
	}
}

func TestForwardBackwardLikelihoodAgree(t *testing.T) {
	m := biasedCoinModel(t)
	p := New(m, []int{0, 1, 0})
	if err := p.Decode(); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	forwardLL := p.LogLikelihood()

	p.backward()
	backwardLL := p.BetaAt(0, 0)

	if math.Abs(forwardLL-backwardLL) > 1e-9 {
		t.Errorf("forward log-likelihood %v != backward log-likelihood %v", forwardLL, backwardLL)
	}
}

func TestTieBreakIsDeterministicAcrossRepeatedDecodes(t *testing.T) {
	m := biasedCoinModel(t)
	syms := []int{0, 1, 1, 0, 0, 1}

	var first []Segment
	for i := 0; i < 5; i++ {
		p := New(m, syms)
		if err := p.Decode(); err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		segs := Segments(m, p.Traceback())
		if first == nil {
			first = segs
			continue
		}
		if len(segs) != len(first) {
			t.Fatalf("run %d produced %d segments, want %d", i, len(segs), len(first))
		}
		for j := range segs {
			if segs[j] != first[j] {
				t.Errorf("run %d segment %d = %+v, want %+v (tie-break must be deterministic)", i, j, segs[j], first[j])
			}
		}
	}
}
