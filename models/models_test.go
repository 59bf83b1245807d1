package models

import (
	"strings"
	"testing"

	"ghmm_go/parse"
)

func TestNewSignalPeptideModelCompiles(t *testing.T) {
	m, a, err := NewSignalPeptideModel()
	if err != nil {
		t.Fatalf("NewSignalPeptideModel() error = %v", err)
	}
	for _, name := range []string{"a1", "a2", "h1", "cloop", "c9", "c1", "cut"} {
		if m.StateNumber(name) == -1 {
			t.Errorf("expected state %q in compiled model", name)
		}
	}
	if a.Size() != 26 {
		t.Errorf("Alphabet size = %d, want 26", a.Size())
	}
}

func TestNewSignalPeptideModelDecodesASequence(t *testing.T) {
	m, a, err := NewSignalPeptideModel()
	if err != nil {
		t.Fatalf("NewSignalPeptideModel() error = %v", err)
	}
	// Every state in this model assigns alanine nonzero probability, so a
	// long poly-A run is decodable regardless of how Viterbi splits it
	// across the variable-length a2/h1 states — unlike an arbitrary
	// sequence, which can land a restricted-support state (e.g. c1,
	// which excludes several residues) on a residue it assigns zero
	// probability to and make the whole parse infeasible.
	symbols, err := a.Encode(strings.Repeat("A", 40))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	p := parse.New(m, symbols)
	if err := p.Decode(); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Traceback() == nil {
		t.Error("Traceback() = nil, want a resolved path through the cleavage-site chain")
	}
}

func TestNewPEXELModelCompiles(t *testing.T) {
	m, a, err := NewPEXELModel()
	if err != nil {
		t.Fatalf("NewPEXELModel() error = %v", err)
	}
	for _, name := range []string{"a-met", "a-RLE", "a-tail", "b-KLD", "b-hydrophobic", "c-tail", "d-tail"} {
		if m.StateNumber(name) == -1 {
			t.Errorf("expected state %q in compiled model", name)
		}
	}
	if a.Size() != 26 {
		t.Errorf("Alphabet size = %d, want 26", a.Size())
	}
}

func TestNewPEXELModelDecodesABackgroundOnlySequence(t *testing.T) {
	m, a, err := NewPEXELModel()
	if err != nil {
		t.Fatalf("NewPEXELModel() error = %v", err)
	}
	symbols, err := a.Encode("MAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	p := parse.New(m, symbols)
	if err := p.Decode(); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Traceback() == nil {
		t.Error("Traceback() = nil, want at least the c-met/c-tail background path to resolve")
	}
}
