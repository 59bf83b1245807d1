package ghmm

// Traceback is one cell of the acyclic linked list a Viterbi decode
// walks to recover its segmentation: "state occupied Length positions,
// reached by whatever path Prev records". The original reference-counts
// these nodes by hand (incref/decref, freed at zero); Go's garbage
// collector retires that bookkeeping entirely, so the struct is just
// data.
type Traceback struct {
	Prev   *Traceback
	State  int
	Length int
}
