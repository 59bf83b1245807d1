// Package models builds ready-to-use, literal-data-backed GHMMs:
// a 14-state signal-peptide cleavage-site model and a PEXEL/VTS export
// motif model, both transcribed from the reference implementation's
// hand-tuned emission and length distributions.
package models

import "ghmm_go/alphabet"

// AminoAcidAlphabet returns the 26-letter protein alphabet every model
// in this package is defined over (ambiguity codes and stray
// characters fall back to whichever index the caller's encoder maps
// them to; these models never assign them nonzero probability).
func AminoAcidAlphabet() *alphabet.Alphabet {
	a := alphabet.New()
	a.AddCharTokenRange('A', 'Z')
	return a
}
