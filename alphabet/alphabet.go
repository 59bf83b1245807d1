// Package alphabet maps symbol tokens (nucleotides, amino acids, or any
// other finite token set) to the dense integer indices every DPDF,
// Length, and Emission in ghmm_go is defined over.
package alphabet

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"ghmm_go/mathx"
)

// Alphabet is an ordered, bidirectional mapping between tokens and the
// dense [0,Size()) integer range the rest of the package works in,
// mirroring GHMM::UTIL::Alphabet.
type Alphabet struct {
	tokens   []string
	tokenIdx map[string]int
}

// New returns an empty alphabet.
func New() *Alphabet {
	return &Alphabet{tokenIdx: make(map[string]int)}
}

// AddToken registers token if it isn't already present and returns its
// index either way.
func (a *Alphabet) AddToken(token string) int {
	if i, ok := a.tokenIdx[token]; ok {
		return i
	}
	i := len(a.tokens)
	a.tokens = append(a.tokens, token)
	a.tokenIdx[token] = i
	return i
}

// AddCharTokenRange registers a single-character token for every byte
// in [lo,hi], inclusive, in order. Used to build whole-alphabet
// character sets such as A-Z.
func (a *Alphabet) AddCharTokenRange(lo, hi byte) {
	for c := lo; c <= hi; c++ {
		a.AddToken(string(c))
	}
}

// Size returns the number of distinct tokens.
func (a *Alphabet) Size() int { return len(a.tokens) }

// Token returns the token registered at idx.
func (a *Alphabet) Token(idx int) string { return a.tokens[idx] }

// Index returns token's index, or -1 if it was never registered.
func (a *Alphabet) Index(token string) int {
	if i, ok := a.tokenIdx[token]; ok {
		return i
	}
	return -1
}

// Encode maps a string of single-character tokens to their indices.
// It returns an error naming the first unrecognised character.
func (a *Alphabet) Encode(s string) ([]int, error) {
	out := make([]int, 0, len(s))
	for _, r := range s {
		tok := string(r)
		i := a.Index(tok)
		if i < 0 {
			return nil, fmt.Errorf("alphabet: unrecognised token %q", tok)
		}
		out = append(out, i)
	}
	return out, nil
}

// BuildDPDFFromText parses a whitespace-separated sequence of
// TOKEN:frequency pairs into a DPDF over a's full [0,Size()) range,
// normalising the result, mirroring
// GHMM::UTIL::EmissionDistributionParser::parse. Whitespace between the
// colon and the frequency ("A: 0.25") is accepted as well.
func BuildDPDFFromText(a *Alphabet, text string) (*mathx.DPDF, error) {
	d := mathx.NewDPDF()
	if !d.SetConstDistrib(0, a.Size(), 0.0) {
		return nil, fmt.Errorf("alphabet: empty alphabet has no distribution support")
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		field := sc.Text()
		tok, freqStr, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("alphabet: malformed TOKEN:freq field %q", field)
		}
		if freqStr == "" && sc.Scan() {
			freqStr = sc.Text()
		}
		idx := a.Index(tok)
		if idx < 0 {
			return nil, fmt.Errorf("alphabet: unrecognised token %q in distribution text", tok)
		}
		freq, err := strconv.ParseFloat(freqStr, 64)
		if err != nil {
			return nil, fmt.Errorf("alphabet: invalid frequency for token %q: %w", tok, err)
		}
		if !d.SetP(idx, freq) {
			return nil, fmt.Errorf("alphabet: token %q index out of distribution range", tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("alphabet: reading distribution text: %w", err)
	}
	if !d.Normalize() {
		return nil, fmt.Errorf("alphabet: distribution frequencies sum to zero")
	}
	return d, nil
}
