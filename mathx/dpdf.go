package mathx

import (
	"math"
	"math/rand"
)

// DPDF is a discrete probability distribution over a contiguous integer
// range [Min, Max). It keeps linear and log probabilities in parallel
// tables so that callers on the hot path (Viterbi/Forward recurrences)
// never pay a log() call per lookup.
type DPDF struct {
	min, max int
	p        []float64
	logp     []float64
}

// NewDPDF builds an empty distribution with no support. Use SetDistrib,
// SetLogDistrib or SetConstDistrib to give it a range [a,b) and populate it.
func NewDPDF() *DPDF {
	return &DPDF{}
}

func (d *DPDF) realloc(n int) {
	d.p = make([]float64, n)
	d.logp = make([]float64, n)
}

// SetDistrib installs freqs as the (possibly unnormalised) distribution
// over [a,b); freqs must have length b-a. When norm is true the table is
// rescaled to sum to 1 afterwards.
func (d *DPDF) SetDistrib(a, b int, freqs []float64, norm bool) bool {
	if b <= a || len(freqs) != b-a {
		return false
	}
	d.min, d.max = a, b
	d.realloc(b - a)
	copy(d.p, freqs)
	if norm {
		return d.Normalize()
	}
	d.updateLogFromLinear()
	return true
}

// SetLogDistrib installs logFreqs (already in log space) over [a,b).
func (d *DPDF) SetLogDistrib(a, b int, logFreqs []float64) bool {
	if b <= a || len(logFreqs) != b-a {
		return false
	}
	d.min, d.max = a, b
	d.realloc(b - a)
	copy(d.logp, logFreqs)
	d.updateLinearFromLog()
	return true
}

// SetConstDistrib sets every entry in [a,b) to the constant value v
// (linear space, not normalised).
func (d *DPDF) SetConstDistrib(a, b int, v float64) bool {
	if b <= a {
		return false
	}
	d.min, d.max = a, b
	d.realloc(b - a)
	lv := LogClip(v)
	for i := range d.p {
		d.p[i] = v
		d.logp[i] = lv
	}
	return true
}

func (d *DPDF) updateLogFromLinear() {
	for i, v := range d.p {
		d.logp[i] = LogClip(v)
	}
}

func (d *DPDF) updateLinearFromLog() {
	for i, v := range d.logp {
		d.p[i] = exp(v)
	}
}

// Normalize rescales the linear table to sum to 1 and refreshes the log
// table. Returns false if the table is empty or sums to <= 0.
func (d *DPDF) Normalize() bool {
	sum := 0.0
	for _, v := range d.p {
		sum += v
	}
	if sum <= 0.0 {
		return false
	}
	for i := range d.p {
		d.p[i] /= sum
	}
	d.updateLogFromLinear()
	return true
}

// P returns the linear probability of i, 0 outside [Min,Max).
func (d *DPDF) P(i int) float64 {
	if i < d.min || i >= d.max {
		return 0.0
	}
	return d.p[i-d.min]
}

// SetP overwrites a single entry (and its log mirror) in place.
func (d *DPDF) SetP(i int, v float64) bool {
	if i < d.min || i >= d.max {
		return false
	}
	d.p[i-d.min] = v
	d.logp[i-d.min] = LogClip(v)
	return true
}

// LogP returns the log probability of i, LogZero outside [Min,Max).
func (d *DPDF) LogP(i int) float64 {
	if i < d.min || i >= d.max {
		return LogZero
	}
	return d.logp[i-d.min]
}

// Min is the inclusive lower bound of the support.
func (d *DPDF) Min() int { return d.min }

// Max is the exclusive upper bound of the support.
func (d *DPDF) Max() int { return d.max }

// RandZ draws a sample from the distribution using rng (r.Float64()).
// Mirrors the inverse-CDF scan of the original's randZ, but threads an
// explicit *rand.Rand instead of reading a process-global PRNG.
func (d *DPDF) RandZ(rng *rand.Rand) int {
	r := rng.Float64()
	for i := 0; i < d.max-d.min; i++ {
		r -= d.p[i]
		if r <= 0.0 {
			return i + d.min
		}
	}
	return d.max - 1
}

func exp(x float64) float64 {
	if x == LogZero {
		return 0.0
	}
	return math.Exp(x)
}
