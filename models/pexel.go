package models

import (
	"fmt"

	"ghmm_go/alphabet"
	"ghmm_go/emission"
	"ghmm_go/ghmm"
	"ghmm_go/length"
	"ghmm_go/mathx"
)

// Raw length histograms transcribed from predict_pexel.cc's VERSION==2
// tables (a_spacer_raw_distrib, b_hydrophobic_raw_distrib,
// b_leader_raw_distrib). The original smooths these with a Gaussian
// kernel before building a length distribution; this port skips the
// smoothing step (MATH::smooth has no caller elsewhere in the port, see
// DESIGN.md) and bins the raw observations directly into a Discrete
// length distribution instead.
var aSpacerRawLengths = []int{
	9, 12, 13, 13, 14, 14, 14, 14, 14, 14, 14, 14, 14, 14, 15, 15, 16,
	16, 16, 17, 17, 17, 17, 18, 18, 18, 18, 18, 18, 18, 18, 18, 18, 18,
	18, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19,
	19, 19, 19, 19, 19, 19, 19, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20,
	20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 21,
	21, 21, 21, 21, 21, 22, 22, 22, 23, 23, 23, 23, 23, 23, 23, 23, 23,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 25, 25, 25, 25, 25, 25,
	25, 25, 25, 25, 25, 25, 26, 26, 26, 26, 26, 26, 26, 26, 26, 26, 26,
	26, 26, 26, 26, 26, 26, 26, 26, 27, 27, 27, 29, 31, 31, 31, 31, 33,
	33,
}

var bHydrophobicRawLengths = []int{
	22, 22, 23, 23, 23, 23, 23, 23, 25, 25, 25, 25, 25, 25, 25, 25, 25,
	25, 25, 25, 25, 25, 25, 26, 26, 26, 26, 26, 26, 26, 26, 26, 26, 27,
	27, 27, 27, 27, 28, 29, 29, 29, 29, 29, 29, 29, 32, 37,
}

var bLeaderRawLengths = []int{
	9, 10, 11, 11, 11, 11, 11, 11, 12, 12, 12, 12, 13, 13, 13, 13, 13,
	13, 13, 14, 14, 14, 14, 14, 14, 15, 15, 15, 16, 16, 16, 16, 16, 17,
	17, 17, 17, 17, 17, 17, 17, 18, 19, 19, 19, 19, 19, 19, 20, 20, 20,
	21, 21, 21, 22, 23, 24, 25,
}

func histogramLength(raw []int, lo, hi int) (*mathx.DPDF, error) {
	freqs := make([]float64, hi-lo)
	for _, v := range raw {
		if v < lo || v >= hi {
			continue
		}
		freqs[v-lo]++
	}
	d := mathx.NewDPDF()
	if !d.SetDistrib(lo, hi, freqs, true) {
		return nil, fmt.Errorf("models: building length histogram over [%d,%d) failed", lo, hi)
	}
	return d, nil
}

// pexelBackgroundText is the genome-wide amino acid composition used
// for every non-motif state in the PEXEL model (predict_pexel.cc's
// "background" distribution).
const pexelBackgroundText = `
	A:  78883 C:  71359 D: 260979 E: 288230
	F: 175488 G: 114068 H:  97688 I: 373389
	K: 473828 L: 304967 M:  88773 N: 581084
	P:  80295 Q: 111860 R: 106760 S: 256676
	T: 164816 V: 154088 W:  19966 Y: 230362`

// pexelHydrophobicText is the VERSION==2 hydrophobic-stretch composition.
const pexelHydrophobicText = `
	D:   4 E:   6 Q:   6 R:   6 H:  11 K:  24
	P:  24 W:  24 M:  27 A:  37 N:  40 G:  70
	T:  87 C: 106 S: 113 Y: 132 V: 199 F: 396
	I: 508 L: 559`

// rleMotifText is the 7-position RLE export motif (VERSION==2, the
// non-HALDAR_MOTIF 7-column table).
var rleMotifText = []string{
	"M: 1 P: 1 W: 1 A: 2 D: 2 E: 2 H: 3 Q: 3 V: 4 T: 5 C: 6 Y: 6 G: 7 L: 7 R: 7 F: 13 I: 15 N: 15 K: 26 S: 40",
	"K: 7 R: 159",
	"W: 1 A: 2 E: 2 M: 2 H: 3 R: 3 Q: 4 Y: 4 F: 5 V: 6 C: 7 T: 9 K: 12 L: 16 S: 28 I: 29 N: 33",
	"N: 1 F: 2 I: 2 L: 161",
	"E: 1 H: 1 F: 2 I: 2 K: 3 L: 3 G: 4 N: 8 V: 8 C: 10 Y: 17 T: 18 A: 37 S: 52",
	"H: 1 K: 1 Y: 1 C: 2 G: 3 T: 3 S: 5 D: 15 Q: 21 E: 114",
	"D: 1 A: 3 M: 3 Q: 3 C: 4 F: 5 R: 5 G: 6 I: 6 E: 7 H: 8 P: 9 K: 10 S: 11 L: 15 N: 17 T: 17 Y: 17 V: 19",
}

// kldMotifText is the 7-position KLD export motif.
var kldMotifText = []string{
	"A: 69 L: 1 P: 1 V: 8",
	"K: 58 R: 20",
	"D: 12 E: 10 G: 1 H: 35 N: 19 Y: 2",
	"A: 5 I: 4 L: 29 M: 11 V: 30",
	"F: 17 L: 62",
	"D: 56 E: 23",
	"D: 3 E: 13 G: 3 I: 1 K: 9 L: 1 M: 7 N: 7 Q: 2 R: 20 S: 13",
}

func buildMotifState(a *alphabet.Alphabet, rows []string) (*ghmm.State, error) {
	dpdfs := make([]*mathx.DPDF, len(rows))
	for i, row := range rows {
		d, err := alphabet.BuildDPDFFromText(a, row)
		if err != nil {
			return nil, fmt.Errorf("models: motif position %d: %w", i, err)
		}
		dpdfs[i] = d
	}
	return ghmm.NewState(length.NewFixed(len(dpdfs)), emission.NewPositionSpecific(dpdfs)), nil
}

// NewPEXELModel compiles the PEXEL/VTS export-motif model: a signal
// peptide (reusing the 14-state signalp architecture), an RLE motif
// branch, a parallel KLD motif branch, and a background-only branch,
// all converging on END, mirroring predict_pexel.cc's makePEXELmodel
// (VERSION==2, RLE_PATTERN + KLD_PATTERN, SIGNALP_MODEL).
func NewPEXELModel() (*ghmm.Model, *alphabet.Alphabet, error) {
	a := AminoAcidAlphabet()
	b := ghmm.NewModelBuilder()

	background, err := alphabet.BuildDPDFFromText(a, pexelBackgroundText)
	if err != nil {
		return nil, nil, fmt.Errorf("models: background distribution: %w", err)
	}
	backgroundEmit := emission.NewStateless(background)

	met, err := alphabet.BuildDPDFFromText(a, "M: 1")
	if err != nil {
		return nil, nil, fmt.Errorf("models: met distribution: %w", err)
	}
	metEmit := emission.NewStateless(met)

	hydrophobicDpdf, err := alphabet.BuildDPDFFromText(a, pexelHydrophobicText)
	if err != nil {
		return nil, nil, fmt.Errorf("models: hydrophobic distribution: %w", err)
	}
	hydrophobicEmit := emission.NewStateless(hydrophobicDpdf)

	aSpacerLen, err := histogramLength(aSpacerRawLengths, 1, 60)
	if err != nil {
		return nil, nil, err
	}
	bLeaderLen, err := histogramLength(bLeaderRawLengths, 1, 30)
	if err != nil {
		return nil, nil, err
	}
	bHydrophobicLen, err := histogramLength(bHydrophobicRawLengths, 20, 35)
	if err != nil {
		return nil, nil, err
	}

	aRLE, err := buildMotifState(a, rleMotifText)
	if err != nil {
		return nil, nil, err
	}
	bKLD, err := buildMotifState(a, kldMotifText)
	if err != nil {
		return nil, nil, err
	}

	b.AddState("a-met", ghmm.NewState(length.NewFixed(1), metEmit))
	b.AddState("a-spacer", ghmm.NewState(length.NewDiscrete(aSpacerLen), backgroundEmit))
	b.AddState("a-RLE", aRLE)
	b.AddState("a-tail", ghmm.NewState(length.NewGeometric(364), backgroundEmit))
	b.AddState("d-tail", ghmm.NewState(length.NewGeometric(755), backgroundEmit))

	b.AddState("b-met", ghmm.NewState(length.NewFixed(1), metEmit))
	b.AddState("b-leader", ghmm.NewState(length.NewDiscrete(bLeaderLen), backgroundEmit))
	b.AddState("b-KLD", bKLD)
	b.AddState("b-spacer", ghmm.NewState(length.NewGeometric(1693), backgroundEmit))
	b.AddState("b-hydrophobic", ghmm.NewState(length.NewDiscrete(bHydrophobicLen), hydrophobicEmit))
	b.AddState("b-tail", ghmm.NewState(length.NewGeometric(437), backgroundEmit))

	b.AddState("c-met", ghmm.NewState(length.NewFixed(1), metEmit))
	b.AddState("c-tail", ghmm.NewState(length.NewGeometric(755), backgroundEmit))

	first, last, err := addSignalPeptideStates(b, a)
	if err != nil {
		return nil, nil, err
	}

	b.AddTransition(ghmm.BeginName, "a-met", 400)
	b.AddTransition(ghmm.BeginName, "b-met", 100)
	b.AddTransition(ghmm.BeginName, "c-met", 4909)

	b.AddTransition("a-met", first, 1)
	b.AddTransition(last, "a-spacer", 1)
	b.AddTransition("a-spacer", "a-RLE", 1)
	b.AddTransition("a-RLE", "a-tail", 1)
	b.AddTransition("a-tail", ghmm.EndName, 1)

	b.AddTransition(last, "d-tail", 0.01)
	b.AddTransition("d-tail", ghmm.EndName, 1)

	b.AddTransition("b-met", "b-leader", 1)
	b.AddTransition("b-leader", "b-KLD", 1)
	b.AddTransition("b-KLD", "b-spacer", 1)
	b.AddTransition("b-spacer", "b-hydrophobic", 1)
	b.AddTransition("b-hydrophobic", "b-tail", 1)
	b.AddTransition("b-tail", ghmm.EndName, 1)

	b.AddTransition("c-met", "c-tail", 1)
	b.AddTransition("c-tail", ghmm.EndName, 1)

	m, err := b.Compile()
	if err != nil {
		return nil, nil, fmt.Errorf("models: compiling PEXEL model: %w", err)
	}
	return m, a, nil
}
