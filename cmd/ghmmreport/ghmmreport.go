// Package ghmmreport implements the ghmmreport subcommand: decodes a
// FASTA batch against a compiled model and writes descriptive
// statistics plus SVG diagnostic plots over the resulting segmentations,
// the GHMM-domain counterpart of the teacher's fastqc_mimic reporting
// tool.
package ghmmreport

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"ghmm_go/alphabet"
	"ghmm_go/fastaio"
	"ghmm_go/ghmm"
	"ghmm_go/models"
	"ghmm_go/parse"
	"ghmm_go/report"
)

func writeSVG(dir, name, svg string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(svg), 0o644)
}

// Run implements ghmmreport.
func Run(args []string) {
	fs := flag.NewFlagSet("ghmmreport", flag.ExitOnError)
	input := fs.String("input", "", "FASTA input file to decode and report on")
	modelName := fs.String("model", "pexel", "model to decode against: pexel or signalp")
	outDir := fs.String("out-dir", ".", "directory to write SVG plots into")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "ghmm_go ghmmreport - GHMM decode diagnostics")
		fmt.Fprintln(os.Stderr, "Usage: ghmm_go ghmmreport -input file.fasta [options]")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if *input == "" {
		fs.Usage()
		os.Exit(2)
	}

	var m *ghmm.Model
	var alph *alphabet.Alphabet
	var err error
	switch *modelName {
	case "pexel":
		m, alph, err = models.NewPEXELModel()
	case "signalp":
		m, alph, err = models.NewSignalPeptideModel()
	default:
		log.Fatalf("ghmmreport: unknown -model %q, want pexel or signalp", *modelName)
	}
	if err != nil {
		log.Fatalf("ghmmreport: compiling model: %v", err)
	}

	var logLikelihoods []float64
	var allSegments []parse.Segment
	decodeFailures := 0

	err = fastaio.Stream(*input, alph, func(rec fastaio.Record) error {

		p := parse.New(m, rec.Symbols)
		if err := p.Decode(); err != nil {
			decodeFailures++
			return nil
		}
		logLikelihoods = append(logLikelihoods, p.LogLikelihood())
		allSegments = append(allSegments, parse.Segments(m, p.Traceback())...)
		return nil
	})
	if err != nil {
		log.Fatalf("ghmmreport: %v", err)
	}
	log.Printf("ghmmreport: decoded %d sequences (%d failed to parse)", len(logLikelihoods), decodeFailures)

	summary := report.SummarizeLogLikelihoods(logLikelihoods)
	fmt.Printf("log-likelihood: n=%d mean=%.4g stddev=%.4g min=%.4g max=%.4g\n",
		summary.Count, summary.Mean, summary.StdDev, summary.Min, summary.Max)

	occ := report.TallyStateOccupancy(allSegments)
	for _, o := range occ {
		fmt.Printf("state %-16s total_positions=%d\n", o.Name, o.Total)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("ghmmreport: creating output directory: %v", err)
	}

	if svg, err := report.LogLikelihoodDistributionSVG(logLikelihoods); err != nil {
		log.Printf("ghmmreport: log-likelihood plot: %v", err)
	} else if err := writeSVG(*outDir, "loglikelihood.svg", svg); err != nil {
		log.Printf("ghmmreport: writing log-likelihood plot: %v", err)
	}

	if svg, err := report.StateOccupancySVG(occ); err != nil {
		log.Printf("ghmmreport: occupancy plot: %v", err)
	} else if err := writeSVG(*outDir, "occupancy.svg", svg); err != nil {
		log.Printf("ghmmreport: writing occupancy plot: %v", err)
	}

	for _, o := range occ {
		svg, err := report.SegmentLengthHistogramSVG(o.Name, allSegments)
		if err != nil {
			continue
		}
		if err := writeSVG(*outDir, fmt.Sprintf("segment_%s.svg", o.Name), svg); err != nil {
			log.Printf("ghmmreport: writing %s segment-length plot: %v", o.Name, err)
		}
	}
}
