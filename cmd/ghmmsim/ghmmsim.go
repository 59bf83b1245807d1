// Package ghmmsim implements the ghmmsim subcommand: draws stochastic
// sequences from a compiled model's forward generative process and
// writes them out as FASTA, the Go counterpart of
// simulate_signalseqs.cc's generation loop.
package ghmmsim

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"ghmm_go/alphabet"
	"ghmm_go/ghmm"
	"ghmm_go/models"
)

// Run implements ghmmsim.
func Run(args []string) {
	fs := flag.NewFlagSet("ghmmsim", flag.ExitOnError)
	count := fs.Int("count", 10, "number of sequences to generate")
	modelName := fs.String("model", "pexel", "model to generate from: pexel or signalp")
	output := fs.String("output", "-", "output FASTA file, or - for stdout")
	seed := fs.Int64("seed", 0, "RNG seed (0 seeds from the process ID)")
	prefix := fs.String("prefix", "sim", "FASTA header prefix for generated records")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "ghmm_go ghmmsim - GHMM forward sequence simulator")
		fmt.Fprintln(os.Stderr, "Usage: ghmm_go ghmmsim [options]")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	var a *alphabet.Alphabet
	var m *ghmm.Model
	var err error
	switch *modelName {
	case "pexel":
		m, a, err = models.NewPEXELModel()
	case "signalp":
		m, a, err = models.NewSignalPeptideModel()
	default:
		log.Fatalf("ghmmsim: unknown -model %q, want pexel or signalp", *modelName)
	}
	if err != nil {
		log.Fatalf("ghmmsim: compiling model: %v", err)
	}

	seedVal := *seed
	if seedVal == 0 {
		seedVal = int64(os.Getpid()) // process-ID stand-in for the original's srandom(time(NULL)) default
	}
	rng := rand.New(rand.NewSource(seedVal))

	var out io.Writer = os.Stdout
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("ghmmsim: %v", err)
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	for i := 0; i < *count; i++ {
		symbols := m.Generate(rng)
		fmt.Fprintf(w, ">%s_%d\n", *prefix, i)
		for _, s := range symbols {
			w.WriteString(a.Token(s))
		}
		w.WriteByte('\n')
	}
	log.Printf("ghmmsim: generated %d sequences from the %s model (seed %d)", *count, *modelName, seedVal)
}
