// Package fastaio streams FASTA records into the integer-encoded
// symbol sequences ghmm_go's decoders and generators operate on,
// adapted from the teacher's own gzip-transparent FASTA streamer.
package fastaio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"ghmm_go/alphabet"
)

// Record is one decoded FASTA entry: its header (without the leading
// '>') and its sequence encoded against an Alphabet.
type Record struct {
	Name    string
	Symbols []int
}

// RecordHandler is called once per FASTA record as it is streamed.
type RecordHandler func(rec Record) error

// Stream reads path record by record, transparently decompressing it
// if it is gzipped (sniffed from its leading magic bytes, exactly as
// the original FASTA streamer does), encoding each sequence against a
// and invoking handler. Sequences are upper-cased before encoding, so
// alphabets built from AddCharTokenRange('A','Z') match lowercase
// input too.
func Stream(path string, a *alphabet.Alphabet, handler RecordHandler) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("fastaio: opening %s: %w", path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	magic := make([]byte, 2)
	if _, err := f.Read(magic); err == nil && magic[0] == 0x1F && magic[1] == 0x8B {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("fastaio: seeking %s: %w", path, err)
		}
		gr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("fastaio: opening gzip reader for %s: %w", path, err)
		}
		defer gr.Close()
		reader = gr
	} else {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("fastaio: seeking %s: %w", path, err)
		}
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var currentName string
	var buffer []byte

	flush := func() error {
		if currentName == "" || len(buffer) == 0 {
			return nil
		}
		symbols, err := a.Encode(string(buffer))
		if err != nil {
			return fmt.Errorf("fastaio: record %q: %w", currentName, err)
		}
		return handler(Record{Name: currentName, Symbols: symbols})
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return err
			}
			currentName = strings.TrimPrefix(line, ">")
			buffer = buffer[:0]
			continue
		}
		buffer = append(buffer, []byte(strings.ToUpper(line))...)
	}
	if err := flush(); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("fastaio: scanning %s: %w", path, err)
	}
	return nil
}

// ReadAll collects every record from path into memory via Stream. For
// scan-scale inputs prefer Stream directly so records can be processed
// (and discarded) one at a time.
func ReadAll(path string, a *alphabet.Alphabet) ([]Record, error) {
	var out []Record
	err := Stream(path, a, func(rec Record) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}
