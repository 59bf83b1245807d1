package fastaio

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"ghmm_go/alphabet"
)

func aminoAlphabet() *alphabet.Alphabet {
	a := alphabet.New()
	a.AddCharTokenRange('A', 'Z')
	return a
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return path
}

func TestStreamPlainFasta(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.fasta", []byte(">one\nACgt\nAC\n>two\nTTTT\n"))

	a := aminoAlphabet()
	var got []Record
	if err := Stream(path, a, func(rec Record) error {
		got = append(got, rec)
		return nil
	}); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Name != "one" || len(got[0].Symbols) != 6 {
		t.Errorf("record 0 = %+v, want name %q and 6 symbols (case folded, lines joined)", got[0], "one")
	}
	if got[1].Name != "two" || len(got[1].Symbols) != 4 {
		t.Errorf("record 1 = %+v, want name %q and 4 symbols", got[1], "two")
	}
}

func TestStreamGzippedFasta(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(">only\nACGT\n")); err != nil {
		t.Fatalf("gzip Write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip Close: %v", err)
	}
	path := writeFile(t, dir, "in.fasta.gz", buf.Bytes())

	a := aminoAlphabet()
	recs, err := ReadAll(path, a)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(recs) != 1 || recs[0].Name != "only" || len(recs[0].Symbols) != 4 {
		t.Fatalf("ReadAll() = %+v, want one 4-symbol record named %q", recs, "only")
	}
}

func TestStreamRejectsUnknownSymbol(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.fasta", []byte(">bad\nAC1T\n"))

	a := aminoAlphabet()
	err := Stream(path, a, func(Record) error { return nil })
	if err == nil {
		t.Error("Stream() should error on a symbol outside the alphabet")
	}
}
