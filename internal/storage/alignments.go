package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/happyhackingspace/wordalign/corpus"
)

// WriteAlignments writes one line of "f-e" tokens per sentence.
func WriteAlignments(w io.Writer, alignments []corpus.SentenceAlignment) error {
	bw := bufio.NewWriter(w)
	for _, a := range alignments {
		if _, err := bw.WriteString(corpus.FormatAlignment(a)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveAlignments writes alignments to a file.
func SaveAlignments(path string, alignments []corpus.SentenceAlignment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteAlignments(f, alignments); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadAlignments parses one sentence alignment per line.
func ReadAlignments(r io.Reader) ([]corpus.SentenceAlignment, error) {
	s := newLineScanner(r)
	var out []corpus.SentenceAlignment
	for line := 1; s.Scan(); line++ {
		a, err := corpus.ParseAlignment(s.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, a)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadAlignments reads an alignment file.
func LoadAlignments(path string) ([]corpus.SentenceAlignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	out, err := ReadAlignments(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
