// Package storage reads and writes parallel corpora, alignment files, and model snapshots.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/happyhackingspace/wordalign/corpus"
	"github.com/happyhackingspace/wordalign/internal/textutil"
)

// ErrLineCountMismatch is returned when one corpus file runs out of lines before the other.
var ErrLineCountMismatch = errors.New("foreign and english line counts differ")

const maxLineSize = 1024 * 1024

// LoadOptions controls corpus loading.
type LoadOptions struct {
	// NumSentences caps the number of leading line pairs read; <= 0 reads all.
	NumSentences int
	// AddNull appends corpus.NullToken to every foreign sentence.
	AddNull bool
	// Reverse swaps the foreign and english roles.
	Reverse bool
	// Lowercase lowercases every token.
	Lowercase bool
}

// DefaultLoadOptions returns the default options for loading a corpus.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{}
}

// LoadCorpus reads a line-aligned pair of corpus files.
func LoadCorpus(foreignPath, englishPath string, opts LoadOptions) (corpus.Corpus, error) {
	ff, err := os.Open(foreignPath)
	if err != nil {
		return nil, fmt.Errorf("open foreign corpus: %w", err)
	}
	defer func() { _ = ff.Close() }()

	ef, err := os.Open(englishPath)
	if err != nil {
		return nil, fmt.Errorf("open english corpus: %w", err)
	}
	defer func() { _ = ef.Close() }()

	c, err := ReadCorpus(ff, ef, opts)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded corpus", "foreign", foreignPath, "english", englishPath, "sentences", len(c),
		"null", opts.AddNull, "reverse", opts.Reverse)
	return c, nil
}

// ReadCorpus reads line-aligned sentences from two readers. Line i of
// foreign pairs with line i of english. Empty lines and readers that run
// out at different points within the cap are reported as errors.
func ReadCorpus(foreign, english io.Reader, opts LoadOptions) (corpus.Corpus, error) {
	fs := newLineScanner(foreign)
	es := newLineScanner(english)
	tokenize := textutil.Tokenize
	if opts.Lowercase {
		tokenize = textutil.TokenizeLower
	}

	var c corpus.Corpus
	for line := 1; opts.NumSentences <= 0 || len(c) < opts.NumSentences; line++ {
		fok, eok := fs.Scan(), es.Scan()
		if err := fs.Err(); err != nil {
			return nil, fmt.Errorf("read foreign corpus: %w", err)
		}
		if err := es.Err(); err != nil {
			return nil, fmt.Errorf("read english corpus: %w", err)
		}
		if !fok && !eok {
			break
		}
		if fok != eok {
			return nil, fmt.Errorf("line %d: %w", line, ErrLineCountMismatch)
		}

		fLine, eLine := fs.Text(), es.Text()
		if line == 1 {
			fLine, eLine = textutil.TrimBOM(fLine), textutil.TrimBOM(eLine)
		}
		f, e := tokenize(fLine), tokenize(eLine)
		if len(f) == 0 {
			return nil, fmt.Errorf("foreign line %d: %w", line, corpus.ErrEmptySentence)
		}
		if len(e) == 0 {
			return nil, fmt.Errorf("english line %d: %w", line, corpus.ErrEmptySentence)
		}
		c = append(c, corpus.SentencePair{Foreign: f, English: e})
	}

	if opts.Reverse {
		c = c.Reverse()
	}
	if opts.AddNull {
		c = c.WithNull()
	}
	return c, nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineSize)
	return s
}
