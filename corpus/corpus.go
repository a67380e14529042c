// Package corpus defines parallel sentence pairs, vocabularies, and word alignments.
package corpus

import (
	"errors"
	"fmt"
)

// NullToken is the synthetic foreign-side word that lets an english word
// align to nothing. It contains a space, so whitespace tokenization can
// never produce it from corpus text.
const NullToken = " NULL"

// ErrEmptySentence is returned when a sentence side has no tokens.
var ErrEmptySentence = errors.New("empty sentence")

// SentencePair holds one foreign sentence and its english translation.
type SentencePair struct {
	Foreign []string
	English []string
	// Null is set when the last foreign token is the synthetic NullToken.
	Null bool
}

// HasNull reports whether the foreign side ends with the synthetic NULL token.
// A corpus word spelled like it is an ordinary token.
func (p SentencePair) HasNull() bool {
	return p.Null && len(p.Foreign) > 0
}

// IsNull reports whether foreign index i is the synthetic NULL token.
func (p SentencePair) IsNull(i int) bool {
	return p.HasNull() && i == len(p.Foreign)-1
}

// Corpus is an ordered list of sentence pairs.
type Corpus []SentencePair

// Reverse returns a corpus with the foreign and english sides swapped.
// A trailing NULL token on the foreign side is dropped, since it is not a real english word.
func (c Corpus) Reverse() Corpus {
	out := make(Corpus, len(c))
	for i, p := range c {
		f := p.Foreign
		if p.HasNull() {
			f = f[:len(f)-1]
		}
		out[i] = SentencePair{Foreign: p.English, English: f}
	}
	return out
}

// WithNull returns a corpus whose foreign sentences end with NullToken.
// Pairs that already carry it are left alone.
func (c Corpus) WithNull() Corpus {
	out := make(Corpus, len(c))
	for i, p := range c {
		if p.HasNull() {
			out[i] = p
			continue
		}
		f := make([]string, len(p.Foreign), len(p.Foreign)+1)
		copy(f, p.Foreign)
		out[i] = SentencePair{Foreign: append(f, NullToken), English: p.English, Null: true}
	}
	return out
}

// Validate checks that no sentence side is empty.
func (c Corpus) Validate() error {
	for i, p := range c {
		if len(p.Foreign) == 0 {
			return fmt.Errorf("sentence %d: foreign side: %w", i, ErrEmptySentence)
		}
		if len(p.English) == 0 {
			return fmt.Errorf("sentence %d: english side: %w", i, ErrEmptySentence)
		}
	}
	return nil
}
