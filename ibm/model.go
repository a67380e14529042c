// Package ibm implements statistical word alignment models: IBM Model 1,
// IBM Model 2, and a Bayesian Gibbs-sampling aligner.
//
//	m := ibm.NewModel1(ibm.DefaultModel1Config())
//	if err := m.Train(c, 10); err != nil {
//	    return err
//	}
//	alignments := m.Align(c, false)
package ibm

import (
	"errors"
	"fmt"

	"github.com/happyhackingspace/wordalign/corpus"
)

var (
	// ErrEmptyCorpus is returned when training on a corpus with no sentences.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrUnknownModel is returned by New for an unrecognized model name.
	ErrUnknownModel = errors.New("unknown model")
	// ErrInvalidConfig is returned when a hyperparameter is out of range.
	ErrInvalidConfig = errors.New("invalid model config")
)

// Aligner is a trainable word alignment model.
type Aligner interface {
	// Train estimates the model parameters from c over the given number of iterations.
	Train(c corpus.Corpus, iterations int) error
	// Align decodes one alignment per sentence of c. With reverse set, the
	// model is assumed to be trained on the reversed corpus and each link
	// is swapped back to the original (foreign, english) orientation.
	Align(c corpus.Corpus, reverse bool) []corpus.SentenceAlignment
}

// Decoder is implemented by models that can report their best foreign
// index for every english position.
type Decoder interface {
	// Decode returns, per sentence and english position, the chosen foreign
	// index or -1 when no candidate scored.
	Decode(c corpus.Corpus) [][]int
}

// State is a model's training lifecycle state.
type State int

const (
	Uninitialized State = iota
	TableInitialized
	Converging
	Trained
	PriorsInitialized
	BurnIn
	Sampling
	Converged
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case TableInitialized:
		return "table-initialized"
	case Converging:
		return "converging"
	case Trained:
		return "trained"
	case PriorsInitialized:
		return "priors-initialized"
	case BurnIn:
		return "burn-in"
	case Sampling:
		return "sampling"
	case Converged:
		return "converged"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Model names accepted by New.
const (
	NameModel1 = "ibm1"
	NameModel2 = "ibm2"
	NameBayes  = "bayes"
)

// Config bundles the per-model configurations.
type Config struct {
	Model1 Model1Config `yaml:"ibm1"`
	Model2 Model2Config `yaml:"ibm2"`
	Bayes  BayesConfig  `yaml:"bayes"`
}

// DefaultConfig returns the default configuration for every model.
func DefaultConfig() Config {
	return Config{
		Model1: DefaultModel1Config(),
		Model2: DefaultModel2Config(),
		Bayes:  DefaultBayesConfig(),
	}
}

// New creates an untrained aligner by name.
func New(name string, cfg Config) (Aligner, error) {
	switch name {
	case NameModel1:
		return NewModel1(cfg.Model1), nil
	case NameModel2:
		return NewModel2(cfg.Model2), nil
	case NameBayes:
		return NewBayes(cfg.Bayes), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}

// linksFromIndices turns decoded indices into links, dropping english
// words that chose nothing or the NULL token.
func linksFromIndices(c corpus.Corpus, best [][]int, reverse bool) []corpus.SentenceAlignment {
	out := make([]corpus.SentenceAlignment, len(c))
	for s, pair := range c {
		row := make(corpus.SentenceAlignment, 0, len(pair.English))
		for j, i := range best[s] {
			if i < 0 || pair.IsNull(i) {
				continue
			}
			l := corpus.Link{F: i, E: j}
			if reverse {
				l = l.Swap()
			}
			row = append(row, l)
		}
		out[s] = row
	}
	return out
}
