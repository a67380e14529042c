package ibm

import (
	"log/slog"
	"math"

	"github.com/happyhackingspace/wordalign/corpus"
	"github.com/happyhackingspace/wordalign/internal/sparse"
)

// Model1Config holds IBM Model 1 training options.
type Model1Config struct {
	Iterations int  `yaml:"iterations"`
	Progress   bool `yaml:"progress"`
}

// DefaultModel1Config returns the default Model 1 configuration.
func DefaultModel1Config() Model1Config {
	return Model1Config{
		Iterations: 10,
	}
}

// Model1 is the IBM Model 1 aligner: lexical translation probabilities
// t(e|f) estimated by EM under a uniform positional prior.
type Model1 struct {
	Config Model1Config

	vocab *corpus.Vocabulary
	// t(e|f), keyed by row f and column e.
	t     *sparse.Table[string, string]
	state State
}

// NewModel1 creates an untrained Model 1.
func NewModel1(config Model1Config) *Model1 {
	return &Model1{Config: config}
}

// State returns the model's lifecycle state.
func (m *Model1) State() State {
	return m.state
}

// Vocabulary returns the vocabulary built at initialization, or nil.
func (m *Model1) Vocabulary() *corpus.Vocabulary {
	return m.vocab
}

// Prob returns t(e|f). Once f has been re-estimated, pairs never seen
// together are zero; untrained foreign words keep the uniform default.
func (m *Model1) Prob(e, f string) float64 {
	if m.t == nil {
		return 0
	}
	return translationProb(m.t, e, f)
}

// ForeignRow returns the explicit t(·|f) entries keyed by english word.
func (m *Model1) ForeignRow(f string) map[string]float64 {
	if m.t == nil {
		return nil
	}
	return m.t.Row(f)
}

func translationProb(t *sparse.Table[string, string], e, f string) float64 {
	if v, ok := t.Lookup(f, e); ok {
		return v
	}
	if t.HasRow(f) {
		return 0
	}
	return t.Default()
}

// Train runs EM for the given number of passes. A non-positive count
// falls back to Config.Iterations.
func (m *Model1) Train(c corpus.Corpus, iterations int) error {
	if len(c) == 0 {
		return ErrEmptyCorpus
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if iterations <= 0 {
		iterations = m.Config.Iterations
	}

	m.initTable(c)
	for it := range iterations {
		m.state = Converging
		ll := m.pass(c)
		slog.Debug("IBM Model 1 iteration", "iteration", it+1, "log_likelihood", ll, "entries", m.t.Len())
	}
	m.state = Trained
	return nil
}

// initTable builds the vocabulary and sets t to 1/|E| everywhere.
func (m *Model1) initTable(c corpus.Corpus) {
	m.vocab = corpus.BuildVocabulary(c)
	m.t = sparse.New[string, string](1.0 / float64(m.vocab.EnglishSize()))
	m.state = TableInitialized
}

// pass performs one E-step sweep and the M-step re-estimation.
// It returns the corpus log-likelihood under the parameters before the update.
func (m *Model1) pass(c corpus.Corpus) float64 {
	count := sparse.New[string, string](0)
	total := make(map[string]float64)
	sTotal := make(map[string]float64)
	var ll float64

	bar := startSweep(m.Config.Progress, len(c))
	for _, p := range c {
		for _, e := range p.English {
			sTotal[e] = 0
			for _, f := range p.Foreign {
				sTotal[e] += translationProb(m.t, e, f)
			}
		}
		for _, e := range p.English {
			norm := sTotal[e]
			if norm == 0 {
				continue
			}
			ll += math.Log(norm / float64(len(p.Foreign)))
			for _, f := range p.Foreign {
				delta := translationProb(m.t, e, f) / norm
				count.Add(f, e, delta)
				total[f] += delta
			}
		}
		bar.step()
	}
	bar.finish()

	t := sparse.New[string, string](m.t.Default())
	count.Each(func(f, e string, n float64) {
		t.Set(f, e, n/total[f])
	})
	m.t = t
	return ll
}

// Decode picks, for every english word, the first foreign position with
// the strictly highest t(e|f). Positions scoring zero are never chosen.
func (m *Model1) Decode(c corpus.Corpus) [][]int {
	out := make([][]int, len(c))
	for s, p := range c {
		row := make([]int, len(p.English))
		for j, e := range p.English {
			best, bestProb := -1, 0.0
			for i, f := range p.Foreign {
				if prob := m.Prob(e, f); prob > bestProb {
					best, bestProb = i, prob
				}
			}
			row[j] = best
		}
		out[s] = row
	}
	return out
}

// Align decodes every sentence of c into links.
func (m *Model1) Align(c corpus.Corpus, reverse bool) []corpus.SentenceAlignment {
	return linksFromIndices(c, m.Decode(c), reverse)
}
