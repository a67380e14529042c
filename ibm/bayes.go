package ibm

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/happyhackingspace/wordalign/corpus"
	"github.com/happyhackingspace/wordalign/internal/sparse"
)

// BayesConfig holds the Gibbs sampler's hyperparameters.
type BayesConfig struct {
	// Alpha is the symmetric Dirichlet pseudo-count on every (e, f) pair.
	Alpha float64 `yaml:"alpha"`
	// BurnIn is the number of sweeps discarded before sampling.
	BurnIn int `yaml:"burn_in"`
	// Samples is the number of retained samples per token.
	Samples int `yaml:"samples"`
	// Lag is the number of sweeps between retained samples.
	Lag      int    `yaml:"lag"`
	Seed     uint64 `yaml:"seed"`
	Progress bool   `yaml:"progress"`
}

// DefaultBayesConfig returns the default sampler configuration.
func DefaultBayesConfig() BayesConfig {
	return BayesConfig{
		Alpha:   1e-4,
		BurnIn:  50,
		Samples: 20,
		Lag:     5,
		Seed:    1,
	}
}

// Bayes is a collapsed Gibbs sampler for word alignment under a sparse
// Dirichlet prior on translation probabilities. The alignment of each
// english token is resampled in turn given every other token's current
// alignment; the decoded alignment is the posterior mode over retained samples.
type Bayes struct {
	Config BayesConfig

	vocab *corpus.Vocabulary
	count *sparse.Table[string, string] // count(e, f)
	total map[string]float64            // total(e)

	// assign[s][j] is the current foreign index of english token j in sentence s, or -1.
	assign [][]int
	// hist[s][j][i] counts retained samples choosing foreign index i.
	hist [][][]float64

	initial *Snapshot
	src     rand.Source
	state   State
}

// NewBayes creates an untrained sampler.
func NewBayes(config BayesConfig) *Bayes {
	return &Bayes{Config: config}
}

// State returns the sampler's lifecycle state.
func (b *Bayes) State() State {
	return b.state
}

// SetPrior seeds the chain's initial alignment from a snapshot decoded by
// another model on the same corpus. The snapshot is copied; it is
// validated against the corpus when Train starts.
func (b *Bayes) SetPrior(s *Snapshot) {
	if s == nil {
		b.initial = nil
		return
	}
	b.initial = s.Clone()
}

// Train runs BurnIn sweeps followed by M samples spaced Lag sweeps apart,
// where M is iterations if positive and Config.Samples otherwise.
func (b *Bayes) Train(c corpus.Corpus, iterations int) error {
	if len(c) == 0 {
		return ErrEmptyCorpus
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if b.Config.Alpha <= 0 {
		return fmt.Errorf("%w: alpha must be positive, got %v", ErrInvalidConfig, b.Config.Alpha)
	}
	if b.initial != nil {
		if err := b.initial.Validate(c); err != nil {
			return fmt.Errorf("prior alignment: %w", err)
		}
	}
	samples := iterations
	if samples <= 0 {
		samples = b.Config.Samples
	}
	lag := max(b.Config.Lag, 1)
	burnIn := max(b.Config.BurnIn, 0)

	b.initChain(c)

	sweeps := burnIn + samples*lag
	for it := 1; it <= sweeps; it++ {
		record := it > burnIn && (it-burnIn)%lag == 0
		if it <= burnIn {
			b.state = BurnIn
		} else {
			b.state = Sampling
		}
		b.sweep(c, record)
		slog.Debug("Gibbs sweep", "iteration", it, "of", sweeps, "state", b.state, "recorded", record)
	}
	b.state = Converged
	return nil
}

// initChain sets up counts and the initial assignment.
func (b *Bayes) initChain(c corpus.Corpus) {
	b.vocab = corpus.BuildVocabulary(c)
	b.count = sparse.New[string, string](0)
	b.total = make(map[string]float64)
	b.src = rand.NewPCG(b.Config.Seed, b.Config.Seed^0x9e3779b97f4a7c15)

	b.assign = make([][]int, len(c))
	b.hist = make([][][]float64, len(c))
	for s, p := range c {
		b.assign[s] = make([]int, len(p.English))
		b.hist[s] = make([][]float64, len(p.English))
		for j, e := range p.English {
			b.hist[s][j] = make([]float64, len(p.Foreign))
			i := -1
			if b.initial != nil {
				i = b.initial.Sentences[s][j]
			}
			b.assign[s][j] = i
			if i >= 0 {
				b.count.Add(e, p.Foreign[i], 1)
				b.total[e]++
			}
		}
	}
	b.state = PriorsInitialized
}

// sweep resamples every english token once, in corpus order. The
// remove/resample/reinsert step mutates the counts in place and must
// stay sequential.
func (b *Bayes) sweep(c corpus.Corpus, record bool) {
	alpha := b.Config.Alpha
	fSize := float64(b.vocab.ForeignSize())
	var weights []float64

	bar := startSweep(b.Config.Progress, len(c))
	for s, p := range c {
		for j, e := range p.English {
			if cur := b.assign[s][j]; cur >= 0 {
				b.decrement(e, p.Foreign[cur])
			}

			weights = weights[:0]
			for _, f := range p.Foreign {
				weights = append(weights, (b.count.Get(e, f)+alpha)/(b.total[e]+fSize*alpha))
			}
			i := int(distuv.NewCategorical(weights, b.src).Rand())

			b.assign[s][j] = i
			b.count.Add(e, p.Foreign[i], 1)
			b.total[e]++
			if record {
				b.hist[s][j][i]++
			}
		}
		bar.step()
	}
	bar.finish()
}

func (b *Bayes) decrement(e, f string) {
	if b.count.Add(e, f, -1) == 0 {
		b.count.Delete(e, f)
	}
	b.total[e]--
}

// SampleCount returns how many samples were retained for english token j of sentence s.
func (b *Bayes) SampleCount(s, j int) int {
	if s < 0 || s >= len(b.hist) || j < 0 || j >= len(b.hist[s]) {
		return 0
	}
	return int(floats.Sum(b.hist[s][j]))
}

// Decode returns the posterior mode of each token's retained samples.
// Ties go to the lowest foreign index; tokens without samples decode to -1.
func (b *Bayes) Decode(c corpus.Corpus) [][]int {
	out := make([][]int, len(c))
	for s, p := range c {
		row := make([]int, len(p.English))
		for j := range p.English {
			row[j] = -1
			if s >= len(b.hist) || j >= len(b.hist[s]) {
				continue
			}
			h := b.hist[s][j]
			if len(h) != len(p.Foreign) || floats.Sum(h) == 0 {
				continue
			}
			row[j] = floats.MaxIdx(h)
		}
		out[s] = row
	}
	return out
}

// Align decodes every sentence of c into links. c must be the corpus the
// sampler was trained on, since the samples are per-sentence state.
func (b *Bayes) Align(c corpus.Corpus, reverse bool) []corpus.SentenceAlignment {
	return linksFromIndices(c, b.Decode(c), reverse)
}
