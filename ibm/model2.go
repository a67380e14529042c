package ibm

import (
	"log/slog"
	"math"

	"github.com/happyhackingspace/wordalign/corpus"
	"github.com/happyhackingspace/wordalign/internal/sparse"
)

// Model2Config holds IBM Model 2 training options.
type Model2Config struct {
	Iterations int `yaml:"iterations"`
	// Model1Iterations is the number of Model 1 passes used to bootstrap t.
	// Zero reuses Iterations.
	Model1Iterations int  `yaml:"model1_iterations"`
	Progress         bool `yaml:"progress"`
}

// DefaultModel2Config returns the default Model 2 configuration.
func DefaultModel2Config() Model2Config {
	return Model2Config{
		Iterations:       10,
		Model1Iterations: 10,
	}
}

// distortionKey identifies one distortion distribution: english position j
// in a sentence pair of lengths (le, lf). Columns are foreign positions.
type distortionKey struct {
	J  int
	LE int
	LF int
}

// Model2 is the IBM Model 2 aligner. It adds a distortion table
// a(i|j,le,lf) to Model 1's lexical table.
type Model2 struct {
	Config Model2Config

	model1 *Model1
	t      *sparse.Table[string, string]
	a      *sparse.Table[distortionKey, int]
	state  State
}

// NewModel2 creates an untrained Model 2.
func NewModel2(config Model2Config) *Model2 {
	return &Model2{Config: config}
}

// State returns the model's lifecycle state.
func (m *Model2) State() State {
	return m.state
}

// Model1 returns the Model 1 used to bootstrap the translation table.
func (m *Model2) Model1() *Model1 {
	return m.model1
}

// Prob returns t(e|f).
func (m *Model2) Prob(e, f string) float64 {
	if m.t == nil {
		return 0
	}
	return translationProb(m.t, e, f)
}

// Distortion returns a(i|j,le,lf). Length signatures never seen in
// training read as uniform over the lf+1 source slots.
func (m *Model2) Distortion(i, j, le, lf int) float64 {
	if i < 0 || i >= lf {
		return 0
	}
	if m.a != nil {
		key := distortionKey{J: j, LE: le, LF: lf}
		if v, ok := m.a.Lookup(key, i); ok {
			return v
		}
		if m.a.HasRow(key) {
			return 0
		}
	}
	return 1.0 / float64(lf+1)
}

// DistortionRowSum returns Σ_i a(i|j,le,lf) over stored entries.
func (m *Model2) DistortionRowSum(j, le, lf int) float64 {
	if m.a == nil {
		return 0
	}
	return m.a.RowSum(distortionKey{J: j, LE: le, LF: lf})
}

// materialize fills the distortion row for (j, le, lf) with 1/(lf+1)
// on first access.
func (m *Model2) materialize(j, le, lf int) distortionKey {
	key := distortionKey{J: j, LE: le, LF: lf}
	if m.a.HasRow(key) {
		return key
	}
	v := 1.0 / float64(lf+1)
	for i := range lf {
		m.a.Set(key, i, v)
	}
	return key
}

// Train bootstraps t with a full Model 1 run, then runs the given number
// of joint EM passes. A non-positive count falls back to Config.Iterations.
func (m *Model2) Train(c corpus.Corpus, iterations int) error {
	if len(c) == 0 {
		return ErrEmptyCorpus
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if iterations <= 0 {
		iterations = m.Config.Iterations
	}
	m1Iters := m.Config.Model1Iterations
	if m1Iters <= 0 {
		m1Iters = iterations
	}

	m.model1 = NewModel1(Model1Config{Iterations: m1Iters, Progress: m.Config.Progress})
	if err := m.model1.Train(c, m1Iters); err != nil {
		return err
	}
	m.t = m.model1.t.Clone()
	m.a = sparse.New[distortionKey, int](0)
	m.state = TableInitialized

	for it := range iterations {
		m.state = Converging
		ll := m.pass(c)
		slog.Debug("IBM Model 2 iteration", "iteration", it+1, "log_likelihood", ll,
			"entries", m.t.Len(), "distortions", m.a.Len())
	}
	m.state = Trained
	return nil
}

func (m *Model2) pass(c corpus.Corpus) float64 {
	countT := sparse.New[string, string](0)
	totalT := make(map[string]float64)
	countA := sparse.New[distortionKey, int](0)
	totalA := make(map[distortionKey]float64)
	var ll float64

	bar := startSweep(m.Config.Progress, len(c))
	for _, p := range c {
		le, lf := len(p.English), len(p.Foreign)
		for j, e := range p.English {
			key := m.materialize(j, le, lf)
			var sTotal float64
			for i, f := range p.Foreign {
				sTotal += translationProb(m.t, e, f) * m.a.Get(key, i)
			}
			if sTotal == 0 {
				continue
			}
			ll += math.Log(sTotal)
			for i, f := range p.Foreign {
				delta := translationProb(m.t, e, f) * m.a.Get(key, i) / sTotal
				countT.Add(f, e, delta)
				totalT[f] += delta
				countA.Add(key, i, delta)
				totalA[key] += delta
			}
		}
		bar.step()
	}
	bar.finish()

	t := sparse.New[string, string](m.t.Default())
	countT.Each(func(f, e string, n float64) {
		t.Set(f, e, n/totalT[f])
	})
	a := sparse.New[distortionKey, int](0)
	countA.Each(func(key distortionKey, i int, n float64) {
		a.Set(key, i, n/totalA[key])
	})
	m.t, m.a = t, a
	return ll
}

// Decode picks, for every english word, the foreign position maximizing
// log a(i|j,le,lf) + log t(e|f_i). Ties go to the first position.
func (m *Model2) Decode(c corpus.Corpus) [][]int {
	out := make([][]int, len(c))
	for s, p := range c {
		le, lf := len(p.English), len(p.Foreign)
		row := make([]int, le)
		for j, e := range p.English {
			best, bestScore := -1, math.Inf(-1)
			for i, f := range p.Foreign {
				score := math.Log(m.Distortion(i, j, le, lf)) + math.Log(m.Prob(e, f))
				if score > bestScore {
					best, bestScore = i, score
				}
			}
			row[j] = best
		}
		out[s] = row
	}
	return out
}

// Align decodes every sentence of c into links.
func (m *Model2) Align(c corpus.Corpus, reverse bool) []corpus.SentenceAlignment {
	return linksFromIndices(c, m.Decode(c), reverse)
}
