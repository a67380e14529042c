package ibm

import (
	"errors"
	"math"
	"testing"

	"github.com/happyhackingspace/wordalign/corpus"
)

func toyCorpus() corpus.Corpus {
	return corpus.Corpus{
		{Foreign: []string{"das", "haus"}, English: []string{"the", "house"}},
		{Foreign: []string{"das", "buch"}, English: []string{"the", "book"}},
		{Foreign: []string{"ein", "buch"}, English: []string{"a", "book"}},
	}
}

func hasLink(a corpus.SentenceAlignment, f, e int) bool {
	for _, l := range a {
		if l.F == f && l.E == e {
			return true
		}
	}
	return false
}

func TestModel1Toy(t *testing.T) {
	m := NewModel1(DefaultModel1Config())
	if m.State() != Uninitialized {
		t.Errorf("State = %v, want uninitialized", m.State())
	}
	if err := m.Train(toyCorpus(), 10); err != nil {
		t.Fatal(err)
	}
	if m.State() != Trained {
		t.Errorf("State = %v, want trained", m.State())
	}

	if m.Prob("the", "das") <= m.Prob("the", "ein") {
		t.Errorf("t(the|das)=%v should exceed t(the|ein)=%v", m.Prob("the", "das"), m.Prob("the", "ein"))
	}
	book := m.Prob("book", "buch")
	for e, p := range m.ForeignRow("buch") {
		if e != "book" && p >= book {
			t.Errorf("t(%s|buch)=%v should be below t(book|buch)=%v", e, p, book)
		}
	}
	if book <= 0.5 {
		t.Errorf("t(book|buch) = %v, want dominant mass", book)
	}

	alignments := m.Align(toyCorpus(), false)
	if len(alignments) != 3 {
		t.Fatalf("got %d alignments, want 3", len(alignments))
	}
	// das -> the where they co-occur
	if !hasLink(alignments[0], 0, 0) || !hasLink(alignments[1], 0, 0) {
		t.Errorf("das should align to the: %v", alignments)
	}
	// "a" goes to ein, not to the das-dominated "the" sense
	if !hasLink(alignments[2], 0, 0) {
		t.Errorf("ein should align to a: %v", alignments[2])
	}
	if !hasLink(alignments[1], 1, 1) || !hasLink(alignments[2], 1, 1) {
		t.Errorf("buch should align to book: %v", alignments)
	}
}

func TestModel1Normalized(t *testing.T) {
	c := toyCorpus().WithNull()
	m := NewModel1(DefaultModel1Config())
	if err := m.Train(c, 5); err != nil {
		t.Fatal(err)
	}
	for _, f := range m.Vocabulary().ForeignWords() {
		var sum float64
		for _, e := range m.Vocabulary().EnglishWords() {
			sum += m.Prob(e, f)
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("Σ_e t(e|%s) = %v, want 1", f, sum)
		}
	}
}

func TestModel1UnseenWordKeepsDefault(t *testing.T) {
	m := NewModel1(DefaultModel1Config())
	if err := m.Train(toyCorpus(), 3); err != nil {
		t.Fatal(err)
	}
	if got := m.Prob("the", "katze"); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("t(the|katze) = %v, want default 0.25", got)
	}
	if got := m.Prob("house", "ein"); got != 0 {
		t.Errorf("t(house|ein) = %v, want 0 for pair never seen together", got)
	}
}

func TestModel1UntrainedDecodesNothing(t *testing.T) {
	m := NewModel1(DefaultModel1Config())
	for _, a := range m.Align(toyCorpus(), false) {
		if len(a) != 0 {
			t.Errorf("untrained model emitted links: %v", a)
		}
	}
}

func TestModel1Errors(t *testing.T) {
	m := NewModel1(DefaultModel1Config())
	if err := m.Train(nil, 1); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Train(nil) = %v, want ErrEmptyCorpus", err)
	}
	bad := corpus.Corpus{{Foreign: []string{"das"}}}
	if err := m.Train(bad, 1); !errors.Is(err, corpus.ErrEmptySentence) {
		t.Errorf("Train(bad) = %v, want ErrEmptySentence", err)
	}
}

func TestNullLinksDropped(t *testing.T) {
	c := toyCorpus().WithNull()
	m := NewModel1(DefaultModel1Config())
	if err := m.Train(c, 10); err != nil {
		t.Fatal(err)
	}
	for s, a := range m.Align(c, false) {
		null := len(c[s].Foreign) - 1
		for _, l := range a {
			if l.F == null {
				t.Errorf("sentence %d: link %v points at NULL", s, l)
			}
		}
	}
}

func TestLiteralNullWordAligns(t *testing.T) {
	c := corpus.Corpus{
		{Foreign: []string{"x", "NULL"}, English: []string{"a", "none"}},
		{Foreign: []string{"NULL"}, English: []string{"none"}},
	}
	for _, tc := range []struct {
		name string
		c    corpus.Corpus
	}{
		{"plain", c},
		{"with null", c.WithNull()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := NewModel1(DefaultModel1Config())
			if err := m.Train(tc.c, 10); err != nil {
				t.Fatal(err)
			}
			a := m.Align(tc.c, false)
			if !hasLink(a[1], 0, 0) {
				t.Errorf("the word NULL should align to none: %v", a[1])
			}
			if !hasLink(a[0], 1, 1) {
				t.Errorf("the word NULL should align to none: %v", a[0])
			}
		})
	}
}

func TestReverseAlign(t *testing.T) {
	c := toyCorpus()
	m := NewModel1(DefaultModel1Config())
	if err := m.Train(c.Reverse(), 10); err != nil {
		t.Fatal(err)
	}
	for s, a := range m.Align(c.Reverse(), true) {
		for _, l := range a {
			if l.F >= len(c[s].Foreign) || l.E >= len(c[s].English) {
				t.Errorf("sentence %d: link %v out of original bounds", s, l)
			}
		}
	}
	if a := m.Align(c.Reverse(), true); !hasLink(a[0], 0, 0) {
		t.Errorf("reverse model should link das-the: %v", a[0])
	}
}

func TestModel2Toy(t *testing.T) {
	m := NewModel2(DefaultModel2Config())
	if err := m.Train(toyCorpus(), 5); err != nil {
		t.Fatal(err)
	}
	if m.Model1() == nil || m.Model1().State() != Trained {
		t.Fatal("Model 2 should bootstrap from a trained Model 1")
	}
	if m.State() != Trained {
		t.Errorf("State = %v, want trained", m.State())
	}

	for j := range 2 {
		if sum := m.DistortionRowSum(j, 2, 2); math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("Σ_i a(i|%d,2,2) = %v, want 1", j, sum)
		}
	}
	if got := m.Distortion(0, 0, 7, 3); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("unseen distortion = %v, want 1/(lf+1) = 0.25", got)
	}
	if got := m.Distortion(5, 0, 2, 2); got != 0 {
		t.Errorf("out-of-range distortion = %v, want 0", got)
	}

	alignments := m.Align(toyCorpus(), false)
	if !hasLink(alignments[0], 0, 0) || !hasLink(alignments[1], 0, 0) {
		t.Errorf("das should align to the: %v", alignments)
	}
	if !hasLink(alignments[1], 1, 1) {
		t.Errorf("buch should align to book: %v", alignments[1])
	}
}

func TestBayesRetainedSamples(t *testing.T) {
	c := toyCorpus()
	cfg := DefaultBayesConfig()
	cfg.BurnIn = 5
	cfg.Lag = 2
	b := NewBayes(cfg)
	if err := b.Train(c, 7); err != nil {
		t.Fatal(err)
	}
	if b.State() != Converged {
		t.Errorf("State = %v, want converged", b.State())
	}
	for s, p := range c {
		for j := range p.English {
			if got := b.SampleCount(s, j); got != 7 {
				t.Errorf("SampleCount(%d,%d) = %d, want 7", s, j, got)
			}
		}
	}
	for s, row := range b.Decode(c) {
		for j, i := range row {
			if i < 0 || i >= len(c[s].Foreign) {
				t.Errorf("Decode[%d][%d] = %d out of range", s, j, i)
			}
		}
	}
}

func TestBayesSeededFromModel1(t *testing.T) {
	c := toyCorpus()
	m1 := NewModel1(DefaultModel1Config())
	if err := m1.Train(c, 10); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultBayesConfig()
	cfg.BurnIn = 10
	cfg.Samples = 5
	cfg.Lag = 2
	b := NewBayes(cfg)
	snap := NewSnapshot(m1, c)
	b.SetPrior(snap)
	snap.Sentences[0][0] = 99 // the sampler holds its own copy
	if err := b.Train(c, 0); err != nil {
		t.Fatal(err)
	}
	if got := b.SampleCount(0, 0); got != 5 {
		t.Errorf("SampleCount = %d, want Config.Samples = 5", got)
	}

	alignments := b.Align(c, false)
	// "the" and "book" occur twice, so their seeded counts keep them in place
	if !hasLink(alignments[0], 0, 0) || !hasLink(alignments[1], 0, 0) {
		t.Errorf("das should align to the: %v", alignments)
	}
	if !hasLink(alignments[1], 1, 1) || !hasLink(alignments[2], 1, 1) {
		t.Errorf("buch should align to book: %v", alignments)
	}
}

func TestBayesDeterministicSeed(t *testing.T) {
	c := toyCorpus()
	cfg := DefaultBayesConfig()
	cfg.BurnIn = 3
	cfg.Samples = 4
	cfg.Lag = 1
	cfg.Seed = 42

	run := func() [][]int {
		b := NewBayes(cfg)
		if err := b.Train(c, 0); err != nil {
			t.Fatal(err)
		}
		return b.Decode(c)
	}
	a, b := run(), run()
	for s := range a {
		for j := range a[s] {
			if a[s][j] != b[s][j] {
				t.Fatalf("same seed gave different decodes: %v vs %v", a, b)
			}
		}
	}
}

func TestBayesDrawsAreNotArgmax(t *testing.T) {
	// one english word over two foreign words it shares no counts with:
	// every draw is a fair coin once its own assignment is removed
	c := corpus.Corpus{{Foreign: []string{"x", "y"}, English: []string{"a"}}}
	cfg := DefaultBayesConfig()
	cfg.BurnIn = 0
	cfg.Lag = 1
	const samples = 400
	b := NewBayes(cfg)
	if err := b.Train(c, samples); err != nil {
		t.Fatal(err)
	}
	h := b.hist[0][0]
	if h[0]+h[1] != samples {
		t.Fatalf("hist = %v, want %d samples", h, samples)
	}
	for i, n := range h {
		if n < samples/4 {
			t.Errorf("index %d drawn %v of %d times, want a substantial share: %v", i, n, samples, h)
		}
	}
}

func TestBayesUntrainedFallback(t *testing.T) {
	b := NewBayes(DefaultBayesConfig())
	for _, row := range b.Decode(toyCorpus()) {
		for _, i := range row {
			if i != -1 {
				t.Errorf("untrained decode = %d, want -1", i)
			}
		}
	}
}

func TestBayesRejectsBadPrior(t *testing.T) {
	c := toyCorpus()
	tests := []struct {
		name string
		snap *Snapshot
		want error
	}{
		{"version", &Snapshot{Version: 0, Sentences: [][]int{{0, 1}, {0, 1}, {0, 1}}}, ErrSnapshotVersion},
		{"sentences", &Snapshot{Version: SnapshotVersion, Sentences: [][]int{{0, 1}}}, ErrSnapshotShape},
		{"length", &Snapshot{Version: SnapshotVersion, Sentences: [][]int{{0, 1}, {0}, {0, 1}}}, ErrSnapshotShape},
		{"index", &Snapshot{Version: SnapshotVersion, Sentences: [][]int{{0, 1}, {0, 2}, {0, 1}}}, ErrSnapshotShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBayes(DefaultBayesConfig())
			b.SetPrior(tt.snap)
			if err := b.Train(c, 1); !errors.Is(err, tt.want) {
				t.Errorf("Train = %v, want %v", err, tt.want)
			}
			if b.State() != Uninitialized {
				t.Errorf("State = %v, want uninitialized after rejected prior", b.State())
			}
		})
	}
}

func TestBayesRejectsZeroAlpha(t *testing.T) {
	cfg := DefaultBayesConfig()
	cfg.Alpha = 0
	if err := NewBayes(cfg).Train(toyCorpus(), 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Train = %v, want ErrInvalidConfig", err)
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{NameModel1, NameModel2, NameBayes} {
		if _, err := New(name, DefaultConfig()); err != nil {
			t.Errorf("New(%q) = %v", name, err)
		}
	}
	if _, err := New("ibm5", DefaultConfig()); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("New(ibm5) = %v, want ErrUnknownModel", err)
	}
}

func TestStateString(t *testing.T) {
	if BurnIn.String() != "burn-in" || State(99).String() != "state(99)" {
		t.Errorf("unexpected State strings: %s, %s", BurnIn, State(99))
	}
}
