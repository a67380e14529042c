// Package wordalign estimates word alignments between parallel corpora.
//
// It trains IBM Model 1, IBM Model 2, or a Bayesian Gibbs-sampling
// aligner on a sentence-aligned corpus and decodes one alignment per
// sentence pair. Two directional alignments can be merged with grow-diag
// symmetrization.
//
//	c, _ := storage.LoadCorpus("corpus.f", "corpus.e", storage.LoadOptions{AddNull: true})
//	m, _ := wordalign.Train(c, wordalign.DefaultTrainConfig())
//	for _, a := range m.Align(c, false) {
//	    fmt.Println(corpus.FormatAlignment(a)) // "0-0 1-1 2-3 "
//	}
package wordalign

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/happyhackingspace/wordalign/corpus"
	"github.com/happyhackingspace/wordalign/ibm"
	"github.com/happyhackingspace/wordalign/symmetrize"
)

// TrainConfig holds configuration for training.
type TrainConfig struct {
	// Model is one of ibm.NameModel1, ibm.NameModel2, ibm.NameBayes.
	Model string
	// Iterations is passed to the model's Train; <= 0 uses the model config.
	Iterations int
	Models     ibm.Config
	// Prior seeds the Bayesian sampler. It must have been decoded from the same corpus.
	Prior *ibm.Snapshot
	// SeedWithModel1 seeds the Bayesian sampler from a freshly trained
	// Model 1 when no Prior is given.
	SeedWithModel1 bool
	// Null appends the NULL token to the foreign side in AlignBidirectional.
	Null bool
}

// DefaultTrainConfig returns the default training configuration.
func DefaultTrainConfig() *TrainConfig {
	return &TrainConfig{
		Model:          ibm.NameModel1,
		Models:         ibm.DefaultConfig(),
		SeedWithModel1: true,
	}
}

// Train trains the configured model on c.
func Train(c corpus.Corpus, config *TrainConfig) (ibm.Aligner, error) {
	if config == nil {
		config = DefaultTrainConfig()
	}
	m, err := ibm.New(config.Model, config.Models)
	if err != nil {
		return nil, fmt.Errorf("wordalign: %w", err)
	}

	if b, ok := m.(*ibm.Bayes); ok {
		prior := config.Prior
		if prior == nil && config.SeedWithModel1 {
			slog.Debug("Seeding sampler from IBM Model 1")
			m1 := ibm.NewModel1(config.Models.Model1)
			if err := m1.Train(c, 0); err != nil {
				return nil, fmt.Errorf("wordalign: seed model: %w", err)
			}
			prior = ibm.NewSnapshot(m1, c)
		}
		b.SetPrior(prior)
	} else if config.Prior != nil {
		return nil, fmt.Errorf("wordalign: prior alignment requires the %s model, got %s", ibm.NameBayes, config.Model)
	}

	start := time.Now()
	if err := m.Train(c, config.Iterations); err != nil {
		return nil, fmt.Errorf("wordalign: %w", err)
	}
	slog.Debug("Training completed", "model", config.Model, "sentences", len(c), "duration", time.Since(start))
	return m, nil
}

// AlignBidirectional trains one model on c and one on its reverse, aligns
// each, and merges the two with grow-diag symmetrization. A Prior, if set,
// applies to the forward direction only.
func AlignBidirectional(c corpus.Corpus, config *TrainConfig) ([]corpus.SentenceAlignment, error) {
	if config == nil {
		config = DefaultTrainConfig()
	}
	fc, rc := c, c.Reverse()
	if config.Null {
		fc, rc = fc.WithNull(), rc.WithNull()
	}

	fwd, err := Train(fc, config)
	if err != nil {
		return nil, err
	}
	revConfig := *config
	revConfig.Prior = nil
	rev, err := Train(rc, &revConfig)
	if err != nil {
		return nil, err
	}

	out, err := symmetrize.Corpus(fwd.Align(fc, false), rev.Align(rc, true))
	if err != nil {
		return nil, fmt.Errorf("wordalign: %w", err)
	}
	return out, nil
}
