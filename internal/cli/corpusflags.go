package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/happyhackingspace/wordalign"
	"github.com/happyhackingspace/wordalign/corpus"
	"github.com/happyhackingspace/wordalign/internal/storage"
	"github.com/spf13/cobra"
)

// corpusFlags are the corpus-loading and model flags shared by the training commands.
type corpusFlags struct {
	foreign      string
	english      string
	numSentences int
	null         bool
	lowercase    bool
	model        string
	iterations   int
	seed         uint64
	progress     bool
	output       string
}

func (f *corpusFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.foreign, "foreign", "f", "", "Foreign-side corpus file (one sentence per line)")
	cmd.Flags().StringVarP(&f.english, "english", "e", "", "English-side corpus file (one sentence per line)")
	cmd.Flags().IntVarP(&f.numSentences, "num-sentences", "n", 0, "Number of leading sentence pairs to load (0=all)")
	cmd.Flags().BoolVar(&f.null, "null", false, "Append a NULL token to every foreign sentence")
	cmd.Flags().BoolVar(&f.lowercase, "lowercase", false, "Lowercase all tokens")
	cmd.Flags().StringVarP(&f.model, "model", "m", "ibm1", "Alignment model: ibm1, ibm2, or bayes")
	cmd.Flags().IntVarP(&f.iterations, "iterations", "i", 0, "Training iterations (bayes: retained samples); 0 uses the model default")
	cmd.Flags().Uint64Var(&f.seed, "seed", 1, "Random seed for the bayes sampler")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "Show a progress bar for every training pass")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output alignment file (default: stdout)")
	_ = cmd.MarkFlagRequired("foreign")
	_ = cmd.MarkFlagRequired("english")
}

// trainConfig merges the --config file with the flags set on cmd.
func (f *corpusFlags) trainConfig(cmd *cobra.Command, configPath string) (*wordalign.TrainConfig, error) {
	cfg, err := loadTrainConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("model") || configPath == "" {
		cfg.Model = f.model
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = f.iterations
	}
	if cmd.Flags().Changed("seed") {
		cfg.Models.Bayes.Seed = f.seed
	}
	if f.progress {
		cfg.Models.Model1.Progress = true
		cfg.Models.Model2.Progress = true
		cfg.Models.Bayes.Progress = true
	}
	cfg.Null = f.null
	return cfg, nil
}

func (f *corpusFlags) load(reverse, addNull bool) (corpus.Corpus, error) {
	return storage.LoadCorpus(f.foreign, f.english, storage.LoadOptions{
		NumSentences: f.numSentences,
		AddNull:      addNull,
		Reverse:      reverse,
		Lowercase:    f.lowercase,
	})
}

// writeOutput writes alignments to path, or stdout when path is empty.
func writeOutput(path string, alignments []corpus.SentenceAlignment) error {
	if path == "" {
		return storage.WriteAlignments(stdoutWriter, alignments)
	}
	if err := storage.SaveAlignments(path, alignments); err != nil {
		return err
	}
	slog.Info("Alignments saved", "path", path, "sentences", len(alignments))
	return nil
}

// stdoutWriter is swapped in tests.
var stdoutWriter io.Writer = os.Stdout

func printf(format string, args ...any) {
	_, _ = fmt.Fprintf(stdoutWriter, format, args...)
}
