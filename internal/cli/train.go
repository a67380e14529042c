package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/happyhackingspace/wordalign"
	"github.com/happyhackingspace/wordalign/corpus"
	"github.com/happyhackingspace/wordalign/ibm"
	"github.com/happyhackingspace/wordalign/internal/storage"
	"github.com/spf13/cobra"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var flags corpusFlags
	var reverse bool
	var priorPath string
	var snapshotOut string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an alignment model on a parallel corpus and print its alignments",
		Args:  cobra.NoArgs,
		Example: `  wordalign train -f data/hansards.f -e data/hansards.e -n 10000 -i 20 > ibm1.align
  wordalign train -f corpus.f -e corpus.e --model ibm2 --null -o ibm2.align
  wordalign train -f corpus.f -e corpus.e --reverse -o reverse.align
  wordalign train -f corpus.f -e corpus.e --snapshot-out ibm1.json
  wordalign train -f corpus.f -e corpus.e --model bayes --prior ibm1.json --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.trainConfig(cmd, c.configPath)
			if err != nil {
				return err
			}

			corp, err := flags.load(reverse, flags.null)
			if err != nil {
				return err
			}
			slog.Info("Corpus loaded", "sentences", len(corp), "reverse", reverse, "null", flags.null)

			if priorPath != "" {
				prior, err := storage.LoadSnapshot(priorPath)
				if err != nil {
					return err
				}
				cfg.Prior = prior
				slog.Debug("Prior alignment loaded", "path", priorPath)
			}

			slog.Info("Training model", "model", cfg.Model, "iterations", cfg.Iterations)
			start := time.Now()
			m, err := wordalign.Train(corp, cfg)
			if err != nil {
				return err
			}
			slog.Info("Training completed", "duration", time.Since(start))

			if snapshotOut != "" {
				if err := saveSnapshot(snapshotOut, m, corp); err != nil {
					return err
				}
			}

			return writeOutput(flags.output, m.Align(corp, reverse))
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Swap the foreign and english roles; links are written in the original orientation")
	cmd.Flags().StringVar(&priorPath, "prior", "", "Snapshot from a previous run to seed the bayes sampler")
	cmd.Flags().StringVar(&snapshotOut, "snapshot-out", "", "Write the decoded alignment snapshot to this file")
	return cmd
}

// saveSnapshot decodes corp with m and writes the snapshot to path.
func saveSnapshot(path string, m ibm.Aligner, corp corpus.Corpus) error {
	d, ok := m.(ibm.Decoder)
	if !ok {
		return fmt.Errorf("snapshot: %T does not decode best indices", m)
	}
	if err := storage.SaveSnapshot(path, ibm.NewSnapshot(d, corp)); err != nil {
		return err
	}
	slog.Info("Snapshot saved", "path", path)
	return nil
}

func (c *CLI) newAlignBothCommand() *cobra.Command {
	var flags corpusFlags

	cmd := &cobra.Command{
		Use:   "align-both",
		Short: "Train forward and reverse models and print their grow-diag symmetrization",
		Args:  cobra.NoArgs,
		Example: `  wordalign align-both -f corpus.f -e corpus.e --null -i 10 -o sym.align
  wordalign align-both -f corpus.f -e corpus.e --model ibm2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.trainConfig(cmd, c.configPath)
			if err != nil {
				return err
			}
			corp, err := flags.load(false, false)
			if err != nil {
				return err
			}
			slog.Info("Corpus loaded", "sentences", len(corp))

			start := time.Now()
			alignments, err := wordalign.AlignBidirectional(corp, cfg)
			if err != nil {
				return err
			}
			slog.Info("Bidirectional alignment completed", "model", cfg.Model, "duration", time.Since(start))
			return writeOutput(flags.output, alignments)
		},
	}

	flags.bind(cmd)
	return cmd
}
