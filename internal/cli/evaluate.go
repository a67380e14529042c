package cli

import (
	"github.com/happyhackingspace/wordalign"
	"github.com/happyhackingspace/wordalign/internal/storage"
	"github.com/spf13/cobra"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "evaluate <predicted> <gold>",
		Short:   "Score predicted alignments against gold alignments",
		Args:    cobra.ExactArgs(2),
		Example: `  wordalign evaluate sym.align data/hansards.a`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pred, err := storage.LoadAlignments(args[0])
			if err != nil {
				return err
			}
			gold, err := storage.LoadAlignments(args[1])
			if err != nil {
				return err
			}
			// gold files may cover only the first sentences of a run
			if len(pred) > len(gold) {
				pred = pred[:len(gold)]
			}

			result, err := wordalign.Evaluate(pred, gold)
			if err != nil {
				return err
			}
			printf("Sentences: %d\n", result.Sentences)
			printf("Precision: %.1f%% (%d/%d)\n", result.Precision*100, result.Correct, result.Predicted)
			printf("Recall:    %.1f%% (%d/%d)\n", result.Recall*100, result.Correct, result.Gold)
			printf("F1:        %.1f%%\n", result.F1*100)
			printf("AER:       %.3f\n", result.AER)
			return nil
		},
	}
	return cmd
}
