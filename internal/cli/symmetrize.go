package cli

import (
	"log/slog"

	"github.com/happyhackingspace/wordalign/internal/storage"
	"github.com/happyhackingspace/wordalign/symmetrize"
	"github.com/spf13/cobra"
)

func (c *CLI) newSymmetrizeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "symmetrize <forward> <reverse>",
		Short: "Merge two alignment files with grow-diag symmetrization",
		Args:  cobra.ExactArgs(2),
		Example: `  wordalign symmetrize forward.align reverse.align > sym.align
  wordalign symmetrize forward.align reverse.align -o sym.align`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fwd, err := storage.LoadAlignments(args[0])
			if err != nil {
				return err
			}
			rev, err := storage.LoadAlignments(args[1])
			if err != nil {
				return err
			}
			slog.Debug("Alignments loaded", "forward", len(fwd), "reverse", len(rev))

			out, err := symmetrize.Corpus(fwd, rev)
			if err != nil {
				return err
			}
			return writeOutput(output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output alignment file (default: stdout)")
	return cmd
}
