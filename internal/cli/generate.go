package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/kanon/pkg/generate"
	"github.com/matzehuels/kanon/pkg/pipeline"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output outputFlags
		n      int
		p      float64
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "generate <path|cycle|star|complete|random>",
		Short: "Write a synthetic graph",
		Long: `Generate writes a synthetic graph with vertices named 0..n-1. Random graphs
include every pair with probability p and are reproducible for a fixed seed.`,
		Example: `  kanon generate cycle -n 8
  kanon generate random -n 50 -p 0.1 --seed 7 -o random.csv`,
		ValidArgs: generate.Kinds(),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			g, err := generate.ByName(args[0], n, p, seed)
			if err != nil {
				return err
			}
			logger.Debug("generated graph", "kind", args[0], "vertices", g.VertexCount(), "edges", g.EdgeCount())

			opts := pipeline.Options{Logger: logger, NoCache: true}
			output.apply(cmd, &opts)
			runner := pipeline.NewRunner(nil, nil, logger)
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if opts.Output == "" {
				data, err := runner.Encode(ctx, g, nil, opts)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			if err := runner.Write(ctx, g, nil, opts); err != nil {
				return err
			}
			printSuccess(out, "Generated %s graph", args[0])
			printStats(out, g.VertexCount(), g.EdgeCount(), 0, 0)
			printFile(out, opts.Output)
			return nil
		},
	}

	output.bind(cmd)
	fs := cmd.Flags()
	fs.IntVarP(&n, "nodes", "n", 10, "number of vertices")
	fs.Float64VarP(&p, "probability", "p", 0.2, "edge probability for random graphs")
	fs.Uint64Var(&seed, "seed", pipeline.DefaultSeed, "random seed")

	return cmd
}
