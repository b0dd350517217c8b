package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kanon/pkg/anonymize"
	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/pipeline"
)

type anonymizeFlags struct {
	input  inputFlags
	output outputFlags

	algorithm   string
	k           int
	seed        uint64
	maxAttempts int
	unbounded   bool
	noise       int
	metrics     string
}

// anonymizeCommand creates the anonymize command.
func (c *CLI) anonymizeCommand() *cobra.Command {
	var flags anonymizeFlags

	cmd := &cobra.Command{
		Use:   "anonymize <input>",
		Short: "Make a graph k-degree or k-orbit anonymous",
		Long: `Anonymize reads an edge list (or a JSON graph) and writes a supergraph that
satisfies the chosen guarantee.

  degree  adds edges until every degree is shared by at least k vertices
  orbit   copies vertices until every automorphism orbit has at least k members

Settings are taken from the defaults, then --config, then flags.`,
		Example: `  kanon anonymize edges.csv -k 3
  kanon anonymize edges.csv -a orbit -k 2 -o anon.json
  kanon anonymize edges.csv --config kanon.toml --metrics run.prom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args[0])
			if err != nil {
				return err
			}
			return c.runAnonymize(cmd, opts, flags.metrics)
		},
	}

	flags.input.bind(cmd)
	flags.output.bind(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&flags.algorithm, "algorithm", "a", pipeline.DefaultAlgorithm, "algorithm: degree or orbit")
	fs.IntVarP(&flags.k, "k", "k", pipeline.DefaultK, "anonymity level")
	fs.Uint64Var(&flags.seed, "seed", pipeline.DefaultSeed, "noise random seed")
	fs.IntVar(&flags.maxAttempts, "max-attempts", pipeline.DefaultMaxAttempts, "degree realization attempts before giving up")
	fs.BoolVar(&flags.unbounded, "unbounded", false, "retry degree realization until interrupted")
	fs.IntVar(&flags.noise, "noise", pipeline.DefaultNoise, "upper bound on random edges added after a failed attempt")
	fs.StringVar(&flags.metrics, "metrics", "", "write Prometheus metrics to this file")

	_ = cmd.RegisterFlagCompletionFunc("algorithm", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{anonymize.AlgorithmDegree, anonymize.AlgorithmOrbit}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"csv", "json", "dot", "svg"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (f *anonymizeFlags) options(cmd *cobra.Command, input string) (pipeline.Options, error) {
	opts, err := f.input.options(cmd, input)
	if err != nil {
		return opts, err
	}
	f.output.apply(cmd, &opts)

	fs := cmd.Flags()
	if fs.Changed("algorithm") || opts.Algorithm == "" {
		opts.Algorithm = f.algorithm
	}
	if fs.Changed("k") || opts.K == 0 {
		if err := kerrors.ValidateK(f.k); err != nil {
			return opts, err
		}
		opts.K = f.k
	}
	if fs.Changed("seed") {
		opts.Seed = f.seed
	}
	if fs.Changed("max-attempts") {
		opts.MaxAttempts = f.maxAttempts
	}
	if fs.Changed("unbounded") {
		opts.Unbounded = f.unbounded
	}
	if fs.Changed("noise") {
		opts.Noise = f.noise
	}
	return opts, nil
}

func (c *CLI) runAnonymize(cmd *cobra.Command, opts pipeline.Options, metricsPath string) (err error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if metricsPath != "" {
		m := newMetrics()
		reset := m.register()
		defer func() {
			reset()
			if werr := m.writeFile(metricsPath); err == nil {
				err = werr
			}
		}()
	}

	runner, err := c.newRunner(opts.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("anonymization complete", "run", result.RunID)

	out := cmd.OutOrStdout()
	if opts.Output == "" {
		_, err = out.Write(result.Output)
		return err
	}
	s := result.Stats
	printSuccess(out, "Graph is %s-%s anonymous", StyleNumber.Render(strconv.Itoa(opts.K)), opts.Algorithm)
	printStats(out, s.VerticesAfter, s.EdgesAfter, s.AddedVertices(), s.AddedEdges())
	if in := s.Input; in.Duplicates > 0 || in.SelfLoops > 0 {
		printWarning(out, "Skipped %d duplicate and %d self-loop rows", in.Duplicates, in.SelfLoops)
	}
	printFile(out, opts.Output)
	return nil
}

