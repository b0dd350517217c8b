package cli

import (
	"github.com/spf13/cobra"

	kerrors "github.com/matzehuels/kanon/pkg/errors"
	kio "github.com/matzehuels/kanon/pkg/io"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		input    inputFlags
		output   outputFlags
		noOrbits bool
	)

	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "Draw a graph as DOT or SVG",
		Long: `Render draws a graph with Graphviz. Members of the same automorphism orbit
share a fill color; copies added by orbit anonymization are drawn dashed.`,
		Example: `  kanon render anon.json -o anon.svg
  kanon render edges.csv --format dot --no-orbits`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := input.options(cmd, args[0])
			if err != nil {
				return err
			}
			output.apply(cmd, &opts)
			if opts.Format == "" {
				opts.Format = string(kio.FormatDOT)
				if opts.Output != "" {
					opts.Format = string(kio.FormatFromPath(opts.Output))
				}
			}
			if f := kio.Format(opts.Format); f != kio.FormatDOT && f != kio.FormatSVG {
				return kerrors.New(kerrors.ErrCodeUnsupported, "render writes dot or svg, not %s", opts.Format)
			}

			runner, err := c.newRunner(opts.NoCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx := cmd.Context()
			g, _, err := runner.Load(ctx, opts)
			if err != nil {
				return err
			}
			var orbits [][]int
			if !noOrbits {
				if orbits, err = runner.Orbits(ctx, g, opts); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if opts.Output == "" {
				data, err := runner.Encode(ctx, g, orbits, opts)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			if err := runner.Write(ctx, g, orbits, opts); err != nil {
				return err
			}
			printSuccess(out, "Rendered %s", args[0])
			printFile(out, opts.Output)
			return nil
		},
	}

	input.bind(cmd)
	output.bind(cmd)
	cmd.Flags().BoolVar(&noOrbits, "no-orbits", false, "do not color orbits")

	return cmd
}
