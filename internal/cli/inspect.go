package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/kanon/pkg/anonymize"
	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
)

// report is the result of inspecting a graph.
type report struct {
	Input        string                  `json:"input" yaml:"input"`
	Vertices     int                     `json:"vertices" yaml:"vertices"`
	Edges        int                     `json:"edges" yaml:"edges"`
	Copies       int                     `json:"copies" yaml:"copies"`
	DegreeGroups []anonymize.DegreeGroup `json:"degree_groups" yaml:"degree_groups"`
	// DegreeAnonymity is the largest k for which the graph is k-degree
	// anonymous.
	DegreeAnonymity int `json:"degree_anonymity" yaml:"degree_anonymity"`

	// Orbit fields are omitted with --no-orbits.
	OrbitGroups    []orbitGroup `json:"orbit_groups,omitempty" yaml:"orbit_groups,omitempty"`
	OrbitAnonymity int          `json:"orbit_anonymity,omitempty" yaml:"orbit_anonymity,omitempty"`

	K       int   `json:"k" yaml:"k"`
	KDegree bool  `json:"k_degree_anonymous" yaml:"k_degree_anonymous"`
	KOrbit  *bool `json:"k_orbit_anonymous,omitempty" yaml:"k_orbit_anonymous,omitempty"`
}

// orbitGroup counts the orbits of one size.
type orbitGroup struct {
	Size  int `json:"size" yaml:"size"`
	Count int `json:"count" yaml:"count"`
}

// newReport summarizes g. orbits may be nil when orbit analysis was skipped.
func newReport(input string, g *graph.Graph, orbits [][]int, k int) report {
	r := report{
		Input:           input,
		Vertices:        g.VertexCount(),
		Edges:           g.EdgeCount(),
		DegreeGroups:    anonymize.DegreeGroups(g),
		DegreeAnonymity: anonymize.DegreeAnonymity(g),
		K:               k,
		KDegree:         anonymize.IsKDegreeAnonymous(g, k),
	}
	for _, v := range g.Vertices() {
		if v.IsTagged() {
			r.Copies++
		}
	}
	if orbits != nil {
		for size, count := range anonymize.OrbitSizeHistogram(orbits) {
			r.OrbitGroups = append(r.OrbitGroups, orbitGroup{Size: size, Count: count})
		}
		slices.SortFunc(r.OrbitGroups, func(a, b orbitGroup) int { return cmp.Compare(b.Size, a.Size) })
		r.OrbitAnonymity = anonymize.MinOrbitSize(orbits)
		ok := anonymize.IsKOrbitAnonymous(orbits, k)
		r.KOrbit = &ok
	}
	return r
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		input    inputFlags
		k        int
		format   string
		noOrbits bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Report degree groups, orbit sizes and anonymity levels",
		Example: `  kanon inspect edges.csv -k 3
  kanon inspect anon.json --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := kerrors.ValidateK(k); err != nil {
				return err
			}
			opts, err := input.options(cmd, args[0])
			if err != nil {
				return err
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
			return writeReport(cmd.OutOrStdout(), newReport(args[0], g, orbits, k), format)
		},
	}

	input.bind(cmd)
	fs := cmd.Flags()
	fs.IntVarP(&k, "k", "k", 2, "anonymity level to check")
	fs.StringVar(&format, "output", "text", "report format: text, yaml or json")
	fs.BoolVar(&noOrbits, "no-orbits", false, "skip automorphism orbit analysis")

	return cmd
}

func writeReport(w io.Writer, r report, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "text", "":
		printText(w, r)
		return nil
	}
	return kerrors.New(kerrors.ErrCodeInvalidInput, "unknown report format %q (want text, yaml or json)", format)
}

func printText(w io.Writer, r report) {
	printTitle(w, r.Input)
	printKeyValue(w, "vertices", strconv.Itoa(r.Vertices))
	printKeyValue(w, "edges", strconv.Itoa(r.Edges))
	if r.Copies > 0 {
		printKeyValue(w, "copies", strconv.Itoa(r.Copies))
	}

	fmt.Fprintln(w)
	printTitle(w, "Degrees")
	for _, grp := range r.DegreeGroups {
		printKeyValue(w, "degree "+strconv.Itoa(grp.Degree), countLabel(grp.Count, "vertex", "vertices"))
	}
	printKeyValue(w, "anonymity", strconv.Itoa(r.DegreeAnonymity))

	if r.KOrbit != nil {
		fmt.Fprintln(w)
		printTitle(w, "Orbits")
		for _, grp := range r.OrbitGroups {
			printKeyValue(w, "size "+strconv.Itoa(grp.Size), countLabel(grp.Count, "orbit", "orbits"))
		}
		printKeyValue(w, "anonymity", strconv.Itoa(r.OrbitAnonymity))
	}

	fmt.Fprintln(w)
	printCheck(w, fmt.Sprintf("%d-degree anonymous", r.K), r.KDegree)
	if r.KOrbit != nil {
		printCheck(w, fmt.Sprintf("%d-orbit anonymous", r.K), *r.KOrbit)
	} else {
		printDetail(w, "orbit analysis skipped")
	}
}

func countLabel(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
