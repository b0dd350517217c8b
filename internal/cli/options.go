package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/kanon/pkg/pipeline"
)

// inputFlags are shared by every command that reads a graph.
type inputFlags struct {
	config     string
	delimiter  string
	comment    string
	parseTags  bool
	noCache    bool
	nodeBudget int
}

func (f *inputFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "TOML config file")
	fs.StringVarP(&f.delimiter, "delimiter", "d", "", `edge-list field delimiter, \t for tab (default ",")`)
	fs.StringVar(&f.comment, "comment", "", `edge-list comment character (default "#")`)
	fs.BoolVar(&f.parseTags, "parse-tags", false, "read leading '-' markers in edge lists as copy generations")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the orbit cache")
	fs.IntVar(&f.nodeBudget, "node-budget", 0, "automorphism search budget per vertex pair (default 20000)")
}

// options starts from the config file, if any, and overlays the flags the
// user set. Defaults are applied later by the pipeline.
func (f *inputFlags) options(cmd *cobra.Command, input string) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		var err error
		if opts, err = pipeline.LoadConfig(f.config); err != nil {
			return pipeline.Options{}, err
		}
	}
	opts.Input = input

	fs := cmd.Flags()
	if fs.Changed("delimiter") {
		opts.Delimiter = unescapeDelimiter(f.delimiter)
	}
	if fs.Changed("comment") {
		opts.Comment = f.comment
	}
	if fs.Changed("parse-tags") {
		opts.ParseTags = f.parseTags
	}
	if fs.Changed("node-budget") {
		opts.NodeBudget = f.nodeBudget
	}
	opts.NoCache = f.noCache
	opts.Logger = loggerFromContext(cmd.Context())
	return opts, nil
}

func unescapeDelimiter(s string) string {
	if s == `\t` {
		return "\t"
	}
	return s
}

// outputFlags are shared by every command that writes a graph.
type outputFlags struct {
	output   string
	format   string
	detailed bool
}

func (f *outputFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: csv, json, dot or svg (default from output extension)")
	fs.BoolVar(&f.detailed, "detailed", false, "label rendered vertices with degree and generation")
}

func (f *outputFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	opts.Output = f.output
	if fs.Changed("format") {
		opts.Format = f.format
	}
	if fs.Changed("detailed") {
		opts.Detailed = f.detailed
	}
}
