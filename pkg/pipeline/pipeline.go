// Package pipeline runs kanon end to end: load a graph, anonymize it, verify
// the guarantee, and encode the result.
//
// The CLI builds an [Options] value from defaults, an optional TOML file
// ([LoadConfig]) and its flags, then hands it to a [Runner]:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "edges.csv",
//	    Algorithm: "orbit",
//	    K:         3,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Output))
//
// Stages can also be run one at a time with [Runner.Load],
// [Runner.Anonymize], [Runner.Verify] and [Runner.Encode].
package pipeline

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/matzehuels/kanon/pkg/anonymize"
	"github.com/matzehuels/kanon/pkg/anonymize/degree"
	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
	kio "github.com/matzehuels/kanon/pkg/io"
)

// Default values shared by the CLI and the config file.
const (
	DefaultAlgorithm   = anonymize.AlgorithmDegree
	DefaultK           = 2
	DefaultMaxAttempts = degree.DefaultMaxAttempts
	DefaultNoise       = degree.DefaultNoiseAddition
	DefaultSeed        = uint64(degree.DefaultSeed)
	DefaultDelimiter   = ","
	DefaultComment     = "#"
)

// Options holds every parameter of a pipeline run.
type Options struct {
	// Anonymization
	Algorithm string `json:"algorithm" validate:"oneof=degree orbit"`
	// K of zero selects DefaultK. Callers reading k from users reject an
	// explicit zero before it gets here, see ParseConfig.
	K           int    `json:"k" validate:"min=1,max=1048576"`
	MaxAttempts int    `json:"max_attempts,omitempty" validate:"min=0"`
	Unbounded   bool   `json:"unbounded,omitempty"`
	Noise       int    `json:"noise,omitempty" validate:"min=0"`
	Seed        uint64 `json:"seed,omitempty"`
	NodeBudget  int    `json:"node_budget,omitempty" validate:"min=0"`

	// Input
	Input     string `json:"input,omitempty"`
	Delimiter string `json:"delimiter,omitempty"`
	Comment   string `json:"comment,omitempty"`
	ParseTags bool   `json:"parse_tags,omitempty"`

	// Output
	Output   string `json:"output,omitempty"`
	Format   string `json:"format,omitempty" validate:"omitempty,oneof=csv json dot svg tsv txt edges"`
	Detailed bool   `json:"detailed,omitempty"`

	// NoCache disables the orbit cache for this run.
	NoCache bool `json:"no_cache,omitempty"`

	Logger *log.Logger `json:"-" validate:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string
	// Graph is the anonymized graph.
	Graph *graph.Graph
	// Orbits are the orbits of the anonymized graph when the orbit algorithm
	// ran, nil otherwise.
	Orbits [][]int
	// Verified is set once the anonymity guarantee has been checked.
	Verified bool
	// Output is the encoded graph when Options.Output is empty.
	Output []byte
	Stats  Stats
}

// Stats contains sizes and timings of a run.
type Stats struct {
	VerticesBefore int           `json:"vertices_before" yaml:"vertices_before"`
	EdgesBefore    int           `json:"edges_before" yaml:"edges_before"`
	VerticesAfter  int           `json:"vertices_after" yaml:"vertices_after"`
	EdgesAfter     int           `json:"edges_after" yaml:"edges_after"`
	LoadTime       time.Duration `json:"load_time" yaml:"load_time"`
	AnonymizeTime  time.Duration `json:"anonymize_time" yaml:"anonymize_time"`
	Input          kio.EdgeListStats
}

// AddedVertices returns the number of copies introduced by the run.
func (s Stats) AddedVertices() int { return s.VerticesAfter - s.VerticesBefore }

// AddedEdges returns the number of edges introduced by the run.
func (s Stats) AddedEdges() int { return s.EdgesAfter - s.EdgesBefore }

var validate = validator.New()

func newRunID() string { return uuid.New().String() }

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.K == 0 {
		o.K = DefaultK
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Noise == 0 {
		o.Noise = DefaultNoise
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
		if strings.EqualFold(filepath.Ext(o.Input), ".tsv") {
			o.Delimiter = "\t"
		}
	}
	if o.Comment == "" {
		o.Comment = DefaultComment
	}
	o.Format = strings.ToLower(o.Format)
	if o.Format == "" {
		o.Format = string(kio.FormatEdgeList)
		if o.Output != "" {
			o.Format = string(kio.FormatFromPath(o.Output))
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks every field.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := validate.Struct(o); err != nil {
		return formatValidationError(err)
	}
	if err := kerrors.ValidateDelimiter(o.Delimiter); err != nil {
		return err
	}
	for _, p := range []string{o.Input, o.Output} {
		if p == "" {
			continue
		}
		if err := kerrors.ValidateFilePath(p); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// EdgeListOptions returns the edge-list settings of o.
func (o *Options) EdgeListOptions() kio.EdgeListOptions {
	return kio.EdgeListOptions{
		Delimiter: o.Delimiter,
		Comment:   o.Comment,
		ParseTags: o.ParseTags,
	}
}

// DegreeOptions returns the settings of the degree anonymizer.
func (o *Options) DegreeOptions() degree.Options {
	return degree.Options{
		MaxAttempts:   o.MaxAttempts,
		Unbounded:     o.Unbounded,
		NoiseAddition: o.Noise,
		Seed:          o.Seed,
		Logger:        o.Logger,
	}
}

// formatValidationError turns the first validator failure into an
// INVALID_INPUT error naming the field.
func formatValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "invalid options")
	}
	e := errs[0]
	switch e.Tag() {
	case "min":
		return kerrors.New(kerrors.ErrCodeInvalidInput, "%s: must be at least %s, got %v", e.Field(), e.Param(), e.Value())
	case "max":
		return kerrors.New(kerrors.ErrCodeInvalidInput, "%s: must not exceed %s, got %v", e.Field(), e.Param(), e.Value())
	case "oneof":
		return kerrors.New(kerrors.ErrCodeInvalidInput, "%s: must be one of [%s], got %q", e.Field(), e.Param(), e.Value())
	default:
		return kerrors.New(kerrors.ErrCodeInvalidInput, "%s: validation failed (%s)", e.Field(), e.Tag())
	}
}
