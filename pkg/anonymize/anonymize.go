package anonymize

import (
	"context"
	"errors"

	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
)

// Algorithm names accepted by the CLI and configuration.
const (
	AlgorithmDegree = "degree"
	AlgorithmOrbit  = "orbit"
)

var (
	// ErrInvalidK is wrapped by [ValidateInput] when k < 1.
	ErrInvalidK = errors.New("invalid anonymity level")

	// ErrEmptyGraph is wrapped by [ValidateInput] when the graph is nil or
	// has no vertices.
	ErrEmptyGraph = errors.New("graph is empty")
)

// Algorithm transforms a graph in place so that it satisfies a structural
// k-anonymity guarantee.
//
// Anonymize returns the same *graph.Graph it was given, mutated. Malformed
// input is reported with an INVALID_INPUT coded error and the graph is left
// untouched.
type Algorithm interface {
	Name() string
	Anonymize(ctx context.Context, g *graph.Graph, k int) (*graph.Graph, error)
}

// ValidateInput rejects a nil or empty graph and k < 1. The returned error
// carries code INVALID_INPUT and wraps ErrEmptyGraph or ErrInvalidK.
func ValidateInput(g *graph.Graph, k int) error {
	if g == nil || g.VertexCount() == 0 {
		return kerrors.Wrap(kerrors.ErrCodeInvalidInput, ErrEmptyGraph, "cannot anonymize")
	}
	if err := kerrors.ValidateK(k); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidInput, ErrInvalidK, "%s", kerrors.UserMessage(err))
	}
	return nil
}
