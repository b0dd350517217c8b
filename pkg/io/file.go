package io

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
)

// Format is a graph file format.
type Format string

const (
	FormatEdgeList Format = "csv"
	FormatJSON     Format = "json"
	FormatDOT      Format = "dot"
	FormatSVG      Format = "svg"
)

// FormatFromPath maps a file extension to a format. .json is JSON, .dot and
// .gv are DOT, .svg is SVG; anything else is an edge list.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".dot", ".gv":
		return FormatDOT
	case ".svg":
		return FormatSVG
	default:
		return FormatEdgeList
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatEdgeList, FormatJSON, FormatDOT, FormatSVG:
		return f, nil
	case "tsv", "txt", "edges":
		return FormatEdgeList, nil
	}
	return "", kerrors.New(kerrors.ErrCodeUnsupported, "unknown format %q (want csv, json, dot or svg)", s)
}

// ReadFile loads a graph from path. Edge-list options apply to edge lists
// only; a .tsv file defaults to a tab delimiter.
func ReadFile(path string, opts EdgeListOptions) (*graph.Graph, EdgeListStats, error) {
	if err := kerrors.ValidateFilePath(path); err != nil {
		return nil, EdgeListStats{}, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, EdgeListStats{}, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return nil, EdgeListStats{}, kerrors.Wrap(kerrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	switch FormatFromPath(path) {
	case FormatJSON:
		g, err := ReadJSON(f)
		if err != nil {
			return nil, EdgeListStats{}, err
		}
		return g, EdgeListStats{Edges: g.EdgeCount()}, nil
	case FormatDOT, FormatSVG:
		return nil, EdgeListStats{}, kerrors.New(kerrors.ErrCodeUnsupported, "cannot read %s: %s is an output-only format", path, FormatFromPath(path))
	}
	if opts.Delimiter == "" && strings.EqualFold(filepath.Ext(path), ".tsv") {
		opts.Delimiter = "\t"
	}
	return ReadEdgeList(bufio.NewReader(f), opts)
}

// WriteFile writes g to path in format, which must be JSON or an edge list.
// DOT and SVG output is produced by the render package.
func WriteFile(g *graph.Graph, path string, format Format, opts EdgeListOptions) (err error) {
	if err := kerrors.ValidateFilePath(path); err != nil {
		return err
	}
	var write func(*bufio.Writer) error
	switch format {
	case FormatJSON:
		write = func(w *bufio.Writer) error { return WriteJSON(g, w) }
	case FormatEdgeList:
		write = func(w *bufio.Writer) error { return WriteEdgeList(g, w, opts) }
	default:
		return kerrors.New(kerrors.ErrCodeUnsupported, "io cannot write %s", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	return w.Flush()
}
