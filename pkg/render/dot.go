package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/kanon/pkg/graph"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the degree and generation to node labels.
	Detailed bool
	// Orbits, if set, colors members of each orbit with more than one
	// member alike.
	Orbits [][]int
	// Layout is the Graphviz layout engine. Defaults to "neato".
	Layout string
}

// palette cycles through fill colors for orbit classes.
var palette = []string{
	"#fde68a", "#bfdbfe", "#bbf7d0", "#fecaca", "#ddd6fe",
	"#fbcfe8", "#a5f3fc", "#fed7aa", "#d9f99d", "#e5e7eb",
}

// ToDOT converts g to Graphviz DOT. Node ids are vertex handles, labels the
// marker form of each vertex.
func ToDOT(g *graph.Graph, opts Options) string {
	layout := opts.Layout
	if layout == "" {
		layout = "neato"
	}
	fill := orbitColors(opts.Orbits, g.VertexCount())

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", layout)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for h, v := range g.Vertices() {
		attrs := []string{fmt.Sprintf("label=%q", label(g, h, v, opts.Detailed))}
		if v.IsTagged() {
			attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey")
		}
		if c, ok := fill[h]; ok && !v.IsTagged() {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", h, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(g *graph.Graph, h int, v graph.Vertex, detailed bool) string {
	if !detailed {
		return v.String()
	}
	parts := []string{v.String(), fmt.Sprintf("deg %d", g.Degree(h))}
	if v.IsTagged() {
		parts = append(parts, fmt.Sprintf("gen %d", v.Generation))
	}
	return strings.Join(parts, "\n")
}

func orbitColors(orbits [][]int, n int) map[int]string {
	fill := make(map[int]string)
	class := 0
	for _, o := range orbits {
		if len(o) < 2 {
			continue
		}
		c := palette[class%len(palette)]
		class++
		for _, h := range o {
			if h >= 0 && h < n {
				fill[h] = c
			}
		}
	}
	return fill
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from the
// origin regardless of Graphviz's translate offsets.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
