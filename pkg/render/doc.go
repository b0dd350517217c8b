// Package render draws graphs as undirected node-link diagrams with
// Graphviz.
//
// [ToDOT] produces DOT source that can be saved for external Graphviz tools
// or passed to [RenderSVG], which renders in process through
// [github.com/goccy/go-graphviz]:
//
//	dot := render.ToDOT(g, render.Options{Orbits: orbits})
//	svg, err := render.RenderSVG(ctx, dot)
//
// Copies created by orbit anonymization are drawn dashed on a grey fill.
// When orbits are supplied, members of the same non-trivial orbit share a
// fill color so structural equivalence classes are visible at a glance.
package render
