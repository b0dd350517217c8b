// Package graph provides the simple undirected graph shared by all
// anonymization algorithms.
//
// # Overview
//
// A [Graph] owns a set of [Vertex] values, a set of [Edge] values and an
// adjacency index that is always consistent with the edge set. Vertices live
// in an arena and are addressed by stable integer handles: the handle of a
// vertex is its position in [Graph.Vertices]. Algorithms pass handles around
// instead of vertex values, which keeps degree vectors and orbits cheap to
// build and compare.
//
// # Basic Usage
//
//	g := graph.New()
//	_ = g.AddEdgeByName("alice", "bob")
//	_ = g.AddEdgeByName("bob", "carol")
//
//	bob, _ := g.Lookup(graph.V("bob"))
//	fmt.Println(g.Degree(bob)) // 2
//
// # Simplicity
//
// Graphs are simple: [Graph.AddEdge] rejects self-loops with [ErrSelfLoop]
// and treats parallel edges as no-ops. [Graph.AddVertex] is idempotent.
// There are no removal operations - anonymization only ever adds vertices
// and edges, so handles stay valid for the lifetime of the graph.
//
// # Copy Generations
//
// Orbit anonymization duplicates vertices. A copy keeps the original's Name
// and carries a positive Generation. [Vertex.String] renders a copy with one
// [TagMarker] per generation ("--a" is the second generation copy of "a"),
// which is also the form written by edge-list exporters.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Every mutation is visible
// to all holders of the same *Graph.
package graph
