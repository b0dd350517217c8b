// Package pkg provides the core libraries for kanon graph anonymization.
//
// # Overview
//
// kanon rewrites a simple undirected graph so that structural queries cannot
// single out a vertex. Two guarantees are supported:
//
//   - k-degree anonymity: every degree value is shared by at least k vertices.
//     Edges are added until the degree sequence can be realized.
//   - k-orbit anonymity (k-symmetry): every automorphism orbit has at least k
//     members. Under-sized orbits are duplicated together with their edges.
//
// # Architecture
//
// The typical data flow through kanon:
//
//	Edge list / JSON node-link file
//	         ↓
//	    [io] package (load into a graph)
//	         ↓
//	    [anonymize/degree] or [anonymize/orbit] (add edges or copy orbits)
//	         ↓
//	    [anonymize] checks (verify k-anonymity)
//	         ↓
//	    CSV/JSON/DOT/SVG output
//
// [pipeline] runs these steps for the CLI and is the easiest entry point.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/kanon/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//	res, err := runner.Execute(context.Background(), pipeline.Options{
//	    Algorithm: "orbit",
//	    K:         3,
//	    Input:     "edges.csv",
//	    Output:    "anon.json",
//	})
//
// # Main Packages
//
// ## Domain Logic
//
// [graph] - Undirected simple graph with stable integer handles. Vertices are
// (Name, Generation) pairs; generation zero marks an original vertex.
//
// [anonymize] - The Algorithm interface, k validation and the degree and
// orbit anonymity checks.
//
// [anonymize/degree] - Degree vector, right-to-left grouping, delta and the
// first-fit realizer, driven by a retry loop that adds random noise edges.
//
// [anonymize/orbit] - Orbit copying against an Engine that reports the
// automorphism orbits of a graph.
//
// [automorphism] - Reference Engine based on colour refinement and
// individualization search, plus a cache-backed decorator.
//
// ## Input and Output
//
// [io] - Delimited edge lists and JSON node-link documents.
//
// [render] - Graphviz DOT generation and SVG rendering with orbit colouring.
//
// [generate] - Seeded path, cycle, star, complete and random graphs.
//
// ## Infrastructure
//
// [pipeline] - Options (TOML config, validation, defaults) and the Runner
// that loads, anonymizes, verifies and writes a graph.
//
// [cache] - Cache interface with file and no-op backends, content hashing and
// key derivation.
//
// [observability] - Hook interfaces for anonymization and engine events with
// a global registry.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/anonymize/...          # Specific package
//	go test -run Example                 # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/graph
// [anonymize]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/anonymize
// [anonymize/degree]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/anonymize/degree
// [anonymize/orbit]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/anonymize/orbit
// [automorphism]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/automorphism
// [io]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/render
// [generate]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/generate
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/kanon/pkg/errors
package pkg
