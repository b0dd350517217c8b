// Package automorphism computes the automorphism orbits of a simple
// undirected graph.
//
// # Algorithm
//
// [Engine] first refines a uniform coloring to the coarsest equitable
// partition: vertices are repeatedly split by their color and the multiset of
// their neighbors' colors. Vertices in different cells can never be mapped
// onto each other by an automorphism, so orbits are unions of vertices inside
// a single cell.
//
// Within a cell the engine proves that two vertices u and v are in the same
// orbit by constructing an automorphism that maps u to v. The search
// individualizes u on one side and v on the other, refines both colorings
// jointly, and branches on the first non-singleton cell until the colorings
// are discrete. A discrete pair defines a permutation that is accepted only
// if it preserves every edge. Each automorphism found merges all vertex
// pairs it maps onto each other, so repeated searches are rare on symmetric
// graphs.
//
// # Search Budget
//
// Individualization search is exponential in the worst case. Each pair test
// is limited to [Options.NodeBudget] search nodes. When the budget runs out
// the two vertices are reported in separate orbits; orbits may then be finer
// than the true ones but never coarser.
//
// # Caching
//
// [CachedEngine] memoizes orbits in a [cache.Cache] keyed by a digest of the
// vertex list and edge set, see [Digest].
package automorphism
