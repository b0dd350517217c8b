package anonymize

import (
	"cmp"
	"slices"

	"github.com/matzehuels/kanon/pkg/graph"
)

// DegreeGroup is one class of the partition of vertices by degree.
type DegreeGroup struct {
	Degree int `json:"degree" yaml:"degree"`
	Count  int `json:"count" yaml:"count"`
}

// DegreeGroups partitions the vertices of g by degree and returns the
// classes sorted by degree descending.
func DegreeGroups(g *graph.Graph) []DegreeGroup {
	counts := make(map[int]int)
	for h := range g.VertexCount() {
		counts[g.Degree(h)]++
	}
	groups := make([]DegreeGroup, 0, len(counts))
	for d, c := range counts {
		groups = append(groups, DegreeGroup{Degree: d, Count: c})
	}
	slices.SortFunc(groups, func(a, b DegreeGroup) int { return cmp.Compare(b.Degree, a.Degree) })
	return groups
}

// IsKDegreeAnonymous reports whether every vertex of g shares its degree
// with at least k-1 other vertices.
func IsKDegreeAnonymous(g *graph.Graph, k int) bool {
	for _, grp := range DegreeGroups(g) {
		if grp.Count < k {
			return false
		}
	}
	return true
}

// DegreeAnonymity returns the largest k for which g is k-degree anonymous:
// the size of its smallest degree group. An empty graph yields 0.
func DegreeAnonymity(g *graph.Graph) int {
	least := 0
	for _, grp := range DegreeGroups(g) {
		if least == 0 || grp.Count < least {
			least = grp.Count
		}
	}
	return least
}

// MinOrbitSize returns the size of the smallest non-empty orbit, or 0 when
// there are none.
func MinOrbitSize(orbits [][]int) int {
	sizes := OrbitSizes(orbits)
	if len(sizes) == 0 {
		return 0
	}
	return slices.Min(sizes)
}

// IsKOrbitAnonymous reports whether every non-empty orbit has at least k
// members.
func IsKOrbitAnonymous(orbits [][]int, k int) bool {
	for _, o := range orbits {
		if len(o) > 0 && len(o) < k {
			return false
		}
	}
	return true
}

// OrbitSizeHistogram maps orbit size to the number of orbits of that size.
func OrbitSizeHistogram(orbits [][]int) map[int]int {
	hist := make(map[int]int)
	for _, size := range OrbitSizes(orbits) {
		hist[size]++
	}
	return hist
}

// OrbitSizes returns the size of every non-empty orbit, in orbit order.
func OrbitSizes(orbits [][]int) []int {
	sizes := make([]int, 0, len(orbits))
	for _, o := range orbits {
		if len(o) > 0 {
			sizes = append(sizes, len(o))
		}
	}
	return sizes
}
