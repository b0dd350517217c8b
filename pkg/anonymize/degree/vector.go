package degree

import (
	"cmp"
	"slices"

	"github.com/matzehuels/kanon/pkg/graph"
)

// DegreeContext pairs a vertex handle with a degree value. Depending on the
// stage it holds the current degree, the anonymized target degree, or the
// remaining number of edges the vertex still needs.
type DegreeContext struct {
	Vertex int
	Degree int
}

// BuildVector snapshots the degree of every vertex of g, sorted by degree
// descending. Vertices of equal degree keep handle order.
func BuildVector(g *graph.Graph) []DegreeContext {
	v := make([]DegreeContext, g.VertexCount())
	for h := range v {
		v[h] = DegreeContext{Vertex: h, Degree: g.Degree(h)}
	}
	slices.SortStableFunc(v, func(a, b DegreeContext) int {
		return cmp.Compare(b.Degree, a.Degree)
	})
	return v
}

// AnonymizeVector partitions a descending degree vector into blocks of at
// least k consecutive entries and raises every entry of a block to the
// block's first (largest) degree. The input is not modified.
//
// Blocks are carved from the tail: while at least 2k entries remain, the
// trailing k form a block; whatever is left, including an undersized
// remainder, forms the leading block. A vector shorter than k becomes a
// single block.
func AnonymizeVector(v []DegreeContext, k int) []DegreeContext {
	out := slices.Clone(v)
	if k < 1 {
		k = 1
	}
	size := len(out)
	for size >= 2*k {
		homogenize(out[size-k : size])
		size -= k
	}
	homogenize(out[:size])
	return out
}

func homogenize(block []DegreeContext) {
	if len(block) == 0 {
		return
	}
	d := block[0].Degree
	for i := range block {
		block[i].Degree = d
	}
}

// Delta returns anonymized[i] - original[i] for aligned vectors. The result
// carries the vertex handles of original.
func Delta(original, anonymized []DegreeContext) []DegreeContext {
	out := make([]DegreeContext, len(original))
	for i, o := range original {
		out[i] = DegreeContext{Vertex: o.Vertex, Degree: anonymized[i].Degree - o.Degree}
	}
	return out
}

// Sum returns the total of the degree values in v.
func Sum(v []DegreeContext) int {
	total := 0
	for _, e := range v {
		total += e.Degree
	}
	return total
}
