package hasse

import (
	"github.com/matzehuels/hassetower/pkg/dag"
	"github.com/matzehuels/hassetower/pkg/poset"
)

// Node metadata keys.
const (
	MetaNames  = "names"  // []string of member entity names
	MetaVector = "vector" // poset.Vector
	MetaLabel  = "label"  // display label
	MetaTier   = "tier"   // tier index (reconstructed graphs only)
)

// BuildGraph returns the full comparability graph of elems: one node per
// element, keyed by [poset.Element.ID], and an edge u→v for every ordered
// pair where u strictly dominates v.
//
// Elements must be distinct and share one vector length, as produced by
// [poset.Group]. The graph may contain transitive edges.
func BuildGraph(elems []poset.Element) *dag.DAG {
	g := newElementGraph(elems)
	for i, u := range elems {
		for j, v := range elems {
			if i == j {
				continue
			}
			if poset.StrictlyDominates(u.Vector, v.Vector) {
				_ = g.AddEdge(dag.Edge{From: u.ID(), To: v.ID()})
			}
		}
	}
	return g
}

// newElementGraph returns a graph holding one node per element and no edges.
func newElementGraph(elems []poset.Element) *dag.DAG {
	g := dag.New(nil)
	for _, e := range elems {
		_ = g.AddNode(dag.Node{
			ID: e.ID(),
			Meta: dag.Metadata{
				MetaNames:  e.Names,
				MetaVector: e.Vector,
				MetaLabel:  e.Label(),
			},
		})
	}
	return g
}
