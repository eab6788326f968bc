package hasse

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/hassetower/pkg/dag"
	"github.com/matzehuels/hassetower/pkg/poset"
)

var (
	// ErrUnknownElement is returned by [Reconstruct] when a tier names an
	// element that is not in the element list.
	ErrUnknownElement = errors.New("tier references unknown element")

	// ErrDuplicateTierMember is returned by [Reconstruct] when an element
	// appears in more than one tier position.
	ErrDuplicateTierMember = errors.New("element appears in more than one tier")
)

// Reconstruct builds the Hasse diagram of elems from their tiers.
//
// It starts from a fresh graph holding only the elements, then walks the
// tiers pairwise (higher i, lower i+1). The candidates for each lower tier
// are the whole higher tier followed by the leftovers carried from tiers
// above it, deepest first. A candidate gets an edge to a lower element it
// strictly dominates unless a path between them already exists. A candidate
// that fails to dominate at least one element of the lower tier stays a
// leftover and is retried against the next tier down; one that dominates
// the whole lower tier is resolved. Leftovers still pending below the last
// tier are dropped.
//
// The resulting node rows are the tier indices.
func Reconstruct(elems []poset.Element, tiers []Tier) (*dag.DAG, error) {
	g := newElementGraph(elems)

	vectors := make(map[string]poset.Vector, len(elems))
	for _, e := range elems {
		vectors[e.ID()] = e.Vector
	}

	rows := make(map[string]int, len(elems))
	for i, tier := range tiers {
		for _, id := range tier {
			if _, ok := vectors[id]; !ok {
				return nil, fmt.Errorf("%w: %s (tier %d)", ErrUnknownElement, id, i)
			}
			if prev, seen := rows[id]; seen {
				return nil, fmt.Errorf("%w: %s (tiers %d and %d)", ErrDuplicateTierMember, id, prev, i)
			}
			rows[id] = i
		}
	}
	g.SetRows(rows)
	for id, row := range rows {
		n, _ := g.Node(id)
		n.Meta[MetaTier] = row
	}

	var leftovers []string
	for i := 0; i+1 < len(tiers); i++ {
		candidates := slices.Concat([]string(tiers[i]), leftovers)
		unresolved := make(map[string]bool, len(candidates))

		for _, lo := range tiers[i+1] {
			for _, c := range candidates {
				if !poset.StrictlyDominates(vectors[c], vectors[lo]) {
					unresolved[c] = true
					continue
				}
				if !g.Reaches(c, lo) {
					_ = g.AddEdge(dag.Edge{From: c, To: lo})
				}
			}
		}

		leftovers = slices.DeleteFunc(candidates, func(id string) bool { return !unresolved[id] })
	}
	return g, nil
}
