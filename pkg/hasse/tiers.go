package hasse

import (
	"slices"

	"github.com/matzehuels/hassetower/pkg/dag"
)

// Tier is an antichain of element IDs, in the order the peeling pass found them.
type Tier []string

// ComputeTiers peels g into tiers, from the maximal elements down.
//
// Tier 0 is every node without incoming edges. For each node of the current
// tier, each child whose only remaining incoming edge comes from that node
// joins the next tier; otherwise the edge to the child is removed, since the
// child still has another dominator that has not been peeled yet. Peeling
// stops when a tier comes out empty.
//
// ComputeTiers mutates g: it must be a graph built for this call alone and
// must not be reused afterwards. An empty graph yields no tiers.
func ComputeTiers(g *dag.DAG) []Tier {
	var tiers []Tier
	current := Tier(dag.NodeIDs(g.Sources()))
	for len(current) > 0 {
		tiers = append(tiers, current)
		var next Tier
		for _, id := range current {
			for _, child := range slices.Clone(g.Children(id)) {
				if g.InDegree(child) == 1 {
					next = append(next, child)
				} else {
					g.RemoveEdge(id, child)
				}
			}
		}
		current = next
	}
	return tiers
}
