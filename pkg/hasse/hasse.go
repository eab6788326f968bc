package hasse

import (
	"fmt"

	"github.com/matzehuels/hassetower/pkg/dag"
	"github.com/matzehuels/hassetower/pkg/poset"
)

// Diagram is a finished Hasse diagram.
type Diagram struct {
	// Elements are the distinct vectors in first-seen order.
	Elements []poset.Element
	// Tiers are the antichains from the maximal elements down.
	Tiers []Tier
	// Graph holds exactly the covering edges. Node rows are tier indices.
	Graph *dag.DAG

	index map[string]int
}

// Build computes the Hasse diagram of entities.
//
// Tied entities collapse into one element. Build returns
// [poset.ErrLengthMismatch] if the vectors differ in length. An empty input
// yields an empty diagram.
func Build(entities []poset.Entity) (*Diagram, error) {
	elems, err := poset.Group(entities)
	if err != nil {
		return nil, err
	}

	tiers := ComputeTiers(BuildGraph(elems))

	g, err := Reconstruct(elems, tiers)
	if err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}
	return newDiagram(elems, tiers, g), nil
}

func newDiagram(elems []poset.Element, tiers []Tier, g *dag.DAG) *Diagram {
	index := make(map[string]int, len(elems))
	for i, e := range elems {
		index[e.ID()] = i
	}
	return &Diagram{Elements: elems, Tiers: tiers, Graph: g, index: index}
}

// Element returns the element with the given ID.
func (d *Diagram) Element(id string) (poset.Element, bool) {
	i, ok := d.index[id]
	if !ok {
		return poset.Element{}, false
	}
	return d.Elements[i], true
}

// Tier returns the tier index of the element, or -1 if it is unknown.
func (d *Diagram) Tier(id string) int {
	n, ok := d.Graph.Node(id)
	if !ok {
		return -1
	}
	return n.Row
}

// EdgeCount returns the number of covering edges.
func (d *Diagram) EdgeCount() int { return d.Graph.EdgeCount() }
