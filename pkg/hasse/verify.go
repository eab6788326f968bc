package hasse

import (
	"errors"
	"fmt"

	"github.com/matzehuels/hassetower/pkg/dag/transform"
	"github.com/matzehuels/hassetower/pkg/poset"
)

var (
	// ErrNotDominating means an edge links two elements where the source does
	// not strictly dominate the target.
	ErrNotDominating = errors.New("edge source does not dominate target")

	// ErrNotMinimal means an edge is implied by a longer path.
	ErrNotMinimal = errors.New("edge is not a cover")

	// ErrNotCovered means a dominating pair has no connecting path.
	ErrNotCovered = errors.New("dominating pair is not connected")

	// ErrTierMismatch means the tiers do not match the longest-path layering
	// of the order.
	ErrTierMismatch = errors.New("tier assignment is inconsistent")
)

// Verify recomputes dominance among the diagram's elements and checks that
//
//   - every edge is a cover: the source strictly dominates the target and no
//     third element sits between them,
//   - every strictly dominating pair is connected by a path,
//   - the tiers partition the elements and place each one exactly one tier
//     below its deepest dominator.
//
// It returns the first violation found, wrapped with the offending IDs.
func Verify(d *Diagram) error {
	if err := d.Graph.Validate(); err != nil {
		return err
	}

	for _, e := range d.Graph.Edges() {
		u, _ := d.Element(e.From)
		v, _ := d.Element(e.To)
		if !poset.StrictlyDominates(u.Vector, v.Vector) {
			return fmt.Errorf("%w: %s -> %s", ErrNotDominating, e.From, e.To)
		}
		for _, w := range d.Elements {
			if poset.StrictlyDominates(u.Vector, w.Vector) && poset.StrictlyDominates(w.Vector, v.Vector) {
				return fmt.Errorf("%w: %s -> %s passes through %s", ErrNotMinimal, e.From, e.To, w.ID())
			}
		}
	}

	reach := transform.Reachability(d.Graph)
	for _, u := range d.Elements {
		for _, v := range d.Elements {
			if poset.StrictlyDominates(u.Vector, v.Vector) && !reach[u.ID()][v.ID()] {
				return fmt.Errorf("%w: %s -> %s", ErrNotCovered, u.ID(), v.ID())
			}
		}
	}

	return verifyTiers(d)
}

func verifyTiers(d *Diagram) error {
	seen := make(map[string]int, len(d.Elements))
	for i, tier := range d.Tiers {
		for _, id := range tier {
			if _, ok := d.Element(id); !ok {
				return fmt.Errorf("%w: %s", ErrUnknownElement, id)
			}
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("%w: %s (tiers %d and %d)", ErrDuplicateTierMember, id, prev, i)
			}
			seen[id] = i
		}
	}
	if len(seen) != len(d.Elements) {
		return fmt.Errorf("%w: %d of %d elements tiered", ErrTierMismatch, len(seen), len(d.Elements))
	}

	want := transform.AssignLayers(BuildGraph(d.Elements))
	for id, tier := range seen {
		if want[id] != tier {
			return fmt.Errorf("%w: %s in tier %d, expected %d", ErrTierMismatch, id, tier, want[id])
		}
		if got := d.Tier(id); got != tier {
			return fmt.Errorf("%w: %s has row %d but sits in tier %d", ErrTierMismatch, id, got, tier)
		}
	}
	return nil
}
