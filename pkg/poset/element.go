package poset

import (
	"fmt"
	"strings"
)

// Element is one distinct vector of the order together with every entity
// name that produced it. Tied entities share an element.
type Element struct {
	Vector Vector
	Names  []string
}

// ID is the element's identity in graphs: the tuple form of its vector.
func (e Element) ID() string { return e.Vector.String() }

// Label is the display text: member names, a newline, then the vector.
func (e Element) Label() string {
	return strings.Join(e.Names, ", ") + "\n" + e.Vector.String()
}

// Group collapses entities with identical vectors into elements.
//
// Elements keep the order in which their vector was first seen, and names
// inside an element keep input order. Group returns [ErrLengthMismatch] if
// the vectors are not all the same length, and [ErrEmptyVector] for
// zero-length vectors. An empty input yields no elements and no error.
func Group(entities []Entity) ([]Element, error) {
	if len(entities) == 0 {
		return nil, nil
	}
	width := len(entities[0].Vector)
	if width == 0 {
		return nil, fmt.Errorf("entity %q: %w", entities[0].Name, ErrEmptyVector)
	}

	index := make(map[string]int)
	var out []Element
	for _, e := range entities {
		if len(e.Vector) != width {
			return nil, fmt.Errorf("%w: entity %q has %d slots, want %d",
				ErrLengthMismatch, e.Name, len(e.Vector), width)
		}
		key := e.Vector.Key()
		if i, ok := index[key]; ok {
			out[i].Names = append(out[i].Names, e.Name)
			continue
		}
		index[key] = len(out)
		out = append(out, Element{Vector: e.Vector, Names: []string{e.Name}})
	}
	return out, nil
}
