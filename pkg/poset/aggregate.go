package poset

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Entity is a named vector, typically one row label of the source table.
type Entity struct {
	Name   string
	Vector Vector
}

// Aggregate counts, for each entity name, how often it appears in each
// column. Vector[i] is the number of rows listing the entity in column i.
//
// Entities are returned in first-seen order. A new entity starts as an
// all-zero vector sized to the row it first appears in; rows are expected to
// share one width, and a wider later row only extends the vectors it touches,
// which [Group] then reports as a length mismatch. Empty cells are treated as
// "no entity" and skipped.
func Aggregate(rows [][]string) []Entity {
	index := make(map[string]int)
	var out []Entity
	for _, row := range rows {
		for col, name := range row {
			if name == "" {
				continue
			}
			i, ok := index[name]
			if !ok {
				i = len(out)
				index[name] = i
				out = append(out, Entity{Name: name, Vector: make(Vector, len(row))})
			}
			if col >= len(out[i].Vector) {
				out[i].Vector = append(out[i].Vector, make(Vector, col+1-len(out[i].Vector))...)
			}
			out[i].Vector[col]++
		}
	}
	return out
}

// FromMap converts a name -> vector map into entities ordered by name.
// It returns an error if any vector fails [Vector.Validate].
func FromMap(m map[string]Vector) ([]Entity, error) {
	out := make([]Entity, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		v := m[name]
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("entity %q: %w", name, err)
		}
		out = append(out, Entity{Name: name, Vector: slices.Clone(v)})
	}
	return out, nil
}

// SortByName orders entities by name in place.
func SortByName(entities []Entity) {
	slices.SortStableFunc(entities, func(a, b Entity) int { return cmp.Compare(a.Name, b.Name) })
}
