package poset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	rows := [][]string{
		{"ann", "bob", "cy"},
		{"bob", "ann", "cy"},
		{"ann", "cy", "bob"},
	}

	got := Aggregate(rows)

	require.Len(t, got, 3)
	assert.Equal(t, Entity{Name: "ann", Vector: Vector{2, 1, 0}}, got[0])
	assert.Equal(t, Entity{Name: "bob", Vector: Vector{1, 1, 1}}, got[1])
	assert.Equal(t, Entity{Name: "cy", Vector: Vector{0, 1, 2}}, got[2])
}

func TestAggregate_SkipsEmptyCells(t *testing.T) {
	got := Aggregate([][]string{{"ann", ""}, {"", "ann"}})

	require.Len(t, got, 1)
	assert.Equal(t, Vector{1, 1}, got[0].Vector)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestGroup_MergesTies(t *testing.T) {
	entities := []Entity{
		{Name: "x", Vector: Vector{1, 0}},
		{Name: "y", Vector: Vector{0, 1}},
		{Name: "z", Vector: Vector{1, 0}},
	}

	elems, err := Group(entities)

	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, []string{"x", "z"}, elems[0].Names)
	assert.Equal(t, "(1, 0)", elems[0].ID())
	assert.Equal(t, "x, z\n(1, 0)", elems[0].Label())
	assert.Equal(t, []string{"y"}, elems[1].Names)
}

func TestGroup_LengthMismatch(t *testing.T) {
	_, err := Group([]Entity{
		{Name: "x", Vector: Vector{1, 0}},
		{Name: "y", Vector: Vector{1}},
	})

	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.Contains(t, err.Error(), `"y"`)
}

func TestGroup_EmptyVector(t *testing.T) {
	_, err := Group([]Entity{{Name: "x", Vector: Vector{}}})
	assert.ErrorIs(t, err, ErrEmptyVector)
}

func TestGroup_Empty(t *testing.T) {
	elems, err := Group(nil)
	require.NoError(t, err)
	assert.Empty(t, elems)
}

func TestFromMap(t *testing.T) {
	got, err := FromMap(map[string]Vector{"b": {1, 2}, "a": {3, 0}})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)

	_, err = FromMap(map[string]Vector{"bad": {1, -2}})
	assert.ErrorIs(t, err, ErrNegativeCount)
}

func TestSortByName(t *testing.T) {
	es := []Entity{{Name: "c"}, {Name: "a"}, {Name: "b"}}
	SortByName(es)
	assert.Equal(t, "a", es[0].Name)
	assert.Equal(t, "c", es[2].Name)
}
