package hasse

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/hassetower/pkg/dag"
	"github.com/matzehuels/hassetower/pkg/dag/transform"
	"github.com/matzehuels/hassetower/pkg/poset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ent(name string, v ...int) poset.Entity {
	return poset.Entity{Name: name, Vector: poset.Vector(v)}
}

func edgeList(g *dag.DAG) []string {
	var out []string
	for _, e := range g.Edges() {
		out = append(out, e.From+" -> "+e.To)
	}
	return out
}

func TestBuild_Chain(t *testing.T) {
	d, err := Build([]poset.Entity{
		ent("A", 3, 1),
		ent("B", 2, 2),
		ent("C", 1, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, []Tier{{"(3, 1)"}, {"(2, 2)"}, {"(1, 1)"}}, d.Tiers)
	assert.Equal(t, []string{"(3, 1) -> (2, 2)", "(2, 2) -> (1, 1)"}, edgeList(d.Graph))
	assert.False(t, d.Graph.HasEdge("(3, 1)", "(1, 1)"), "transitive edge must not survive")
	require.NoError(t, Verify(d))
}

func TestBuild_CoverSkipsTier(t *testing.T) {
	d, err := Build([]poset.Entity{
		ent("a", 5, 1),
		ent("b", 4, 1),
		ent("c", 1, 1),
		ent("d", 2, 6),
	})
	require.NoError(t, err)

	assert.Equal(t, []Tier{{"(5, 1)", "(2, 6)"}, {"(4, 1)"}, {"(1, 1)"}}, d.Tiers)
	assert.ElementsMatch(t, []string{
		"(5, 1) -> (4, 1)",
		"(4, 1) -> (1, 1)",
		"(2, 6) -> (1, 1)",
	}, edgeList(d.Graph))
	require.NoError(t, Verify(d))
}

func TestBuild_LeftoversUseExistingPaths(t *testing.T) {
	d, err := Build([]poset.Entity{
		ent("a", 5, 1),
		ent("b", 4, 1),
		ent("c", 1, 1),
		ent("d", 2, 6),
		ent("f", 1, 6),
	})
	require.NoError(t, err)

	assert.Equal(t, []Tier{{"(5, 1)", "(2, 6)"}, {"(4, 1)", "(1, 6)"}, {"(1, 1)"}}, d.Tiers)
	assert.Equal(t, []string{
		"(5, 1) -> (4, 1)",
		"(2, 6) -> (1, 6)",
		"(4, 1) -> (1, 1)",
		"(1, 6) -> (1, 1)",
	}, edgeList(d.Graph))
	require.NoError(t, Verify(d))
}

func TestBuild_MergesTies(t *testing.T) {
	d, err := Build([]poset.Entity{
		ent("x", 1, 0),
		ent("y", 1, 0),
		ent("z", 0, 1),
	})
	require.NoError(t, err)

	require.Len(t, d.Elements, 2)
	top, ok := d.Element("(1, 0)")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, top.Names)

	n, ok := d.Graph.Node("(1, 0)")
	require.True(t, ok)
	assert.Equal(t, "x, y\n(1, 0)", n.Meta[MetaLabel])
	assert.Equal(t, 0, n.Meta[MetaTier])
	assert.Equal(t, []string{"(1, 0) -> (0, 1)"}, edgeList(d.Graph))
}

func TestBuild_Antichain(t *testing.T) {
	d, err := Build([]poset.Entity{
		ent("p", 2, 0, 0),
		ent("q", 1, 2, 0),
		ent("r", 0, 3, 1),
	})
	require.NoError(t, err)
	assert.Len(t, d.Tiers, 1)
	assert.Equal(t, 0, d.EdgeCount())
	require.NoError(t, Verify(d))
}

func TestBuild_Empty(t *testing.T) {
	d, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, d.Tiers)
	assert.Equal(t, 0, d.Graph.NodeCount())
	assert.Equal(t, -1, d.Tier("(1,)"))
	require.NoError(t, Verify(d))
}

func TestBuild_LengthMismatch(t *testing.T) {
	_, err := Build([]poset.Entity{ent("a", 1, 2), ent("b", 1, 2, 3)})
	require.ErrorIs(t, err, poset.ErrLengthMismatch)
}

func TestComputeTiers_ConsumesGraph(t *testing.T) {
	elems, err := poset.Group([]poset.Entity{ent("A", 3, 1), ent("B", 2, 2), ent("C", 1, 1)})
	require.NoError(t, err)

	g := BuildGraph(elems)
	require.Equal(t, 3, g.EdgeCount())

	tiers := ComputeTiers(g)
	assert.Len(t, tiers, 3)
	assert.Less(t, g.EdgeCount(), 3, "peeling removes edges from its input")
}

func TestComputeTiers_MatchesLongestPath(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for range 30 {
		elems := randomElements(t, r, 10, 3, 3)
		want := transform.AssignLayers(BuildGraph(elems))
		for i, tier := range ComputeTiers(BuildGraph(elems)) {
			for _, id := range tier {
				assert.Equal(t, want[id], i, "element %s", id)
			}
		}
	}
}

func TestReconstruct_UnknownElement(t *testing.T) {
	elems, err := poset.Group([]poset.Entity{ent("A", 1, 0)})
	require.NoError(t, err)

	_, err = Reconstruct(elems, []Tier{{"(1, 0)"}, {"(9, 9)"}})
	require.ErrorIs(t, err, ErrUnknownElement)

	_, err = Reconstruct(elems, []Tier{{"(1, 0)"}, {"(1, 0)"}})
	require.ErrorIs(t, err, ErrDuplicateTierMember)
}

func TestVerify_DetectsDefects(t *testing.T) {
	build := func() *Diagram {
		d, err := Build([]poset.Entity{ent("A", 3, 1), ent("B", 2, 2), ent("C", 1, 1)})
		require.NoError(t, err)
		return d
	}

	d := build()
	require.NoError(t, d.Graph.AddEdge(dag.Edge{From: "(3, 1)", To: "(1, 1)"}))
	require.ErrorIs(t, Verify(d), ErrNotMinimal)

	d = build()
	d.Graph.RemoveEdge("(2, 2)", "(1, 1)")
	require.ErrorIs(t, Verify(d), ErrNotCovered)

	d = build()
	d.Tiers = d.Tiers[:2]
	require.ErrorIs(t, Verify(d), ErrTierMismatch)
}

// coverOracle lists u -> v for every pair with nothing strictly in between.
func coverOracle(elems []poset.Element) []string {
	var out []string
	for _, u := range elems {
		for _, v := range elems {
			if !poset.StrictlyDominates(u.Vector, v.Vector) {
				continue
			}
			between := slices.ContainsFunc(elems, func(w poset.Element) bool {
				return poset.StrictlyDominates(u.Vector, w.Vector) && poset.StrictlyDominates(w.Vector, v.Vector)
			})
			if !between {
				out = append(out, u.ID()+" -> "+v.ID())
			}
		}
	}
	return out
}

func randomElements(t *testing.T, r *rand.Rand, n, width, max int) []poset.Element {
	t.Helper()
	entities := make([]poset.Entity, n)
	for i := range entities {
		v := make(poset.Vector, width)
		for j := range v {
			v[j] = r.IntN(max + 1)
		}
		entities[i] = poset.Entity{Name: fmt.Sprintf("e%d", i), Vector: v}
	}
	elems, err := poset.Group(entities)
	require.NoError(t, err)
	return elems
}

func TestBuild_RandomAgainstOracle(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for iter := range 200 {
		n := 1 + r.IntN(14)
		width := 1 + r.IntN(4)
		elems := randomElements(t, r, n, width, 3)

		entities := make([]poset.Entity, 0, len(elems))
		for _, e := range elems {
			for _, name := range e.Names {
				entities = append(entities, poset.Entity{Name: name, Vector: e.Vector})
			}
		}

		d, err := Build(entities)
		require.NoError(t, err)
		require.NoError(t, Verify(d), "iteration %d", iter)
		assert.ElementsMatch(t, coverOracle(elems), edgeList(d.Graph), "iteration %d", iter)

		reduced := BuildGraph(elems)
		transform.TransitiveReduction(reduced)
		assert.ElementsMatch(t, edgeList(reduced), edgeList(d.Graph), "iteration %d", iter)
	}
}
