package poset

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominatesOrEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want bool
	}{
		{"front loaded beats spread", Vector{3, 1}, Vector{2, 2}, true},
		{"spread loses to front loaded", Vector{2, 2}, Vector{3, 1}, false},
		{"identical", Vector{1, 0}, Vector{1, 0}, true},
		{"larger total, later mass", Vector{0, 5}, Vector{1, 0}, false},
		{"single slot", Vector{2}, Vector{1}, true},
		{"zero vectors", Vector{0, 0, 0}, Vector{0, 0, 0}, true},
		{"last prefix decides", Vector{2, 0, 1}, Vector{2, 0, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DominatesOrEqual(tt.a, tt.b))
		})
	}
}

func TestStrictlyDominates_Example(t *testing.T) {
	a, b, c := Vector{3, 1}, Vector{2, 2}, Vector{1, 1}

	assert.True(t, StrictlyDominates(a, b))
	assert.True(t, StrictlyDominates(b, c))
	assert.True(t, StrictlyDominates(a, c))
	assert.False(t, StrictlyDominates(b, a))
	assert.False(t, StrictlyDominates(a, a), "a vector never strictly dominates itself")
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Vector
		want Relation
	}{
		{Vector{3, 1}, Vector{2, 2}, Dominates},
		{Vector{2, 2}, Vector{3, 1}, Dominated},
		{Vector{1, 0}, Vector{1, 0}, Tied},
		{Vector{5, 1}, Vector{2, 6}, Incomparable},
	}
	for _, tt := range tests {
		t.Run(tt.a.String()+"_"+tt.b.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestDominatesOrEqual_LengthMismatchPanics(t *testing.T) {
	assert.PanicsWithValue(t, "poset: compare vectors of length 2 and 3", func() {
		DominatesOrEqual(Vector{1, 2}, Vector{1, 2, 3})
	})
}

func randomVectors(r *rand.Rand, n, width, max int) []Vector {
	out := make([]Vector, n)
	for i := range out {
		v := make(Vector, width)
		for j := range v {
			v[j] = r.IntN(max + 1)
		}
		out[i] = v
	}
	return out
}

func TestStrictDominance_Antisymmetric(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	vs := randomVectors(r, 40, 4, 3)
	for _, a := range vs {
		for _, b := range vs {
			require.False(t, StrictlyDominates(a, b) && StrictlyDominates(b, a),
				"%v and %v dominate each other", a, b)
		}
	}
}

func TestStrictDominance_Transitive(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	vs := randomVectors(r, 25, 3, 4)
	for _, a := range vs {
		for _, b := range vs {
			if !StrictlyDominates(a, b) {
				continue
			}
			for _, c := range vs {
				if StrictlyDominates(b, c) {
					require.True(t, StrictlyDominates(a, c), "%v > %v > %v but not %v > %v", a, b, c, a, c)
				}
			}
		}
	}
}

func TestTiedMeansEqual(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	vs := randomVectors(r, 40, 3, 2)
	for _, a := range vs {
		for _, b := range vs {
			if Compare(a, b) == Tied {
				assert.True(t, a.Equal(b), "%v tied with %v", a, b)
			}
		}
	}
}

func TestVectorValidate(t *testing.T) {
	assert.NoError(t, Vector{0, 1}.Validate())
	assert.ErrorIs(t, Vector{}.Validate(), ErrEmptyVector)
	assert.ErrorIs(t, Vector{1, -1}.Validate(), ErrNegativeCount)
}

func TestVectorFormatting(t *testing.T) {
	assert.Equal(t, "(3, 1)", Vector{3, 1}.String())
	assert.Equal(t, "(7,)", Vector{7}.String())
	assert.Equal(t, "()", Vector{}.String())
	assert.Equal(t, "3,1", Vector{3, 1}.Key())
	assert.Equal(t, []int{3, 4, 4}, Vector{3, 1, 0}.PrefixSums())
}

func TestRelationString(t *testing.T) {
	assert.Equal(t, "dominates", Dominates.String())
	assert.Equal(t, "dominated", Dominated.String())
	assert.Equal(t, "tied", Tied.String())
	assert.Equal(t, "incomparable", Incomparable.String())
}
