package poset_test

import (
	"fmt"

	"github.com/matzehuels/hassetower/pkg/poset"
)

func ExampleCompare() {
	a := poset.Vector{3, 1}
	b := poset.Vector{2, 2}
	c := poset.Vector{0, 5}

	fmt.Println(poset.Compare(a, b))
	fmt.Println(poset.Compare(b, a))
	fmt.Println(poset.Compare(a, c))
	fmt.Println(poset.Compare(a, a))
	// Output:
	// dominates
	// dominated
	// incomparable
	// tied
}

func ExampleGroup() {
	entities := poset.Aggregate([][]string{
		{"ann", "bob"},
		{"cy", "dee"},
	})
	elems, _ := poset.Group(entities)
	for _, e := range elems {
		fmt.Printf("%v %v\n", e.Names, e.Vector)
	}
	// Output:
	// [ann cy] (1, 0)
	// [bob dee] (0, 1)
}
