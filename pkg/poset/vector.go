package poset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrLengthMismatch is returned when vectors in one input differ in length.
	ErrLengthMismatch = errors.New("vector length mismatch")

	// ErrEmptyVector is returned for zero-length vectors.
	ErrEmptyVector = errors.New("vector must have at least one slot")

	// ErrNegativeCount is returned when a vector slot is below zero.
	ErrNegativeCount = errors.New("vector counts must be non-negative")
)

// Vector is an ordered tuple of per-column counts.
// Vectors are treated as immutable once built.
type Vector []int

// Relation is the outcome of comparing two vectors.
type Relation int

const (
	// Incomparable means neither vector dominates-or-equals the other.
	Incomparable Relation = iota
	// Dominates means the first vector strictly dominates the second.
	Dominates
	// Dominated means the second vector strictly dominates the first.
	Dominated
	// Tied means each vector dominates-or-equals the other.
	Tied
)

func (r Relation) String() string {
	switch r {
	case Dominates:
		return "dominates"
	case Dominated:
		return "dominated"
	case Tied:
		return "tied"
	default:
		return "incomparable"
	}
}

// DominatesOrEqual reports whether every prefix sum of a is at least the
// matching prefix sum of b. It panics if the lengths differ.
func DominatesOrEqual(a, b Vector) bool {
	mustSameLen(a, b)
	var sa, sb int
	for i := range a {
		sa += a[i]
		sb += b[i]
		if sa < sb {
			return false
		}
	}
	return true
}

// StrictlyDominates reports whether a dominates-or-equals b and b does not
// dominate-or-equal a.
func StrictlyDominates(a, b Vector) bool {
	return DominatesOrEqual(a, b) && !DominatesOrEqual(b, a)
}

// Compare classifies the pair (a, b). It panics if the lengths differ.
func Compare(a, b Vector) Relation {
	ab, ba := DominatesOrEqual(a, b), DominatesOrEqual(b, a)
	switch {
	case ab && ba:
		return Tied
	case ab:
		return Dominates
	case ba:
		return Dominated
	default:
		return Incomparable
	}
}

func mustSameLen(a, b Vector) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("poset: compare vectors of length %d and %d", len(a), len(b)))
	}
}

// Validate checks that v is non-empty and has no negative slots.
func (v Vector) Validate() error {
	if len(v) == 0 {
		return ErrEmptyVector
	}
	for i, n := range v {
		if n < 0 {
			return fmt.Errorf("%w: slot %d is %d", ErrNegativeCount, i, n)
		}
	}
	return nil
}

// Equal reports whether v and o hold the same counts.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// PrefixSums returns the running sums of v.
func (v Vector) PrefixSums() []int {
	sums := make([]int, len(v))
	total := 0
	for i, n := range v {
		total += n
		sums[i] = total
	}
	return sums
}

// Key returns a compact identity string, suitable as a map key.
func (v Vector) Key() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// String formats v as a tuple: "(3, 1)", or "(3,)" for a single slot.
func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	if len(v) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
