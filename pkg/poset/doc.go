// Package poset defines frequency vectors and the cumulative-prefix dominance
// order used to build Hasse diagrams.
//
// # Vectors
//
// A [Vector] is a fixed-length tuple of non-negative counts. Vectors are
// compared by their running (prefix) sums: a dominates-or-equals b when every
// prefix of a sums to at least the matching prefix of b. This rewards vectors
// whose mass sits early, so (3, 1) beats (2, 2) even though both total 4.
//
//	a := poset.Vector{3, 1}
//	b := poset.Vector{2, 2}
//	poset.StrictlyDominates(a, b) // true
//
// [Compare] classifies a pair as [Dominates], [Dominated], [Tied] or
// [Incomparable]. Tied vectors dominate-or-equal each other; for this order
// that only happens when they are identical.
//
// # Entities and Elements
//
// [Aggregate] turns a table of entity names into one [Entity] per name, where
// slot i of the vector counts how many rows list that entity in column i.
// [Group] then collapses entities sharing a vector into a single [Element],
// the unit the dominance order is defined over.
//
// All comparison functions require vectors of equal length and panic
// otherwise. [Group] checks lengths up front and returns [ErrLengthMismatch]
// so callers never reach that panic with user input.
package poset
