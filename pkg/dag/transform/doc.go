// Package transform provides reference graph transformations used to
// cross-check Hasse diagrams.
//
// # Transitive Reduction
//
// [TransitiveReduction] removes any edge (u, v) that is implied by a longer
// path. Applied to a full comparability graph it yields the covering
// relation, which must match the diagram produced by tier reconstruction.
//
// # Layer Assignment
//
// [AssignLayers] places each node one row below its deepest parent
// (longest-path layering). On a full comparability graph this reproduces the
// tiers computed by peeling.
//
// # Closure
//
// [Reachability] returns the set of nodes reachable from every node, used to
// check that a reduced graph still orders every comparable pair.
package transform
