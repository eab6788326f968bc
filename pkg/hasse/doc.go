// Package hasse builds Hasse diagrams over frequency vectors.
//
// # Pipeline
//
// [Build] runs the whole construction:
//
//  1. [poset.Group] collapses tied entities into elements.
//  2. [BuildGraph] adds an edge u→v for every strictly dominating pair. This
//     full comparability graph still holds transitive edges.
//  3. [ComputeTiers] peels the full graph into antichains, from the maximal
//     elements down. It removes edges as it goes, so the graph it receives
//     is spent afterwards.
//  4. [Reconstruct] starts from a fresh graph holding only the elements and
//     uses the tiers to add exactly the covering edges.
//
// The peeling pass and the reconstruction never share a graph instance.
//
// # Tiers
//
// Tier 0 holds the elements nothing dominates. An element lands in tier k+1
// once every other edge into it has been peeled away and the last one left
// comes from tier k, which places each element one tier below its deepest
// dominator.
//
// # Covers Across Tiers
//
// A cover can skip tiers: an element may be incomparable to part of the next
// tier yet directly cover something further down. Reconstruction keeps such
// elements in a leftover set and retries them against each lower tier until
// they dominate a whole tier, at which point nothing further down can still
// be a cover. An edge is only added when no path already links the pair,
// which keeps the result free of transitive edges.
//
// # Verification
//
// [Verify] recomputes dominance from scratch and checks minimality, coverage
// and tier consistency of a [Diagram].
package hasse
