// Package dag provides the directed acyclic graph used for comparability
// graphs and Hasse diagrams.
//
// # Overview
//
// Nodes are poset elements and an edge From→To means "From dominates To".
// Each node carries a Row, the tier it was assigned to, with row 0 holding
// the maximal elements. Unlike a strictly layered graph, edges may skip rows:
// a covering relation can span several tiers.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "(3, 1)", Row: 0})
//	g.AddNode(dag.Node{ID: "(2, 2)", Row: 1})
//	g.AddEdge(dag.Edge{From: "(3, 1)", To: "(2, 2)"})
//
// [DAG.RemoveEdge] and [DAG.InDegree] always reflect the live edge set, which
// is what destructive algorithms such as tier peeling rely on. Use
// [DAG.Validate] to check that every edge points downward and that the graph
// is acyclic.
//
// # Ordering
//
// Every accessor reports nodes and edges in insertion order. Graphs built
// from the same input therefore serialize identically.
//
// # Metadata
//
// Nodes, edges and the graph itself carry [Metadata] maps, used to store the
// element's member names, vector and display label.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. A graph that one algorithm
// mutates must not be shared with another; build a fresh instance instead.
//
// # Related Packages
//
// The [transform] subpackage provides transitive reduction and longest-path
// layer assignment, used to cross-check Hasse diagrams.
//
// [transform]: github.com/matzehuels/hassetower/pkg/dag/transform
package dag
