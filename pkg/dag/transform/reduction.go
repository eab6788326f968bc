package transform

import "github.com/matzehuels/hassetower/pkg/dag"

// TransitiveReduction removes redundant edges from the graph.
//
// TransitiveReduction removes any edge (u, v) where there exists an alternate
// path from u to v through at least one intermediate node. For example, if
// edges A→B, B→C, and A→C all exist, then A→C is redundant and is removed
// because A reaches C via B. It returns the number of edges removed.
//
// # Algorithm
//
// TransitiveReduction computes full reachability using DFS, then removes any
// edge (u, v) where u reaches v through an intermediate node w (u→w and w
// reaches v).
//
// # Nil Handling
//
// TransitiveReduction panics if g is nil. If g is empty (zero nodes), the
// function returns immediately.
//
// # Performance
//
// Time complexity is O(V²·E) in the worst case. Space complexity is O(V²)
// for the reachability matrix.
func TransitiveReduction(g *dag.DAG) int {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return 0
	}

	nodeIndex := dag.NodePosMap(nodes)
	adjacency := adjacencyOf(g, nodeIndex)
	reachability := computeReachability(adjacency)

	removed := 0
	for _, e := range g.Edges() {
		src, dst := nodeIndex[e.From], nodeIndex[e.To]
		for _, intermediate := range adjacency[src] {
			if intermediate != dst && reachability[intermediate][dst] {
				g.RemoveEdge(e.From, e.To)
				removed++
				break
			}
		}
	}
	return removed
}

// Reachability maps every node ID to the set of node IDs reachable from it
// by one or more edges.
func Reachability(g *dag.DAG) map[string]map[string]bool {
	nodes := g.Nodes()
	nodeIndex := dag.NodePosMap(nodes)
	reach := computeReachability(adjacencyOf(g, nodeIndex))

	out := make(map[string]map[string]bool, len(nodes))
	for i, src := range nodes {
		set := make(map[string]bool)
		for j, dst := range nodes {
			if i != j && reach[i][j] {
				set[dst.ID] = true
			}
		}
		out[src.ID] = set
	}
	return out
}

func adjacencyOf(g *dag.DAG, nodeIndex map[string]int) [][]int {
	adjacency := make([][]int, len(nodeIndex))
	for _, e := range g.Edges() {
		if src, ok := nodeIndex[e.From]; ok {
			if dst, ok := nodeIndex[e.To]; ok {
				adjacency[src] = append(adjacency[src], dst)
			}
		}
	}
	return adjacency
}

func computeReachability(adjacency [][]int) [][]bool {
	n := len(adjacency)
	reachable := make([][]bool, n)
	for i := range reachable {
		reachable[i] = make([]bool, n)
	}

	var dfs func(source, current int)
	dfs = func(source, current int) {
		if reachable[source][current] {
			return
		}
		reachable[source][current] = true
		for _, next := range adjacency[current] {
			dfs(source, next)
		}
	}

	for i := range reachable {
		dfs(i, i)
	}
	return reachable
}
