package transform

import "github.com/matzehuels/hassetower/pkg/dag"

// AssignLayers assigns nodes to rows by longest path from a source.
//
// Each node is placed at one plus the maximum row of any of its parents, so
// sources sit at row 0 and every parent is strictly above its children.
// Existing row assignments are overwritten. It returns the rows it assigned.
//
// # Algorithm
//
// AssignLayers performs a topological traversal (Kahn's algorithm):
//  1. Initialize all source nodes (in-degree 0) at row 0 and add to queue
//  2. Process queue: for each node, push children to max(current_row + 1)
//  3. Decrement in-degree counters; add newly zero-degree nodes to queue
//  4. Repeat until queue is empty
//
// AssignLayers assumes the graph is acyclic; nodes on a cycle keep row 0.
//
// Time complexity is O(V + E).
func AssignLayers(g *dag.DAG) map[string]int {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		rows[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRows(rows)
	return rows
}
