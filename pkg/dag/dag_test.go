package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode_Errors(t *testing.T) {
	g := New(nil)
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a) = %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) = %v, want ErrDuplicateNodeID", err)
	}
	n, ok := g.Node("a")
	if !ok || n.Meta == nil {
		t.Error("Node(a) should exist with non-nil Meta")
	}
}

func TestAddEdge_Errors(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"unknown source", Edge{From: "x", To: "a"}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
		{"self loop", Edge{From: "a", To: "a"}, ErrSelfLoop},
		{"valid", Edge{From: "a", To: "b"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAddEdge_Duplicate(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if g.InDegree("b") != 1 {
		t.Errorf("InDegree(b) = %d, want 1", g.InDegree("b"))
	}
}

func TestInsertionOrder(t *testing.T) {
	g := New(nil)
	ids := []string{"m", "c", "x", "a"}
	for _, id := range ids {
		_ = g.AddNode(Node{ID: id})
	}
	if got := NodeIDs(g.Nodes()); !slices.Equal(got, ids) {
		t.Errorf("Nodes() = %v, want %v", got, ids)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})

	g.RemoveEdge("a", "b")
	g.RemoveEdge("a", "b") // no-op

	if g.EdgeCount() != 0 || g.OutDegree("a") != 0 || g.InDegree("b") != 0 {
		t.Errorf("edge not fully removed: edges=%d out=%d in=%d",
			g.EdgeCount(), g.OutDegree("a"), g.InDegree("b"))
	}
	if g.HasEdge("a", "b") {
		t.Error("HasEdge(a, b) = true after removal")
	}
}

func TestRows(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddNode(Node{ID: "c"})
	g.SetRows(map[string]int{"b": 2, "c": 2, "missing": 9})

	if got := g.RowIDs(); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("RowIDs() = %v, want [0 2]", got)
	}
	if got := NodeIDs(g.NodesInRow(2)); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("NodesInRow(2) = %v, want [b c]", got)
	}
	if g.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", g.RowCount())
	}
}

func TestReaches(t *testing.T) {
	g := New(nil)
	for _, id := range []string{"a", "b", "c", "d"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "b", To: "c"})

	if !g.Reaches("a", "c") {
		t.Error("a should reach c")
	}
	if g.Reaches("c", "a") {
		t.Error("c should not reach a")
	}
	if g.Reaches("a", "d") {
		t.Error("a should not reach d")
	}
	if g.Reaches("a", "a") {
		t.Error("a should not reach itself without a cycle")
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid skip-row edge", func(t *testing.T) {
		g := New(nil)
		_ = g.AddNode(Node{ID: "a", Row: 0})
		_ = g.AddNode(Node{ID: "b", Row: 3})
		_ = g.AddEdge(Edge{From: "a", To: "b"})
		if err := g.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("upward edge", func(t *testing.T) {
		g := New(nil)
		_ = g.AddNode(Node{ID: "a", Row: 1})
		_ = g.AddNode(Node{ID: "b", Row: 1})
		_ = g.AddEdge(Edge{From: "a", To: "b"})
		if err := g.Validate(); !errors.Is(err, ErrEdgeNotDownward) {
			t.Errorf("Validate() = %v, want ErrEdgeNotDownward", err)
		}
	})

	t.Run("cycle", func(t *testing.T) {
		g := New(nil)
		_ = g.AddNode(Node{ID: "a"})
		_ = g.AddNode(Node{ID: "b"})
		_ = g.AddEdge(Edge{From: "a", To: "b"})
		_ = g.AddEdge(Edge{From: "b", To: "a"})
		if err := g.detectCycles(); !errors.Is(err, ErrGraphHasCycle) {
			t.Errorf("detectCycles() = %v, want ErrGraphHasCycle", err)
		}
	})
}

func TestNodePosMap(t *testing.T) {
	nodes := []*Node{{ID: "x"}, {ID: "y"}}
	m := NodePosMap(nodes)
	if m["x"] != 0 || m["y"] != 1 {
		t.Errorf("NodePosMap() = %v", m)
	}
}
