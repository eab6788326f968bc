package io

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/hassetower/pkg/dag"
	"github.com/matzehuels/hassetower/pkg/hasse"
	"github.com/matzehuels/hassetower/pkg/poset"
)

func chainDiagram(t *testing.T) *hasse.Diagram {
	t.Helper()
	d, err := hasse.Build([]poset.Entity{
		{Name: "A", Vector: poset.Vector{3, 1}},
		{Name: "B", Vector: poset.Vector{2, 2}},
		{Name: "C", Vector: poset.Vector{1, 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestWriteJSON_Shape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(chainDiagram(t).Graph, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"id": "(3, 1)"`,
		`"row": 2`,
		`"vector": [`,
		`"label": "A\n(3, 1)"`,
		`"from": "(2, 2)"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteJSON() output missing %s:\n%s", want, out)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	d := chainDiagram(t)
	path := filepath.Join(t.TempDir(), "diagram.json")
	if err := ExportJSON(d.Graph, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}

	g, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("round trip = %d nodes, %d edges; want 3, 2", g.NodeCount(), g.EdgeCount())
	}
	if !g.HasEdge("(3, 1)", "(2, 2)") || !g.HasEdge("(2, 2)", "(1, 1)") {
		t.Errorf("round trip lost edges: %v", g.Edges())
	}
	n, _ := g.Node("(1, 1)")
	if n.Row != 2 {
		t.Errorf("row = %d, want 2", n.Row)
	}
	if n.Meta["label"] != "C\n(1, 1)" {
		t.Errorf("label = %v", n.Meta["label"])
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after round trip: %v", err)
	}
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"duplicate node", `{"nodes":[{"id":"a"},{"id":"a"}],"edges":[]}`, dag.ErrDuplicateNodeID},
		{"unknown target", `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"b"}]}`, dag.ErrUnknownTargetNode},
		{"empty id", `{"nodes":[{"id":""}]}`, dag.ErrInvalidNodeID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadJSON() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`{"nodes": [`)); err == nil {
		t.Error("ReadJSON() should fail on truncated input")
	}
}

func TestImportJSON_Missing(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ImportJSON() should fail for a missing file")
	}
}
