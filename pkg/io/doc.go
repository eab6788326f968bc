// Package io provides JSON import and export for Hasse diagram graphs.
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "(3, 1)", "row": 0, "meta": {"names": ["A"], "vector": [3, 1], "label": "A\n(3, 1)", "tier": 0}},
//	    {"id": "(2, 2)", "row": 1, "meta": {"names": ["B"], "vector": [2, 2], "label": "B\n(2, 2)", "tier": 1}}
//	  ],
//	  "edges": [
//	    {"from": "(3, 1)", "to": "(2, 2)"}
//	  ]
//	}
//
// Each edge points from the dominating element to the element it covers.
// The row of a node is its tier.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader. Both reject duplicate node IDs and edges with unknown
// endpoints. Metadata comes back as generic JSON values.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer. Nodes and edges keep graph insertion order.
package io
