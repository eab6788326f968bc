// Package nodelink renders Hasse diagrams as node-link diagrams.
//
// # Overview
//
// Each poset element becomes a rounded box labelled with its entity names
// and vector, and each covering edge an arrow from the dominating element
// down to the dominated one. Layout is top to bottom (rankdir=TB), so the
// maximal tier appears first.
//
// # Usage
//
// Convert a DAG to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(d.Graph, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PNG output goes through the same Graphviz instance:
//
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
//   - Detailed: when true, node labels also show the tier index
//
// # DOT Format
//
// The DOT text from [ToDOT] is deterministic for a given graph and can be
// saved and processed with the external Graphviz tools (see [ConvertHint]).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering; no Graphviz installation is needed.
package nodelink
