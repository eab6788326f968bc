// Package render defines the output formats of a Hasse diagram.
//
// # Formats
//
//   - [DOT]: Graphviz source, written as-is
//   - [SVG], [PNG]: rendered in-process through Graphviz (see [nodelink])
//   - [JSON]: the node-link graph as JSON (see package io)
//
// [ParseFormat] validates user input and [FormatFromPath] infers a format
// from an output file extension.
//
// [nodelink]: github.com/matzehuels/hassetower/pkg/render/nodelink
package render
