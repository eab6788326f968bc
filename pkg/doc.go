// Package pkg provides the libraries behind hasse, a tool that draws the
// dominance order of ranked entities as a Hasse diagram.
//
// # Overview
//
// A ranking table lists, per row, which entity took which place. Counting how
// often each entity appears in each column gives it a vector; one vector
// dominates another when every prefix sum is at least as large. The pkg
// directory is organized into these areas:
//
//  1. [poset] - Vectors, the dominance comparator, aggregation and grouping
//  2. [dag] - Insertion-ordered graph structure plus [dag/transform] helpers
//  3. [hasse] - Tiers, covering-edge reconstruction and verification
//  4. [table] - CSV ranking tables and JSON/YAML/TOML vector files
//  5. [render] - Output formats and [render/nodelink] DOT/SVG/PNG rendering
//  6. [pipeline] - Orchestration (build → render) with artifact caching
//  7. [cache], [errors], [io], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through hasse:
//
//	CSV table / vector file
//	         ↓
//	    [table] package (read rows, aggregate counts)
//	         ↓
//	    [poset] package (group tied entities into elements)
//	         ↓
//	    [hasse] package (full dominance graph → tiers → covering edges)
//	         ↓
//	    [render/nodelink] package (DOT text, Graphviz layout)
//	         ↓
//	    DOT/SVG/PNG/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/hassetower/pkg/hasse"
//	    "github.com/matzehuels/hassetower/pkg/render/nodelink"
//	    "github.com/matzehuels/hassetower/pkg/table"
//	)
//
//	entities, _ := table.ReadFile("rankings.csv", table.Options{})
//	d, _ := hasse.Build(entities)
//	dot := nodelink.ToDOT(d.Graph, nodelink.Options{})
//
// For cached, multi-format output use [pipeline.Runner].
//
// [poset]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/poset
// [dag]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/dag/transform
// [hasse]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/hasse
// [table]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/table
// [render]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/hassetower/pkg/buildinfo
package pkg
