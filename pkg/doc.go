// Package pkg provides the libraries behind flowlayout, the auto-layout
// engine for agent and workflow canvases.
//
// # Overview
//
// A canvas is a list of nodes and the directed edges between them, as saved
// by a node editor. flowlayout assigns every node an (x, y) position so the
// flow reads left to right: one column per topological layer, parents
// centered over their children, no two nodes in a column closer than a
// fixed gap. Cycles (an agent loop, a retry edge) are broken by ignoring a
// minimal set of feedback edges during layering.
//
// # Architecture
//
// The typical data flow:
//
//	canvas JSON (file, stdin or HTTP body)
//	         ↓
//	    [canvas] package (decode + validate)
//	         ↓
//	    [pipeline] package (cache lookup, options, hooks)
//	         ↓
//	    [layout] package (cycles → layers → y → overlap → x)
//	         ↓
//	    positioned canvas JSON, or an SVG/PNG/DOT preview via [render]
//
// # Quick Start
//
// Lay out items of any type:
//
//	import "github.com/matzehuels/flowlayout/pkg/layout"
//
//	placed, err := layout.Layout(nodes,
//	    func(n Node) string { return n.ID },
//	    []layout.Edge{{Source: "plan", Target: "search"}},
//	    func(n Node, x, y float64) Node { n.X, n.Y = x, y; return n },
//	    layout.WithStep(300, 180),
//	)
//
// Lay out a canvas document with caching:
//
//	c, _ := canvas.ReadFile("flow.json")
//	fc, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(fc, nil, logger)
//	res, _ := runner.Layout(ctx, c, pipeline.Options{})
//	canvas.WriteFile(res.Canvas, "flow.layout.json")
//
// # Main Packages
//
// [layout] - The layout engine. A pure function over ids and edges with no
// I/O; [layout.Layout] keeps caller types opaque through accessor funcs,
// [layout.Compute] exposes layers and feedback edges, [layout.Grid] is the
// fallback for canvases without edges.
//
// [canvas] - The canvas document wire format and its JSON encoding.
//
// [pipeline] - Canvas → layout → preview, with caching and observability
// hooks. Used by both the CLI and the HTTP service.
//
// [cache] - Result cache: file, Redis and null backends behind one interface,
// plus the key scheme.
//
// [render] - DOT export with pinned positions and Graphviz rendering to SVG
// and PNG.
//
// [config] - TOML configuration for the grid, the HTTP service and the cache.
//
// [observability] - Hook registry for layout, cache and HTTP events.
//
// [errors] - Coded errors shared by every entry point.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./...                 # All tests
//	go test ./pkg/layout/...      # Engine only
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/layout
// [layout.Layout]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/layout#Layout
// [layout.Compute]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/layout#Compute
// [layout.Grid]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/layout#Grid
// [canvas]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/canvas
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/cache
// [render]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/render
// [config]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/buildinfo
package pkg
