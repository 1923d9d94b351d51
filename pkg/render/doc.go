// Package render draws a positioned canvas as a static preview.
//
// [ToDOT] turns a canvas into a Graphviz DOT graph in which every node is
// pinned (pos="x,y!") at the coordinates the layout engine computed, so the
// preview shows exactly what the node editor will show. [Render] then runs
// Graphviz's neato engine, which keeps pinned nodes in place and only routes
// the edges.
//
//	dot := render.ToDOT(c, render.DOTOptions{Feedback: result.FeedbackEdges})
//	svg, err := render.Render(ctx, dot, render.FormatSVG)
//
// Canvas y grows downwards and Graphviz y grows upwards, so y is negated.
// Canvas pixels are scaled to points with DOTOptions.Scale.
//
// Graphviz runs in-process (WebAssembly build via go-graphviz); no system
// installation is needed.
package render
