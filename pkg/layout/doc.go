// Package layout computes readable left-to-right positions for the node-editor
// canvases of agent and workflow builders.
//
// # Overview
//
// Given a list of nodes and a directed edge list, [Layout] returns new nodes
// with (x, y) coordinates such that:
//
//   - Every node sits in a column (layer) strictly right of its predecessors
//   - Parents are vertically centered over their direct children
//   - Nodes in the same column never come closer than [Options.MinGap]
//
// The engine is a pure function. It performs no I/O, keeps no state between
// calls and never mutates its inputs; output items are produced through the
// caller's setter.
//
// # Pipeline
//
// A call runs six stages over per-call scratch arrays indexed by a dense node
// index:
//
//  1. Graph building: ids are indexed in input order and a cleaned edge list
//     is built. Self-loops and edges naming unknown nodes are dropped, and
//     duplicate edges collapse into one.
//  2. Cycle breaking: nodes left over by Kahn's algorithm are searched with an
//     explicit-stack DFS; every edge that reaches a node still on the stack
//     becomes a feedback edge and is ignored for layering.
//  3. Layer assignment: longest-path layering over the remaining DAG.
//  4. Vertical positioning: the deepest layer is spread evenly, grouped by
//     first predecessor; every other node is centered over its next-layer
//     children and nudged up by [Options.ParentCenterOffsetUp].
//  5. Overlap resolution: layer by layer, a node too close to the subtree of
//     the node above it is shifted down together with its subtree, and the
//     shift is recorded in the subtree extent of its ancestors.
//  6. Emission: x = StartX + layer*StepX.
//
// # Tolerance
//
// Malformed graph data is never an error. Edges referencing absent nodes are
// expected while a canvas is mid-edit and are silently ignored. The only error
// returned is for invalid [Options] (non-positive steps, NaN or infinite
// values), reported with code INVALID_OPTIONS.
//
// # Usage
//
//	nodes, err := layout.Layout(canvas.Nodes,
//	    func(n Node) string { return n.ID },
//	    edges,
//	    func(n Node, x, y float64) Node { n.X, n.Y = x, y; return n },
//	    layout.WithStep(400, 200),
//	)
//
// Use [Compute] to get layers, feedback edges and positions keyed by id
// without going through an item type.
//
// # Complexity
//
// Building, cycle breaking and layering are O(V + E). Overlap resolution is
// O(V + E) per shift with at most O(V) shifts per layer, so adversarial inputs
// cost O(V²). That is fine for canvases of tens to a few hundred nodes.
package layout
