package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/flowlayout/pkg/canvas"
	"github.com/matzehuels/flowlayout/pkg/layout"
)

// DefaultScale maps canvas pixels to points.
const DefaultScale = 0.5

// DOTOptions controls DOT generation.
type DOTOptions struct {
	// Scale multiplies canvas coordinates. Zero means DefaultScale.
	Scale float64
	// Detailed adds the node type and data keys to labels.
	Detailed bool
	// Feedback edges are drawn dashed. They are the edges the layout
	// ignored to break cycles.
	Feedback []layout.Edge
}

// ToDOT converts a positioned canvas to DOT with pinned node positions.
// Edges whose endpoints are missing are skipped.
func ToDOT(c *canvas.Canvas, opts DOTOptions) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	feedback := make(map[layout.Edge]bool, len(opts.Feedback))
	for _, e := range opts.Feedback {
		feedback[e] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	known := make(map[string]bool, len(c.Nodes))
	for _, n := range c.Nodes {
		if known[n.ID] {
			continue
		}
		known[n.ID] = true
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
			fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.Position.X*scale, -n.Position.Y*scale),
		}
		if color, ok := typeColors[n.Type]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", color))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range c.Edges {
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		if feedback[layout.Edge{Source: e.Source, Target: e.Target}] {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=\"#c0392b\", constraint=false];\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// typeColors tints the common workflow node types.
var typeColors = map[string]string{
	"trigger":   "#fdebd0",
	"llm":       "#d6eaf8",
	"agent":     "#d6eaf8",
	"tool":      "#d5f5e3",
	"condition": "#fcf3cf",
	"output":    "#e8daef",
}

func fmtLabel(n canvas.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}
	var parts []string
	if n.Type != "" {
		parts = append(parts, "type: "+n.Type)
	}
	for _, k := range slices.Sorted(maps.Keys(n.Data)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Data[k]))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}
