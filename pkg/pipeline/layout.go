package pipeline

import (
	"github.com/matzehuels/flowlayout/pkg/canvas"
	"github.com/matzehuels/flowlayout/pkg/layout"
)

// ComputeLayout positions the nodes of c without touching any cache. opts
// must already be validated.
func ComputeLayout(c *canvas.Canvas, opts Options) (*Result, error) {
	if opts.Mode == ModeGrid {
		return computeGrid(c, opts)
	}
	return computeLayered(c, opts)
}

func computeLayered(c *canvas.Canvas, opts Options) (*Result, error) {
	lr, err := layout.Compute(c.IDs(), c.LayoutEdges(), layout.WithOptions(*opts.Grid))
	if err != nil {
		return nil, err
	}

	res := &Result{
		Canvas:        c.WithNodes(layout.Apply(lr, c.Nodes, canvas.NodeID, canvas.SetPosition)),
		Layers:        lr.Layers,
		ByLayer:       lr.ByLayer,
		FeedbackEdges: lr.FeedbackEdges,
	}
	res.Stats.NodeCount = len(lr.Order)
	res.Stats.EdgeCount = lr.EdgeCount
	res.Stats.LayerCount = len(lr.ByLayer)
	res.Stats.FeedbackCount = len(lr.FeedbackEdges)
	return res, nil
}

func computeGrid(c *canvas.Canvas, opts Options) (*Result, error) {
	nodes, err := layout.Grid(c.Nodes, canvas.SetPosition, opts.Columns, layout.WithOptions(*opts.Grid))
	if err != nil {
		return nil, err
	}
	res := &Result{Canvas: c.WithNodes(nodes)}
	res.Stats.NodeCount = len(nodes)
	res.Stats.EdgeCount = len(c.Edges)
	return res, nil
}
