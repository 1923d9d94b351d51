package layout

import "math"

// Position is a computed canvas coordinate (top-left corner of the node).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result is the full outcome of one layout computation.
type Result struct {
	// Order lists every distinct node id in topological order.
	Order []string
	// Layers maps each node id to its column, 0 being leftmost.
	Layers map[string]int
	// ByLayer lists node ids per layer, sorted by id.
	ByLayer [][]string
	// MaxLayer is the highest layer index, 0 for an empty graph.
	MaxLayer int
	// Positions maps each node id to its resolved coordinate.
	Positions map[string]Position
	// FeedbackEdges are the edges ignored for layering because they close a
	// cycle, in discovery order.
	FeedbackEdges []Edge
	// EdgeCount is the number of edges kept after dropping self-loops,
	// dangling edges and duplicates.
	EdgeCount int

	origin Position // grid start, for ids the result does not know
}

// Position returns the coordinate of id and whether id was laid out.
func (r *Result) Position(id string) (Position, bool) {
	p, ok := r.Positions[id]
	return p, ok
}

// Compute lays out the nodes named by ids. Repeated ids are laid out once.
// The only error is INVALID_OPTIONS.
func Compute(ids []string, edges []Edge, opts ...Option) (*Result, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return compute(ids, edges, o), nil
}

func compute(ids []string, edges []Edge, opts Options) *Result {
	g := buildGraph(ids, edges)
	r := &Result{
		Order:     make([]string, 0, g.size()),
		Layers:    make(map[string]int, g.size()),
		Positions: make(map[string]Position, g.size()),
		EdgeCount: len(g.edges),
		origin:    Position{X: opts.StartX, Y: opts.StartY},
	}
	if g.size() == 0 {
		return r
	}

	feedback := feedbackEdges(g)
	for _, e := range feedback {
		r.FeedbackEdges = append(r.FeedbackEdges, g.edge(e))
	}

	a := newArena(g, feedback, opts)
	a.positionVertically()
	a.computeBottoms()
	a.resolveOverlaps()

	r.MaxLayer = a.maxLayer
	for _, i := range a.order {
		r.Order = append(r.Order, g.ids[i])
	}
	r.ByLayer = make([][]string, len(a.byLayer))
	for l, nodes := range a.byLayer {
		r.ByLayer[l] = make([]string, len(nodes))
		for k, i := range nodes {
			r.ByLayer[l][k] = g.ids[i]
		}
	}
	for i, id := range g.ids {
		r.Layers[id] = a.layer[i]
		r.Positions[id] = Position{
			X: opts.StartX + float64(a.layer[i])*opts.StepX,
			Y: a.y[i],
		}
	}
	return r
}

// Layout positions items on the grid and returns them in input order.
//
// nodeID extracts the id of an item and setPosition returns the item placed
// at (x, y); items is never modified by the engine itself. Edges whose
// endpoints are not both present, self-loops and duplicates are ignored.
// An empty items slice yields an empty result.
func Layout[T any](items []T, nodeID func(T) string, edges []Edge, setPosition func(T, float64, float64) T, opts ...Option) ([]T, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = nodeID(it)
	}
	return Apply(compute(ids, edges, o), items, nodeID, setPosition), nil
}

// Apply builds the placed copy of items from a computed result, in input
// order. Items whose id r does not contain land on the grid start.
func Apply[T any](r *Result, items []T, nodeID func(T) string, setPosition func(T, float64, float64) T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		p, ok := r.Positions[nodeID(it)]
		if !ok {
			p = r.origin
		}
		out[i] = setPosition(it, p.X, p.Y)
	}
	return out
}

// Grid places items row by row on a plain grid, for callers that have no
// edge information at all. Item i lands in column i%columns and row
// i/columns. A columns value of zero or less picks a near-square grid.
func Grid[T any](items []T, setPosition func(T, float64, float64) T, columns int, opts ...Option) ([]T, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	if columns <= 0 {
		columns = max(1, int(math.Ceil(math.Sqrt(float64(len(items))))))
	}

	out := make([]T, len(items))
	for i, it := range items {
		col, row := i%columns, i/columns
		out[i] = setPosition(it, o.StartX+float64(col)*o.StepX, o.StartY+float64(row)*o.StepY)
	}
	return out, nil
}
