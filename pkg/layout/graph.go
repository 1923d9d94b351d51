package layout

// Edge is a directed connection between two canvas nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// edge is an Edge resolved to dense node indices.
type edge struct{ from, to int }

// graph is the indexed form of one call's input. Index i refers to ids[i];
// indices follow the first occurrence of each id in the input.
type graph struct {
	ids   []string
	index map[string]int
	edges []edge  // cleaned: known endpoints, no self-loops, no duplicates
	succ  [][]int // successors in edge order
	pred  [][]int // predecessors in edge order
}

// buildGraph indexes ids and keeps only the edges the engine can use.
// Repeated ids resolve to the index of their first occurrence.
func buildGraph(ids []string, edges []Edge) *graph {
	g := &graph{
		ids:   make([]string, 0, len(ids)),
		index: make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		if _, ok := g.index[id]; ok {
			continue
		}
		g.index[id] = len(g.ids)
		g.ids = append(g.ids, id)
	}

	g.edges = g.clean(edges)
	g.succ = make([][]int, len(g.ids))
	g.pred = make([][]int, len(g.ids))
	for _, e := range g.edges {
		g.succ[e.from] = append(g.succ[e.from], e.to)
		g.pred[e.to] = append(g.pred[e.to], e.from)
	}
	return g
}

// clean drops self-loops, edges with an endpoint outside the node list and
// repeated edges. Half-drawn edges are normal while a canvas is being edited,
// so nothing here is reported.
func (g *graph) clean(edges []Edge) []edge {
	seen := make(map[edge]struct{}, len(edges))
	out := make([]edge, 0, len(edges))
	for _, e := range edges {
		from, okS := g.index[e.Source]
		to, okT := g.index[e.Target]
		if !okS || !okT || from == to {
			continue
		}
		ie := edge{from, to}
		if _, dup := seen[ie]; dup {
			continue
		}
		seen[ie] = struct{}{}
		out = append(out, ie)
	}
	return out
}

func (g *graph) size() int { return len(g.ids) }

// without returns successor and predecessor lists with the given edges removed.
func (g *graph) without(drop []edge) (succ, pred [][]int) {
	skip := make(map[edge]struct{}, len(drop))
	for _, e := range drop {
		skip[e] = struct{}{}
	}
	succ = make([][]int, g.size())
	pred = make([][]int, g.size())
	for _, e := range g.edges {
		if _, ok := skip[e]; ok {
			continue
		}
		succ[e.from] = append(succ[e.from], e.to)
		pred[e.to] = append(pred[e.to], e.from)
	}
	return succ, pred
}

func (g *graph) edge(e edge) Edge {
	return Edge{Source: g.ids[e.from], Target: g.ids[e.to]}
}
