package layout

import (
	"cmp"
	"slices"
)

// arena owns all per-node scratch state of one call. Every slice is indexed
// by the dense node index of the underlying graph.
type arena struct {
	g    *graph
	opts Options

	succ, pred [][]int // acyclic adjacency (feedback edges removed)
	order      []int   // topological order
	layer      []int
	maxLayer   int
	byLayer    [][]int // node indices per layer, sorted by id

	children [][]int // successors exactly one layer right
	parents  [][]int // inverse of children

	y      []float64
	bottom []float64 // lowest y of the node and everything hanging below it

	mark  []uint32 // traversal marks, compared against epoch
	epoch uint32
}

func newArena(g *graph, feedback []edge, opts Options) *arena {
	n := g.size()
	a := &arena{
		g:      g,
		opts:   opts,
		y:      make([]float64, n),
		bottom: make([]float64, n),
		mark:   make([]uint32, n),
	}
	a.succ, a.pred = g.without(feedback)
	a.order, a.layer = assignLayers(a.succ, a.pred)

	for _, l := range a.layer {
		a.maxLayer = max(a.maxLayer, l)
	}
	a.byLayer = make([][]int, a.maxLayer+1)
	for i, l := range a.layer {
		a.byLayer[l] = append(a.byLayer[l], i)
	}
	for _, nodes := range a.byLayer {
		slices.SortFunc(nodes, a.compareID)
	}

	a.children = make([][]int, n)
	a.parents = make([][]int, n)
	for i := range n {
		for _, c := range a.succ[i] {
			if a.layer[c] == a.layer[i]+1 {
				a.children[i] = append(a.children[i], c)
				a.parents[c] = append(a.parents[c], i)
			}
		}
	}
	return a
}

func (a *arena) compareID(i, j int) int { return cmp.Compare(a.g.ids[i], a.g.ids[j]) }

// compareY orders nodes top to bottom, breaking ties by id.
func (a *arena) compareY(i, j int) int {
	if c := cmp.Compare(a.y[i], a.y[j]); c != 0 {
		return c
	}
	return a.compareID(i, j)
}

// walk visits root and everything reachable through next, each node once.
func (a *arena) walk(root int, next [][]int, visit func(int)) {
	a.epoch++
	if a.epoch == 0 {
		clear(a.mark)
		a.epoch = 1
	}
	a.mark[root] = a.epoch
	queue := []int{root}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		visit(curr)
		for _, nb := range next[curr] {
			if a.mark[nb] != a.epoch {
				a.mark[nb] = a.epoch
				queue = append(queue, nb)
			}
		}
	}
}
