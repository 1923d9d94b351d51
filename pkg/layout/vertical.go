package layout

import (
	"cmp"
	"slices"
)

// positionVertically assigns an initial y to every node, from the deepest
// layer back to layer 0.
func (a *arena) positionVertically() {
	a.spreadLastLayer()
	for l := a.maxLayer - 1; l >= 0; l-- {
		for _, id := range a.byLayer[l] {
			a.y[id] = a.centerOverChildren(id)
		}
	}
}

// spreadLastLayer stacks the deepest layer evenly, keeping siblings that
// share a first predecessor next to each other. Groups are ordered by the id
// of that predecessor; a node without one is its own group.
func (a *arena) spreadLastLayer() {
	nodes := slices.Clone(a.byLayer[a.maxLayer])
	slices.SortStableFunc(nodes, func(i, j int) int {
		return cmp.Compare(a.groupKey(i), a.groupKey(j))
	})
	for i, id := range nodes {
		a.y[id] = a.opts.StartY + float64(i)*a.opts.StepY
	}
}

func (a *arena) groupKey(id int) string {
	if len(a.pred[id]) == 0 {
		return a.g.ids[id]
	}
	return a.g.ids[a.pred[id][0]]
}

// centerOverChildren returns the midpoint of the vertical span of the node's
// next-layer children, lifted by ParentCenterOffsetUp. Nodes without such
// children start at StartY and are spaced out by the overlap pass.
func (a *arena) centerOverChildren(id int) float64 {
	children := a.children[id]
	if len(children) == 0 {
		return a.opts.StartY
	}
	lo, hi := a.y[children[0]], a.y[children[0]]
	for _, c := range children[1:] {
		lo = min(lo, a.y[c])
		hi = max(hi, a.y[c])
	}
	return (lo+hi)/2 - a.opts.ParentCenterOffsetUp
}
