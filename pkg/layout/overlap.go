package layout

import "slices"

// gapTolerance absorbs rounding so a pair that was just separated by exactly
// MinGap is not shifted again by a few ulps.
const gapTolerance = 1e-9

// computeBottoms fills in the subtree bottom of every node, deepest layer
// first.
func (a *arena) computeBottoms() {
	for l := a.maxLayer; l >= 0; l-- {
		for _, id := range a.byLayer[l] {
			b := a.y[id]
			for _, c := range a.children[id] {
				b = max(b, a.bottom[c])
			}
			a.bottom[id] = b
		}
	}
}

// resolveOverlaps pushes nodes down until, in every layer sorted by y, each
// node keeps MinGap below the subtree of the node above it. It reports
// whether that fixed point was reached.
//
// A pass walks the layers from left to right and separates each one. A shift
// grows the subtree bottom of ancestors in layers already visited, so passes
// repeat until one makes no shift. When subtrees interleave (a node above
// another whose child sits below the other's child) rigid shifts can keep
// pushing both down forever; after the pass limit the result of the first
// pass is restored. That result already keeps every pair within a layer
// MinGap apart, since a layer's shifts only move nodes in later layers.
func (a *arena) resolveOverlaps() bool {
	minGap := a.opts.MinGap()
	limit := a.g.size()*a.g.size() + 1

	if !a.separateLayers(minGap, limit) {
		return true
	}
	firstY, firstBottom := slices.Clone(a.y), slices.Clone(a.bottom)
	for range limit {
		if !a.separateLayers(minGap, limit) {
			return true
		}
	}
	copy(a.y, firstY)
	copy(a.bottom, firstBottom)
	return false
}

// separateLayers runs one pass over all layers and reports whether it moved
// anything. Within a layer only the lower node of a pair moves, and only
// downwards, so each layer settles after at most limit shifts.
func (a *arena) separateLayers(minGap float64, limit int) bool {
	changed := false
	for l := 0; l <= a.maxLayer; l++ {
		nodes := slices.Clone(a.byLayer[l])
		for range limit {
			slices.SortFunc(nodes, a.compareY)
			if !a.separateFirstPair(nodes, minGap) {
				break
			}
			changed = true
		}
	}
	return changed
}

// separateFirstPair fixes the topmost adjacent pair closer than minGap and
// reports whether it found one.
func (a *arena) separateFirstPair(nodes []int, minGap float64) bool {
	for k := 0; k+1 < len(nodes); k++ {
		upper, lower := nodes[k], nodes[k+1]
		gap := a.y[lower] - a.bottom[upper]
		if gap >= minGap-gapTolerance {
			continue
		}
		delta := minGap - gap
		a.shiftSubtree(lower, delta)
		a.extendAncestors(lower, delta)
		return true
	}
	return false
}

// shiftSubtree moves root and all of its descendants down by delta. A
// descendant reachable through several paths moves once.
func (a *arena) shiftSubtree(root int, delta float64) {
	a.walk(root, a.children, func(id int) {
		a.y[id] += delta
		a.bottom[id] += delta
	})
}

// extendAncestors grows the subtree bottom of every ancestor of root by
// delta. root itself was already moved by shiftSubtree.
func (a *arena) extendAncestors(root int, delta float64) {
	a.walk(root, a.parents, func(id int) {
		if id != root {
			a.bottom[id] += delta
		}
	})
}
