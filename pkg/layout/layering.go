package layout

// assignLayers computes a topological order and a layer per node over the
// acyclic adjacency succ/pred.
//
// Layering is longest-path: a node with no predecessor is in layer 0, every
// other node is one layer right of its deepest predecessor. The order comes
// from Kahn's algorithm with a FIFO queue seeded in input order; any node the
// queue never releases is appended in input order so the order always covers
// every node.
func assignLayers(succ, pred [][]int) (order, layers []int) {
	n := len(succ)
	inDegree := make([]int, n)
	for i := range n {
		inDegree[i] = len(pred[i])
	}

	order = make([]int, 0, n)
	queued := make([]bool, n)
	for i := range n {
		if inDegree[i] == 0 {
			order = append(order, i)
			queued[i] = true
		}
	}

	for head := 0; head < len(order); head++ {
		for _, child := range succ[order[head]] {
			inDegree[child]--
			if inDegree[child] == 0 && !queued[child] {
				order = append(order, child)
				queued[child] = true
			}
		}
	}

	for i := range n {
		if !queued[i] {
			order = append(order, i)
		}
	}

	layers = make([]int, n)
	for _, id := range order {
		layer := 0
		for _, p := range pred[id] {
			if l := layers[p] + 1; l > layer {
				layer = l
			}
		}
		layers[id] = layer
	}
	return order, layers
}
