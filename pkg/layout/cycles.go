package layout

// kahnResidual runs Kahn's algorithm over succ and reports which nodes were
// never released: the nodes on a cycle or downstream of one.
func kahnResidual(succ [][]int) []bool {
	n := len(succ)
	inDegree := make([]int, n)
	for _, targets := range succ {
		for _, t := range targets {
			inDegree[t]++
		}
	}

	queue := make([]int, 0, n)
	for i := range n {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	released := make([]bool, n)
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		released[curr] = true
		for _, child := range succ[curr] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	remaining := make([]bool, n)
	for i, ok := range released {
		remaining[i] = !ok
	}
	return remaining
}

// feedbackEdges returns the edges that close a cycle, in discovery order.
//
// The search is a depth-first traversal restricted to the nodes Kahn's
// algorithm could not release, started from each such node in input order.
// An edge (u, v) where v is still on the active stack is a back edge; every
// back edge is returned, so removing them always leaves an acyclic graph, no
// matter how many independent cycles the input has. A single cycle yields
// exactly one edge.
//
// The stack is an explicit slice so that a cycle through thousands of nodes
// cannot exhaust the goroutine stack.
func feedbackEdges(g *graph) []edge {
	const (
		white = iota
		gray
		black
	)

	remaining := kahnResidual(g.succ)
	color := make([]uint8, g.size())

	type frame struct {
		node int
		next int // index into succ[node] of the next successor to visit
	}

	var back []edge
	var stack []frame
	for start := range g.size() {
		if !remaining[start] || color[start] != white {
			continue
		}

		color[start] = gray
		stack = append(stack[:0], frame{node: start})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := g.succ[top.node]
			if top.next == len(children) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}

			u, v := top.node, children[top.next]
			top.next++
			if !remaining[v] {
				continue
			}
			switch color[v] {
			case white:
				color[v] = gray
				stack = append(stack, frame{node: v})
			case gray:
				back = append(back, edge{u, v})
			}
		}
	}
	return back
}
