package layout_test

import (
	"fmt"

	"github.com/matzehuels/flowlayout/pkg/layout"
)

type step struct {
	Name string
	X, Y float64
}

func ExampleLayout() {
	steps := []step{{Name: "plan"}, {Name: "search"}, {Name: "summarize"}, {Name: "cite"}}
	edges := []layout.Edge{
		{Source: "plan", Target: "search"},
		{Source: "plan", Target: "summarize"},
		{Source: "plan", Target: "cite"},
	}

	placed, err := layout.Layout(steps,
		func(s step) string { return s.Name },
		edges,
		func(s step, x, y float64) step {
			s.X, s.Y = x, y
			return s
		},
	)
	if err != nil {
		panic(err)
	}
	for _, s := range placed {
		fmt.Printf("%-9s x=%g y=%g\n", s.Name, s.X, s.Y)
	}
	// Output:
	// plan      x=100 y=245
	// search    x=480 y=300
	// summarize x=480 y=520
	// cite      x=480 y=80
}

func ExampleCompute_cycle() {
	// A loop back to the planner: the closing edge is set aside.
	r, err := layout.Compute(
		[]string{"plan", "act", "review"},
		[]layout.Edge{
			{Source: "plan", Target: "act"},
			{Source: "act", Target: "review"},
			{Source: "review", Target: "plan"},
		},
	)
	if err != nil {
		panic(err)
	}
	fmt.Println("layers:", r.ByLayer)
	fmt.Println("feedback:", r.FeedbackEdges)
	// Output:
	// layers: [[plan] [act] [review]]
	// feedback: [{review plan}]
}

func ExampleGrid() {
	names := []string{"a", "b", "c"}
	placed, _ := layout.Grid(names, func(n string, x, y float64) string {
		return fmt.Sprintf("%s@(%g,%g)", n, x, y)
	}, 2)
	fmt.Println(placed)
	// Output:
	// [a@(100,80) b@(480,80) c@(100,300)]
}
