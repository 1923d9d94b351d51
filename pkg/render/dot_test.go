package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/flowlayout/pkg/canvas"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/layout"
)

func positioned() *canvas.Canvas {
	return &canvas.Canvas{
		Nodes: []canvas.Node{
			{ID: "a", Type: "llm", Label: "Agent", Position: canvas.Position{X: 100, Y: 80}, Data: map[string]any{"model": "x"}},
			{ID: "b", Type: "tool", Position: canvas.Position{X: 480, Y: 25}},
		},
		Edges: []canvas.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "a"},
			{Source: "a", Target: "ghost"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(positioned(), DOTOptions{})

	for _, want := range []string{
		"digraph G {",
		"layout=neato;",
		`"a" [label="Agent", pos="50.00,-40.00!", fillcolor="#d6eaf8"];`,
		`"b" [label="b", pos="240.00,-12.50!", fillcolor="#d5f5e3"];`,
		`"a" -> "b";`,
		`"b" -> "a";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "ghost") {
		t.Error("edges to unknown nodes should be skipped")
	}
}

func TestToDOT_FeedbackDashed(t *testing.T) {
	dot := ToDOT(positioned(), DOTOptions{Feedback: []layout.Edge{{Source: "b", Target: "a"}}})

	if !strings.Contains(dot, `"b" -> "a" [style=dashed`) {
		t.Errorf("feedback edge should be dashed:\n%s", dot)
	}
	if strings.Contains(dot, `"a" -> "b" [style=dashed`) {
		t.Error("only the feedback edge is dashed")
	}
}

func TestToDOT_ScaleAndDetail(t *testing.T) {
	dot := ToDOT(positioned(), DOTOptions{Scale: 1, Detailed: true})

	if !strings.Contains(dot, `pos="100.00,-80.00!"`) {
		t.Errorf("scale 1 should keep pixel coordinates:\n%s", dot)
	}
	if !strings.Contains(dot, `label="Agent\ntype: llm\nmodel: x"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOT_DuplicateIDs(t *testing.T) {
	c := &canvas.Canvas{Nodes: []canvas.Node{{ID: "a"}, {ID: "a"}}}
	if n := strings.Count(ToDOT(c, DOTOptions{}), `"a" [`); n != 1 {
		t.Errorf("node a declared %d times, want 1", n)
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"pdf", true},
		{"SVG", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestRender_DOTPassthrough(t *testing.T) {
	dot := ToDOT(positioned(), DOTOptions{})
	out, err := Render(context.Background(), dot, FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != dot {
		t.Error("dot format should return the input unchanged")
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(context.Background(), "digraph{}", "gif")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("unexpected root element: %s", out)
	}
	if !strings.Contains(out, "<g/>") {
		t.Error("body should be kept")
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should pass through")
	}
}
