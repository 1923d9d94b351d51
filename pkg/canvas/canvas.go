package canvas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/layout"
)

// Canvas is a saved node-editor graph.
type Canvas struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one block on the canvas.
type Node struct {
	ID       string         `json:"id"`
	Type     string         `json:"type,omitempty"`
	Label    string         `json:"label,omitempty"` // defaults to ID
	Position Position       `json:"position"`
	Data     map[string]any `json:"data,omitempty"`
}

// Position is the top-left corner of a node in canvas pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge connects the output of Source to the input of Target.
type Edge struct {
	ID     string `json:"id,omitempty"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// NodeID returns the node's id. It is the id accessor handed to layout.Layout.
func NodeID(n Node) string { return n.ID }

// SetPosition returns a copy of n placed at (x, y).
func SetPosition(n Node, x, y float64) Node {
	n.Position = Position{X: x, Y: y}
	return n
}

// IDs returns the node ids in document order.
func (c *Canvas) IDs() []string {
	ids := make([]string, len(c.Nodes))
	for i, n := range c.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// LayoutEdges converts the canvas edges to the engine's edge type.
func (c *Canvas) LayoutEdges() []layout.Edge {
	out := make([]layout.Edge, len(c.Edges))
	for i, e := range c.Edges {
		out[i] = layout.Edge{Source: e.Source, Target: e.Target}
	}
	return out
}

// Node returns the first node with the given id.
func (c *Canvas) Node(id string) (Node, bool) {
	for _, n := range c.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// WithNodes returns a shallow copy of c carrying nodes instead of c.Nodes.
// Edges are copied so the result can be changed independently.
func (c *Canvas) WithNodes(nodes []Node) *Canvas {
	edges := make([]Edge, len(c.Edges))
	copy(edges, c.Edges)
	return &Canvas{Nodes: nodes, Edges: edges}
}

// Validate checks that every node has a usable, unique id.
func (c *Canvas) Validate() error {
	seen := make(map[string]struct{}, len(c.Nodes))
	for i, n := range c.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", i)
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

// Hash returns a SHA-256 hex digest of the canvas with every node position
// zeroed. Map keys in Data are encoded sorted, so the hash is stable.
func (c *Canvas) Hash() string {
	nodes := make([]Node, len(c.Nodes))
	for i, n := range c.Nodes {
		n.Position = Position{}
		nodes[i] = n
	}
	data, _ := json.Marshal(Canvas{Nodes: nodes, Edges: c.Edges})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
