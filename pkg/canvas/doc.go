// Package canvas defines the JSON document a node-editor canvas is saved as,
// and converts it to and from the layout engine's inputs.
//
// # Format
//
//	{
//	  "nodes": [
//	    {"id": "agent", "type": "llm", "label": "Agent",
//	     "position": {"x": 0, "y": 0}, "data": {"model": "gpt-4o"}}
//	  ],
//	  "edges": [{"id": "e1", "source": "agent", "target": "tool"}]
//	}
//
// Only "id" is required on a node and only "source"/"target" on an edge.
// Every other field is carried through a layout untouched, "data" included.
//
// # Validation
//
// [Canvas.Validate] checks node ids (non-empty, unique, no control
// characters). Edges are not validated: the layout engine ignores edges
// whose endpoints are missing, self-loops and duplicates, so a canvas with a
// dangling edge still lays out.
//
// # Hashing
//
// [Canvas.Hash] is a content hash that ignores node positions, since a
// layout overwrites them. Two canvases that differ only in where their nodes
// currently sit hash the same and share cached layouts.
package canvas
