// Package pipeline runs canvas auto-layout with caching, logging and hooks.
//
// The CLI and the HTTP service both go through a [Runner] so they share
// cache keys, defaults and validation.
//
// # Stages
//
//  1. Layout: validate the canvas, compute positions (layered or grid), and
//     cache the positioned canvas by content hash and options.
//  2. Render (optional): draw the positioned canvas as DOT, SVG or PNG and
//     cache the artifact by the hash of the positioned canvas.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Layout(ctx, c, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	canvas.WriteFile(res.Canvas, "out.json")
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/canvas"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/layout"
	"github.com/matzehuels/flowlayout/pkg/render"
)

// Layout modes.
const (
	ModeLayered = "layered"
	ModeGrid    = "grid"
)

// ValidModes is the set of supported layout modes.
var ValidModes = map[string]bool{
	ModeLayered: true,
	ModeGrid:    true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run. It is decoded from HTTP requests as
// JSON.
type Options struct {
	// Layout options
	Mode    string          `json:"mode,omitempty"`
	Columns int             `json:"columns,omitempty"` // grid mode; <= 0 picks a near-square grid
	Grid    *layout.Options `json:"grid,omitempty"`    // nil means layout.DefaultOptions
	Refresh bool            `json:"refresh,omitempty"` // skip cache reads

	// Render options
	Format   string  `json:"format,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills in every unset field.
func (o *Options) SetDefaults() {
	if o.Mode == "" {
		o.Mode = ModeLayered
	}
	if o.Grid == nil {
		g := layout.DefaultOptions()
		o.Grid = &g
	}
	if o.Format == "" {
		o.Format = render.FormatSVG
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout applies defaults and checks the layout options.
func (o *Options) ValidateForLayout() error {
	o.SetDefaults()
	if !ValidModes[o.Mode] {
		return errors.New(errors.ErrCodeInvalidOptions, "invalid mode: %q (must be one of: layered, grid)", o.Mode)
	}
	return o.Grid.Validate()
}

// ValidateForRender applies defaults and checks the render options.
func (o *Options) ValidateForRender() error {
	o.SetDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "scale must be positive, got %v", o.Scale)
	}
	return render.ValidateFormat(o.Format)
}

// LayoutKeyOpts returns cache key options for a layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Mode:                 o.Mode,
		StartX:               o.Grid.StartX,
		StartY:               o.Grid.StartY,
		StepX:                o.Grid.StepX,
		StepY:                o.Grid.StepY,
		ParentCenterOffsetUp: o.Grid.ParentCenterOffsetUp,
	}
	if o.Mode == ModeGrid {
		k.Columns = o.Columns
	}
	return k
}

// ArtifactKeyOpts returns cache key options for a rendered preview.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:            o.Format,
		Scale:             o.Scale,
		HighlightFeedback: o.Mode == ModeLayered,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of a layout run.
type Result struct {
	// Canvas is the input canvas with every node positioned.
	Canvas *canvas.Canvas `json:"canvas"`
	// CanvasHash is the content hash of the input canvas.
	CanvasHash string `json:"canvas_hash"`

	// Layers maps node ids to layer indices (layered mode only).
	Layers map[string]int `json:"layers,omitempty"`
	// ByLayer lists node ids per layer, sorted by id (layered mode only).
	ByLayer [][]string `json:"by_layer,omitempty"`
	// FeedbackEdges were ignored to break cycles (layered mode only).
	FeedbackEdges []layout.Edge `json:"feedback_edges,omitempty"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Stats contains run statistics.
type Stats struct {
	NodeCount     int           `json:"nodes"`
	EdgeCount     int           `json:"edges"` // after dropping dangling, self and duplicate edges
	LayerCount    int           `json:"layers"`
	FeedbackCount int           `json:"feedback_edges"`
	LayoutTime    time.Duration `json:"layout_ns"`
	RenderTime    time.Duration `json:"render_ns,omitempty"`
}

// CacheInfo tracks cache hits per stage.
type CacheInfo struct {
	LayoutHit bool `json:"layout_hit"`
	RenderHit bool `json:"render_hit,omitempty"`
}
