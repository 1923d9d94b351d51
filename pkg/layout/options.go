package layout

import (
	"math"

	"github.com/matzehuels/flowlayout/pkg/errors"
)

// Default grid parameters, in canvas pixels.
const (
	DefaultStartX               = 100.0
	DefaultStartY               = 80.0
	DefaultStepX                = 380.0
	DefaultStepY                = 220.0
	DefaultParentCenterOffsetUp = 55.0

	// minGapRatio is the fraction of StepY two nodes in one layer must keep.
	minGapRatio = 0.3
)

// Options controls the grid the engine places nodes on.
type Options struct {
	StartX float64 `json:"start_x" toml:"start_x"` // x of layer 0
	StartY float64 `json:"start_y" toml:"start_y"` // y of the first node in the deepest layer
	StepX  float64 `json:"step_x" toml:"step_x"`   // horizontal distance between layers
	StepY  float64 `json:"step_y" toml:"step_y"`   // vertical distance between siblings

	// ParentCenterOffsetUp moves a parent up from the midpoint of its
	// children. Nodes are placed by their top-left corner, so the raw
	// midpoint looks too low.
	ParentCenterOffsetUp float64 `json:"parent_center_offset_up" toml:"parent_center_offset_up"`
}

// DefaultOptions returns the standard canvas grid.
func DefaultOptions() Options {
	return Options{
		StartX:               DefaultStartX,
		StartY:               DefaultStartY,
		StepX:                DefaultStepX,
		StepY:                DefaultStepY,
		ParentCenterOffsetUp: DefaultParentCenterOffsetUp,
	}
}

// MinGap returns the minimum vertical distance between a node and the subtree
// of the node above it in the same layer.
func (o Options) MinGap() float64 { return o.StepY * minGapRatio }

// Validate reports INVALID_OPTIONS for non-finite values and non-positive steps.
func (o Options) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"start_x", o.StartX},
		{"start_y", o.StartY},
		{"step_x", o.StepX},
		{"step_y", o.StepY},
		{"parent_center_offset_up", o.ParentCenterOffsetUp},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.New(errors.ErrCodeInvalidOptions, "%s must be finite, got %v", f.name, f.value)
		}
	}
	if o.StepX <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "step_x must be positive, got %v", o.StepX)
	}
	if o.StepY <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "step_y must be positive, got %v", o.StepY)
	}
	return nil
}

// Option overrides part of the default grid for one call.
type Option func(*Options)

// WithOptions replaces the whole grid.
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o }
}

// WithStart sets the origin of the grid.
func WithStart(x, y float64) Option {
	return func(o *Options) {
		o.StartX = x
		o.StartY = y
	}
}

// WithStep sets the distance between layers (x) and between siblings (y).
func WithStep(x, y float64) Option {
	return func(o *Options) {
		o.StepX = x
		o.StepY = y
	}
}

// WithParentCenterOffset sets how far parents are lifted above the midpoint
// of their children.
func WithParentCenterOffset(v float64) Option {
	return func(o *Options) { o.ParentCenterOffsetUp = v }
}

func resolveOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}
