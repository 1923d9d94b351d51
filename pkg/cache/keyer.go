package cache

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs always give equal keys.
type Keyer interface {
	// LayoutKey addresses the positioned canvas computed from the canvas
	// with the given content hash.
	LayoutKey(canvasHash string, opts LayoutKeyOpts) string
	// ArtifactKey addresses a rendered preview of a positioned canvas.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every setting that changes a layout result.
type LayoutKeyOpts struct {
	Mode    string `json:"mode"`              // "layered" or "grid"
	Columns int    `json:"columns,omitempty"` // grid mode only

	StartX               float64 `json:"start_x"`
	StartY               float64 `json:"start_y"`
	StepX                float64 `json:"step_x"`
	StepY                float64 `json:"step_y"`
	ParentCenterOffsetUp float64 `json:"parent_center_offset_up"`
}

// ArtifactKeyOpts holds every setting that changes a rendered preview.
type ArtifactKeyOpts struct {
	Format            string  `json:"format"`
	Scale             float64 `json:"scale"`
	HighlightFeedback bool    `json:"highlight_feedback,omitempty"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(canvasHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", canvasHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
