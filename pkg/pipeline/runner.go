package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/canvas"
	"github.com/matzehuels/flowlayout/pkg/layout"
	"github.com/matzehuels/flowlayout/pkg/observability"
	"github.com/matzehuels/flowlayout/pkg/render"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner executes pipeline stages with caching.
// Both CLI and HTTP service use it to avoid duplicating caching logic.
//
// The Runner holds no per-run state. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the layout cache lifetime; zero means cache.TTLLayout.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// LayoutWithCacheInfo validates c, then returns its cached layout or
// computes and caches a new one. The bool reports a cache hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, c *canvas.Canvas, opts Options) (*Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	if err := c.Validate(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, opts.Mode, len(c.Nodes), len(c.Edges))

	canvasHash := c.Hash()
	cacheKey := r.Keyer.LayoutKey(canvasHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if res, ok := r.cachedLayout(ctx, cacheKey); ok {
			res.Stats.LayoutTime = time.Since(start)
			res.CacheInfo = CacheInfo{LayoutHit: true}
			hooks.OnLayoutComplete(ctx, opts.Mode, statsOf(res), res.Stats.LayoutTime, nil)
			opts.Logger.Debug("layout cache hit", "hash", canvasHash[:12])
			return res, true, nil
		}
	}

	res, err := ComputeLayout(c, opts)
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.Mode, observability.LayoutStats{}, time.Since(start), err)
		return nil, false, err
	}
	res.CanvasHash = canvasHash
	res.Stats.LayoutTime = time.Since(start)

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	hooks.OnLayoutComplete(ctx, opts.Mode, statsOf(res), res.Stats.LayoutTime, nil)
	if res.Stats.FeedbackCount > 0 {
		opts.Logger.Debug("broke cycles", "feedback_edges", res.FeedbackEdges)
	}
	return res, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit flag.
func (r *Runner) Layout(ctx context.Context, c *canvas.Canvas, opts Options) (*Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, c, opts)
	return res, err
}

// Grid lays c out on a plain grid with the given number of columns.
func (r *Runner) Grid(ctx context.Context, c *canvas.Canvas, columns int, opts Options) (*Result, error) {
	opts.Mode = ModeGrid
	opts.Columns = columns
	return r.Layout(ctx, c, opts)
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil || res.Canvas == nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeLayout)
	return &res, true
}

// RenderWithCacheInfo draws a layout result in opts.Format. The bool
// reports a cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, opts.Format)

	cacheKey := r.Keyer.ArtifactKey(layoutHash(res), opts.ArtifactKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			hooks.OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), nil)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	dot := render.ToDOT(res.Canvas, render.DOTOptions{
		Scale:    opts.Scale,
		Detailed: opts.Detailed,
		Feedback: res.FeedbackEdges,
	})
	data, err := render.Render(ctx, dot, opts.Format)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Format, 0, time.Since(start), err)
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
		opts.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	hooks.OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), nil)
	return data, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return data, err
}

// Execute lays out c and renders the result in opts.Format.
func (r *Runner) Execute(ctx context.Context, c *canvas.Canvas, opts Options) (*Result, []byte, error) {
	res, err := r.Layout(ctx, c, opts)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	data, hit, err := r.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, nil, err
	}
	res.Stats.RenderTime = time.Since(start)
	res.CacheInfo.RenderHit = hit
	return res, data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLLayout
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// layoutHash identifies everything a preview is drawn from.
func layoutHash(res *Result) string {
	data, _ := json.Marshal(struct {
		Canvas   *canvas.Canvas `json:"canvas"`
		Feedback []layout.Edge  `json:"feedback"`
	}{res.Canvas, res.FeedbackEdges})
	return cache.Hash(data)
}

func statsOf(res *Result) observability.LayoutStats {
	return observability.LayoutStats{
		Nodes:         res.Stats.NodeCount,
		Edges:         res.Stats.EdgeCount,
		Layers:        res.Stats.LayerCount,
		FeedbackEdges: res.Stats.FeedbackCount,
		CacheHit:      res.CacheInfo.LayoutHit,
	}
}
