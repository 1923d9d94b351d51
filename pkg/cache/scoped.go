package cache

// ScopedKeyer wraps a Keyer with a prefix, giving every workspace or tenant
// of the HTTP service its own key space.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "ws:acme:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(canvasHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(canvasHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
