package cache

// ScopedKeyer wraps a Keyer with a prefix so multiple projects can share one
// cache directory without key collisions.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:site:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtKey generates a prefixed key for image-to-art conversion results.
func (k *ScopedKeyer) ArtKey(imageHash string, opts ArtKeyOpts) string {
	return k.prefix + k.inner.ArtKey(imageHash, opts)
}

// RenderKey generates a prefixed key for seeded render results.
func (k *ScopedKeyer) RenderKey(codeHash, artHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(codeHash, artHash, opts)
}
