package cache

// ScopedKeyer wraps a Keyer with a prefix, giving unrelated consumers
// of a shared cache directory separate namespaces. The server uses one
// scope per served library; tests use throwaway scopes for isolation.
//
// Example usage:
//
//	libKeyer := NewScopedKeyer(NewDefaultKeyer(), "lib:connectors:")
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

// PartKey generates a prefixed key for a rendered footprint file.
func (k *ScopedKeyer) PartKey(family, name, specHash string) string {
	return k.prefix + k.inner.PartKey(family, name, specHash)
}

// PreviewKey generates a prefixed key for a rendered preview image.
func (k *ScopedKeyer) PreviewKey(contentHash string, opts PreviewKeyOpts) string {
	return k.prefix + k.inner.PreviewKey(contentHash, opts)
}
