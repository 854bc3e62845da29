package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several projects share one Redis instance and need
// separate cache namespaces.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:abc123:")
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

// TermsKey generates a prefixed key for aggregated term caching.
func (k *ScopedKeyer) TermsKey(entriesHash string, opts TermsKeyOpts) string {
	return k.prefix + k.inner.TermsKey(entriesHash, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(termsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(termsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
