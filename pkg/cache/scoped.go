package cache

// ScopedKeyer wraps a Keyer with a prefix so separate projects or users
// sharing one backend (e.g. a Redis instance) get isolated namespaces.
//
// Example usage:
//
//	// Project-specific keys on a shared Redis
//	projKeyer := NewScopedKeyer(NewDefaultKeyer(), "proj:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
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

// SpecKey generates a prefixed key for assembled chart specs.
func (k *ScopedKeyer) SpecKey(tableHash string, opts SpecKeyOpts) string {
	return k.prefix + k.inner.SpecKey(tableHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(specHash, opts)
}
