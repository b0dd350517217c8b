package cache

// ScopedKeyer wraps a Keyer with a prefix so that entries written by
// different engine versions or configurations never collide.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer falls back
// to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// OrbitsKey implements [Keyer].
func (k *ScopedKeyer) OrbitsKey(engine, graphDigest string) string {
	return k.prefix + k.inner.OrbitsKey(engine, graphDigest)
}
