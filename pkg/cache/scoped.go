package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "textfmt:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// OutputKey implements Keyer.
func (k *ScopedKeyer) OutputKey(textHash string, opts OutputKeyOpts) string {
	return k.prefix + k.inner.OutputKey(textHash, opts)
}

// Prefix returns the scope prefix.
func (k *ScopedKeyer) Prefix() string {
	return k.prefix
}
