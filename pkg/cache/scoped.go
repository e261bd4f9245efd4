package cache

import "strings"

// ScopedKeyer prefixes every key of an inner [Keyer] so several deployments
// can share one Redis database without reading each other's artifacts.
type ScopedKeyer struct {
	inner Keyer
	scope string
}

// NewScopedKeyer scopes inner to scope. A trailing ":" is added to scope
// when missing; an empty scope returns inner unchanged. A nil inner is the
// [DefaultKeyer].
//
//	keyer := NewScopedKeyer(nil, "staging") // "staging:artifact:png:..."
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if scope == "" {
		return inner
	}
	if !strings.HasSuffix(scope, ":") {
		scope += ":"
	}
	return &ScopedKeyer{inner: inner, scope: scope}
}

// ArtifactKey returns the inner key with the scope prepended.
func (k *ScopedKeyer) ArtifactKey(svgHash string, opts ArtifactKeyOpts) string {
	return k.scope + k.inner.ArtifactKey(svgHash, opts)
}
