package gbwt

import (
	"maps"
	"slices"
)

// Tags is an opaque string-keyed annotation map.
type Tags map[string]string

// Keys returns the tag keys in sorted order.
func (t Tags) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

// Clone returns a copy of the tags. Cloning nil yields an empty map.
func (t Tags) Clone() Tags {
	out := make(Tags, len(t))
	maps.Copy(out, t)
	return out
}
