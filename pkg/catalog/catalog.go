// Package catalog loads, merges, and writes locale message catalogs.
//
// A catalog is the flat key/value message listing an upstream web project
// publishes per locale. Catalogs are rebuilt from scratch on every run and
// never mutated after they are written out.
package catalog

// MessageCatalog maps message keys to translated strings for one locale.
type MessageCatalog map[string]string

// Clone returns an independent copy of the catalog. The copy is never nil,
// so callers can merge into it without guarding the empty case.
func (c MessageCatalog) Clone() MessageCatalog {
	out := make(MessageCatalog, len(c))
	for key, value := range c {
		out[key] = value
	}
	return out
}

// Merge unions base and overlay into a fresh catalog, with overlay entries
// winning on key collisions. Keys that exist only in overlay are kept, and
// base is left untouched: every locale merge starts from its own copy of the
// baseline.
func Merge(base, overlay MessageCatalog) MessageCatalog {
	merged := base.Clone()
	for key, value := range overlay {
		merged[key] = value
	}
	return merged
}
