package cache

import "strings"

// Key identifies one logical query in the cache. Keys are hierarchical,
// slash-separated: a resource root covers its list and detail keys.
type Key string

// Root returns the namespace key for a resource ("projects"). Invalidating
// the root invalidates every key derived from it.
func Root(resource string) Key {
	return Key(resource)
}

// List returns the key for a resource's list query.
func List(resource string) Key {
	return Key(resource + "/list")
}

// Detail returns the key for a single entity's detail query. It shares the
// list key's root namespace so root invalidation covers both.
func Detail(resource, id string) Key {
	return Key(resource + "/detail/" + id)
}

// Covers reports whether k equals other or is an ancestor namespace of it.
func (k Key) Covers(other Key) bool {
	if k == other {
		return true
	}
	return strings.HasPrefix(string(other), string(k)+"/")
}
