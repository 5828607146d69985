// Package inline recovers documentation comments from raw source lines and
// matches them to rendered symbol names.
package inline

// CommentMap maps declaration names to recovered documentation strings while
// preserving insertion order, which the tier-3 matching fallback depends on.
// Overwriting an existing name keeps its original position.
type CommentMap struct {
	keys  []string
	index map[string]string
}

// NewCommentMap returns an empty map.
func NewCommentMap() *CommentMap {
	return &CommentMap{index: make(map[string]string)}
}

// Set associates doc with name, appending the key on first insertion.
func (m *CommentMap) Set(name, doc string) {
	if _, exists := m.index[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.index[name] = doc
}

// Get returns the documentation for name.
func (m *CommentMap) Get(name string) (string, bool) {
	doc, ok := m.index[name]
	return doc, ok
}

// Keys returns the key list in insertion order. The returned slice is shared;
// callers must not modify it.
func (m *CommentMap) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *CommentMap) Len() int {
	return len(m.index)
}

// Merge copies every entry of other into m, in other's insertion order.
// Colliding names take other's value.
func (m *CommentMap) Merge(other *CommentMap) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		m.Set(key, other.index[key])
	}
}
