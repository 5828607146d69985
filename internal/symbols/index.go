package symbols

// Index maps a unique symbol identifier to its structural record.
//
// The index is built fresh per merge call and discarded afterwards; both
// input trees stay read-only during the pass.
type Index map[string]*Record

// BuildIndex recursively visits every node in the root list and indexes each
// node carrying a non-empty identifier. A later duplicate identifier
// overwrites an earlier one (last-wins). Nodes without identifiers are simply
// not indexed.
func BuildIndex(roots []Record) Index {
	idx := make(Index)
	for i := range roots {
		indexRecord(idx, &roots[i])
	}
	return idx
}

func indexRecord(idx Index, rec *Record) {
	if rec.Identifier != "" {
		idx[rec.Identifier] = rec
	}
	for i := range rec.Children {
		indexRecord(idx, &rec.Children[i])
	}
}
