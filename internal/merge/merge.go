// Package merge correlates the structural outline with the documentation
// extract and enriches each doc record with its declaration text.
package merge

import (
	"log/slog"

	"git.home.luguber.info/inful/docpatch/internal/extract"
	"git.home.luguber.info/inful/docpatch/internal/highlight"
	"git.home.luguber.info/inful/docpatch/internal/logfields"
	"git.home.luguber.info/inful/docpatch/internal/symbols"
)

// Merge resolves each doc record against the structural outline and attaches
// declaration text extracted from the source buffer.
//
// Resolution order per record: the structural counterpart's offset/length on
// an identifier hit (with no fallback when the counterpart lacks them), else
// the record's own offset/length pair, else the record passes through
// untouched. Extraction failures are contained per record with a warning;
// merge never drops a record and preserves input order.
func Merge(roots []symbols.Record, docs []any, source []byte) []any {
	idx := symbols.BuildIndex(roots)

	result := make([]any, 0, len(docs))
	for _, item := range docs {
		rec, ok := item.(symbols.DocRecord)
		if !ok {
			result = append(result, item)
			continue
		}
		enrich(idx, rec, source)
		result = append(result, rec)
	}
	return result
}

func enrich(idx symbols.Index, rec symbols.DocRecord, source []byte) {
	offset, length, resolved := resolveRange(idx, rec)
	if !resolved {
		return
	}

	decl, err := extract.Declaration(source, offset, length)
	if err != nil {
		slog.Warn("failed to extract declaration",
			logfields.Symbol(symbols.Identifier(rec)),
			logfields.Offset(offset),
			logfields.Error(err))
		return
	}

	rec[symbols.FieldParsedDeclaration] = decl
	rec[symbols.FieldAnnotatedDeclaration] = highlight.Declaration(decl)
	// Swift-specific consumers read the raw text under their own key.
	rec[symbols.FieldSwiftDeclaration] = decl
}

func resolveRange(idx symbols.Index, rec symbols.DocRecord) (offset, length int64, ok bool) {
	if id := symbols.Identifier(rec); id != "" {
		if node, found := idx[id]; found {
			// An indexed counterpart is authoritative even when it carries no
			// range; the record's own offsets are only a fallback for symbols
			// absent from the outline.
			if node.Offset == nil || node.Length == nil {
				return 0, 0, false
			}
			return *node.Offset, *node.Length, true
		}
	}

	offset, hasOffset := symbols.ByteField(rec, symbols.FieldOffset)
	length, hasLength := symbols.ByteField(rec, symbols.FieldLength)
	if hasOffset && hasLength {
		return offset, length, true
	}
	return 0, 0, false
}
