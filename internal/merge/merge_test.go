package merge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpatch/internal/symbols"
)

func int64p(v int64) *int64 { return &v }

func TestMerge_EndToEndScenario(t *testing.T) {
	// Source buffer with bytes 10-18 equal to "func f()".
	source := []byte("0123456789func f()xx")
	roots := []symbols.Record{{Identifier: "s1", Offset: int64p(10), Length: int64p(8)}}
	docs := []any{symbols.DocRecord{"identifier": "s1", "name": "f"}}

	out := Merge(roots, docs, source)
	require.Len(t, out, 1)

	rec := out[0].(symbols.DocRecord)
	require.Equal(t, "func f()", rec[symbols.FieldParsedDeclaration])
	require.Equal(t, "func f()", rec[symbols.FieldSwiftDeclaration])
	require.Contains(t, rec[symbols.FieldAnnotatedDeclaration], ">func</span>")
	require.Equal(t, "f", rec["name"])
}

func TestMerge_StructuralOffsetsWinOverDocOffsets(t *testing.T) {
	source := []byte("aaaaaBBBBBccccc")
	roots := []symbols.Record{{Identifier: "s1", Offset: int64p(5), Length: int64p(5)}}
	docs := []any{symbols.DocRecord{
		"identifier": "s1",
		"offset":     float64(0),
		"length":     float64(5),
	}}

	out := Merge(roots, docs, source)
	rec := out[0].(symbols.DocRecord)
	require.Equal(t, "BBBBB", rec[symbols.FieldParsedDeclaration])
}

func TestMerge_DocOffsetsUsedWhenIdentifierUnknown(t *testing.T) {
	source := []byte("let x = 1")
	docs := []any{symbols.DocRecord{
		"identifier": "s:missing",
		"offset":     float64(0),
		"length":     float64(9),
	}}

	out := Merge(nil, docs, source)
	rec := out[0].(symbols.DocRecord)
	require.Equal(t, "let x = 1", rec[symbols.FieldParsedDeclaration])
}

func TestMerge_IndexedCounterpartWithoutRangeBlocksFallback(t *testing.T) {
	source := []byte("let x = 1")
	roots := []symbols.Record{{Identifier: "s1"}}
	docs := []any{symbols.DocRecord{
		"identifier": "s1",
		"offset":     float64(0),
		"length":     float64(9),
	}}

	out := Merge(roots, docs, source)
	rec := out[0].(symbols.DocRecord)
	require.NotContains(t, rec, symbols.FieldParsedDeclaration)
}

func TestMerge_NeverDropsRecords(t *testing.T) {
	source := []byte("short")
	docs := []any{
		symbols.DocRecord{"identifier": "s1", "offset": float64(100), "length": float64(5)}, // out of range
		symbols.DocRecord{"name": "no identifier, no offsets"},
		"not a record at all",
	}

	out := Merge(nil, docs, source)
	require.Len(t, out, len(docs))

	first := out[0].(symbols.DocRecord)
	require.NotContains(t, first, symbols.FieldParsedDeclaration)
	require.Equal(t, "not a record at all", out[2])
}

func TestMerge_PreservesOrder(t *testing.T) {
	docs := []any{
		symbols.DocRecord{"name": "a"},
		symbols.DocRecord{"name": "b"},
		symbols.DocRecord{"name": "c"},
	}

	out := Merge(nil, docs, nil)
	for i, want := range []string{"a", "b", "c"} {
		require.Equal(t, want, out[i].(symbols.DocRecord)["name"])
	}
}
