// Package symbols models the two symbol inputs the merge pipeline consumes:
// a structural outline with byte offsets and a documentation extract with
// free-form per-symbol fields.
package symbols

import (
	"bytes"
	"encoding/json"

	"git.home.luguber.info/inful/docpatch/internal/foundation/errors"
)

// Field names shared by both input trees and the enriched output.
const (
	FieldIdentifier = "identifier"
	FieldOffset     = "offset"
	FieldLength     = "length"

	// Derived fields attached by the merge.
	FieldParsedDeclaration    = "parsed_declaration"
	FieldAnnotatedDeclaration = "annotated_declaration"
	FieldSwiftDeclaration     = "swift_declaration"
)

// Record is one declaration in the structural outline.
//
// Offset and Length are byte-based and refer to the source buffer the outline
// was produced from. Unknown input fields are ignored on decode.
type Record struct {
	Identifier string   `json:"identifier,omitempty"`
	Offset     *int64   `json:"offset,omitempty"`
	Length     *int64   `json:"length,omitempty"`
	Children   []Record `json:"children,omitempty"`
}

// DocRecord is one declaration's documentation entry. Arbitrary fields must
// survive the merge unchanged, so it stays a plain map.
type DocRecord = map[string]any

// NormalizeStructure parses structure input into a list of root records.
//
// A single JSON object is treated as a one-element root list. Any parseable
// JSON that is neither an object nor a list coerces to an empty list with
// ok=false so the caller can warn instead of aborting. A JSON syntax error is
// returned as-is: top-level parse failures are fatal for the invocation.
func NormalizeStructure(data []byte) (roots []Record, ok bool, err error) {
	switch firstByte(data) {
	case '{':
		var root Record
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, false, errors.WrapError(err, errors.CategoryValidation, "failed to parse structure JSON").Build()
		}
		return []Record{root}, true, nil
	case '[':
		var list []Record
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, false, errors.WrapError(err, errors.CategoryValidation, "failed to parse structure JSON").Build()
		}
		return list, true, nil
	default:
		if !json.Valid(data) {
			return nil, false, errors.NewError(errors.CategoryValidation, "structure input is not valid JSON").Build()
		}
		return nil, false, nil
	}
}

// NormalizeDocs parses doc-record input into a flat list.
//
// A single JSON object becomes a one-element list (an empty object becomes an
// empty list). List elements that are not objects are kept so the merge never
// drops records; they simply cannot be enriched. Non-object, non-list input
// coerces to an empty list with ok=false.
func NormalizeDocs(data []byte) (docs []any, ok bool, err error) {
	switch firstByte(data) {
	case '{':
		var rec DocRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, false, errors.WrapError(err, errors.CategoryValidation, "failed to parse docs JSON").Build()
		}
		if len(rec) == 0 {
			return []any{}, true, nil
		}
		return []any{rec}, true, nil
	case '[':
		var list []any
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, false, errors.WrapError(err, errors.CategoryValidation, "failed to parse docs JSON").Build()
		}
		return list, true, nil
	default:
		if !json.Valid(data) {
			return nil, false, errors.NewError(errors.CategoryValidation, "docs input is not valid JSON").Build()
		}
		return nil, false, nil
	}
}

// Identifier reads the identifier field from a doc record, if present.
func Identifier(rec DocRecord) string {
	id, _ := rec[FieldIdentifier].(string)
	return id
}

// ByteField reads an integer field from a doc record. JSON numbers arrive as
// float64 through encoding/json; offsets are whole numbers by contract.
func ByteField(rec DocRecord, key string) (int64, bool) {
	switch v := rec[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func firstByte(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
