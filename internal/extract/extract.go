// Package extract slices verbatim declaration text out of a source buffer
// using byte offsets produced by an external indexer.
package extract

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"git.home.luguber.info/inful/docpatch/internal/foundation/errors"
)

// Declaration returns the decoded substring source[offset : offset+length].
//
// Offsets come from an external tool and may split a multi-byte rune in
// pathological inputs; decoding substitutes U+FFFD for invalid sequences
// rather than failing, because a degraded-but-present extraction beats a hard
// failure. Out-of-range offsets are the caller's per-record skip condition.
func Declaration(source []byte, offset, length int64) (string, error) {
	if offset < 0 || length < 0 {
		return "", errors.MergeError("declaration range is negative").
			WithContext("offset", offset).
			WithContext("length", length).
			Build()
	}
	end := offset + length
	if end > int64(len(source)) {
		return "", errors.MergeError("declaration range exceeds source buffer").
			WithContext("offset", offset).
			WithContext("length", length).
			WithContext("source_bytes", len(source)).
			Build()
	}

	decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), source[offset:end])
	if err != nil {
		// The UTF-8 decoder substitutes rather than errors; this is unreachable
		// in practice but kept explicit for the per-record skip contract.
		return "", errors.WrapError(err, errors.CategoryMerge, "failed to decode declaration bytes").Build()
	}
	return string(decoded), nil
}
