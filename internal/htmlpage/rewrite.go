package htmlpage

import (
	"bytes"
	"os"
	"path/filepath"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docpatch/internal/foundation/errors"
	"git.home.luguber.info/inful/docpatch/internal/inline"
)

// RewriteFile runs a read-modify-write cycle on one rendered page: parse,
// replace placeholders, render back. Pages with no replacements are left
// untouched on disk. Returns the replacement count.
func RewriteFile(path string, docs *inline.CommentMap) (int, error) {
	// #nosec G304 -- path comes from internal directory enumeration.
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext("path", path).Build()
	}

	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryDocs, "failed to parse page").
			WithContext("path", path).Build()
	}

	replaced := ReplaceUndocumented(root, docs)
	if replaced == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return 0, errors.WrapError(err, errors.CategoryDocs, "failed to render page").
			WithContext("path", path).Build()
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").
			WithContext("path", path).Build()
	}
	return replaced, nil
}
