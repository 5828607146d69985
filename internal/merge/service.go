package merge

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docpatch/internal/foundation/errors"
	"git.home.luguber.info/inful/docpatch/internal/logfields"
	"git.home.luguber.info/inful/docpatch/internal/symbols"
)

// Options names the four required inputs of a merge invocation.
type Options struct {
	StructurePath string
	DocsPath      string
	SourcePath    string
	OutputPath    string
}

// Run executes one file-level merge: read the three inputs, merge, and write
// the enriched record list as indented JSON.
//
// Top-level I/O and JSON syntax failures are fatal for the invocation.
// Parseable inputs of an unexpected shape coerce to empty containers with a
// warning. Returns the number of records written.
func Run(opts Options) (int, error) {
	structureData, err := os.ReadFile(filepath.Clean(opts.StructurePath))
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryFileSystem, "failed to read structure file").
			WithContext("path", opts.StructurePath).Build()
	}
	docsData, err := os.ReadFile(filepath.Clean(opts.DocsPath))
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryFileSystem, "failed to read docs file").
			WithContext("path", opts.DocsPath).Build()
	}
	source, err := os.ReadFile(filepath.Clean(opts.SourcePath))
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryFileSystem, "failed to read source file").
			WithContext("path", opts.SourcePath).Build()
	}

	roots, ok, err := symbols.NormalizeStructure(structureData)
	if err != nil {
		return 0, err
	}
	if !ok {
		slog.Warn("structure input has unexpected JSON shape, using empty outline",
			logfields.File(opts.StructurePath))
	}

	docs, ok, err := symbols.NormalizeDocs(docsData)
	if err != nil {
		return 0, err
	}
	if !ok {
		slog.Warn("docs input has unexpected JSON shape, using empty record list",
			logfields.File(opts.DocsPath))
	}

	merged := Merge(roots, docs, source)

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryInternal, "failed to encode merged records").Build()
	}
	if err := os.WriteFile(opts.OutputPath, out, 0o644); err != nil {
		return 0, errors.WrapError(err, errors.CategoryFileSystem, "failed to write output file").
			WithContext("path", opts.OutputPath).Build()
	}

	return len(merged), nil
}
