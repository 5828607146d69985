// Package backfill walks a source tree and restores missing documentation in
// the rendered pages produced for it.
package backfill

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docpatch/internal/config"
	"git.home.luguber.info/inful/docpatch/internal/foundation/errors"
	"git.home.luguber.info/inful/docpatch/internal/htmlpage"
	"git.home.luguber.info/inful/docpatch/internal/inline"
	"git.home.luguber.info/inful/docpatch/internal/logfields"
)

// Summary reports what one backfill run did.
type Summary struct {
	FilesScanned   int
	PagesRewritten int
	Replacements   int
	SkippedPages   []string
}

// Service runs the recover-match-rewrite cycle over a documentation tree.
// Files are processed to completion one at a time; per-file failures are
// contained and logged.
type Service struct {
	cfg       *config.Config
	sourceDir string
	docsDir   string
	logger    *slog.Logger
}

// NewService creates a backfill service. Each run is tagged with a fresh run
// id in its log output.
func NewService(cfg *config.Config, sourceDir, docsDir string) *Service {
	return &Service{
		cfg:       cfg,
		sourceDir: sourceDir,
		docsDir:   docsDir,
		logger:    slog.Default().With(logfields.RunID(uuid.NewString())),
	}
}

// Run processes every Swift source file in the source directory, rewrites the
// page each file maps to, then patches the summary pages with the union of
// all recovered documentation. Only setup failures abort the run.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	if _, err := os.Stat(s.sourceDir); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "source directory not found").
			WithContext("path", s.sourceDir).Build()
	}
	if _, err := os.Stat(s.docsDir); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "docs directory not found").
			WithContext("path", s.docsDir).Build()
	}

	entries, err := os.ReadDir(s.sourceDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to enumerate source directory").
			WithContext("path", s.sourceDir).Build()
	}

	summary := &Summary{}
	merged := inline.NewCommentMap()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".swift") {
			continue
		}
		summary.FilesScanned++
		s.processFile(entry.Name(), merged, summary)
	}

	s.patchSummaryPages(merged, summary)

	s.logger.Info("backfill completed",
		slog.Int("files", summary.FilesScanned),
		slog.Int("pages", summary.PagesRewritten),
		slog.Int("replacements", summary.Replacements))
	return summary, nil
}

func (s *Service) processFile(name string, merged *inline.CommentMap, summary *Summary) {
	stem := strings.TrimSuffix(name, ".swift")
	pagePath := s.pageFor(stem)

	if _, err := os.Stat(pagePath); err != nil {
		s.logger.Warn("no rendered page for source file, skipping",
			logfields.File(name), logfields.Page(pagePath))
		summary.SkippedPages = append(summary.SkippedPages, pagePath)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.sourceDir, name))
	if err != nil {
		s.logger.Warn("failed to read source file", logfields.File(name), logfields.Error(err))
		return
	}

	docs := inline.Recover(strings.Split(string(data), "\n"))
	if docs.Len() == 0 {
		s.logger.Debug("no documented declarations found", logfields.File(name))
		return
	}

	replaced, err := htmlpage.RewriteFile(pagePath, docs)
	if err != nil {
		s.logger.Warn("failed to rewrite page", logfields.Page(pagePath), logfields.Error(err))
		return
	}

	merged.Merge(docs)
	if replaced > 0 {
		summary.PagesRewritten++
		summary.Replacements += replaced
	}
	s.logger.Info("page backfilled",
		logfields.File(name),
		logfields.Page(pagePath),
		logfields.Count(replaced))
}

// patchSummaryPages applies the union of all per-file maps to each configured
// index page. Later source files win on colliding declaration names.
func (s *Service) patchSummaryPages(merged *inline.CommentMap, summary *Summary) {
	if merged.Len() == 0 {
		return
	}
	for _, page := range s.cfg.Pages.Summary {
		path := filepath.Join(s.docsDir, page)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		replaced, err := htmlpage.RewriteFile(path, merged)
		if err != nil {
			s.logger.Warn("failed to rewrite summary page", logfields.Page(path), logfields.Error(err))
			continue
		}
		if replaced > 0 {
			summary.PagesRewritten++
			summary.Replacements += replaced
		}
	}
}

// pageFor maps a source file stem to its rendered page path, honoring
// configured overrides and defaulting to the Classes section.
func (s *Service) pageFor(stem string) string {
	if override, ok := s.cfg.Pages.Overrides[stem]; ok {
		section := override.Section
		if section == "" {
			section = "Classes"
		}
		name := override.Name
		if name == "" {
			name = stem
		}
		return filepath.Join(s.docsDir, section, name+".html")
	}
	return filepath.Join(s.docsDir, "Classes", stem+".html")
}
