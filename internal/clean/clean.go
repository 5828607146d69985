// Package clean applies the configured cleanup rewrites to a rendered
// documentation tree.
package clean

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docpatch/internal/config"
	"git.home.luguber.info/inful/docpatch/internal/foundation/errors"
	"git.home.luguber.info/inful/docpatch/internal/logfields"
)

// todoBlockPattern matches the code block Jazzy renders for a bare
// "TODO: ..." doc comment.
var todoBlockPattern = regexp.MustCompile(`(?s)<pre class="highlight plaintext"><code>TODO:.*?</code></pre>\s*`)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Cleaner rewrites page content with an ordered list of regex replacements.
type Cleaner struct {
	rules      []rule
	stripTodos bool
	logger     *slog.Logger
}

// NewCleaner compiles the configured replacement table. Patterns run in
// multiline, dot-matches-newline mode so a rule can span rendered markup.
func NewCleaner(cfg config.CleanConfig) (*Cleaner, error) {
	rules := make([]rule, 0, len(cfg.Replacements))
	for _, r := range cfg.Replacements {
		re, err := regexp.Compile("(?ms)" + r.Pattern)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryValidation, "invalid cleanup pattern").
				WithContext("pattern", r.Pattern).Build()
		}
		rules = append(rules, rule{pattern: re, replacement: r.Replacement})
	}
	return &Cleaner{
		rules:      rules,
		stripTodos: !cfg.KeepTodos,
		logger:     slog.Default(),
	}, nil
}

// CleanTree applies the replacement rules to every HTML file under dir and
// returns the changed paths relative to dir. Per-file failures are logged
// and skipped.
func (c *Cleaner) CleanTree(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "docs directory not found").
			WithContext("path", dir).Build()
	}

	var changed []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		wrote, err := c.CleanFile(path)
		if err != nil {
			c.logger.Warn("failed to clean page", logfields.Page(path), logfields.Error(err))
			return nil
		}
		if wrote {
			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				rel = path
			}
			changed = append(changed, rel)
		}
		return nil
	})
	if err != nil {
		return changed, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk docs directory").
			WithContext("path", dir).Build()
	}
	return changed, nil
}

// CleanFile rewrites a single page in place. It reports whether the file
// changed; unchanged files are not rewritten.
func (c *Cleaner) CleanFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext("path", path).Build()
	}

	content := string(data)
	cleaned := c.apply(content)
	if cleaned == content {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(cleaned), 0o644); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").
			WithContext("path", path).Build()
	}
	return true, nil
}

func (c *Cleaner) apply(content string) string {
	if c.stripTodos {
		content = todoBlockPattern.ReplaceAllString(content, "")
	}
	for _, r := range c.rules {
		content = r.pattern.ReplaceAllString(content, r.replacement)
	}
	return content
}
