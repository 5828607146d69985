// Package highlight renders a raw Swift declaration as span-annotated markup.
//
// The output format is consumed by pages produced by an external renderer, so
// the transform must stay byte-identical to that renderer's own highlighting:
// the keyword set is closed, and the stage order (escape, keyword, string,
// comment, number) is a contract. Each stage is a whole-text rewrite, which
// means a later stage observes the markup inserted by an earlier one; that
// includes the string stage matching the quoted "kd" attribute of keyword
// spans. Do not reorder or fuse the stages.
package highlight

import (
	"regexp"
	"strings"
)

// keywords is the closed Swift keyword set, in application order.
var keywords = []string{
	"class", "struct", "enum", "protocol", "extension", "func", "var", "let",
	"if", "else", "for", "while", "return", "import", "public", "private",
	"internal", "fileprivate", "static", "final", "override", "init", "deinit",
	"self", "super", "true", "false", "nil", "as", "is", "switch", "case",
	"default", "break", "continue", "guard", "defer", "do", "try", "catch",
	"throw", "throws", "rethrows", "async", "await", "mutating", "nonmutating",
	"convenience", "required", "lazy", "weak", "unowned", "indirect",
}

var (
	keywordPatterns = compileKeywords()
	stringPattern   = regexp.MustCompile(`"([^"\\]|\\.)*"`)
	commentPattern  = regexp.MustCompile(`(?m)//.*$`)
	numberPattern   = regexp.MustCompile(`\b\d+\.?\d*\b`)
)

func compileKeywords() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		patterns[i] = regexp.MustCompile(`\b` + kw + `\b`)
	}
	return patterns
}

// Declaration converts raw declaration text into highlighted markup wrapped
// in the renderer's pre/code envelope. Any input text is valid.
func Declaration(text string) string {
	code := escape(text)

	for i, pattern := range keywordPatterns {
		code = pattern.ReplaceAllString(code, `<span class="kd">`+keywords[i]+`</span>`)
	}
	code = stringPattern.ReplaceAllString(code, `<span class="s">$0</span>`)
	code = commentPattern.ReplaceAllString(code, `<span class="c1">$0</span>`)
	code = numberPattern.ReplaceAllString(code, `<span class="m">$0</span>`)

	return `<pre class="highlight swift"><code>` + code + `</code></pre>`
}

// escape rewrites the three HTML metacharacters. Ampersand must go first so
// the entities inserted for < and > are not re-escaped.
func escape(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}
