package inline

import (
	"regexp"
	"strings"
)

// paramSuffix strips a trailing parenthesized parameter list from a rendered
// display name, e.g. "doSomething(_:didFinish:)" -> "doSomething".
var paramSuffix = regexp.MustCompile(`\(.*\)$`)

// Resolve looks up documentation for a rendered display name.
//
// Precedence, first success wins: exact match on the suffix-stripped name;
// for parenthesized names, the substring before the first parenthesis; then
// the first map entry, in insertion order, whose key prefixes or occurs
// within the stripped name. The substring tier can match short keys against
// unrelated names; that behavior is kept for compatibility with the
// reference matcher. On no match the caller must leave the existing
// placeholder untouched.
func Resolve(displayName string, docs *CommentMap) (string, bool) {
	baseName := paramSuffix.ReplaceAllString(displayName, "")

	if doc, ok := docs.Get(baseName); ok {
		return doc, true
	}

	if i := strings.Index(displayName, "("); i >= 0 {
		if doc, ok := docs.Get(displayName[:i]); ok {
			return doc, true
		}
	}

	for _, key := range docs.Keys() {
		if strings.HasPrefix(baseName, key) || strings.Contains(baseName, key) {
			doc, _ := docs.Get(key)
			return doc, true
		}
	}

	return "", false
}
