package inline

import (
	"regexp"
	"strings"
)

// initName is the shared key for all initializer declarations. Multiple
// initializers in one file collapse onto it, last one wins; this matches the
// reference pipeline and is an accepted limitation.
const initName = "init"

// declPattern recognizes one declaration grammar. A capture group of 0 means
// the declaration has a fixed name rather than a captured one.
type declPattern struct {
	re    *regexp.Regexp
	group int
}

// Grammar order matters: the first matching pattern claims the line.
var declPatterns = []declPattern{
	// Named type declarations: class/struct/enum/protocol/extension.
	{regexp.MustCompile(`^\s*(public\s+)?(class|struct|enum|protocol|extension)\s+(\w+)`), 3},
	// Initializers, including private ones.
	{regexp.MustCompile(`^\s*(private\s+)?init\s*\(`), 0},
	// Outlet properties.
	{regexp.MustCompile(`^\s*@IBOutlet\s+weak\s+var\s+(\w+)`), 1},
	// Functions with an optional visibility qualifier.
	{regexp.MustCompile(`^\s*(public\s+|private\s+|internal\s+)?func\s+(\w+)`), 2},
	// Variable/constant declarations, optionally shared/static.
	{regexp.MustCompile(`^\s*((?:static|shared)\s+)?(var|let)\s+(\w+)`), 3},
}

// Recover scans source lines top to bottom; for each declaration-introducing
// line it walks backward over the adjacent comment block and, when any text
// was accumulated, records it under the declaration's name. Declarations
// without adjacent comments produce no entry. A repeated name overwrites its
// value but keeps its original map position.
func Recover(lines []string) *CommentMap {
	docs := NewCommentMap()
	for i, line := range lines {
		name, ok := matchDeclaration(line)
		if !ok {
			continue
		}
		if doc := recoverComment(lines, i); doc != "" {
			docs.Set(name, doc)
		}
	}
	return docs
}

func matchDeclaration(line string) (string, bool) {
	for _, p := range declPatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if p.group == 0 {
			return initName, true
		}
		return m[p.group], true
	}
	return "", false
}

// walkState names the two states of the backward comment walk, kept explicit
// so the comment-boundary logic stays auditable.
type walkState int

const (
	stateScanning walkState = iota
	stateInBlockComment
)

// recoverComment walks backward from the line above a declaration and
// accumulates the adjacent comment block, in source order, space-joined.
//
// While scanning: a line ending in */ enters the block-comment state;
// ///-prefixed lines contribute their remainder; blank lines and @-prefixed
// attribute lines are skipped; anything else stops the walk. Inside a block
// comment: a /**-prefixed line terminates the walk after contributing its
// remainder; every other line contributes its text with leading asterisks
// stripped.
func recoverComment(lines []string, declIdx int) string {
	var docLines []string
	state := stateScanning

	for i := declIdx - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])

		// A closing marker re-enters the block state regardless of the
		// current state, mirroring the reference scanner.
		if strings.HasSuffix(line, "*/") {
			state = stateInBlockComment
			content := strings.TrimSpace(strings.TrimSuffix(line, "*/"))
			if content != "" && content != "/**" {
				docLines = append([]string{content}, docLines...)
			}
			continue
		}

		if state == stateInBlockComment {
			if strings.HasPrefix(line, "/**") {
				content := strings.TrimSpace(line[3:])
				if content != "" {
					docLines = append([]string{content}, docLines...)
				}
				break
			}
			content := strings.TrimSpace(strings.TrimLeft(line, "*"))
			if content != "" {
				docLines = append([]string{content}, docLines...)
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "///"):
			docLines = append([]string{strings.TrimSpace(line[3:])}, docLines...)
		case line == "":
			// Blank lines do not break the walk.
		case strings.HasPrefix(line, "@"):
			// Attribute lines (@objc, @IBOutlet, ...) do not break the walk.
		default:
			return strings.Join(docLines, " ")
		}
	}

	return strings.Join(docLines, " ")
}
