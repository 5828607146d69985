package htmlpage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docpatch/internal/inline"
)

const testPage = `<html><body>
<section class="section">
  <div class="section-content">
    <h1>User</h1>
    <p>Undocumented</p>
  </div>
</section>
<ul>
  <li class="item">
    <a class="token" href="#/s:f1">doSomething(_:)</a>
    <div class="abstract"><p>Undocumented</p></div>
  </li>
  <li class="item">
    <a class="token" href="#/s:f2">mystery()</a>
    <div class="abstract"><p>Undocumented</p></div>
  </li>
</ul>
</body></html>`

func docsForTest() *inline.CommentMap {
	docs := inline.NewCommentMap()
	docs.Set("User", "Represents a `User` account.")
	docs.Set("doSomething", "Does something.")
	return docs
}

func renderToString(t *testing.T, root *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, root))
	return buf.String()
}

func TestReplaceUndocumented_ClassAndItemLevel(t *testing.T) {
	root, err := html.Parse(strings.NewReader(testPage))
	require.NoError(t, err)

	replaced := ReplaceUndocumented(root, docsForTest())
	require.Equal(t, 2, replaced)

	out := renderToString(t, root)
	require.Contains(t, out, "Represents a <code>User</code> account.")
	require.Contains(t, out, "<p>Does something.</p>")
}

func TestReplaceUndocumented_NoMatchKeepsPlaceholder(t *testing.T) {
	root, err := html.Parse(strings.NewReader(testPage))
	require.NoError(t, err)

	ReplaceUndocumented(root, docsForTest())

	// "mystery" has no recovered documentation; its placeholder must stand.
	require.Contains(t, renderToString(t, root), "<p>Undocumented</p>")
}

func TestReplaceUndocumented_EmptyMap(t *testing.T) {
	root, err := html.Parse(strings.NewReader(testPage))
	require.NoError(t, err)

	require.Zero(t, ReplaceUndocumented(root, inline.NewCommentMap()))
}

func TestSetParagraphContent_UnbalancedBacktick(t *testing.T) {
	root, err := html.Parse(strings.NewReader("<p>x</p>"))
	require.NoError(t, err)
	p := FindFirst(root, IsElement("p", ""))
	require.NotNil(t, p)

	setParagraphContent(p, "uses `half quoted text")

	out := renderToString(t, root)
	require.Contains(t, out, "<p>uses half quoted text</p>")
	require.NotContains(t, out, "<code>")
}

func TestRewriteFile_WritesOnlyOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "User.html")
	require.NoError(t, os.WriteFile(path, []byte(testPage), 0o644))

	replaced, err := RewriteFile(path, docsForTest())
	require.NoError(t, err)
	require.Equal(t, 2, replaced)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Does something.")

	// A second pass finds nothing to replace and leaves the file as-is.
	replaced, err = RewriteFile(path, docsForTest())
	require.NoError(t, err)
	require.Zero(t, replaced)
}

func TestRewriteFile_MissingPage(t *testing.T) {
	_, err := RewriteFile(filepath.Join(t.TempDir(), "absent.html"), docsForTest())
	require.Error(t, err)
}
