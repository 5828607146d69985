package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeclaration_KeywordOnlyInput(t *testing.T) {
	out := Declaration("class")

	// The keyword stage wraps the word once; the string stage then rewrites
	// the quoted "kd" attribute it inserted. Both are reference behavior.
	require.Equal(t,
		`<pre class="highlight swift"><code><span class=<span class="s">"kd"</span>>class</span></code></pre>`,
		out)
	require.Equal(t, 1, strings.Count(out, ">class</span>"))
}

func TestDeclaration_FuncSignature(t *testing.T) {
	out := Declaration("func f()")

	require.Contains(t, out, ">func</span> f()")
	require.True(t, strings.HasPrefix(out, `<pre class="highlight swift"><code>`))
	require.True(t, strings.HasSuffix(out, `</code></pre>`))
}

func TestDeclaration_StringLiteral(t *testing.T) {
	out := Declaration(`let s = "hi\"there"`)

	require.Contains(t, out, `<span class="s">"hi\"there"</span>`)
}

func TestDeclaration_LineComment(t *testing.T) {
	out := Declaration("x // trailing note")

	require.Contains(t, out, `x <span class="c1">// trailing note</span>`)
}

func TestDeclaration_CommentPerLine(t *testing.T) {
	out := Declaration("x // one\ny // two")

	require.Contains(t, out, `<span class="c1">// one</span>`)
	require.Contains(t, out, `<span class="c1">// two</span>`)
}

func TestDeclaration_Numbers(t *testing.T) {
	require.Contains(t, Declaration("x = 42"), `<span class="m">42</span>`)
	require.Contains(t, Declaration("x = 3.14"), `<span class="m">3.14</span>`)
}

func TestDeclaration_EscapesMetacharacters(t *testing.T) {
	out := Declaration("a &lt;- b")

	// The ampersand of an already-escaped entity is escaped again: the
	// pipeline is single-pass and idempotence is explicitly not guaranteed.
	require.Contains(t, out, "a &amp;lt;- b")

	require.Contains(t, Declaration("x > y"), "x &gt; y")
}

func TestDeclaration_EmptyInput(t *testing.T) {
	require.Equal(t, `<pre class="highlight swift"><code></code></pre>`, Declaration(""))
}

func TestDeclaration_KeywordInsideWordNotWrapped(t *testing.T) {
	out := Declaration("classify")

	require.NotContains(t, out, ">class</span>")
	require.Contains(t, out, "classify")
}
