// Package htmlpage rewrites placeholder text in rendered documentation pages.
//
// The page layout (section/abstract/token structure) is the renderer's
// convention; the engines behind this package exchange only display names and
// replacement strings, never HTML node handles.
package htmlpage

import (
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docpatch/internal/inline"
)

// Placeholder is the fixed marker the renderer emits for any entry lacking
// documentation.
const Placeholder = "Undocumented"

// ReplaceUndocumented swaps placeholder paragraphs for recovered
// documentation and returns the number of replacements.
//
// Class-level placeholders (a section-content carrying an h1) resolve by
// exact name only; item-level placeholders (li.item entries) resolve through
// the tiered matcher. Entries with no match keep their placeholder.
func ReplaceUndocumented(root *html.Node, docs *inline.CommentMap) int {
	replaced := 0
	replaced += replaceClassLevel(root, docs)
	replaced += replaceItemLevel(root, docs)
	return replaced
}

func replaceClassLevel(root *html.Node, docs *inline.CommentMap) int {
	replaced := 0
	for _, section := range FindAll(root, IsElement("section", "section")) {
		content := FindFirst(section, IsElement("div", "section-content"))
		if content == nil {
			continue
		}
		h1 := FindFirst(content, IsElement("h1", ""))
		if h1 == nil {
			continue
		}
		p := FindFirst(content, isPlaceholderParagraph)
		if p == nil {
			continue
		}
		name := strings.TrimSpace(TextContent(h1))
		doc, ok := docs.Get(name)
		if !ok {
			continue
		}
		setParagraphContent(p, doc)
		replaced++
	}
	return replaced
}

func replaceItemLevel(root *html.Node, docs *inline.CommentMap) int {
	replaced := 0
	for _, item := range FindAll(root, IsElement("li", "item")) {
		token := FindFirst(item, IsElement("a", "token"))
		if token == nil {
			continue
		}
		doc, ok := inline.Resolve(strings.TrimSpace(TextContent(token)), docs)
		if !ok {
			continue
		}
		abstract := FindFirst(item, IsElement("div", "abstract"))
		if abstract == nil {
			continue
		}
		p := FindFirst(abstract, IsElement("p", ""))
		if p == nil || strings.TrimSpace(TextContent(p)) != Placeholder {
			continue
		}
		setParagraphContent(p, doc)
		replaced++
	}
	return replaced
}

func isPlaceholderParagraph(n *html.Node) bool {
	return IsElement("p", "")(n) && strings.TrimSpace(TextContent(n)) == Placeholder
}

// setParagraphContent replaces a paragraph's children with the replacement
// text; backtick-delimited segments become code elements. An unbalanced
// trailing segment stays plain text.
func setParagraphContent(p *html.Node, text string) {
	RemoveChildren(p)

	segments := strings.Split(text, "`")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if i%2 == 1 && i < len(segments)-1 {
			code := ElementNode("code")
			code.AppendChild(TextNode(segment))
			p.AppendChild(code)
			continue
		}
		p.AppendChild(TextNode(segment))
	}
}
