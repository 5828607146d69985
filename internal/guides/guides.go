// Package guides renders markdown guide documents into pre-rendered
// documentation page shells.
package guides

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docpatch/internal/config"
	"git.home.luguber.info/inful/docpatch/internal/foundation/errors"
	"git.home.luguber.info/inful/docpatch/internal/htmlpage"
	"git.home.luguber.info/inful/docpatch/internal/logfields"
)

// Updater fills guide page shells with converted markdown content.
type Updater struct {
	docsDir string
	md      goldmark.Markdown
	logger  *slog.Logger
}

// NewUpdater creates an updater for the given docs directory.
func NewUpdater(docsDir string) *Updater {
	return &Updater{
		docsDir: docsDir,
		md:      goldmark.New(),
		logger:  slog.Default(),
	}
}

// UpdateAll processes every configured guide page and returns the number of
// pages updated. A missing markdown source or page shell skips that guide
// with a warning rather than failing the run.
func (u *Updater) UpdateAll(pages []config.GuidePage) int {
	updated := 0
	for _, page := range pages {
		if err := u.UpdatePage(page); err != nil {
			u.logger.Warn("guide page skipped",
				logfields.File(page.Markdown),
				logfields.Page(page.Page),
				logfields.Error(err))
			continue
		}
		updated++
	}
	return updated
}

// UpdatePage converts one markdown guide and replaces the content region of
// its rendered shell. Code references naming a known class or extension page
// are wrapped in links, and the sidebar class lists are refreshed from the
// pages present on disk.
func (u *Updater) UpdatePage(page config.GuidePage) error {
	source, err := os.ReadFile(page.Markdown)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read markdown guide").
			WithContext("path", page.Markdown).Build()
	}

	pagePath := filepath.Join(u.docsDir, page.Page)
	pageData, err := os.ReadFile(pagePath)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read guide page").
			WithContext("path", pagePath).Build()
	}

	root, err := html.Parse(bytes.NewReader(pageData))
	if err != nil {
		return errors.WrapError(err, errors.CategoryDocs, "failed to parse guide page").
			WithContext("path", pagePath).Build()
	}

	content := contentRegion(root)
	if content == nil {
		return errors.NewError(errors.CategoryDocs, "guide page has no content region").
			WithContext("path", pagePath).Build()
	}

	var rendered bytes.Buffer
	if err := u.md.Convert(source, &rendered); err != nil {
		return errors.WrapError(err, errors.CategoryDocs, "failed to convert markdown").
			WithContext("path", page.Markdown).Build()
	}

	htmlpage.RemoveChildren(content)
	fragment, err := html.ParseFragment(&rendered, &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryDocs, "failed to parse converted markdown").
			WithContext("path", page.Markdown).Build()
	}
	for _, node := range fragment {
		content.AppendChild(node)
	}

	pageMap := u.knownPages()
	linked := linkCodeReferences(content, pageMap.links)
	refreshNav(root, pageMap)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to render guide page").
			WithContext("path", pagePath).Build()
	}
	if err := os.WriteFile(pagePath, buf.Bytes(), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write guide page").
			WithContext("path", pagePath).Build()
	}

	u.logger.Info("guide page updated",
		logfields.File(page.Markdown),
		logfields.Page(page.Page),
		logfields.Count(linked))
	return nil
}

// contentRegion locates the first section-content div inside the main
// article, the region the renderer reserves for page body text.
func contentRegion(root *html.Node) *html.Node {
	article := htmlpage.FindFirst(root, htmlpage.IsElement("article", "main-content"))
	if article == nil {
		return nil
	}
	section := htmlpage.FindFirst(article, htmlpage.IsElement("section", "section"))
	if section == nil {
		return nil
	}
	return htmlpage.FindFirst(section, htmlpage.IsElement("div", "section-content"))
}

type pageSet struct {
	links      map[string]string // name -> href
	classes    []string
	extensions []string
}

// knownPages scans the Classes and Extensions directories for rendered pages.
// Directory order from ReadDir keeps the lists sorted by name.
func (u *Updater) knownPages() pageSet {
	set := pageSet{links: make(map[string]string)}
	set.classes = u.scanSection("Classes", set.links)
	set.extensions = u.scanSection("Extensions", set.links)
	return set
}

func (u *Updater) scanSection(section string, links map[string]string) []string {
	entries, err := os.ReadDir(filepath.Join(u.docsDir, section))
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".html")
		names = append(names, name)
		links[name] = section + "/" + name + ".html"
	}
	return names
}

// linkCodeReferences wraps code elements naming a known page in a link to
// that page and returns the number of links added.
func linkCodeReferences(content *html.Node, links map[string]string) int {
	added := 0
	for _, code := range htmlpage.FindAll(content, htmlpage.IsElement("code", "")) {
		href, ok := links[strings.TrimSpace(htmlpage.TextContent(code))]
		if !ok {
			continue
		}
		parent := code.Parent
		if parent == nil {
			continue
		}
		anchor := htmlpage.ElementNode("a")
		anchor.Attr = []html.Attribute{{Key: "href", Val: href}}
		parent.InsertBefore(anchor, code)
		parent.RemoveChild(code)
		anchor.AppendChild(code)
		added++
	}
	return added
}

// refreshNav rebuilds the Classes and Extensions task lists in the sidebar
// from the pages actually present on disk.
func refreshNav(root *html.Node, pages pageSet) {
	nav := htmlpage.FindFirst(root, htmlpage.IsElement("nav", "navigation"))
	if nav == nil {
		return
	}
	for _, group := range htmlpage.FindAll(nav, htmlpage.IsElement("li", "nav-group-name")) {
		link := htmlpage.FindFirst(group, htmlpage.IsElement("a", "nav-group-name-link"))
		if link == nil {
			continue
		}
		title := htmlpage.TextContent(link)
		switch {
		case strings.Contains(title, "Classes"):
			rebuildTasks(group, "Classes", pages.classes)
		case strings.Contains(title, "Extensions"):
			rebuildTasks(group, "Extensions", pages.extensions)
		}
	}
}

func rebuildTasks(group *html.Node, section string, names []string) {
	tasks := htmlpage.FindFirst(group, htmlpage.IsElement("ul", "nav-group-tasks"))
	if tasks == nil {
		return
	}
	htmlpage.RemoveChildren(tasks)
	for _, name := range names {
		item := htmlpage.ElementNode("li")
		item.Attr = []html.Attribute{{Key: "class", Val: "nav-group-task"}}
		anchor := htmlpage.ElementNode("a")
		anchor.Attr = []html.Attribute{
			{Key: "class", Val: "nav-group-task-link"},
			{Key: "href", Val: section + "/" + name + ".html"},
		}
		anchor.AppendChild(htmlpage.TextNode(name))
		item.AppendChild(anchor)
		tasks.AppendChild(item)
	}
}
