package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// abstractClass marks the abstract section in rendered technotes.
const abstractClass = "technote-abstract"

// HTMLDiscoverer reads rendered HTML pages.
type HTMLDiscoverer struct{}

// NewHTMLDiscoverer creates an HTMLDiscoverer.
func NewHTMLDiscoverer() *HTMLDiscoverer {
	return &HTMLDiscoverer{}
}

// Discover returns the text of the first <h1> as the title. The abstract
// is the text of the first element with id="abstract" or class
// "technote-abstract", without its heading, with block elements separated
// by blank lines. Sphinx permalink anchors (a.headerlink) are ignored.
func (d *HTMLDiscoverer) Discover(ctx context.Context, source []byte) (*Discovery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, _, err := parseHTML(string(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscovery, err)
	}

	found := &Discovery{}
	if h1 := findElement(doc, func(n *html.Node) bool { return n.DataAtom == atom.H1 }); h1 != nil {
		found.Title = collapseSpace(nodeText(h1))
	}
	if sec := findElement(doc, isAbstractElement); sec != nil {
		abstract := abstractText(sec)
		found.Abstract = &abstract
	}
	return found, nil
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// findElement returns the first element in document order matching fn.
func findElement(n *html.Node, fn func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && fn(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, fn); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func isAbstractElement(n *html.Node) bool {
	return attr(n, "id") == "abstract" || hasClass(n, abstractClass)
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// skipText reports elements whose text never belongs to metadata.
func skipText(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Template:
		return true
	case atom.A:
		return hasClass(n, "headerlink")
	}
	return false
}

// nodeText concatenates the text under n.
func nodeText(n *html.Node) string {
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(n.Data)
		case n.Type == html.ElementNode && skipText(n):
			return
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

// blockElements separate paragraphs in extracted abstracts.
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Blockquote: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Dl: true, atom.Dd: true,
	atom.Dt: true, atom.Pre: true, atom.Table: true, atom.Figure: true,
}

// abstractText returns the plain text of an abstract container with its
// headings removed.
func abstractText(sec *html.Node) string {
	var paras []string
	var inline strings.Builder

	flush := func() {
		if s := collapseSpace(inline.String()); s != "" {
			paras = append(paras, s)
		}
		inline.Reset()
	}

	for c := sec.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && (isHeading(c) || skipText(c)):
			continue
		case c.Type == html.ElementNode && blockElements[c.DataAtom]:
			flush()
			if nested := abstractText(c); nested != "" {
				paras = append(paras, nested)
			}
		default:
			inline.WriteString(nodeText(c))
		}
	}
	flush()
	return joinParagraphs(paras)
}
