package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// ErrDiscovery indicates the content could not be read for discovery.
var ErrDiscovery = errors.New("content discovery failed")

// abstractDirective is the MyST fence info string marking an abstract.
const abstractDirective = "{abstract}"

// abstractHeading is the section title treated as an abstract when no
// abstract directive is present.
const abstractHeading = "abstract"

// Discovery holds metadata found in document content.
type Discovery struct {
	Title    string  // "" when the content has no top-level heading
	Abstract *string // nil when the content has no abstract
}

// Discoverer extracts metadata from document source.
type Discoverer interface {
	Discover(ctx context.Context, source []byte) (*Discovery, error)
}

// MarkdownDiscoverer reads CommonMark and MyST Markdown using goldmark.
type MarkdownDiscoverer struct {
	md goldmark.Markdown
}

// NewMarkdownDiscoverer creates a MarkdownDiscoverer with GFM extensions so
// tables and footnotes parse the way they render.
func NewMarkdownDiscoverer() *MarkdownDiscoverer {
	return &MarkdownDiscoverer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Footnote)),
	}
}

// Discover returns the first level-1 heading as the title. The abstract is
// the content of the first ```{abstract} fence, or else the body of the
// first section titled "Abstract", rendered to plain text with paragraphs
// separated by blank lines.
func (d *MarkdownDiscoverer) Discover(ctx context.Context, source []byte) (*Discovery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := []byte(normalizeSource(string(source)))
	doc := d.md.Parser().Parse(text.NewReader(src))

	found := &Discovery{}
	var abstractFence *ast.FencedCodeBlock

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Heading:
			if v.Level == 1 && found.Title == "" {
				found.Title = collapseSpace(inlineText(v, src))
			}
		case *ast.FencedCodeBlock:
			if abstractFence == nil && strings.TrimSpace(string(v.Language(src))) == abstractDirective {
				abstractFence = v
			}
		}
	}

	switch {
	case abstractFence != nil:
		abstract, err := d.fenceText(abstractFence, src)
		if err != nil {
			return nil, err
		}
		found.Abstract = &abstract
	default:
		if abstract, ok := sectionText(doc, src, abstractHeading); ok {
			found.Abstract = &abstract
		}
	}
	return found, nil
}

// fenceText parses the body of a directive fence as Markdown and returns
// its plain text.
func (d *MarkdownDiscoverer) fenceText(fence *ast.FencedCodeBlock, src []byte) (string, error) {
	var body bytes.Buffer
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		body.Write(seg.Value(src))
	}

	inner := body.Bytes()
	doc := d.md.Parser().Parse(text.NewReader(inner))
	if doc == nil {
		return "", fmt.Errorf("%w: abstract block did not parse", ErrDiscovery)
	}

	var paras []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		paras = append(paras, blockText(n, inner))
	}
	return joinParagraphs(paras), nil
}

// sectionText returns the plain text of the blocks following the first
// heading titled name, up to the next heading of the same or higher rank.
func sectionText(doc ast.Node, src []byte, name string) (string, bool) {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || !strings.EqualFold(collapseSpace(inlineText(h, src)), name) {
			continue
		}

		var paras []string
		for body := h.NextSibling(); body != nil; body = body.NextSibling() {
			if next, ok := body.(*ast.Heading); ok && next.Level <= h.Level {
				break
			}
			paras = append(paras, blockText(body, src))
		}
		return joinParagraphs(paras), true
	}
	return "", false
}

// blockText renders a block node to plain text. List items and other
// nested blocks are separated by newlines.
func blockText(n ast.Node, src []byte) string {
	switch n.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
		return ""
	}
	if n.Type() == ast.TypeBlock && n.HasChildren() && n.FirstChild().Type() == ast.TypeBlock {
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if s := blockText(c, src); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	}
	return collapseSpace(inlineText(n, src))
}

// inlineText concatenates the text of n's inline descendants. Markup is
// dropped, images are skipped and line breaks become spaces.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Image, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			buf.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		case *ast.AutoLink:
			buf.Write(v.Label(src))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
