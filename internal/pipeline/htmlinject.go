package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrStatusRender indicates the status template failed to execute.
var ErrStatusRender = errors.New("status template rendering failed")

// statusAsideMarker identifies an already inserted status aside.
const statusAsideMarker = "technote-status-aside"

// HeadInjector defines the contract for inserting markup into <head>.
type HeadInjector interface {
	InjectHead(ctx context.Context, htmlContent, markup string) string
}

// HeadInjection inserts meta tags and other head markup.
type HeadInjection struct {
	// Marker, when set, is a substring found only in pages that already
	// carry the markup. Such pages are returned unchanged.
	Marker string
}

// InjectHead inserts markup before </head>. Without a head element it
// inserts after <html>, and without that it prepends.
func (h *HeadInjection) InjectHead(ctx context.Context, htmlContent, markup string) string {
	if markup == "" || ctx.Err() != nil {
		return htmlContent
	}
	if h.Marker != "" && strings.Contains(htmlContent, h.Marker) {
		return htmlContent
	}

	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + markup + htmlContent[idx:]
	}

	// Try inserting after <html ...>
	if pos := afterOpenTag(htmlContent, lowerHTML, "<html"); pos != -1 {
		return htmlContent[:pos] + markup + htmlContent[pos:]
	}

	return markup + htmlContent
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if pos := afterOpenTag(htmlContent, lowerHTML, "<body"); pos != -1 {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// StatusData is the input of the status aside template.
type StatusData struct {
	State           string
	Label           string
	Note            string
	SupersedingURLs []StatusLink
}

// StatusLink is a document that replaces this one.
type StatusLink struct {
	URL   string
	Title string
}

// StatusInjector defines the contract for status aside injection.
type StatusInjector interface {
	InjectStatus(ctx context.Context, htmlContent string, data *StatusData) (string, error)
}

// StatusInjection renders a status aside and places it under the title.
type StatusInjection struct {
	tmpl *template.Template
}

// NewStatusInjection creates a StatusInjection from template content.
// Returns error if the template cannot be parsed.
func NewStatusInjection(tmplContent string) (*StatusInjection, error) {
	tmpl, err := template.New("status").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing status template: %w", err)
	}
	return &StatusInjection{tmpl: tmpl}, nil
}

// InjectStatus renders the status aside and inserts it after the first
// </h1>, falling back to the start of <body>, then to the start of the
// content. If data is nil or the page already has a status aside, the
// content is returned unchanged.
func (s *StatusInjection) InjectStatus(ctx context.Context, htmlContent string, data *StatusData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.Contains(htmlContent, statusAsideMarker) {
		return htmlContent, nil
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStatusRender, err)
	}

	aside := buf.String()
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</h1>"); idx != -1 {
		pos := idx + len("</h1>")
		return htmlContent[:pos] + aside + htmlContent[pos:], nil
	}
	if pos := afterOpenTag(htmlContent, lowerHTML, "<body"); pos != -1 {
		return htmlContent[:pos] + aside + htmlContent[pos:], nil
	}
	return aside + htmlContent, nil
}

// afterOpenTag returns the position just past the first opening tag that
// starts with prefix (e.g. "<body"), or -1.
func afterOpenTag(htmlContent, lowerHTML, prefix string) int {
	idx := strings.Index(lowerHTML, prefix)
	if idx == -1 {
		return -1
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return -1
	}
	return idx + closeIdx + 1
}
