package pipeline

import (
	"regexp"
	"strings"
)

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Three or more newlines, i.e. more than one blank line
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// normalizeSource prepares document source for discovery: strips a UTF-8
// BOM and converts \r\n and \r to \n.
func normalizeSource(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// collapseSpace folds runs of whitespace into single spaces and trims.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// joinParagraphs trims each paragraph, drops empty ones and separates the
// rest with a blank line.
func joinParagraphs(paras []string) string {
	out := make([]string, 0, len(paras))
	for _, p := range paras {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return multipleBlankLines.ReplaceAllString(strings.Join(out, "\n\n"), "\n\n")
}
