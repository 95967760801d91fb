package pipeline

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"
)

// adornmentChars are the characters docutils accepts for section
// underlines and overlines.
const adornmentChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	// :role:`text` and :role:`text <target>`
	rstRole = regexp.MustCompile("(?::[\\w.+-]+:)?`([^`<]*?)\\s*(?:<[^>]*>)?`_{0,2}")

	// **strong**, *emphasis*, ``literal``
	rstInline = regexp.MustCompile(`\*\*|\*|` + "``")

	rstAbstractDirective = regexp.MustCompile(`^\.\.\s+abstract::\s*$`)
)

// RSTDiscoverer reads reStructuredText source.
type RSTDiscoverer struct{}

// NewRSTDiscoverer creates an RSTDiscoverer.
func NewRSTDiscoverer() *RSTDiscoverer {
	return &RSTDiscoverer{}
}

// Discover returns the first section title as the title and the body of
// the first ".. abstract::" directive as the abstract.
func (d *RSTDiscoverer) Discover(ctx context.Context, source []byte) (*Discovery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := strings.Split(normalizeSource(string(source)), "\n")
	found := &Discovery{Title: rstTitle(lines)}
	if abstract, ok := rstAbstract(lines); ok {
		found.Abstract = &abstract
	}
	return found, nil
}

// isAdornment reports whether line is a run of one punctuation character,
// at least minLen long.
func isAdornment(line string, minLen int) bool {
	line = strings.TrimRight(line, " \t")
	if line == "" || utf8.RuneCountInString(line) < minLen {
		return false
	}
	c := line[0]
	if !strings.ContainsRune(adornmentChars, rune(c)) {
		return false
	}
	return strings.Count(line, string(c)) == len(line)
}

func rstTitle(lines []string) string {
	for i := 0; i+1 < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}

		// Overline, title, underline.
		if isAdornment(line, 2) && i+2 < len(lines) {
			title := strings.TrimSpace(lines[i+1])
			if title != "" && strings.TrimRight(lines[i+2], " \t") == strings.TrimRight(line, " \t") {
				return rstPlain(title)
			}
		}

		// Title, underline.
		title := strings.TrimSpace(line)
		if !isAdornment(line, 1) && isAdornment(lines[i+1], max(utf8.RuneCountInString(title), 2)) {
			return rstPlain(title)
		}
	}
	return ""
}

// rstAbstract returns the indented body of the first abstract directive.
func rstAbstract(lines []string) (string, bool) {
	for i, line := range lines {
		if !rstAbstractDirective.MatchString(line) {
			continue
		}

		var paras []string
		var current []string
		for _, body := range lines[i+1:] {
			if strings.TrimSpace(body) == "" {
				if len(current) > 0 {
					paras = append(paras, rstPlain(strings.Join(current, " ")))
					current = nil
				}
				continue
			}
			if !strings.HasPrefix(body, " ") && !strings.HasPrefix(body, "\t") {
				break
			}
			current = append(current, strings.TrimSpace(body))
		}
		if len(current) > 0 {
			paras = append(paras, rstPlain(strings.Join(current, " ")))
		}
		return joinParagraphs(paras), true
	}
	return "", false
}

// rstPlain strips inline markup from a line of reStructuredText.
func rstPlain(s string) string {
	s = rstRole.ReplaceAllString(s, "$1")
	s = rstInline.ReplaceAllString(s, "")
	return collapseSpace(s)
}
