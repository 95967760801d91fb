package technote

import (
	"html"
	"strings"
)

// tagField produces zero or more meta tags. A field with nothing to say
// returns nil.
type tagField struct {
	name string
	tags func(md *Metadata) []string
}

// tagFormatter renders an ordered list of tag fields.
type tagFormatter struct {
	fields []tagField
}

// render joins the tags of every field in declaration order, one per line,
// with a trailing newline. It returns "" when no field produced a tag.
func (f tagFormatter) render(md *Metadata) string {
	var lines []string
	for _, field := range f.fields {
		for _, tag := range field.tags(md) {
			if tag != "" {
				lines = append(lines, tag)
			}
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// one wraps a single optional tag.
func one(tag string) []string {
	if tag == "" {
		return nil
	}
	return []string{tag}
}

func escape(s string) string {
	return html.EscapeString(s)
}
