// Package yamlutil renders exported metadata as YAML.
//
// Export types carry only json tags. goccy/go-yaml falls back to them, so
// the same structs produce both the JSON and the YAML form of a document.
package yamlutil

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Marshal encodes v as YAML with two-space indentation and indented
// sequences. Multi-line strings such as abstracts are written as literal
// blocks so their line breaks survive unescaped.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.IndentSequence(true),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
