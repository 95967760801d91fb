package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// NotebookDiscoverer reads Jupyter notebooks (nbformat 4) by running
// Markdown discovery over their markdown cells.
type NotebookDiscoverer struct {
	markdown *MarkdownDiscoverer
}

// NewNotebookDiscoverer creates a NotebookDiscoverer.
func NewNotebookDiscoverer() *NotebookDiscoverer {
	return &NotebookDiscoverer{markdown: NewMarkdownDiscoverer()}
}

// Discover concatenates the notebook's markdown cells and discovers the
// title and abstract in them. Code cells are ignored.
func (d *NotebookDiscoverer) Discover(ctx context.Context, source []byte) (*Discovery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(source) {
		return nil, fmt.Errorf("%w: notebook is not valid JSON", ErrDiscovery)
	}

	cells := gjson.GetBytes(source, "cells")
	if !cells.IsArray() {
		return nil, fmt.Errorf("%w: notebook has no cells array", ErrDiscovery)
	}

	var md strings.Builder
	for _, cell := range cells.Array() {
		if cell.Get("cell_type").String() != "markdown" {
			continue
		}
		md.WriteString(cellSource(cell))
		md.WriteString("\n\n")
	}
	return d.markdown.Discover(ctx, []byte(md.String()))
}

// cellSource returns a cell's source, which nbformat stores either as one
// string or as a list of lines.
func cellSource(cell gjson.Result) string {
	src := cell.Get("source")
	if !src.IsArray() {
		return src.String()
	}
	var b strings.Builder
	for _, line := range src.Array() {
		b.WriteString(line.String())
	}
	return b.String()
}
