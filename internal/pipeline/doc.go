// Package pipeline reads technote content and writes metadata back into
// rendered pages.
//
// Discovery stages extract the title and plain-text abstract:
//   - Markdown via Goldmark (first H1, ```{abstract} block or "Abstract" section)
//   - reStructuredText (first section title, abstract directive)
//   - Jupyter notebooks (markdown cells, read with gjson)
//   - rendered HTML via golang.org/x/net/html
//
// Injection stages edit rendered HTML in place:
//   - head tags (citation, Open Graph, generator) before </head>
//   - status CSS into the head
//   - status aside after the first </h1>
package pipeline
