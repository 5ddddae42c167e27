package ingest

import (
	"bytes"
	"io"
	"strings"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownReader ingests Markdown reports using goldmark. Thematic breaks
// (---) act as page boundaries; ATX headings double as an embedded outline,
// so markdown input normally resolves via the outline strategy.
type MarkdownReader struct{}

func (p *MarkdownReader) Read(r io.Reader, filename string) (Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := Document{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown"),
	}

	var current strings.Builder
	page := 1
	flush := func() {
		doc.Pages = append(doc.Pages, strings.TrimSpace(current.String()))
		current.Reset()
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.ThematicBreak:
			flush()
			page++
		case *ast.Heading:
			title := strings.TrimSpace(string(node.Text(src)))
			if title != "" {
				doc.Bookmarks = append(doc.Bookmarks, outline.Entry{
					Level: node.Level,
					Title: title,
					Page:  page,
				})
				current.WriteString(title)
				current.WriteString("\n")
			}
		default:
			if t := blockText(n, src); t != "" {
				if current.Len() > 0 {
					current.WriteString("\n")
				}
				current.WriteString(t)
				current.WriteString("\n")
			}
		}
	}
	flush()

	return doc, nil
}

// blockText gets the text content of a goldmark AST node. Blocks with raw
// source lines use those directly; container nodes recurse into their inline
// children.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
