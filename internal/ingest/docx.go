package ingest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
	"github.com/fumiama/go-docx"
)

// DOCXReader ingests .docx reports. WordprocessingML has no fixed pagination,
// so the whole document becomes one page; HeadingN paragraph styles double as
// an embedded outline.
type DOCXReader struct{}

func (p *DOCXReader) Read(r io.Reader, filename string) (Document, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "reportparse-*.docx")
	if err != nil {
		return Document{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return Document{}, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return Document{}, fmt.Errorf("seek temp file: %w", err)
	}

	word, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return Document{}, fmt.Errorf("parse docx: %w", err)
	}

	doc := Document{
		Title: strings.TrimSuffix(filename, ".docx"),
	}

	var body strings.Builder
	for _, item := range word.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		if level := paragraphHeadingLevel(para); level > 0 {
			doc.Bookmarks = append(doc.Bookmarks, outline.Entry{
				Level: level,
				Title: text,
				Page:  1,
			})
		}
		if body.Len() > 0 {
			body.WriteString("\n")
		}
		body.WriteString(text)
	}

	doc.Pages = []string{strings.TrimSpace(body.String())}
	return doc, nil
}

func paragraphHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	switch style {
	case "heading1":
		return 1
	case "heading2":
		return 2
	case "heading3":
		return 3
	case "heading4":
		return 4
	case "heading5":
		return 5
	case "heading6":
		return 6
	}
	return 0
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
