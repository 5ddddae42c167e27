package ingest

import (
	"io"
	"strings"
)

// TextReader ingests plain text dumps. Form feeds separate pages, matching
// what pdftotext-style extractors emit; without them the whole file is one
// page. Plain text carries no embedded outline.
type TextReader struct{}

func (p *TextReader) Read(r io.Reader, filename string) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		Title: strings.TrimSuffix(filename, ".txt"),
	}
	for _, page := range strings.Split(string(data), "\f") {
		doc.Pages = append(doc.Pages, strings.TrimSpace(page))
	}
	return doc, nil
}
