package ingest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

// PDFReader extracts per-page plain text with ledongthuc/pdf and embedded
// bookmarks with pdfcpu. A PDF without bookmarks is the normal case; the
// document's Bookmarks field just stays nil.
type PDFReader struct{}

func (p *PDFReader) Read(r io.Reader, filename string) (Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so spool to a temp file.
	tmp, err := os.CreateTemp("", "reportparse-*.pdf")
	if err != nil {
		return Document{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return Document{}, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	return ReadPDFFile(tmpPath, filename)
}

// ReadPDFFile reads a PDF already on disk, avoiding a second spool when the
// caller has a path.
func ReadPDFFile(path, filename string) (Document, error) {
	pages, err := extractPageText(path)
	if err != nil {
		return Document{}, fmt.Errorf("extract pdf text: %w", err)
	}

	doc := Document{
		Title: strings.TrimSuffix(filename, ".pdf"),
		Pages: pages,
	}
	// A broken or absent outline never fails the read.
	doc.Bookmarks = readBookmarks(path)
	return doc, nil
}

func extractPageText(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page that fails text extraction becomes blank, keeping page
			// numbering aligned with the physical document.
			text = ""
		}
		pages = append(pages, normalizePageText(text))
	}
	return pages, nil
}

// normalizePageText squashes non-breaking spaces and trailing whitespace so
// the downstream line grammars see consistent input.
func normalizePageText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " \t")
	}
	return strings.Join(lines, "\n")
}

func readBookmarks(path string) []outline.Entry {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	bms, err := api.Bookmarks(f, nil)
	if err != nil {
		return nil
	}
	var entries []outline.Entry
	flattenBookmarks(bms, 1, &entries)
	return entries
}

// flattenBookmarks converts pdfcpu's nested bookmark tree into flat
// (level, title, page) entries in document order.
func flattenBookmarks(bms []pdfcpu.Bookmark, level int, out *[]outline.Entry) {
	for _, bm := range bms {
		title := strings.TrimSpace(bm.Title)
		if title != "" && bm.PageFrom >= 1 {
			*out = append(*out, outline.Entry{Level: level, Title: title, Page: bm.PageFrom})
		}
		flattenBookmarks(bm.Kids, level+1, out)
	}
}
