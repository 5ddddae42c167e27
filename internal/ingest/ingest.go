package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
)

// Document is the normalized input to outline detection: per-page plain text
// (index 0 = page 1) plus whatever machine-readable outline the container
// format carries. Bookmarks may be nil; that just means the outline strategy
// will abstain.
type Document struct {
	Title     string
	Pages     []string
	Bookmarks []outline.Entry
}

// Reader converts raw document bytes into a Document.
type Reader interface {
	Read(r io.Reader, filename string) (Document, error)
}

// SupportedExtensions lists file extensions this module can ingest.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
	".txt":      true,
}

// ForFile returns the appropriate reader for a filename.
func ForFile(filename string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return &PDFReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".docx":
		return &DOCXReader{}, nil
	case ".txt":
		return &TextReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}
