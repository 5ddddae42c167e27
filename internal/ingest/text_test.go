package ingest

import (
	"strings"
	"testing"
)

func TestTextReader_FormFeedPagination(t *testing.T) {
	input := "cover page text\fchapter one text\fchapter two text"
	p := &TextReader{}
	doc, err := p.Read(strings.NewReader(input), "report.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "report" {
		t.Errorf("expected title %q, got %q", "report", doc.Title)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(doc.Pages))
	}
	if doc.Pages[1] != "chapter one text" {
		t.Errorf("page 2: expected %q, got %q", "chapter one text", doc.Pages[1])
	}
	if doc.Bookmarks != nil {
		t.Errorf("plain text must not produce bookmarks, got %v", doc.Bookmarks)
	}
}

func TestTextReader_SinglePageWithoutFormFeeds(t *testing.T) {
	p := &TextReader{}
	doc, err := p.Read(strings.NewReader("just one page"), "single.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
}

func TestForFile_Dispatch(t *testing.T) {
	cases := []struct {
		filename string
		ok       bool
	}{
		{"report.pdf", true},
		{"report.PDF", true},
		{"notes.md", true},
		{"notes.markdown", true},
		{"page.html", true},
		{"page.htm", true},
		{"doc.docx", true},
		{"dump.txt", true},
		{"image.png", false},
		{"archive.zip", false},
	}
	for _, c := range cases {
		_, err := ForFile(c.filename)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", c.filename, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: expected error", c.filename)
		}
		if got := IsSupportedExtension(c.filename); got != c.ok {
			t.Errorf("IsSupportedExtension(%s) = %v, want %v", c.filename, got, c.ok)
		}
	}
}
