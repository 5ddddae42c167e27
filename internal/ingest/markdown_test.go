package ingest

import (
	"strings"
	"testing"
)

const sampleMarkdown = `# Strategy

Our strategy rests on three pillars.

---

## Emissions

Scope 1 emissions fell this year.

## Energy

We purchased renewable electricity.
`

func TestMarkdownReader_ThematicBreakPagination(t *testing.T) {
	p := &MarkdownReader{}
	doc, err := p.Read(strings.NewReader(sampleMarkdown), "strategy.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "strategy" {
		t.Errorf("expected title %q, got %q", "strategy", doc.Title)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}
	if !strings.Contains(doc.Pages[0], "three pillars") {
		t.Errorf("page 1 missing body text: %q", doc.Pages[0])
	}
	if !strings.Contains(doc.Pages[1], "renewable electricity") {
		t.Errorf("page 2 missing body text: %q", doc.Pages[1])
	}
}

func TestMarkdownReader_HeadingsBecomeBookmarks(t *testing.T) {
	p := &MarkdownReader{}
	doc, err := p.Read(strings.NewReader(sampleMarkdown), "strategy.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Bookmarks) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d: %v", len(doc.Bookmarks), doc.Bookmarks)
	}

	want := []struct {
		level int
		title string
		page  int
	}{
		{1, "Strategy", 1},
		{2, "Emissions", 2},
		{2, "Energy", 2},
	}
	for i, w := range want {
		b := doc.Bookmarks[i]
		if b.Level != w.level || b.Title != w.title || b.Page != w.page {
			t.Errorf("bookmark[%d]: expected (%d,%q,%d), got (%d,%q,%d)",
				i, w.level, w.title, w.page, b.Level, b.Title, b.Page)
		}
	}
}

func TestMarkdownReader_NoBreaksSinglePage(t *testing.T) {
	p := &MarkdownReader{}
	doc, err := p.Read(strings.NewReader("# Only Heading\n\nBody.\n"), "one.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	if len(doc.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(doc.Bookmarks))
	}
}
