// Package report wires outline detection, tree construction, and section
// flattening into a single parse pass over an ingested document.
package report

import (
	"strings"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/detect"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/ingest"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
)

// Options control outline detection.
type Options struct {
	Strategy    detect.Strategy // default auto
	MaxTOCPages int             // default detect.DefaultMaxTOCPages
}

// Result is the complete parse of one document. All fields are read-only
// after Parse returns.
type Result struct {
	Title     string            `json:"title"`
	Strategy  detect.Strategy   `json:"strategy"`
	PageCount int               `json:"page_count"`
	Tree      *outline.Tree     `json:"tree"`
	Sections  []outline.Section `json:"sections"`
	Outline   string            `json:"outline_md"`
}

// Parse infers the document's section structure: select a detection strategy,
// build and finalize the tree, then flatten it into text-bearing sections.
// Each stage is a pure function of its inputs, so Parse is deterministic and
// safe to call concurrently for different documents.
func Parse(doc ingest.Document, opts Options) (*Result, error) {
	sel, err := detect.Select(doc.Pages, doc.Bookmarks, opts.Strategy, opts.MaxTOCPages)
	if err != nil {
		return nil, err
	}

	tree := outline.Build(sel.Entries)
	tree.Finalize(len(doc.Pages))

	return &Result{
		Title:     doc.Title,
		Strategy:  sel.Strategy,
		PageCount: len(doc.Pages),
		Tree:      tree,
		Sections:  tree.Flatten(doc.Pages),
		Outline:   tree.Markdown(),
	}, nil
}

// SectionStat is a per-section summary row for reporting and export.
type SectionStat struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Level     int    `json:"level"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
	Path      string `json:"path"`
	Chars     int    `json:"n_chars"`
	Words     int    `json:"n_words"`
}

// Stats summarizes every section with its size in characters and words.
func (r *Result) Stats() []SectionStat {
	stats := make([]SectionStat, 0, len(r.Sections))
	for _, s := range r.Sections {
		stats = append(stats, SectionStat{
			ID:        s.ID,
			Title:     s.Title,
			Level:     s.Level,
			StartPage: s.StartPage,
			EndPage:   s.EndPage,
			Path:      strings.Join(s.Path, " > "),
			Chars:     len(s.Text),
			Words:     len(strings.Fields(s.Text)),
		})
	}
	return stats
}
