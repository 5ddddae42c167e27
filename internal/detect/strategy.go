package detect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
)

// Strategy names one of the outline-detection heuristics, or auto for the
// full priority cascade.
type Strategy string

const (
	StrategyAuto     Strategy = "auto"
	StrategyOutline  Strategy = "outline"
	StrategyTOC      Strategy = "toc"
	StrategyHeadings Strategy = "headings"
)

// DefaultMaxTOCPages is how deep into the document FindTOCPages looks.
const DefaultMaxTOCPages = 8

var (
	// ErrNoStructure means every attempted strategy abstained. The pipeline
	// cannot proceed without at least one entry.
	ErrNoStructure = errors.New("no outline, toc, or headings detected")

	// ErrNoPages rejects an empty page-text sequence before any detection.
	ErrNoPages = errors.New("document has no page text")
)

// ParseStrategy validates a strategy name. The empty string means auto.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyOutline, StrategyTOC, StrategyHeadings:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q (want auto, outline, toc, or headings)", s)
}

// Selection is the outcome of strategy selection: which strategy produced the
// winning entry list. The strategy name is recorded for observability only;
// downstream stages never branch on it.
type Selection struct {
	Strategy Strategy
	Entries  []outline.Entry
}

// FromBookmarks validates an externally supplied bookmark list. Entries with
// an empty title, a level below 1, or a page below 1 are dropped; an empty or
// absent list is an abstention, never an error.
func FromBookmarks(bookmarks []outline.Entry) []outline.Entry {
	var entries []outline.Entry
	for _, e := range bookmarks {
		title := strings.TrimSpace(e.Title)
		if title == "" || e.Level < 1 || e.Page < 1 {
			continue
		}
		entries = append(entries, outline.Entry{Level: e.Level, Title: title, Page: e.Page})
	}
	return entries
}

// Select runs the detection strategies in fixed priority order under auto
// (embedded bookmarks, then rendered TOC parsing, then heading detection) and
// returns the first non-empty result. A forced strategy runs alone. When every
// attempted strategy abstains, Select fails with ErrNoStructure.
func Select(pages []string, bookmarks []outline.Entry, strategy Strategy, maxTOCPages int) (Selection, error) {
	if len(pages) == 0 {
		return Selection{}, ErrNoPages
	}
	strategy, err := ParseStrategy(string(strategy))
	if err != nil {
		return Selection{}, err
	}
	if maxTOCPages <= 0 {
		maxTOCPages = DefaultMaxTOCPages
	}

	if strategy == StrategyAuto || strategy == StrategyOutline {
		if entries := FromBookmarks(bookmarks); len(entries) > 0 {
			return Selection{Strategy: StrategyOutline, Entries: entries}, nil
		}
	}

	if strategy == StrategyAuto || strategy == StrategyTOC {
		if tocPages := FindTOCPages(pages, maxTOCPages); len(tocPages) > 0 {
			if entries := ParseTOCEntries(pages, tocPages); len(entries) > 0 {
				return Selection{Strategy: StrategyTOC, Entries: entries}, nil
			}
		}
	}

	if strategy == StrategyAuto || strategy == StrategyHeadings {
		if entries := DetectHeadings(pages); len(entries) > 0 {
			return Selection{Strategy: StrategyHeadings, Entries: entries}, nil
		}
	}

	return Selection{}, ErrNoStructure
}
