package detect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
)

// tocMarkers are the phrases that identify a rendered table-of-contents page.
var tocMarkers = []string{
	"table of contents",
	"contents",
}

var (
	trailingPageRe = regexp.MustCompile(`\b(\d{1,4})\s*$`)
	anyLetterRe    = regexp.MustCompile(`[A-Za-z]`)
	wideGapRe      = regexp.MustCompile(`\s{3,}\d{1,4}\s*$`)
	numberedLineRe = regexp.MustCompile(`^(\d+(\.\d+){0,4}|[A-Z])[\.\)]?\s+\S+`)
	leadingNumRe   = regexp.MustCompile(`^(\d+(?:\.\d+){0,6}|[A-Z])[\.\)]?\s+(.*)$`)
)

// FindTOCPages scans the first maxPages pages for a contents marker and
// returns the 0-based indices of the pages that contain one. An empty result
// is not an error, just a document without a rendered table of contents.
func FindTOCPages(pages []string, maxPages int) []int {
	var found []int
	n := min(len(pages), maxPages)
	for i := 0; i < n; i++ {
		low := strings.ToLower(pages[i])
		for _, marker := range tocMarkers {
			if strings.Contains(low, marker) {
				found = append(found, i)
				break
			}
		}
	}
	return found
}

// looksLikeTOCLine matches lines of the shape "Section title ....... 12" or
// "2.3 Climate Risk 45": a trailing page number preceded by dot leaders, a
// wide gap, or a leading numbering prefix.
func looksLikeTOCLine(s string) bool {
	if len(s) < 6 {
		return false
	}
	if !trailingPageRe.MatchString(s) {
		return false
	}
	if !anyLetterRe.MatchString(s) {
		return false
	}
	if strings.Contains(s, "...") || wideGapRe.MatchString(s) {
		return true
	}
	return numberedLineRe.MatchString(s)
}

// ParseTOCEntries parses TOC-like lines on the given pages into leveled
// entries. Level comes from numbering depth ("2.3" is level 2); unnumbered
// lines default to level 1. Lines that yield no title are dropped silently.
func ParseTOCEntries(pages []string, tocPages []int) []outline.Entry {
	var entries []outline.Entry
	seen := make(map[entryKey]bool)

	for _, p := range tocPages {
		if p < 0 || p >= len(pages) {
			continue
		}
		for _, raw := range strings.Split(pages[p], "\n") {
			ln := strings.TrimSpace(raw)
			if !looksLikeTOCLine(ln) {
				continue
			}
			loc := trailingPageRe.FindStringSubmatchIndex(ln)
			if loc == nil {
				continue
			}
			page, err := strconv.Atoi(ln[loc[2]:loc[3]])
			if err != nil || page < 1 {
				continue
			}

			titlePart := strings.TrimSpace(strings.TrimRight(ln[:loc[0]], ". "))

			level := 1
			title := titlePart
			if m := leadingNumRe.FindStringSubmatch(titlePart); m != nil {
				rest := strings.TrimSpace(m[2])
				if rest != "" {
					title = rest
					if m[1][0] >= '0' && m[1][0] <= '9' {
						level = strings.Count(m[1], ".") + 1
					}
				}
			}
			if title == "" {
				continue
			}

			k := keyFor(level, title, page)
			if seen[k] {
				continue
			}
			seen[k] = true
			entries = append(entries, outline.Entry{Level: level, Title: title, Page: page})
		}
	}

	sortEntries(entries)
	return entries
}
