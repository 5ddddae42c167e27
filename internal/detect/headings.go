package detect

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
)

var (
	innerSpaceRe      = regexp.MustCompile(`\s+`)
	numberedHeadingRe = regexp.MustCompile(`^(\d+(?:\.\d+){0,5})\s+([A-Z][A-Za-z0-9&,\-:’'()/ ]+)$`)
	properCaseRe      = regexp.MustCompile(`^[A-Z][A-Za-z0-9&,\-:’'()/ ]+$`)
	captionRe         = regexp.MustCompile(`^(figure|table)\s+\d+`)
)

// DetectHeadings scans every line of every page for heading-like text. It is
// the most permissive strategy and therefore the last resort; the grammars
// stay intentionally conservative to avoid swallowing body prose.
//
// Three mutually exclusive grammars apply in order, first match wins:
// numbered headings ("2.3 Climate Risk"), short ALL-CAPS lines, and
// proper-case multi-word lines.
func DetectHeadings(pages []string) []outline.Entry {
	var entries []outline.Entry
	seen := make(map[entryKey]bool)

	add := func(level int, title string, page int) {
		k := keyFor(level, title, page)
		if seen[k] {
			return
		}
		seen[k] = true
		entries = append(entries, outline.Entry{Level: level, Title: title, Page: page})
	}

	for i, txt := range pages {
		pageNo := i + 1
		for _, raw := range strings.Split(txt, "\n") {
			s := strings.TrimSpace(innerSpaceRe.ReplaceAllString(raw, " "))
			if len(s) < 6 || len(s) > 120 {
				continue
			}

			if m := numberedHeadingRe.FindStringSubmatch(s); m != nil {
				add(strings.Count(m[1], ".")+1, strings.TrimSpace(m[2]), pageNo)
				continue
			}

			if len(s) <= 60 && isAllCaps(s) {
				add(1, titleCase(s), pageNo)
				continue
			}

			// Proper-case lines: no trailing period, at least two words, low
			// punctuation density, and not a figure/table caption.
			if strings.HasSuffix(s, ".") {
				continue
			}
			if len(strings.Fields(s)) >= 2 && properCaseRe.MatchString(s) {
				if strings.Count(s, ",")+strings.Count(s, ";")+strings.Count(s, ":") > 2 {
					continue
				}
				if captionRe.MatchString(strings.ToLower(s)) {
					continue
				}
				add(1, s, pageNo)
			}
		}
	}

	sortEntries(entries)
	return entries
}

// isAllCaps reports whether s contains at least one letter and no lowercase
// letters.
func isAllCaps(s string) bool {
	return anyLetterRe.MatchString(s) && s == strings.ToUpper(s)
}

// titleCase uppercases the first letter of every run of letters and lowers
// the rest, so "OUR CLIMATE JOURNEY" renders as "Our Climate Journey".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
