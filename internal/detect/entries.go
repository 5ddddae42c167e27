package detect

import (
	"sort"
	"strings"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
)

// entryKey dedups candidates within one strategy. Title is compared
// case-insensitively.
type entryKey struct {
	level int
	title string
	page  int
}

func keyFor(level int, title string, page int) entryKey {
	return entryKey{level: level, title: strings.ToLower(title), page: page}
}

// sortEntries puts entries into document order: ascending page, ties broken
// by level, then title.
func sortEntries(entries []outline.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		return a.Title < b.Title
	})
}
