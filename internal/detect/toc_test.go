package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
)

func TestFindTOCPages_MarkerWithinWindow(t *testing.T) {
	pages := []string{
		"Cover page",
		"Table of Contents\nIntroduction ..... 3",
		"Body text",
	}
	assert.Equal(t, []int{1}, FindTOCPages(pages, 8))
}

func TestFindTOCPages_WindowLimit(t *testing.T) {
	pages := make([]string, 12)
	pages[9] = "Contents"
	assert.Empty(t, FindTOCPages(pages, 8), "marker beyond the window must not match")
	assert.Equal(t, []int{9}, FindTOCPages(pages, 12))
}

func TestFindTOCPages_CaseInsensitive(t *testing.T) {
	pages := []string{"TABLE OF CONTENTS"}
	assert.Equal(t, []int{0}, FindTOCPages(pages, 8))
}

func TestParseTOCEntries_DotLeaderLine(t *testing.T) {
	pages := []string{"Table of Contents\nClimate Strategy .......... 12"}
	entries := ParseTOCEntries(pages, []int{0})

	require.Len(t, entries, 1)
	assert.Equal(t, outline.Entry{Level: 1, Title: "Climate Strategy", Page: 12}, entries[0])
}

func TestParseTOCEntries_WideGapAndNumbering(t *testing.T) {
	pages := []string{
		"Contents\n" +
			"Governance    7\n" +
			"2.3 Risk Management 45\n" +
			"2.3.1 Physical Risks 46\n",
	}
	entries := ParseTOCEntries(pages, []int{0})

	require.Len(t, entries, 3)
	assert.Equal(t, outline.Entry{Level: 1, Title: "Governance", Page: 7}, entries[0])
	assert.Equal(t, outline.Entry{Level: 2, Title: "Risk Management", Page: 45}, entries[1])
	assert.Equal(t, outline.Entry{Level: 3, Title: "Physical Risks", Page: 46}, entries[2])
}

func TestParseTOCEntries_LetterPrefixIsLevelOne(t *testing.T) {
	pages := []string{"Contents\nA. Introduction ...... 5"}
	entries := ParseTOCEntries(pages, []int{0})

	require.Len(t, entries, 1)
	assert.Equal(t, outline.Entry{Level: 1, Title: "Introduction", Page: 5}, entries[0])
}

func TestParseTOCEntries_RejectsNoise(t *testing.T) {
	pages := []string{
		"Contents\n" +
			"2024\n" + // no letters
			"hi 3\n" + // too short
			"Plain body line without a page number\n" +
			"....... 12\n", // no extractable title
	}
	assert.Empty(t, ParseTOCEntries(pages, []int{0}))
}

func TestParseTOCEntries_DedupAndSort(t *testing.T) {
	pages := []string{
		"Contents\nClimate ....... 12\nClimate ....... 12\nAbout Us ....... 2",
	}
	entries := ParseTOCEntries(pages, []int{0})

	require.Len(t, entries, 2)
	assert.Equal(t, "About Us", entries[0].Title, "entries sorted by page")
	assert.Equal(t, "Climate", entries[1].Title)
}

func TestParseTOCEntries_IgnoresOutOfRangePageIndices(t *testing.T) {
	pages := []string{"Contents\nClimate ....... 12"}
	entries := ParseTOCEntries(pages, []int{-1, 0, 5})
	assert.Len(t, entries, 1)
}
