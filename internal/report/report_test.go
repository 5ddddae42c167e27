package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/detect"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/ingest"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
)

func eightPageDoc() ingest.Document {
	return ingest.Document{
		Title: "Annual Sustainability Report",
		Pages: []string{
			"cover page", "sub a text", "sub a continues", "sub b text",
			"sub b continues", "conclusion starts", "conclusion middle", "conclusion end",
		},
		Bookmarks: []outline.Entry{
			{Level: 1, Title: "Intro", Page: 1},
			{Level: 2, Title: "Sub A", Page: 2},
			{Level: 2, Title: "Sub B", Page: 4},
			{Level: 1, Title: "Conclusion", Page: 6},
		},
	}
}

func TestParse_EndToEnd(t *testing.T) {
	res, err := Parse(eightPageDoc(), Options{})
	require.NoError(t, err)

	assert.Equal(t, detect.StrategyOutline, res.Strategy)
	assert.Equal(t, 8, res.PageCount)
	assert.Equal(t, "Annual Sustainability Report", res.Title)

	require.Len(t, res.Sections, 4)
	titles := []string{"Intro", "Sub A", "Sub B", "Conclusion"}
	ranges := [][2]int{{1, 5}, {2, 3}, {4, 5}, {6, 8}}
	for i, s := range res.Sections {
		assert.Equal(t, titles[i], s.Title)
		assert.Equal(t, ranges[i][0], s.StartPage, "%s start", s.Title)
		assert.Equal(t, ranges[i][1], s.EndPage, "%s end", s.Title)
	}

	assert.Contains(t, res.Outline, "- Intro  *(pp. 1–5)*")
	assert.Contains(t, res.Outline, "  - Sub A  *(pp. 2–3)*")
}

func TestParse_SectionMultisetMatchesTree(t *testing.T) {
	res, err := Parse(eightPageDoc(), Options{})
	require.NoError(t, err)

	type tl struct {
		title string
		level int
	}
	fromTree := map[tl]int{}
	nodes := 0
	res.Tree.Walk(func(n *outline.Node, depth int) {
		fromTree[tl{n.Title, n.Level}]++
		nodes++
	})

	assert.Equal(t, nodes, len(res.Sections))
	fromSections := map[tl]int{}
	for _, s := range res.Sections {
		fromSections[tl{s.Title, s.Level}]++
	}
	assert.Equal(t, fromTree, fromSections)
}

func TestParse_NoStructure(t *testing.T) {
	doc := ingest.Document{
		Title: "opaque",
		Pages: []string{"plain prose only.", "more plain prose."},
	}
	res, err := Parse(doc, Options{})
	assert.ErrorIs(t, err, detect.ErrNoStructure)
	assert.Nil(t, res, "no partial result on failure")
}

func TestParse_EmptyDocumentRejected(t *testing.T) {
	_, err := Parse(ingest.Document{Title: "empty"}, Options{})
	assert.ErrorIs(t, err, detect.ErrNoPages)
}

func TestParse_ForcedHeadingsStrategy(t *testing.T) {
	doc := eightPageDoc()
	doc.Pages[2] = "GOVERNANCE OVERVIEW\nsub a continues"

	res, err := Parse(doc, Options{Strategy: detect.StrategyHeadings})
	require.NoError(t, err)
	assert.Equal(t, detect.StrategyHeadings, res.Strategy)
	require.Len(t, res.Sections, 1)
	assert.Equal(t, "Governance Overview", res.Sections[0].Title)
}

func TestStats_CountsCharsAndWords(t *testing.T) {
	res, err := Parse(eightPageDoc(), Options{})
	require.NoError(t, err)

	stats := res.Stats()
	require.Len(t, stats, len(res.Sections))
	for i, st := range stats {
		assert.Equal(t, res.Sections[i].ID, st.ID)
		assert.Equal(t, len(res.Sections[i].Text), st.Chars)
		assert.Positive(t, st.Words)
	}
	assert.Equal(t, "Intro > Sub A", stats[1].Path)
}
