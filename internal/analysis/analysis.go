// Package analysis runs keyword and pattern extraction over parsed sections:
// reporting-framework mentions, emissions scopes, target years, and density
// of quantitative claims. It consumes sections only; it never re-reads the
// source document.
package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
)

// FrameworkKeywords maps reporting-framework names to the phrases counted as
// a mention. Matching is plain lowercase substring search.
var FrameworkKeywords = map[string][]string{
	"GRI":  {"gri", "global reporting initiative"},
	"SASB": {"sasb"},
	"ISSB": {"issb", "ifrs s1", "ifrs s2"},
	"TCFD": {"tcfd", "task force on climate-related financial disclosures"},
	"ESRS": {"esrs", "csrd"},
}

var (
	numberRe      = regexp.MustCompile(`\b\d+(\.\d+)?%?\b`)
	materialityRe = regexp.MustCompile(`(?i)\bmateriality\b`)
	assuranceRe   = regexp.MustCompile(`(?i)\bassurance\b`)
	scopeRe       = regexp.MustCompile(`scope\s*[123]`)
)

// targetPatterns capture climate-target years (2000-2099).
var targetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`net\s*zero\s*by\s*(20\d{2})`),
	regexp.MustCompile(`carbon\s*neutral\s*by\s*(20\d{2})`),
	regexp.MustCompile(`reduced?\s+.*?\s+by\s+(20\d{2})`),
	regexp.MustCompile(`targets?\s+.*?\s+(20\d{2})`),
}

// FrameworkCounts counts mentions of each known framework in the section text.
func FrameworkCounts(s outline.Section) map[string]int {
	low := strings.ToLower(s.Text)
	counts := make(map[string]int, len(FrameworkKeywords))
	for name, phrases := range FrameworkKeywords {
		n := 0
		for _, p := range phrases {
			n += strings.Count(low, p)
		}
		counts[name] = n
	}
	return counts
}

// MetricDensity is the number of numeric tokens per 1000 characters of text,
// a rough signal of how data-heavy a section is.
func MetricDensity(text string) float64 {
	nums := len(numberRe.FindAllString(text, -1))
	denom := len(text)
	if denom < 1 {
		denom = 1
	}
	return float64(nums) / float64(denom) * 1000.0
}

// FindMaterialitySections returns sections whose title or text mentions
// materiality, in document order.
func FindMaterialitySections(sections []outline.Section) []outline.Section {
	return filterSections(sections, "material", materialityRe)
}

// FindAssuranceSections returns sections whose title or text mentions
// external assurance, in document order.
func FindAssuranceSections(sections []outline.Section) []outline.Section {
	return filterSections(sections, "assurance", assuranceRe)
}

func filterSections(sections []outline.Section, titleNeedle string, textRe *regexp.Regexp) []outline.Section {
	var out []outline.Section
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Title), titleNeedle) || textRe.MatchString(s.Text) {
			out = append(out, s)
		}
	}
	return out
}

// ScopeSnippet is one scope 1/2/3 mention with surrounding context.
type ScopeSnippet struct {
	SectionID string `json:"section_id"`
	Title     string `json:"title"`
	PageRange string `json:"page_range"`
	Scope     string `json:"scope"`
	Snippet   string `json:"snippet"`
}

// ScopeSnippets finds every "scope 1/2/3" mention and captures windowChars of
// context on either side, newlines flattened. Matching runs on a lowercased
// copy; snippets keep the report's original casing.
func ScopeSnippets(sections []outline.Section, windowChars int) []ScopeSnippet {
	if windowChars <= 0 {
		windowChars = 450
	}
	var out []ScopeSnippet
	for _, s := range sections {
		low := strings.ToLower(s.Text)
		for _, loc := range scopeRe.FindAllStringIndex(low, -1) {
			start := max(0, loc[0]-windowChars)
			end := min(len(s.Text), loc[1]+windowChars)
			if start > end {
				start = end
			}
			out = append(out, ScopeSnippet{
				SectionID: s.ID,
				Title:     s.Title,
				PageRange: fmt.Sprintf("%d-%d", s.StartPage, s.EndPage),
				Scope:     low[loc[0]:loc[1]],
				Snippet:   strings.ReplaceAll(s.Text[start:end], "\n", " "),
			})
		}
	}
	return out
}

// Target is one extracted climate-target mention.
type Target struct {
	SectionID string `json:"section_id"`
	Title     string `json:"title"`
	PageRange string `json:"page_range"`
	Year      string `json:"year"`
	Match     string `json:"match"`
	Context   string `json:"context"`
}

// ExtractTargets finds target-year statements ("net zero by 2040", "reduce
// emissions by 2030") with a short context window around each match. Matching
// runs on a lowercased copy; context keeps the report's original casing.
func ExtractTargets(sections []outline.Section) []Target {
	var out []Target
	for _, s := range sections {
		low := strings.ToLower(s.Text)
		for _, pat := range targetPatterns {
			for _, loc := range pat.FindAllStringSubmatchIndex(low, -1) {
				year := ""
				if len(loc) >= 4 && loc[2] >= 0 {
					year = low[loc[2]:loc[3]]
				}
				start := max(0, loc[0]-120)
				end := min(len(s.Text), loc[1]+180)
				if start > end {
					start = end
				}
				out = append(out, Target{
					SectionID: s.ID,
					Title:     s.Title,
					PageRange: fmt.Sprintf("%d-%d", s.StartPage, s.EndPage),
					Year:      year,
					Match:     low[loc[0]:loc[1]],
					Context:   strings.ReplaceAll(s.Text[start:end], "\n", " "),
				})
			}
		}
	}
	return out
}
