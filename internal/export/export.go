// Package export writes parse artifacts to an output directory: the raw page
// text, the outline tree as JSON and markdown, and the flattened sections as
// line-delimited JSON.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/report"
)

// WriteRawText writes raw_text.txt with one "===== PAGE n =====" banner per
// page and returns the file path.
func WriteRawText(outDir string, pages []string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, "raw_text.txt")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	for i, t := range pages {
		if _, err := fmt.Fprintf(f, "\n\n===== PAGE %d =====\n\n%s\n", i+1, t); err != nil {
			return "", fmt.Errorf("write raw text: %w", err)
		}
	}
	return path, nil
}

// WriteTreeJSON writes the finalized tree to tree.json.
func WriteTreeJSON(outDir string, tree *outline.Tree) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, "tree.json")
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal tree: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteTreeMarkdown writes the rendered outline to tree.md.
func WriteTreeMarkdown(outDir, treeMD string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, "tree.md")
	if err := os.WriteFile(path, []byte(treeMD), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteSectionsJSONL writes one self-contained JSON record per section to
// sections.jsonl.
func WriteSectionsJSONL(outDir string, sections []outline.Section) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, "sections.jsonl")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, s := range sections {
		if err := enc.Encode(s); err != nil {
			return "", fmt.Errorf("encode section %s: %w", s.ID, err)
		}
	}
	return path, nil
}

// WriteAll exports the standard artifact set for one parse result.
func WriteAll(outDir string, res *report.Result, pages []string) error {
	if _, err := WriteRawText(outDir, pages); err != nil {
		return err
	}
	if _, err := WriteTreeJSON(outDir, res.Tree); err != nil {
		return err
	}
	if _, err := WriteTreeMarkdown(outDir, res.Outline); err != nil {
		return err
	}
	if _, err := WriteSectionsJSONL(outDir, res.Sections); err != nil {
		return err
	}
	return nil
}
