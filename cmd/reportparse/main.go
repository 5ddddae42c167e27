// Command reportparse parses a single sustainability report into a section
// tree and exports the artifacts: raw page text, tree JSON, a markdown
// outline, and per-section JSONL records.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/assets"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/detect"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/export"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/ingest"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/report"
)

func main() {
	out := flag.String("out", "outputs/report", "output directory")
	strategyFlag := flag.String("strategy", "auto", "auto|outline|toc|headings")
	maxTOCPages := flag.Int("max-toc-pages", detect.DefaultMaxTOCPages, "search for a TOC within the first N pages")
	withFigures := flag.Bool("figures", false, "also export embedded images (PDF only)")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <report file>\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	if err := run(path, *out, *strategyFlag, *maxTOCPages, *withFigures); err != nil {
		color.Red("error: %v", err)
		if errors.Is(err, detect.ErrNoStructure) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(path, outDir, strategyName string, maxTOCPages int, withFigures bool) error {
	strategy, err := detect.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader, err := ingest.ForFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", color.New(color.Bold).Sprint("Reading:"), path)
	doc, err := reader.Read(f, filepath.Base(path))
	if err != nil {
		return err
	}
	color.Green("Extracted %d pages of text.", len(doc.Pages))

	sel, err := detect.Select(doc.Pages, doc.Bookmarks, strategy, maxTOCPages)
	if err != nil {
		return err
	}
	switch sel.Strategy {
	case detect.StrategyOutline:
		color.Green("Using embedded outline/bookmarks.")
	case detect.StrategyTOC:
		color.Green("Using parsed table-of-contents pages.")
	case detect.StrategyHeadings:
		color.Yellow("Using fallback heading detection.")
	}

	printEntryPreview(sel.Entries, 12)

	tree := outline.Build(sel.Entries)
	tree.Finalize(len(doc.Pages))

	res := &report.Result{
		Title:     doc.Title,
		Strategy:  sel.Strategy,
		PageCount: len(doc.Pages),
		Tree:      tree,
		Sections:  tree.Flatten(doc.Pages),
		Outline:   tree.Markdown(),
	}
	fmt.Printf("%s %d (strategy=%s)\n", color.New(color.Bold).Sprint("Sections produced:"), len(res.Sections), res.Strategy)

	if err := export.WriteAll(outDir, res, doc.Pages); err != nil {
		return err
	}

	if withFigures {
		figures, err := assets.ExtractFigures(path, outDir)
		if err != nil {
			color.Yellow("figure extraction failed: %v", err)
		} else {
			color.Green("Exported %d figures.", len(figures))
		}
	}

	color.Green("Done. Outputs written to: %s", outDir)
	fmt.Println("Open tree.md to see the outline.")
	return nil
}

// printEntryPreview shows the first few detected entries as a plain table.
func printEntryPreview(entries []outline.Entry, maxRows int) {
	bold := color.New(color.Bold)
	bold.Println("Detected outline entries (preview)")
	fmt.Printf("%5s  %-60s  %5s\n", "Level", "Title", "Page")

	for i, e := range entries {
		if i >= maxRows {
			fmt.Printf("       (+%d more)\n", len(entries)-maxRows)
			break
		}
		fmt.Printf("%5d  %-60s  %5d\n", e.Level, truncateTitle(e.Title, 60), e.Page)
	}
}

// truncateTitle shortens a title to max display runes, never splitting a
// multi-byte character.
func truncateTitle(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
