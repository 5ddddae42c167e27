// Package assets exports embedded report figures using pdfcpu.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Figure is one exported image file.
type Figure struct {
	Page int    `json:"page"`
	Path string `json:"file_path"`
}

// pdfcpu names extracted images <base>_<page>_<resource>.<ext>.
var imagePageRe = regexp.MustCompile(`_(\d+)_[^_]+\.\w+$`)

// ExtractFigures writes every embedded image of the PDF into outDir/figures
// and returns one record per file written. Page attribution is recovered from
// pdfcpu's file naming; files it cannot attribute get page 0.
func ExtractFigures(pdfPath, outDir string) ([]Figure, error) {
	dir := filepath.Join(outDir, "figures")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if err := api.ExtractImagesFile(pdfPath, dir, nil, nil); err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var figures []Figure
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		figures = append(figures, Figure{
			Page: pageFromImageName(f.Name()),
			Path: filepath.Join(dir, f.Name()),
		})
	}
	return figures, nil
}

func pageFromImageName(name string) int {
	m := imagePageRe.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	page, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return page
}
