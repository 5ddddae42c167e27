package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/assets"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/config"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/detect"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/export"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/ingest"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/report"
)

// Worker runs the parse pipeline for one job at a time.
type Worker struct {
	log  *slog.Logger
	opts report.Options
	cfg  config.Config
}

func NewWorker(log *slog.Logger, cfg config.Config) *Worker {
	strategy, _ := detect.ParseStrategy(cfg.Strategy)
	return &Worker{
		log: log,
		opts: report.Options{
			Strategy:    strategy,
			MaxTOCPages: cfg.MaxTOCPages,
		},
		cfg: cfg,
	}
}

// Process reads, parses, and optionally exports one document.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	job.SetStatus(StatusReading, "reading document")
	reader, err := ingest.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.Fail("reading", err.Error())
		return
	}
	doc, err := reader.Read(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("read failed", "error", err)
		job.Fail("reading", err.Error())
		return
	}

	if ctx.Err() != nil {
		job.Fail("detecting", ctx.Err().Error())
		return
	}

	job.SetStatus(StatusDetecting, "detecting structure")
	res, err := report.Parse(doc, w.opts)
	if err != nil {
		log.Warn("parse failed", "error", err)
		job.Fail("detecting", err.Error())
		return
	}
	log.Info("parsed document",
		"strategy", res.Strategy,
		"pages", res.PageCount,
		"sections", len(res.Sections),
	)

	if w.cfg.OutputDir != "" {
		job.SetStatus(StatusExporting, "writing artifacts")
		outDir := w.cfg.OutputDir + "/" + job.ID
		if err := export.WriteAll(outDir, res, doc.Pages); err != nil {
			log.Error("export failed", "error", err)
			job.Fail("exporting", err.Error())
			return
		}
		if w.cfg.ExportAssets {
			// Figure export is best-effort; a bad image stream never fails
			// the job.
			n, err := w.exportFigures(job, outDir)
			if err != nil {
				log.Warn("figure export failed", "error", err)
			} else if n > 0 {
				log.Info("exported figures", "count", n)
			}
		}
	}

	job.Complete(res)
}

// exportFigures writes the document's embedded images next to the other
// artifacts. Only PDFs carry an image stream; other formats are skipped.
func (w *Worker) exportFigures(job *Job, outDir string) (int, error) {
	if !strings.EqualFold(filepath.Ext(job.Filename), ".pdf") {
		return 0, nil
	}

	// pdfcpu works on paths, so spool the upload back to disk.
	tmp, err := os.CreateTemp("", "reportparse-*.pdf")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(job.FileData()); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	figures, err := assets.ExtractFigures(tmpPath, outDir)
	if err != nil {
		return 0, err
	}
	return len(figures), nil
}
