package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/analysis"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/ingest"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/pipeline"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/report"
	"github.com/go-chi/chi/v5"
)

// handleParse accepts a multipart upload and queues it for parsing.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !ingest.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewJobID(filename, data),
		Filename:  filename,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/parse/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookupResult(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res.Tree)
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookupResult(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"sections": res.Sections,
		"stats":    res.Stats(),
	})
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookupResult(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	io.WriteString(w, res.Outline)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookupResult(w, r)
	if !ok {
		return
	}

	frameworks := make([]map[string]any, 0, len(res.Sections))
	for _, sec := range res.Sections {
		frameworks = append(frameworks, map[string]any{
			"section_id":     sec.ID,
			"title":          sec.Title,
			"counts":         analysis.FrameworkCounts(sec),
			"metric_density": analysis.MetricDensity(sec.Text),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"frameworks":     frameworks,
		"targets":        analysis.ExtractTargets(res.Sections),
		"scope_snippets": analysis.ScopeSnippets(res.Sections, 0),
	})
}

// lookupJob resolves the jobID route parameter.
func (s *Server) lookupJob(w http.ResponseWriter, r *http.Request) (*pipeline.Job, bool) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil, false
	}
	return job, true
}

// lookupResult resolves a completed job's result, with 409 while in flight.
func (s *Server) lookupResult(w http.ResponseWriter, r *http.Request) (*report.Result, bool) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return nil, false
	}
	res := job.Result()
	if res == nil {
		snap := job.Snapshot()
		jsonError(w, fmt.Sprintf("job not completed (status=%s)", snap.Status), http.StatusConflict)
		return nil, false
	}
	return res, true
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
