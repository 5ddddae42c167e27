package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/config"
	"github.com/finresearchshi-boop/sustainability-report-parser/internal/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		APIKey:         "test-key",
		WorkerCount:    1,
		MaxQueueSize:   10,
		MaxUploadBytes: 1 << 20,
		Strategy:       "auto",
		MaxTOCPages:    8,
		JobTTL:         time.Hour,
	}
	orch := pipeline.NewOrchestrator(cfg, log)
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)
	return NewServer(orch, log, cfg)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic dGVzdA==", http.StatusUnauthorized},
		{"wrong key", "Bearer bad-key", http.StatusUnauthorized},
		{"valid key", "Bearer test-key", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/parse/nope", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)

			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
				var body struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body.Error)
			}
		})
	}
}

func TestParseSubmitAndPoll(t *testing.T) {
	srv := newTestServer(t)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "report.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Introduction\nwelcome\n\f2.1 Emissions Overview\nscope data here"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/parse", body)
	req.Header.Set("Authorization", "Bearer test-key")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp struct {
		JobID   string `json:"job_id"`
		Status  string `json:"status"`
		PollURL string `json:"poll_url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.JobID)
	assert.Equal(t, "queued", resp.Status)
	assert.Contains(t, resp.PollURL, resp.JobID)

	// Poll until the worker settles.
	deadline := time.Now().Add(5 * time.Second)
	var status string
	for time.Now().Before(deadline) {
		req := httptest.NewRequest(http.MethodGet, "/api/parse/"+resp.JobID, nil)
		req.Header.Set("Authorization", "Bearer test-key")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var snap struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		status = snap.Status
		if status == "completed" || status == "failed" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, "completed", status)
}

func TestUnsupportedExtensionRejected(t *testing.T) {
	srv := newTestServer(t)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "report.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("binary"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/parse", body)
	req.Header.Set("Authorization", "Bearer test-key")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
