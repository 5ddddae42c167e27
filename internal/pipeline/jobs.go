package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/report"
)

// JobStatus represents the state of a parse job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusReading   JobStatus = "reading"
	StatusDetecting JobStatus = "detecting"
	StatusExporting JobStatus = "exporting"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single document parse.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`

	// Populated on completion.
	Strategy     string `json:"strategy,omitempty"`
	PageCount    int    `json:"page_count,omitempty"`
	SectionCount int    `json:"section_count,omitempty"`
	Error        string `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *report.Result
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed with an error message.
func (j *Job) Fail(phase, errMsg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusFailed
	j.Phase = phase
	j.Error = errMsg
	j.UpdatedAt = time.Now()
}

// Complete records the parse result and marks the job done.
func (j *Job) Complete(res *report.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
	j.Status = StatusCompleted
	j.Phase = "done"
	j.Strategy = string(res.Strategy)
	j.PageCount = res.PageCount
	j.SectionCount = len(res.Sections)
	j.UpdatedAt = time.Now()
}

// Result returns the parse result, or nil while the job is in flight.
func (j *Job) Result() *report.Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// LastUpdate returns the update timestamp under the job lock, so TTL checks
// do not race with workers advancing the job.
func (j *Job) LastUpdate() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID           string    `json:"job_id"`
	Filename     string    `json:"filename"`
	Status       JobStatus `json:"status"`
	Phase        string    `json:"phase"`
	Strategy     string    `json:"strategy,omitempty"`
	PageCount    int       `json:"page_count,omitempty"`
	SectionCount int       `json:"section_count,omitempty"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:           j.ID,
		Filename:     j.Filename,
		Status:       j.Status,
		Phase:        j.Phase,
		Strategy:     j.Strategy,
		PageCount:    j.PageCount,
		SectionCount: j.SectionCount,
		Error:        j.Error,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.LastUpdate()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns a hex string. Job
// IDs derive from it.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// NewJobID builds a job ID from the upload content and submission time.
func NewJobID(filename string, data []byte) string {
	return ContentHashHex([]byte(fmt.Sprintf("%s-%d-%s", filename, time.Now().UnixNano(), ContentHashHex(data))))[:20]
}
