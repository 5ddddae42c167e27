package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/report"
)

func TestContentHashHex(t *testing.T) {
	// SHA-256 of an empty input.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		ContentHashHex(nil))

	assert.Equal(t, ContentHashHex([]byte("hello")), ContentHashHex([]byte("hello")))
	assert.NotEqual(t, ContentHashHex([]byte("hello")), ContentHashHex([]byte("hello!")))
}

func TestNewJobID(t *testing.T) {
	a := NewJobID("report.pdf", []byte("content"))
	b := NewJobID("report.pdf", []byte("content"))

	assert.Len(t, a, 20)
	assert.NotEqual(t, a, b, "submission time feeds the ID")
}

func TestJobStatusTransitions(t *testing.T) {
	job := &Job{ID: "j1", Filename: "r.pdf", Status: StatusQueued, CreatedAt: time.Now()}

	job.SetStatus(StatusReading, "reading file")
	snap := job.Snapshot()
	assert.Equal(t, StatusReading, snap.Status)
	assert.Equal(t, "reading file", snap.Phase)

	job.Fail("detecting", "no structure found")
	snap = job.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "no structure found", snap.Error)
}

func TestJobComplete(t *testing.T) {
	job := &Job{ID: "j1", Status: StatusQueued}
	require.Nil(t, job.Result())

	res := &report.Result{Strategy: "outline", PageCount: 8}
	job.Complete(res)

	snap := job.Snapshot()
	assert.Equal(t, StatusCompleted, snap.Status)
	assert.Equal(t, "outline", snap.Strategy)
	assert.Equal(t, 8, snap.PageCount)
	assert.Same(t, res, job.Result())
}

func TestJobFileData(t *testing.T) {
	job := &Job{ID: "j1"}
	job.SetFileData([]byte("raw bytes"))
	assert.Equal(t, []byte("raw bytes"), job.FileData())
}

func TestJobStoreCleanup(t *testing.T) {
	store := NewJobStore(time.Hour)

	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	stale := &Job{ID: "stale", UpdatedAt: time.Now().Add(-2 * time.Hour)}
	store.Put(fresh)
	store.Put(stale)

	store.Cleanup()

	assert.NotNil(t, store.Get("fresh"))
	assert.Nil(t, store.Get("stale"))
}

func TestJobStoreCleanupDuringUpdates(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "busy", UpdatedAt: time.Now()}
	store.Put(job)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			job.SetStatus(StatusDetecting, "working")
		}
	}()
	for i := 0; i < 200; i++ {
		store.Cleanup()
	}
	<-done

	assert.NotNil(t, store.Get("busy"), "active job must survive cleanup")
}
