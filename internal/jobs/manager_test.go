package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLifecycle(t *testing.T) {
	m := NewManager()

	job := m.CreateJob("train", "logistic rate=0.001")
	assert.Equal(t, JobPending, job.Status)

	job.Start()
	job.SetProgress(0.5)
	job.AppendLog("iteration 250: cost 0.42")
	status, progress, logs := job.Snapshot()
	assert.Equal(t, JobRunning, status)
	assert.Equal(t, 0.5, progress)
	require.Len(t, logs, 1)

	job.Complete()
	status, progress, _ = job.Snapshot()
	assert.Equal(t, JobCompleted, status)
	assert.Equal(t, 1.0, progress)
	assert.NotNil(t, job.EndTime)
}

func TestJobFailure(t *testing.T) {
	m := NewManager()

	job := m.CreateJob("train", "bad run")
	job.Start()
	job.Fail(errors.New("dimension mismatch"))

	status, _, _ := job.Snapshot()
	assert.Equal(t, JobFailed, status)
	assert.Error(t, job.Err())
}

func TestManager_GetAndList(t *testing.T) {
	m := NewManager()

	first := m.CreateJob("train", "first")
	second := m.CreateJob("train", "second")

	found, ok := m.GetJob(first.ID)
	require.True(t, ok)
	assert.Equal(t, first, found)

	_, ok = m.GetJob("job_none")
	assert.False(t, ok)

	listed := m.ListJobs()
	require.Len(t, listed, 2)
	assert.Equal(t, first.ID, listed[0].ID)
	assert.Equal(t, second.ID, listed[1].ID)
}
