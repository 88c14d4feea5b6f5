package jobs

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job tracks one background run (typically a training loop) started from
// the interactive shell. Progress runs 0..1 and is fed by the trainer's
// reporting callback.
type Job struct {
	ID          string
	Type        string
	Status      JobStatus
	Progress    float64
	StartTime   time.Time
	EndTime     *time.Time
	Error       error
	Description string
	Logs        []string
	mu          sync.RWMutex
}

func (j *Job) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = JobRunning
	j.StartTime = time.Now()
}

func (j *Job) SetProgress(p float64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	j.Progress = p
}

func (j *Job) AppendLog(line string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Logs = append(j.Logs, line)
}

func (j *Job) Complete() {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	j.Status = JobCompleted
	j.Progress = 1
	j.EndTime = &now
}

func (j *Job) Fail(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	j.Status = JobFailed
	j.Error = err
	j.EndTime = &now
}

func (j *Job) Err() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Error
}

func (j *Job) Snapshot() (JobStatus, float64, []string) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	logs := make([]string, len(j.Logs))
	copy(logs, j.Logs)
	return j.Status, j.Progress, logs
}

type Manager struct {
	jobs map[string]*Job
	mu   sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		jobs: make(map[string]*Job),
	}
}

func (m *Manager) CreateJob(jobType, description string) *Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobID := fmt.Sprintf("job_%s_%d", jobType, time.Now().UnixNano())
	job := &Job{
		ID:          jobID,
		Type:        jobType,
		Status:      JobPending,
		StartTime:   time.Now(),
		Description: description,
	}

	m.jobs[jobID] = job
	return job
}

func (m *Manager) GetJob(jobID string) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	return job, exists
}

func (m *Manager) ListJobs() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]*Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, k int) bool {
		if jobs[i].StartTime.Equal(jobs[k].StartTime) {
			return jobs[i].ID < jobs[k].ID
		}
		return jobs[i].StartTime.Before(jobs[k].StartTime)
	})
	return jobs
}
