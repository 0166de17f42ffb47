package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ncobase/envelope/concurrency/worker"
)

// ErrJobNotFound is returned for unknown job ids.
var ErrJobNotFound = errors.New("job not found")

// JobStatus is the lifecycle state of a background job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Job is a background job submitted to the worker pool.
type Job struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Status     JobStatus `json:"status"`
	Result     any       `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}

// Jobs tracks background jobs run on a worker pool.
type Jobs struct {
	mu    sync.RWMutex
	items map[string]*Job
	pool  *worker.Pool
}

// NewJobs creates a job tracker.
func NewJobs(pool *worker.Pool) *Jobs {
	return &Jobs{items: make(map[string]*Job), pool: pool}
}

// Enqueue submits fn and returns the pending job.
func (j *Jobs) Enqueue(kind string, fn func(ctx context.Context) (any, error)) (Job, error) {
	job := &Job{
		ID:        uuid.NewString(),
		Kind:      kind,
		Status:    JobPending,
		CreatedAt: time.Now().UTC(),
	}

	j.mu.Lock()
	j.items[job.ID] = job
	j.mu.Unlock()

	err := j.pool.Submit(func(ctx context.Context) error {
		j.update(job.ID, func(job *Job) { job.Status = JobRunning })
		result, err := fn(ctx)
		j.update(job.ID, func(job *Job) {
			job.FinishedAt = time.Now().UTC()
			if err != nil {
				job.Status = JobFailed
				job.Error = err.Error()
				return
			}
			job.Status = JobSucceeded
			job.Result = result
		})
		return err
	})
	if err != nil {
		j.mu.Lock()
		delete(j.items, job.ID)
		j.mu.Unlock()
		return Job{}, err
	}

	return j.Get(job.ID)
}

// Get returns a snapshot of the job with id.
func (j *Jobs) Get(id string) (Job, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	job, ok := j.items[id]
	if !ok {
		return Job{}, ErrJobNotFound
	}
	return *job, nil
}

func (j *Jobs) update(id string, fn func(*Job)) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if job, ok := j.items[id]; ok {
		fn(job)
	}
}
