package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdrpinto/gridstar"
)

// JobStatus is the lifecycle state of a path job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusFound     JobStatus = "found"
	StatusNotFound  JobStatus = "not_found"
	StatusCancelled JobStatus = "cancelled"
)

// Job is a path request submitted over HTTP.
type Job struct {
	ID          string           `json:"id"`
	Status      JobStatus        `json:"status"`
	Start       gridstar.Point   `json:"start"`
	End         gridstar.Point   `json:"end"`
	Path        []gridstar.Point `json:"path,omitempty"`
	Cost        float64          `json:"cost,omitempty"`
	Expanded    int              `json:"expanded"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`

	requestID gridstar.RequestID
}

// JobStore keeps jobs by id. Results are written from the engine goroutine
// and read from handlers.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*Job)}
}

func (s *JobStore) create(start, end gridstar.Point) *Job {
	job := &Job{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Start:     start,
		End:       end,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return job
}

// Get returns a copy of the job.
func (s *JobStore) Get(id string) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

func (s *JobStore) setRequestID(id string, requestID gridstar.RequestID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.requestID = requestID
	}
}

func (s *JobStore) complete(id string, result gridstar.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok || job.Status != StatusPending {
		return
	}
	now := time.Now().UTC()
	job.CompletedAt = &now
	job.Expanded = result.Expanded
	if result.Found {
		job.Status = StatusFound
		job.Path = result.Path
		job.Cost = result.Cost
		return
	}
	job.Status = StatusNotFound
}

func (s *JobStore) cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok && job.Status == StatusPending {
		now := time.Now().UTC()
		job.Status = StatusCancelled
		job.CompletedAt = &now
	}
}

func (s *JobStore) remove(id string) {
	s.mu.Lock()
	delete(s.jobs, id)
	s.mu.Unlock()
}
