package storage

import (
	"sort"
	"sync"

	"github.com/lehigh-university-libraries/callno/internal/models"
)

type JobStore struct {
	jobs map[string]*models.CallNumberJob
	mu   sync.RWMutex
}

func New() *JobStore {
	return &JobStore{
		jobs: make(map[string]*models.CallNumberJob),
	}
}

func (s *JobStore) Get(jobID string) (*models.CallNumberJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, exists := s.jobs[jobID]
	return job, exists
}

func (s *JobStore) Set(jobID string, job *models.CallNumberJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[jobID] = job
}

// List returns every job, oldest first.
func (s *JobStore) List() []*models.CallNumberJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.CallNumberJob, 0, len(s.jobs))
	for _, v := range s.jobs {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (s *JobStore) Delete(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.jobs[jobID]
	delete(s.jobs, jobID)
	return exists
}

func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
