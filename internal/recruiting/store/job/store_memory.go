package job

import (
	"context"
	"sort"
	"sync"

	"careerhub/internal/recruiting/models"
	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"
)

// InMemory keeps job postings in a map guarded by a mutex.
type InMemory struct {
	mu   sync.RWMutex
	jobs map[id.JobID]*models.Job
}

func NewInMemory() *InMemory {
	return &InMemory{jobs: make(map[id.JobID]*models.Job)}
}

func (s *InMemory) Create(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[job.ID] = job.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, jobID id.JobID) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return job.Clone(), nil
}

func (s *InMemory) ListByCompany(_ context.Context, companyID id.CompanyID) ([]*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Job
	for _, job := range s.jobs {
		if job.CompanyID == companyID {
			out = append(out, job.Clone())
		}
	}
	sortByCreation(out)
	return out, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, job.Clone())
	}
	sortByCreation(out)
	return out, nil
}

func sortByCreation(jobs []*models.Job) {
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})
}
