// Package feed stores the per-student job feed. The Redis implementation is
// the production store; the in-memory one backs tests and single-process
// deployments without Redis.
package feed

import (
	"context"
	"sync"

	"careerhub/internal/recruiting/models"
	id "careerhub/pkg/domain"
)

// InMemory keeps feeds as per-student maps keyed by job ID, so re-pushing a
// job replaces the earlier entry.
type InMemory struct {
	mu    sync.RWMutex
	feeds map[id.StudentID]map[id.JobID]*models.Job
	order map[id.StudentID][]id.JobID
}

func NewInMemory() *InMemory {
	return &InMemory{
		feeds: make(map[id.StudentID]map[id.JobID]*models.Job),
		order: make(map[id.StudentID][]id.JobID),
	}
}

func (s *InMemory) Push(_ context.Context, studentID id.StudentID, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	feed, ok := s.feeds[studentID]
	if !ok {
		feed = make(map[id.JobID]*models.Job)
		s.feeds[studentID] = feed
	}
	if _, seen := feed[job.ID]; !seen {
		s.order[studentID] = append(s.order[studentID], job.ID)
	}
	feed[job.ID] = job.Clone()
	return nil
}

func (s *InMemory) List(_ context.Context, studentID id.StudentID) ([]*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Job
	for _, jobID := range s.order[studentID] {
		out = append(out, s.feeds[studentID][jobID].Clone())
	}
	return out, nil
}
