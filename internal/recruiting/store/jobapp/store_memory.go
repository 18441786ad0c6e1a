package jobapp

import (
	"context"
	"sync"

	"careerhub/internal/recruiting/models"
	"careerhub/internal/recruiting/store"
	id "careerhub/pkg/domain"
)

type pairKey struct {
	student id.StudentID
	job     id.JobID
}

// InMemory keeps plain job applications keyed by (student, job); the map key
// is the dedup guard and the mutex makes the check-and-insert atomic.
type InMemory struct {
	mu     sync.RWMutex
	byPair map[pairKey]*models.JobApplication
}

func NewInMemory() *InMemory {
	return &InMemory{byPair: make(map[pairKey]*models.JobApplication)}
}

func (s *InMemory) CreateIfFirst(_ context.Context, app *models.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{student: app.StudentID, job: app.JobID}
	if _, exists := s.byPair[key]; exists {
		return store.ErrAlreadyApplied
	}
	cp := *app
	s.byPair[key] = &cp
	return nil
}

func (s *InMemory) ListByStudent(_ context.Context, studentID id.StudentID) ([]*models.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.JobApplication
	for key, app := range s.byPair {
		if key.student == studentID {
			cp := *app
			out = append(out, &cp)
		}
	}
	return out, nil
}
