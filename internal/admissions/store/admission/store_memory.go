package admission

import (
	"context"
	"sync"

	"careerhub/internal/admissions/models"
	"careerhub/internal/admissions/store"
	id "careerhub/pkg/domain"
)

// InMemory keeps admissions in a map guarded by one mutex so the exclusivity
// check and the create cannot interleave with a concurrent publisher.
type InMemory struct {
	mu         sync.RWMutex
	admissions map[id.AdmissionID]*models.Admission
	byStudent  map[id.StudentID]id.AdmissionID
}

func NewInMemory() *InMemory {
	return &InMemory{
		admissions: make(map[id.AdmissionID]*models.Admission),
		byStudent:  make(map[id.StudentID]id.AdmissionID),
	}
}

func (s *InMemory) CreateIfNoneForStudent(_ context.Context, adm *models.Admission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byStudent[adm.StudentID]; exists {
		return store.ErrAlreadyAdmitted
	}

	cp := *adm
	s.admissions[adm.ID] = &cp
	s.byStudent[adm.StudentID] = adm.ID
	return nil
}

func (s *InMemory) ListByStudent(_ context.Context, studentID id.StudentID) ([]*models.Admission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Admission
	if admID, ok := s.byStudent[studentID]; ok {
		cp := *s.admissions[admID]
		out = append(out, &cp)
	}
	return out, nil
}
