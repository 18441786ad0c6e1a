package applicant

import (
	"context"
	"sort"
	"sync"

	"careerhub/internal/recruiting/models"
	id "careerhub/pkg/domain"
)

// InMemory keeps scored applicant records in a single slice; company and
// student views are projections over the same records.
type InMemory struct {
	mu         sync.RWMutex
	applicants []*models.Applicant
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Create(_ context.Context, applicant *models.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *applicant
	s.applicants = append(s.applicants, &cp)
	return nil
}

func (s *InMemory) ListByCompany(_ context.Context, companyID id.CompanyID) ([]*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Applicant
	for _, a := range s.applicants {
		if a.CompanyID == companyID {
			cp := *a
			out = append(out, &cp)
		}
	}
	// Highest final score first; creation time breaks ties.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})
	return out, nil
}

func (s *InMemory) ListByStudent(_ context.Context, studentID id.StudentID) ([]*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Applicant
	for _, a := range s.applicants {
		if a.StudentID == studentID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}
