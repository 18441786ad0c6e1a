package application

import (
	"context"
	"sync"

	"careerhub/internal/admissions/models"
	"careerhub/internal/admissions/store"
	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"
)

// InMemory keeps applications in a map guarded by one mutex. The mutex is
// what makes CreateIfAllowed and Execute atomic: the guard read and the
// dependent write cannot interleave with another writer.
type InMemory struct {
	mu   sync.RWMutex
	apps map[id.ApplicationID]*models.Application
}

func NewInMemory() *InMemory {
	return &InMemory{apps: make(map[id.ApplicationID]*models.Application)}
}

func (s *InMemory) CreateIfAllowed(_ context.Context, app *models.Application, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	duplicate := false
	for _, existing := range s.apps {
		if existing.StudentID != app.StudentID || existing.InstitutionID != app.InstitutionID {
			continue
		}
		count++
		if existing.CourseID == app.CourseID {
			duplicate = true
		}
	}

	// Limit before duplicate: the order is observable when both would fail.
	if count >= limit {
		return store.ErrLimitReached
	}
	if duplicate {
		return store.ErrDuplicateCourse
	}

	cp := *app
	s.apps[app.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, applicationID id.ApplicationID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.apps[applicationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *app
	return &cp, nil
}

func (s *InMemory) Execute(_ context.Context, applicationID id.ApplicationID,
	validate func(*models.Application) error,
	mutate func(*models.Application)) (*models.Application, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[applicationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(app); err != nil {
		return nil, err
	}
	mutate(app)
	cp := *app
	return &cp, nil
}

func (s *InMemory) ListByInstitution(_ context.Context, institutionID id.InstitutionID) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Application
	for _, app := range s.apps {
		if app.InstitutionID == institutionID {
			cp := *app
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *InMemory) ListByStudent(_ context.Context, studentID id.StudentID) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Application
	for _, app := range s.apps {
		if app.StudentID == studentID {
			cp := *app
			out = append(out, &cp)
		}
	}
	return out, nil
}
