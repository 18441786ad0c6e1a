package store

import (
	"context"
	"sync"
	"time"

	"careerhub/internal/directory/models"
	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"
)

// InMemory keeps every directory aggregate in maps behind one mutex.
type InMemory struct {
	mu           sync.RWMutex
	institutions map[id.InstitutionID]*models.InstitutionProfile
	students     map[id.StudentID]*models.StudentProfile
	companies    map[id.CompanyID]*models.CompanyProfile
	faculties    map[id.FacultyID]*models.Faculty
	courses      map[id.CourseID]*models.Course
	documents    map[id.StudentID][]*models.Document
}

func NewInMemory() *InMemory {
	return &InMemory{
		institutions: make(map[id.InstitutionID]*models.InstitutionProfile),
		students:     make(map[id.StudentID]*models.StudentProfile),
		companies:    make(map[id.CompanyID]*models.CompanyProfile),
		faculties:    make(map[id.FacultyID]*models.Faculty),
		courses:      make(map[id.CourseID]*models.Course),
		documents:    make(map[id.StudentID][]*models.Document),
	}
}

func (s *InMemory) UpsertInstitution(_ context.Context, patch models.InstitutionProfile, now time.Time) (*models.InstitutionProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.institutions[patch.ID]
	if !ok {
		current = &models.InstitutionProfile{ID: patch.ID, Status: models.RegistrationPending}
		s.institutions[patch.ID] = current
	}
	mergeString(&current.Name, patch.Name)
	mergeString(&current.Email, patch.Email)
	mergeString(&current.Address, patch.Address)
	mergeString(&current.Phone, patch.Phone)
	mergeString(&current.Website, patch.Website)
	current.UpdatedAt = now

	cp := *current
	return &cp, nil
}

func (s *InMemory) FindInstitution(_ context.Context, institutionID id.InstitutionID) (*models.InstitutionProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, ok := s.institutions[institutionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *inst
	return &cp, nil
}

func (s *InMemory) ApproveInstitution(_ context.Context, institutionID id.InstitutionID, accountID id.AccountID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.institutions[institutionID]
	if !ok {
		return sentinel.ErrNotFound
	}
	inst.Status = models.RegistrationApproved
	inst.AccountID = accountID
	inst.ApprovedAt = &at
	inst.UpdatedAt = at
	return nil
}

func (s *InMemory) DeleteInstitution(_ context.Context, institutionID id.InstitutionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.institutions, institutionID)
	return nil
}

func (s *InMemory) UpsertStudent(_ context.Context, patch models.StudentProfile, now time.Time) (*models.StudentProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.students[patch.ID]
	if !ok {
		current = &models.StudentProfile{ID: patch.ID}
		s.students[patch.ID] = current
	}
	mergeString(&current.Name, patch.Name)
	mergeString(&current.Email, patch.Email)
	mergeString(&current.Phone, patch.Phone)
	if patch.Qualifications != nil {
		current.Qualifications = append([]string(nil), patch.Qualifications...)
	}
	current.UpdatedAt = now

	cp := *current
	cp.Qualifications = append([]string(nil), current.Qualifications...)
	return &cp, nil
}

func (s *InMemory) FindStudent(_ context.Context, studentID id.StudentID) (*models.StudentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[studentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *student
	cp.Qualifications = append([]string(nil), student.Qualifications...)
	return &cp, nil
}

func (s *InMemory) ListStudents(_ context.Context) ([]*models.StudentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.StudentProfile, 0, len(s.students))
	for _, student := range s.students {
		cp := *student
		cp.Qualifications = append([]string(nil), student.Qualifications...)
		out = append(out, &cp)
	}
	return out, nil
}

func (s *InMemory) DeleteStudent(_ context.Context, studentID id.StudentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.students, studentID)
	delete(s.documents, studentID)
	return nil
}

func (s *InMemory) UpsertCompany(_ context.Context, patch models.CompanyProfile, now time.Time) (*models.CompanyProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.companies[patch.ID]
	if !ok {
		current = &models.CompanyProfile{ID: patch.ID, Status: models.RegistrationPending}
		s.companies[patch.ID] = current
	}
	mergeString(&current.Name, patch.Name)
	mergeString(&current.Email, patch.Email)
	mergeString(&current.Location, patch.Location)
	if patch.ProfileComplete {
		current.ProfileComplete = true
	}
	current.UpdatedAt = now

	cp := *current
	return &cp, nil
}

func (s *InMemory) FindCompany(_ context.Context, companyID id.CompanyID) (*models.CompanyProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company, ok := s.companies[companyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *company
	return &cp, nil
}

func (s *InMemory) ApproveCompany(_ context.Context, companyID id.CompanyID, accountID id.AccountID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, ok := s.companies[companyID]
	if !ok {
		return sentinel.ErrNotFound
	}
	company.Status = models.RegistrationApproved
	company.AccountID = accountID
	company.ApprovedAt = &at
	company.UpdatedAt = at
	return nil
}

func (s *InMemory) DeleteCompany(_ context.Context, companyID id.CompanyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.companies, companyID)
	return nil
}

func (s *InMemory) CreateFaculty(_ context.Context, faculty *models.Faculty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *faculty
	s.faculties[faculty.ID] = &cp
	return nil
}

func (s *InMemory) UpdateFaculty(_ context.Context, facultyID id.FacultyID, name, description string, at time.Time) (*models.Faculty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	faculty, ok := s.faculties[facultyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	mergeString(&faculty.Name, name)
	mergeString(&faculty.Description, description)
	faculty.UpdatedAt = at

	cp := *faculty
	return &cp, nil
}

func (s *InMemory) DeleteFaculty(_ context.Context, facultyID id.FacultyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.faculties, facultyID)
	return nil
}

func (s *InMemory) CreateCourse(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *course
	s.courses[course.ID] = &cp
	return nil
}

func (s *InMemory) UpdateCourse(_ context.Context, courseID id.CourseID, name, duration, description string, at time.Time) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[courseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	mergeString(&course.Name, name)
	mergeString(&course.Duration, duration)
	mergeString(&course.Description, description)
	course.UpdatedAt = at

	cp := *course
	return &cp, nil
}

func (s *InMemory) DeleteCourse(_ context.Context, courseID id.CourseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.courses, courseID)
	return nil
}

func (s *InMemory) CreateDocument(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *doc
	s.documents[doc.StudentID] = append(s.documents[doc.StudentID], &cp)
	return nil
}

func (s *InMemory) ListDocuments(_ context.Context, studentID id.StudentID) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Document
	for _, doc := range s.documents[studentID] {
		cp := *doc
		out = append(out, &cp)
	}
	return out, nil
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
