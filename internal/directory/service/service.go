package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	directorymetrics "careerhub/internal/directory/metrics"
	"careerhub/internal/directory/models"
	"careerhub/internal/directory/store"
	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
	"careerhub/pkg/platform/sentinel"
	"careerhub/pkg/requestcontext"
)

const (
	msgMissingFields   = "Missing required fields."
	msgStudentNotFound = "Student not found."
	msgFacultyNotFound = "Faculty not found."
	msgCourseNotFound  = "Course not found."
)

// Service implements the directory operations: profile merge-upserts,
// institution catalog management, and student document metadata.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *directorymetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *directorymetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(st store.Store, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, fmt.Errorf("directory store is required")
	}
	svc := &Service{store: st, logger: slog.Default()}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// UpsertInstitution merge-upserts an institution profile. Identity, name,
// and email are required on every write; the rest is optional.
func (s *Service) UpsertInstitution(ctx context.Context, patch models.InstitutionProfile) (*models.InstitutionProfile, error) {
	if patch.ID.IsZero() || patch.Name == "" || patch.Email == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	inst, err := s.store.UpsertInstitution(ctx, patch, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to upsert institution")
	}
	s.metrics.IncUpserts("institution")
	s.logger.InfoContext(ctx, "institution profile upserted",
		"request_id", requestcontext.RequestID(ctx),
		"institution_id", patch.ID,
	)
	return inst, nil
}

// UpsertStudent merge-upserts a student profile.
func (s *Service) UpsertStudent(ctx context.Context, patch models.StudentProfile) (*models.StudentProfile, error) {
	if patch.ID.IsZero() || patch.Name == "" || patch.Email == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	student, err := s.store.UpsertStudent(ctx, patch, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to upsert student")
	}
	s.metrics.IncUpserts("student")
	s.logger.InfoContext(ctx, "student profile upserted",
		"request_id", requestcontext.RequestID(ctx),
		"student_id", patch.ID,
	)
	return student, nil
}

// UpsertCompany merge-upserts a company profile and marks it complete.
// Only the identity is required; the original contract accepts partial
// company updates.
func (s *Service) UpsertCompany(ctx context.Context, patch models.CompanyProfile) (*models.CompanyProfile, error) {
	if patch.ID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	patch.ProfileComplete = true
	company, err := s.store.UpsertCompany(ctx, patch, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to upsert company")
	}
	s.metrics.IncUpserts("company")
	s.logger.InfoContext(ctx, "company profile upserted",
		"request_id", requestcontext.RequestID(ctx),
		"company_id", patch.ID,
	)
	return company, nil
}

// AddFaculty creates a faculty under an institution.
func (s *Service) AddFaculty(ctx context.Context, institutionID id.InstitutionID, name, description string) (*models.Faculty, error) {
	if institutionID.IsZero() || name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	now := requestcontext.Now(ctx)
	faculty := &models.Faculty{
		ID:            id.NewFacultyID(),
		InstitutionID: institutionID,
		Name:          name,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateFaculty(ctx, faculty); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create faculty")
	}
	return faculty, nil
}

// UpdateFaculty merge-updates a faculty's name and description.
func (s *Service) UpdateFaculty(ctx context.Context, facultyID id.FacultyID, name, description string) (*models.Faculty, error) {
	if facultyID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	faculty, err := s.store.UpdateFaculty(ctx, facultyID, name, description, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, msgFacultyNotFound)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update faculty")
	}
	return faculty, nil
}

// DeleteFaculty removes a faculty; deleting an absent faculty is a no-op.
func (s *Service) DeleteFaculty(ctx context.Context, facultyID id.FacultyID) error {
	if facultyID.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	if err := s.store.DeleteFaculty(ctx, facultyID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete faculty")
	}
	return nil
}

// AddCourse creates a course under an institution's faculty.
func (s *Service) AddCourse(ctx context.Context, institutionID id.InstitutionID, facultyID id.FacultyID, name, duration, description string) (*models.Course, error) {
	if institutionID.IsZero() || facultyID.IsZero() || name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	now := requestcontext.Now(ctx)
	course := &models.Course{
		ID:            id.NewCourseID(),
		InstitutionID: institutionID,
		FacultyID:     facultyID,
		Name:          name,
		Duration:      duration,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateCourse(ctx, course); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create course")
	}
	return course, nil
}

// UpdateCourse merge-updates a course.
func (s *Service) UpdateCourse(ctx context.Context, courseID id.CourseID, name, duration, description string) (*models.Course, error) {
	if courseID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	course, err := s.store.UpdateCourse(ctx, courseID, name, duration, description, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, msgCourseNotFound)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update course")
	}
	return course, nil
}

// DeleteCourse removes a course; deleting an absent course is a no-op.
func (s *Service) DeleteCourse(ctx context.Context, courseID id.CourseID) error {
	if courseID.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	if err := s.store.DeleteCourse(ctx, courseID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete course")
	}
	return nil
}

// AddDocument records document metadata for an existing student.
func (s *Service) AddDocument(ctx context.Context, studentID id.StudentID, fileName, fileURL, fileType string) (*models.Document, error) {
	if studentID.IsZero() || fileURL == "" || fileType == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}

	if _, err := s.store.FindStudent(ctx, studentID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, msgStudentNotFound)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up student")
	}

	doc := &models.Document{
		ID:         id.NewDocumentID(),
		StudentID:  studentID,
		FileName:   fileName,
		FileURL:    fileURL,
		FileType:   fileType,
		UploadedAt: requestcontext.Now(ctx),
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create document")
	}

	s.metrics.IncDocuments()
	s.logger.InfoContext(ctx, "document metadata uploaded",
		"request_id", requestcontext.RequestID(ctx),
		"student_id", studentID,
		"file_type", fileType,
	)
	return doc, nil
}

// StudentDocuments lists a student's document metadata.
func (s *Service) StudentDocuments(ctx context.Context, studentID id.StudentID) ([]*models.Document, error) {
	if studentID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	docs, err := s.store.ListDocuments(ctx, studentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents")
	}
	return docs, nil
}
