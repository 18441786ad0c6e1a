package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	admissionsmetrics "careerhub/internal/admissions/metrics"
	"careerhub/internal/admissions/models"
	"careerhub/internal/admissions/store"
	"careerhub/internal/notify"
	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
	"careerhub/pkg/platform/sentinel"
	"careerhub/pkg/requestcontext"
)

// User-facing rejection messages. These are part of the wire contract.
const (
	msgLimitExceeded   = "You can only apply for up to two courses per institution."
	msgDuplicateCourse = "You already applied for this course."
	msgAlreadyAdmitted = "Student is already admitted to another institution."
	msgAppNotFound     = "Application not found."
)

// Service enforces the admissions business rules: the per-institution
// application limit, the global single-admission exclusivity, and the
// review state machine. It holds no state of its own; guards execute
// atomically inside the stores.
type Service struct {
	applications store.ApplicationStore
	admissions   store.AdmissionStore
	publisher    notify.Publisher
	logger       *slog.Logger
	metrics      *admissionsmetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithPublisher(publisher notify.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *admissionsmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(applications store.ApplicationStore, admissions store.AdmissionStore, opts ...Option) (*Service, error) {
	if applications == nil {
		return nil, fmt.Errorf("application store is required")
	}
	if admissions == nil {
		return nil, fmt.Errorf("admission store is required")
	}

	svc := &Service{
		applications: applications,
		admissions:   admissions,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ApplyCommand carries one course application request.
type ApplyCommand struct {
	StudentID     id.StudentID
	InstitutionID id.InstitutionID
	CourseID      id.CourseID
	CourseName    string
}

// Apply runs the application-limit and duplicate-course guards and creates a
// pending application when both pass. The limit counts applications of every
// status; a rejected application still occupies a slot.
func (s *Service) Apply(ctx context.Context, cmd ApplyCommand) (*models.Application, error) {
	app, err := models.NewApplication(cmd.StudentID, cmd.InstitutionID, cmd.CourseID, cmd.CourseName, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.applications.CreateIfAllowed(ctx, app, models.PerInstitutionLimit); err != nil {
		switch {
		case errors.Is(err, store.ErrLimitReached):
			s.metrics.IncRejected("limit_exceeded")
			return nil, dErrors.New(dErrors.CodeInvariantViolation, msgLimitExceeded)
		case errors.Is(err, store.ErrDuplicateCourse):
			s.metrics.IncRejected("duplicate_course")
			return nil, dErrors.New(dErrors.CodeInvariantViolation, msgDuplicateCourse)
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create application")
		}
	}

	s.metrics.IncSubmitted()
	s.logger.InfoContext(ctx, "application submitted",
		"request_id", requestcontext.RequestID(ctx),
		"student_id", cmd.StudentID,
		"institution_id", cmd.InstitutionID,
		"course_id", cmd.CourseID,
	)
	return app, nil
}

// ReviewCommand carries one review decision. Contact fields feed the
// approval notification and are not validated against the student record;
// the reviewer supplies them.
type ReviewCommand struct {
	ApplicationID id.ApplicationID
	Status        id.ReviewStatus
	StudentEmail  string
	StudentName   string
	CourseName    string
}

// Review transitions a pending application to Approved or Rejected and stamps
// the review time. Approval emits a notification event; event publishing is
// best-effort and never fails the transition.
func (s *Service) Review(ctx context.Context, cmd ReviewCommand) (*models.Application, error) {
	if cmd.ApplicationID.IsZero() || cmd.Status == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}

	now := requestcontext.Now(ctx)
	app, err := s.applications.Execute(ctx, cmd.ApplicationID,
		func(a *models.Application) error {
			return a.CanReview(cmd.Status)
		},
		func(a *models.Application) {
			a.ApplyReview(cmd.Status, now)
		},
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, msgAppNotFound)
		}
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) || dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to review application")
	}

	s.metrics.IncReviewed(string(cmd.Status))
	s.logger.InfoContext(ctx, "application reviewed",
		"request_id", requestcontext.RequestID(ctx),
		"application_id", cmd.ApplicationID,
		"status", cmd.Status,
	)

	if cmd.Status == id.ReviewApproved {
		s.emitApproval(ctx, cmd, app)
	}
	return app, nil
}

// PublishCommand carries one admission publication.
type PublishCommand struct {
	StudentID       id.StudentID
	InstitutionID   id.InstitutionID
	CourseName      string
	AdmissionStatus string
}

// Publish runs the single-admission exclusivity guard: one admission per
// student across all institutions, ever.
func (s *Service) Publish(ctx context.Context, cmd PublishCommand) (*models.Admission, error) {
	adm, err := models.NewAdmission(cmd.StudentID, cmd.InstitutionID, cmd.CourseName, cmd.AdmissionStatus, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.admissions.CreateIfNoneForStudent(ctx, adm); err != nil {
		if errors.Is(err, store.ErrAlreadyAdmitted) {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, msgAlreadyAdmitted)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to publish admission")
	}

	s.metrics.IncPublished()
	s.logger.InfoContext(ctx, "admission published",
		"request_id", requestcontext.RequestID(ctx),
		"student_id", cmd.StudentID,
		"institution_id", cmd.InstitutionID,
	)
	return adm, nil
}

// NotifyAdmissionCommand carries one admission notification request.
type NotifyAdmissionCommand struct {
	Email       string
	StudentName string
	Institution string
}

// NotifyAdmission emits the admission congratulation email for a student.
// Delivery is best-effort like every other notification; only validation can
// fail the request.
func (s *Service) NotifyAdmission(ctx context.Context, cmd NotifyAdmissionCommand) error {
	if cmd.Email == "" || cmd.StudentName == "" || cmd.Institution == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	if s.publisher == nil {
		return nil
	}

	event := notify.Event{
		Kind:    notify.KindAdmissionPublished,
		To:      cmd.Email,
		Subject: "Admission Update",
		Body: fmt.Sprintf("Dear %s,\n\nCongratulations! You have been admitted to %s.\n\nBest regards,\nCareer Guidance Platform",
			cmd.StudentName, cmd.Institution),
		RequestID: requestcontext.RequestID(ctx),
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "admission notification not enqueued",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	return nil
}

// InstitutionApplications lists every application submitted to an institution.
func (s *Service) InstitutionApplications(ctx context.Context, institutionID id.InstitutionID) ([]*models.Application, error) {
	if institutionID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	apps, err := s.applications.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	return apps, nil
}

// StudentAdmissions lists a student's admission results.
func (s *Service) StudentAdmissions(ctx context.Context, studentID id.StudentID) ([]*models.Admission, error) {
	if studentID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	admissions, err := s.admissions.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list admissions")
	}
	return admissions, nil
}

func (s *Service) emitApproval(ctx context.Context, cmd ReviewCommand, app *models.Application) {
	if s.publisher == nil {
		return
	}
	courseName := cmd.CourseName
	if courseName == "" {
		courseName = app.CourseName
	}
	event := notify.Event{
		Kind:      notify.KindApplicationApproved,
		To:        cmd.StudentEmail,
		Subject:   "Application Approved",
		Body:      fmt.Sprintf("Congratulations %s! Your application for %s has been approved.", cmd.StudentName, courseName),
		RequestID: requestcontext.RequestID(ctx),
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "approval notification not enqueued",
			"request_id", requestcontext.RequestID(ctx),
			"application_id", app.ID,
			"error", err,
		)
	}
}
