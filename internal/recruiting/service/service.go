package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	recruitingmetrics "careerhub/internal/recruiting/metrics"
	"careerhub/internal/recruiting/models"
	"careerhub/internal/recruiting/scoring"
	"careerhub/internal/recruiting/store"

	"careerhub/internal/notify"
	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
	"careerhub/pkg/platform/sentinel"
	"careerhub/pkg/requestcontext"
)

// User-facing messages. These are part of the wire contract.
const (
	msgStudentNotFound = "Student not found."
	msgAlreadyApplied  = "Already applied for this job."
)

// StudentRef is the slice of a student profile the recruiting module needs:
// identity, contact details for notifications, and qualifications for job
// matching.
type StudentRef struct {
	ID             id.StudentID
	Name           string
	Email          string
	Qualifications []string
}

// StudentDirectory is the recruiting module's view of the student registry.
//
//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks
type StudentDirectory interface {
	ListStudents(ctx context.Context) ([]StudentRef, error)

	// FindStudent returns sentinel.ErrNotFound when absent.
	FindStudent(ctx context.Context, studentID id.StudentID) (*StudentRef, error)
}

// Service implements the recruiting operations: job posting with feed
// fan-out, qualification scoring at submission time, and job matching
// against student qualifications.
type Service struct {
	jobs       store.JobStore
	applicants store.ApplicantStore
	jobApps    store.JobApplicationStore
	feed       store.FeedStore
	students   StudentDirectory
	publisher  notify.Publisher
	logger     *slog.Logger
	metrics    *recruitingmetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithPublisher(publisher notify.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *recruitingmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(jobs store.JobStore, applicants store.ApplicantStore, jobApps store.JobApplicationStore,
	feed store.FeedStore, students StudentDirectory, opts ...Option) (*Service, error) {
	if jobs == nil {
		return nil, fmt.Errorf("job store is required")
	}
	if applicants == nil {
		return nil, fmt.Errorf("applicant store is required")
	}
	if jobApps == nil {
		return nil, fmt.Errorf("job application store is required")
	}
	if feed == nil {
		return nil, fmt.Errorf("feed store is required")
	}
	if students == nil {
		return nil, fmt.Errorf("student directory is required")
	}

	svc := &Service{
		jobs:       jobs,
		applicants: applicants,
		jobApps:    jobApps,
		feed:       feed,
		students:   students,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// PostJobCommand carries one job posting.
type PostJobCommand struct {
	CompanyID       id.CompanyID
	Title           string
	Role            string
	Location        string
	Requirements    []string
	PreferredSkills []string
	Deadline        string
}

// PostJob creates the posting, then fans it out to every student's job feed
// and notifies students whose qualifications match the requirements. Fan-out
// and notification are best-effort: a failed feed write or event is logged
// and counted, never surfaced to the company.
func (s *Service) PostJob(ctx context.Context, cmd PostJobCommand) (*models.Job, error) {
	job, err := models.NewJob(cmd.CompanyID, cmd.Title, cmd.Role, cmd.Location,
		cmd.Requirements, cmd.PreferredSkills, cmd.Deadline, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create job")
	}

	s.metrics.IncPosted()
	s.logger.InfoContext(ctx, "job posted",
		"request_id", requestcontext.RequestID(ctx),
		"company_id", cmd.CompanyID,
		"job_id", job.ID,
	)

	s.fanOut(ctx, job)
	return job, nil
}

// CompanyJobs lists a company's job postings.
func (s *Service) CompanyJobs(ctx context.Context, companyID id.CompanyID) ([]*models.Job, error) {
	if companyID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	jobs, err := s.jobs.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list jobs")
	}
	return jobs, nil
}

// SubmitCommand carries one scored job application.
type SubmitCommand struct {
	StudentID id.StudentID
	CompanyID id.CompanyID
	JobID     id.JobID
	Input     scoring.Input
}

// SubmitApplication scores the inputs, classifies the result against the
// qualification threshold, and persists the record once. The verdict and
// final score are fixed at submission time.
func (s *Service) SubmitApplication(ctx context.Context, cmd SubmitCommand) (*models.Applicant, error) {
	applicant, err := models.NewApplicant(cmd.StudentID, cmd.CompanyID, cmd.JobID, cmd.Input, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.applicants.Create(ctx, applicant); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create applicant")
	}

	s.metrics.IncScored(string(applicant.Status))
	s.logger.InfoContext(ctx, "application scored",
		"request_id", requestcontext.RequestID(ctx),
		"student_id", cmd.StudentID,
		"job_id", cmd.JobID,
		"final_score", applicant.FinalScore,
		"verdict", applicant.Status,
	)
	return applicant, nil
}

// QualifiedApplicants lists a company's qualified applicants ordered by
// final score, highest first. Not-qualified records stay stored but are
// never shown here.
func (s *Service) QualifiedApplicants(ctx context.Context, companyID id.CompanyID) ([]*models.Applicant, error) {
	if companyID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	all, err := s.applicants.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applicants")
	}

	var qualified []*models.Applicant
	for _, a := range all {
		if a.Qualified() {
			qualified = append(qualified, a)
		}
	}
	return qualified, nil
}

// StudentApplications lists a student's scored applications.
func (s *Service) StudentApplications(ctx context.Context, studentID id.StudentID) ([]*models.Applicant, error) {
	if studentID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	apps, err := s.applicants.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	return apps, nil
}

// MatchedJobs lists the jobs whose requirements overlap the student's
// qualifications.
func (s *Service) MatchedJobs(ctx context.Context, studentID id.StudentID) ([]*models.Job, error) {
	student, err := s.students.FindStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, msgStudentNotFound)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up student")
	}

	jobs, err := s.jobs.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list jobs")
	}

	var matched []*models.Job
	for _, job := range jobs {
		if job.Matches(student.Qualifications) {
			matched = append(matched, job)
		}
	}
	return matched, nil
}

// ApplyJob records a plain job application, at most one per (student, job)
// pair.
func (s *Service) ApplyJob(ctx context.Context, studentID id.StudentID, jobID id.JobID) (*models.JobApplication, error) {
	app, err := models.NewJobApplication(studentID, jobID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.jobApps.CreateIfFirst(ctx, app); err != nil {
		if errors.Is(err, store.ErrAlreadyApplied) {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, msgAlreadyApplied)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create job application")
	}

	s.metrics.IncJobApplications()
	s.logger.InfoContext(ctx, "job application submitted",
		"request_id", requestcontext.RequestID(ctx),
		"student_id", studentID,
		"job_id", jobID,
	)
	return app, nil
}

// JobFeed lists the jobs fanned out to a student's feed.
func (s *Service) JobFeed(ctx context.Context, studentID id.StudentID) ([]*models.Job, error) {
	if studentID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	jobs, err := s.feed.List(ctx, studentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read job feed")
	}
	return jobs, nil
}

func (s *Service) fanOut(ctx context.Context, job *models.Job) {
	students, err := s.students.ListStudents(ctx)
	if err != nil {
		s.metrics.IncFanoutFailures()
		s.logger.WarnContext(ctx, "job fan-out skipped",
			"request_id", requestcontext.RequestID(ctx),
			"job_id", job.ID,
			"error", err,
		)
		return
	}

	for _, student := range students {
		if err := s.feed.Push(ctx, student.ID, job); err != nil {
			s.metrics.IncFanoutFailures()
			s.logger.WarnContext(ctx, "feed push failed",
				"request_id", requestcontext.RequestID(ctx),
				"job_id", job.ID,
				"student_id", student.ID,
				"error", err,
			)
			continue
		}
		if job.Matches(student.Qualifications) {
			s.emitJobMatch(ctx, student, job)
		}
	}
}

func (s *Service) emitJobMatch(ctx context.Context, student StudentRef, job *models.Job) {
	if s.publisher == nil || student.Email == "" {
		return
	}
	event := notify.Event{
		Kind:      notify.KindJobMatch,
		To:        student.Email,
		Subject:   "Job Match Found",
		Body:      fmt.Sprintf("Hi %s, we found a job that matches your qualifications: %s. Check your dashboard for more details!", student.Name, job.Title),
		RequestID: requestcontext.RequestID(ctx),
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "job match notification not enqueued",
			"request_id", requestcontext.RequestID(ctx),
			"job_id", job.ID,
			"student_id", student.ID,
			"error", err,
		)
	}
}
