// Package store defines the storage contracts for the recruiting module.
// Implementations live in the job, applicant, jobapp, and feed subpackages.
package store

import (
	"context"
	"fmt"

	"careerhub/internal/recruiting/models"
	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"
)

// ErrAlreadyApplied: a job application for the same (student, job) pair
// already exists.
var ErrAlreadyApplied = fmt.Errorf("job already applied for: %w", sentinel.ErrAlreadyUsed)

// JobStore persists job postings.
type JobStore interface {
	Create(ctx context.Context, job *models.Job) error

	// FindByID returns sentinel.ErrNotFound when absent.
	FindByID(ctx context.Context, jobID id.JobID) (*models.Job, error)

	ListByCompany(ctx context.Context, companyID id.CompanyID) ([]*models.Job, error)
	ListAll(ctx context.Context) ([]*models.Job, error)
}

// ApplicantStore persists scored applicant records. Records are written once
// at submission; company and student views both read this single store.
type ApplicantStore interface {
	Create(ctx context.Context, applicant *models.Applicant) error

	// ListByCompany returns the company's applicants ordered by final score,
	// highest first. Verdict filtering is the caller's concern.
	ListByCompany(ctx context.Context, companyID id.CompanyID) ([]*models.Applicant, error)

	ListByStudent(ctx context.Context, studentID id.StudentID) ([]*models.Applicant, error)
}

// JobApplicationStore persists plain job applications.
type JobApplicationStore interface {
	// CreateIfFirst creates the application only when the student has not
	// already applied for the job; otherwise ErrAlreadyApplied. The check and
	// the write are atomic.
	CreateIfFirst(ctx context.Context, app *models.JobApplication) error

	ListByStudent(ctx context.Context, studentID id.StudentID) ([]*models.JobApplication, error)
}

// FeedStore holds the per-student job feed fanned out when a job is posted.
type FeedStore interface {
	// Push adds the job to the student's feed. Re-pushing the same job
	// replaces the earlier entry.
	Push(ctx context.Context, studentID id.StudentID, job *models.Job) error

	List(ctx context.Context, studentID id.StudentID) ([]*models.Job, error)
}
