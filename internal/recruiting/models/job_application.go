package models

import (
	"time"

	"github.com/google/uuid"

	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
)

// JobApplicationSubmitted is the only status a plain job application takes.
const JobApplicationSubmitted = "Submitted"

// JobApplication is an unscored expression of interest in a job opening.
// At most one exists per (student, job) pair.
type JobApplication struct {
	ID        string       `json:"id"`
	StudentID id.StudentID `json:"studentId"`
	JobID     id.JobID     `json:"jobId"`
	Status    string       `json:"status"`
	AppliedAt time.Time    `json:"appliedAt"`
}

// NewJobApplication builds a submitted job application.
func NewJobApplication(studentID id.StudentID, jobID id.JobID, now time.Time) (*JobApplication, error) {
	if studentID.IsZero() || jobID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	return &JobApplication{
		ID:        uuid.NewString(),
		StudentID: studentID,
		JobID:     jobID,
		Status:    JobApplicationSubmitted,
		AppliedAt: now,
	}, nil
}
