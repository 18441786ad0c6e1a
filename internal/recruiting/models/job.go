// Package models holds the recruiting domain records: job postings, scored
// applicants, and plain job applications.
package models

import (
	"time"

	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
)

// Job is a company job posting. Deadline is free-form text supplied by the
// company and is not interpreted server-side.
type Job struct {
	ID              id.JobID     `json:"id"`
	CompanyID       id.CompanyID `json:"companyId"`
	Title           string       `json:"title"`
	Role            string       `json:"role"`
	Location        string       `json:"location"`
	Requirements    []string     `json:"requirements"`
	PreferredSkills []string     `json:"preferredSkills"`
	Deadline        string       `json:"deadline,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// NewJob builds a job posting with a fresh ID.
func NewJob(companyID id.CompanyID, title, role, location string, requirements, preferredSkills []string, deadline string, now time.Time) (*Job, error) {
	if companyID.IsZero() || title == "" || role == "" || location == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	return &Job{
		ID:              id.NewJobID(),
		CompanyID:       companyID,
		Title:           title,
		Role:            role,
		Location:        location,
		Requirements:    requirements,
		PreferredSkills: preferredSkills,
		Deadline:        deadline,
		CreatedAt:       now,
	}, nil
}

// Clone returns a deep copy; the slice fields do not alias the original.
func (j *Job) Clone() *Job {
	cp := *j
	cp.Requirements = append([]string(nil), j.Requirements...)
	cp.PreferredSkills = append([]string(nil), j.PreferredSkills...)
	return &cp
}

// Matches reports whether any of the given qualifications appears in the
// job's requirements.
func (j *Job) Matches(qualifications []string) bool {
	for _, q := range qualifications {
		for _, r := range j.Requirements {
			if q == r {
				return true
			}
		}
	}
	return false
}
