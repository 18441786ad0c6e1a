// Package models holds the directory records: actor profiles, institution
// catalog entries, and student document metadata.
package models

import (
	"time"

	id "careerhub/pkg/domain"
)

// Registration approval states for institution and company records.
const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
)

// InstitutionProfile is an institution's directory record. Profiles are
// merge-upserted: writes carry only the fields the caller wants to change.
type InstitutionProfile struct {
	ID         id.InstitutionID `json:"institutionId"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Address    string           `json:"address,omitempty"`
	Phone      string           `json:"phone,omitempty"`
	Website    string           `json:"website,omitempty"`
	Status     string           `json:"status"`
	AccountID  id.AccountID     `json:"accountId,omitempty"`
	ApprovedAt *time.Time       `json:"approvedAt,omitempty"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// StudentProfile is a student's directory record.
type StudentProfile struct {
	ID             id.StudentID `json:"studentId"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone,omitempty"`
	Qualifications []string     `json:"qualifications"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// CompanyProfile is a company's directory record.
type CompanyProfile struct {
	ID              id.CompanyID `json:"companyId"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Location        string       `json:"location,omitempty"`
	ProfileComplete bool         `json:"profileComplete"`
	Status          string       `json:"status"`
	AccountID       id.AccountID `json:"accountId,omitempty"`
	ApprovedAt      *time.Time   `json:"approvedAt,omitempty"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Faculty is an institution's faculty entry.
type Faculty struct {
	ID            id.FacultyID     `json:"id"`
	InstitutionID id.InstitutionID `json:"institutionId"`
	Name          string           `json:"facultyName"`
	Description   string           `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Course is a course offered by an institution's faculty.
type Course struct {
	ID            id.CourseID      `json:"id"`
	InstitutionID id.InstitutionID `json:"institutionId"`
	FacultyID     id.FacultyID     `json:"facultyId"`
	Name          string           `json:"courseName"`
	Duration      string           `json:"duration,omitempty"`
	Description   string           `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Document is uploaded transcript/certificate metadata. The file itself
// lives elsewhere; only the pointer is stored.
type Document struct {
	ID         id.DocumentID `json:"id"`
	StudentID  id.StudentID  `json:"studentId"`
	FileName   string        `json:"fileName,omitempty"`
	FileURL    string        `json:"fileURL"`
	FileType   string        `json:"fileType"`
	UploadedAt time.Time     `json:"uploadedAt"`
}
