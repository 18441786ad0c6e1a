package models

import (
	"time"

	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
)

// Admission is a finalized placement of a student into an institution's
// program.
//
// Invariant: at most one admission per student across the entire system.
// Exclusivity is global, keyed solely on the student, not per institution;
// the store enforces it atomically (CreateIfNoneForStudent). An admission is
// immutable once published.
type Admission struct {
	ID              id.AdmissionID   `json:"id"`
	StudentID       id.StudentID     `json:"studentId"`
	InstitutionID   id.InstitutionID `json:"institutionId"`
	CourseName      string           `json:"courseName"`
	AdmissionStatus string           `json:"admissionStatus"`
	PublishedAt     time.Time        `json:"publishedAt"`
}

// NewAdmission constructs an admission ready to publish. The admission status
// is a free-form label chosen by the institution.
func NewAdmission(studentID id.StudentID, institutionID id.InstitutionID, courseName, admissionStatus string, now time.Time) (*Admission, error) {
	if studentID.IsZero() || institutionID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	return &Admission{
		ID:              id.NewAdmissionID(),
		StudentID:       studentID,
		InstitutionID:   institutionID,
		CourseName:      courseName,
		AdmissionStatus: admissionStatus,
		PublishedAt:     now,
	}, nil
}
