package models

import (
	"time"

	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
)

// PerInstitutionLimit caps how many applications one student may hold at one
// institution. The count includes every status, rejected ones included; a
// rejection does not free up a slot.
const PerInstitutionLimit = 2

// Application is a student's request to enroll in one course at one
// institution.
//
// Invariants:
//   - At most PerInstitutionLimit applications per (student, institution) pair
//   - No two applications for the same (student, institution, course) triple
//   - Status transitions: Pending → Approved or Pending → Rejected only
//   - ReviewedAt is set exactly once, by the review transition
//
// Uniqueness and the limit are enforced atomically by the store
// (CreateIfAllowed); the model only validates its own shape.
type Application struct {
	ID            id.ApplicationID `json:"id"`
	StudentID     id.StudentID     `json:"studentId"`
	InstitutionID id.InstitutionID `json:"institutionId"`
	CourseID      id.CourseID      `json:"courseId"`
	CourseName    string           `json:"courseName"`
	Status        id.ReviewStatus  `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	ReviewedAt    *time.Time       `json:"reviewedAt,omitempty"`
}

// NewApplication constructs a pending application.
func NewApplication(studentID id.StudentID, institutionID id.InstitutionID, courseID id.CourseID, courseName string, now time.Time) (*Application, error) {
	if studentID.IsZero() || institutionID.IsZero() || courseID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	return &Application{
		ID:            id.NewApplicationID(),
		StudentID:     studentID,
		InstitutionID: institutionID,
		CourseID:      courseID,
		CourseName:    courseName,
		Status:        id.ReviewPending,
		CreatedAt:     now,
	}, nil
}

// CanReview checks that the application may transition to target.
// Use with ApplyReview in Execute callbacks.
func (a *Application) CanReview(target id.ReviewStatus) error {
	if !target.IsTerminal() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid status")
	}
	if !a.Status.CanTransitionTo(target) {
		return dErrors.New(dErrors.CodeInvariantViolation, "Application has already been reviewed.")
	}
	return nil
}

// ApplyReview transitions the application and stamps the review time.
// Call CanReview first to validate the transition.
func (a *Application) ApplyReview(target id.ReviewStatus, now time.Time) {
	a.Status = target
	a.ReviewedAt = &now
}
