package domain

import dErrors "careerhub/pkg/domain-errors"

// ReviewStatus is the lifecycle state of a course application.
// Invariant: the only legal transitions are Pending → Approved and
// Pending → Rejected. Approved and Rejected are terminal.
//
// Usage: construct via ParseReviewStatus at trust boundaries; direct casting
// bypasses validation.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "Pending"
	ReviewApproved ReviewStatus = "Approved"
	ReviewRejected ReviewStatus = "Rejected"
)

var validReviewStatuses = map[ReviewStatus]bool{
	ReviewPending:  true,
	ReviewApproved: true,
	ReviewRejected: true,
}

// ParseReviewStatus constructs a ReviewStatus from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "status cannot be empty")
	}
	st := ReviewStatus(s)
	if !validReviewStatuses[st] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid status")
	}
	return st, nil
}

// IsValid checks if the status is one of the supported enum values.
func (s ReviewStatus) IsValid() bool {
	return validReviewStatuses[s]
}

// IsTerminal reports whether the status admits no further transitions.
func (s ReviewStatus) IsTerminal() bool {
	return s == ReviewApproved || s == ReviewRejected
}

// CanTransitionTo reports whether moving to target is a legal transition.
func (s ReviewStatus) CanTransitionTo(target ReviewStatus) bool {
	return s == ReviewPending && target.IsTerminal()
}
