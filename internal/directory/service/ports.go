package service

import (
	"context"
	"time"

	recruiting "careerhub/internal/recruiting/service"
	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
)

// The methods below satisfy the ports other modules declare against the
// student registry: recruiting's StudentDirectory and identity's Registry.

// ListStudents returns every registered student as a recruiting view.
func (s *Service) ListStudents(ctx context.Context) ([]recruiting.StudentRef, error) {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]recruiting.StudentRef, 0, len(students))
	for _, student := range students {
		refs = append(refs, recruiting.StudentRef{
			ID:             student.ID,
			Name:           student.Name,
			Email:          student.Email,
			Qualifications: student.Qualifications,
		})
	}
	return refs, nil
}

// FindStudent returns one student as a recruiting view, or
// sentinel.ErrNotFound.
func (s *Service) FindStudent(ctx context.Context, studentID id.StudentID) (*recruiting.StudentRef, error) {
	student, err := s.store.FindStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &recruiting.StudentRef{
		ID:             student.ID,
		Name:           student.Name,
		Email:          student.Email,
		Qualifications: student.Qualifications,
	}, nil
}

// MarkApproved flags an institution or company record as approved and links
// the issued account.
func (s *Service) MarkApproved(ctx context.Context, role string, recordID string, accountID id.AccountID, at time.Time) error {
	switch role {
	case "institution":
		return s.store.ApproveInstitution(ctx, id.InstitutionID(recordID), accountID, at)
	case "company":
		return s.store.ApproveCompany(ctx, id.CompanyID(recordID), accountID, at)
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "Unknown role.")
	}
}

// Remove deletes a directory record by role. Unknown records delete as
// no-ops; unknown roles are rejected.
func (s *Service) Remove(ctx context.Context, role string, recordID string) error {
	switch role {
	case "institution", "institutions":
		return s.store.DeleteInstitution(ctx, id.InstitutionID(recordID))
	case "company", "companies":
		return s.store.DeleteCompany(ctx, id.CompanyID(recordID))
	case "student", "students":
		return s.store.DeleteStudent(ctx, id.StudentID(recordID))
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "Unknown role.")
	}
}
