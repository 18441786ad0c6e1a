package models

import (
	"time"

	"careerhub/internal/recruiting/scoring"
	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
)

// Applicant is a scored job application. The verdict and final score are
// computed once at submission and stored; they are never recomputed on read.
type Applicant struct {
	ID                  id.ApplicantID         `json:"id"`
	StudentID           id.StudentID           `json:"studentId"`
	CompanyID           id.CompanyID           `json:"companyId"`
	JobID               id.JobID               `json:"jobId"`
	AcademicScore       float64                `json:"academicScore"`
	CertificateCount    int                    `json:"certificateCount"`
	WorkExperienceYears float64                `json:"workExperience"`
	RelevanceScore      float64                `json:"relevanceScore"`
	FinalScore          float64                `json:"finalScore"`
	Status              id.QualificationStatus `json:"status"`
	CreatedAt           time.Time              `json:"createdAt"`
}

// NewApplicant scores the inputs and builds the applicant record. Scoring
// inputs default to zero when absent; only the identifying fields are
// required.
func NewApplicant(studentID id.StudentID, companyID id.CompanyID, jobID id.JobID, in scoring.Input, now time.Time) (*Applicant, error) {
	if studentID.IsZero() || companyID.IsZero() || jobID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	final := scoring.FinalScore(in)
	return &Applicant{
		ID:                  id.NewApplicantID(),
		StudentID:           studentID,
		CompanyID:           companyID,
		JobID:               jobID,
		AcademicScore:       in.AcademicScore,
		CertificateCount:    in.CertificateCount,
		WorkExperienceYears: in.WorkExperienceYears,
		RelevanceScore:      in.RelevanceScore,
		FinalScore:          final,
		Status:              scoring.Classify(final),
		CreatedAt:           now,
	}, nil
}

// Qualified reports whether the stored verdict is "qualified".
func (a *Applicant) Qualified() bool {
	return a.Status == id.Qualified
}
