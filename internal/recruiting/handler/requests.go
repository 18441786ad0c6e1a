package handler

import (
	"encoding/json"
	"strconv"

	"careerhub/internal/recruiting/scoring"
	"careerhub/internal/recruiting/service"
	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
)

// lenientFloat accepts a JSON number, a numeric string, or anything else.
// Non-numeric values coerce to zero rather than failing the request:
// scoring inputs are optional and clients send them in mixed shapes.
type lenientFloat float64

func (f *lenientFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = lenientFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			*f = lenientFloat(parsed)
			return nil
		}
	}
	*f = 0
	return nil
}

// certificateList counts the entries of a JSON array. Any non-array value
// counts as zero certificates.
type certificateList int

func (c *certificateList) UnmarshalJSON(data []byte) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		*c = 0
		return nil
	}
	*c = certificateList(len(entries))
	return nil
}

// PostJobRequest is the body of POST /companies/postJob.
type PostJobRequest struct {
	CompanyID       string   `json:"companyId"`
	Title           string   `json:"title"`
	Role            string   `json:"role"`
	Location        string   `json:"location"`
	Requirements    []string `json:"requirements"`
	PreferredSkills []string `json:"preferredSkills"`
	Deadline        string   `json:"deadline"`
}

func (r PostJobRequest) Command() (service.PostJobCommand, error) {
	if r.CompanyID == "" || r.Title == "" || r.Role == "" || r.Location == "" {
		return service.PostJobCommand{}, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	return service.PostJobCommand{
		CompanyID:       id.CompanyID(r.CompanyID),
		Title:           r.Title,
		Role:            r.Role,
		Location:        r.Location,
		Requirements:    r.Requirements,
		PreferredSkills: r.PreferredSkills,
		Deadline:        r.Deadline,
	}, nil
}

// SubmitApplicationRequest is the body of POST /companies/student/apply.
// Only the identifiers are required; scoring inputs default to zero.
type SubmitApplicationRequest struct {
	StudentID      string          `json:"studentId"`
	CompanyID      string          `json:"companyId"`
	JobID          string          `json:"jobId"`
	AcademicScore  lenientFloat    `json:"academicScore"`
	Certificates   certificateList `json:"certificates"`
	WorkExperience lenientFloat    `json:"workExperience"`
	RelevanceScore lenientFloat    `json:"relevanceScore"`
}

func (r SubmitApplicationRequest) Command() (service.SubmitCommand, error) {
	if r.StudentID == "" || r.CompanyID == "" || r.JobID == "" {
		return service.SubmitCommand{}, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	return service.SubmitCommand{
		StudentID: id.StudentID(r.StudentID),
		CompanyID: id.CompanyID(r.CompanyID),
		JobID:     id.JobID(r.JobID),
		Input: scoring.Input{
			AcademicScore:       float64(r.AcademicScore),
			CertificateCount:    int(r.Certificates),
			WorkExperienceYears: float64(r.WorkExperience),
			RelevanceScore:      float64(r.RelevanceScore),
		},
	}, nil
}

// ApplyJobRequest is the body of POST /students/applyJob.
type ApplyJobRequest struct {
	StudentID string `json:"studentId"`
	JobID     string `json:"jobId"`
}

func (r ApplyJobRequest) Command() (id.StudentID, id.JobID, error) {
	if r.StudentID == "" || r.JobID == "" {
		return "", "", dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	return id.StudentID(r.StudentID), id.JobID(r.JobID), nil
}
