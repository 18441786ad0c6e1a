package handler

import (
	"careerhub/internal/directory/models"
	id "careerhub/pkg/domain"
)

// RegisterInstitutionRequest is the body of POST /institutions/register.
type RegisterInstitutionRequest struct {
	InstitutionID string `json:"institutionId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
}

func (r RegisterInstitutionRequest) Patch() models.InstitutionProfile {
	return models.InstitutionProfile{
		ID:      id.InstitutionID(r.InstitutionID),
		Name:    r.Name,
		Email:   r.Email,
		Address: r.Address,
		Phone:   r.Phone,
		Website: r.Website,
	}
}

// RegisterStudentRequest is the body of POST /students/register.
type RegisterStudentRequest struct {
	StudentID      string   `json:"studentId"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Qualifications []string `json:"qualifications"`
}

func (r RegisterStudentRequest) Patch() models.StudentProfile {
	return models.StudentProfile{
		ID:             id.StudentID(r.StudentID),
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Qualifications: r.Qualifications,
	}
}

// UpdateCompanyRequest is the body of POST /companies/updateProfile.
type UpdateCompanyRequest struct {
	CompanyID string `json:"companyId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Location  string `json:"location"`
}

func (r UpdateCompanyRequest) Patch() models.CompanyProfile {
	return models.CompanyProfile{
		ID:       id.CompanyID(r.CompanyID),
		Name:     r.Name,
		Email:    r.Email,
		Location: r.Location,
	}
}

// FacultyRequest is the body of POST /institutions/addFaculty and
// PUT /institutions/updateFaculty/{facultyID}.
type FacultyRequest struct {
	InstitutionID string `json:"institutionId"`
	FacultyName   string `json:"facultyName"`
	Description   string `json:"description"`
}

// CourseRequest is the body of POST /institutions/addCourse and
// PUT /institutions/updateCourse/{courseID}.
type CourseRequest struct {
	InstitutionID string `json:"institutionId"`
	FacultyID     string `json:"facultyId"`
	CourseName    string `json:"courseName"`
	Duration      string `json:"duration"`
	Description   string `json:"description"`
}

// UploadDocsRequest is the body of POST /students/uploadDocs.
type UploadDocsRequest struct {
	StudentID string `json:"studentId"`
	FileName  string `json:"fileName"`
	FileURL   string `json:"fileURL"`
	FileType  string `json:"fileType"`
}
