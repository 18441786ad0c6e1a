package handler

import (
	"careerhub/internal/admissions/service"
	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
)

// ApplyCourseRequest is the body of POST /students/applyCourse.
type ApplyCourseRequest struct {
	StudentID     string `json:"studentId"`
	InstitutionID string `json:"institutionId"`
	CourseID      string `json:"courseId"`
	CourseName    string `json:"courseName"`
}

func (r ApplyCourseRequest) Command() (service.ApplyCommand, error) {
	if r.StudentID == "" || r.InstitutionID == "" || r.CourseID == "" {
		return service.ApplyCommand{}, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	return service.ApplyCommand{
		StudentID:     id.StudentID(r.StudentID),
		InstitutionID: id.InstitutionID(r.InstitutionID),
		CourseID:      id.CourseID(r.CourseID),
		CourseName:    r.CourseName,
	}, nil
}

// ApproveStudentRequest is the body of POST /institutions/approveStudent.
// Contact fields feed the approval notification.
type ApproveStudentRequest struct {
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
	StudentEmail  string `json:"studentEmail"`
	StudentName   string `json:"studentName"`
	CourseName    string `json:"courseName"`
}

func (r ApproveStudentRequest) Command() (service.ReviewCommand, error) {
	if r.ApplicationID == "" || r.Status == "" {
		return service.ReviewCommand{}, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	status, err := id.ParseReviewStatus(r.Status)
	if err != nil {
		return service.ReviewCommand{}, err
	}
	return service.ReviewCommand{
		ApplicationID: id.ApplicationID(r.ApplicationID),
		Status:        status,
		StudentEmail:  r.StudentEmail,
		StudentName:   r.StudentName,
		CourseName:    r.CourseName,
	}, nil
}

// NotifyAdmissionRequest is the body of POST /students/notifyAdmission.
type NotifyAdmissionRequest struct {
	Email       string `json:"email"`
	StudentName string `json:"studentName"`
	Institution string `json:"institution"`
}

func (r NotifyAdmissionRequest) Command() (service.NotifyAdmissionCommand, error) {
	if r.Email == "" || r.StudentName == "" || r.Institution == "" {
		return service.NotifyAdmissionCommand{}, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	return service.NotifyAdmissionCommand{
		Email:       r.Email,
		StudentName: r.StudentName,
		Institution: r.Institution,
	}, nil
}

// PublishAdmissionRequest is the body of POST /institutions/publishAdmission.
type PublishAdmissionRequest struct {
	StudentID       string `json:"studentId"`
	InstitutionID   string `json:"institutionId"`
	CourseName      string `json:"courseName"`
	AdmissionStatus string `json:"admissionStatus"`
}

func (r PublishAdmissionRequest) Command() (service.PublishCommand, error) {
	if r.StudentID == "" || r.InstitutionID == "" {
		return service.PublishCommand{}, dErrors.New(dErrors.CodeBadRequest, "Missing required fields.")
	}
	return service.PublishCommand{
		StudentID:       id.StudentID(r.StudentID),
		InstitutionID:   id.InstitutionID(r.InstitutionID),
		CourseName:      r.CourseName,
		AdmissionStatus: r.AdmissionStatus,
	}, nil
}
