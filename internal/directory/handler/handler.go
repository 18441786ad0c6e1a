package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"careerhub/internal/directory/models"
	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
	"careerhub/pkg/platform/httputil"
	"careerhub/pkg/requestcontext"
)

// Service defines the directory operations the handler exposes.
type Service interface {
	UpsertInstitution(ctx context.Context, patch models.InstitutionProfile) (*models.InstitutionProfile, error)
	UpsertStudent(ctx context.Context, patch models.StudentProfile) (*models.StudentProfile, error)
	UpsertCompany(ctx context.Context, patch models.CompanyProfile) (*models.CompanyProfile, error)
	AddFaculty(ctx context.Context, institutionID id.InstitutionID, name, description string) (*models.Faculty, error)
	UpdateFaculty(ctx context.Context, facultyID id.FacultyID, name, description string) (*models.Faculty, error)
	DeleteFaculty(ctx context.Context, facultyID id.FacultyID) error
	AddCourse(ctx context.Context, institutionID id.InstitutionID, facultyID id.FacultyID, name, duration, description string) (*models.Course, error)
	UpdateCourse(ctx context.Context, courseID id.CourseID, name, duration, description string) (*models.Course, error)
	DeleteCourse(ctx context.Context, courseID id.CourseID) error
	AddDocument(ctx context.Context, studentID id.StudentID, fileName, fileURL, fileType string) (*models.Document, error)
	StudentDocuments(ctx context.Context, studentID id.StudentID) ([]*models.Document, error)
}

// Handler wires directory endpoints to the directory service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a directory handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts directory endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/institutions/register", h.handleRegisterInstitution)
	r.Post("/institutions/addFaculty", h.handleAddFaculty)
	r.Put("/institutions/updateFaculty/{facultyID}", h.handleUpdateFaculty)
	r.Delete("/institutions/deleteFaculty/{facultyID}", h.handleDeleteFaculty)
	r.Post("/institutions/addCourse", h.handleAddCourse)
	r.Put("/institutions/updateCourse/{courseID}", h.handleUpdateCourse)
	r.Delete("/institutions/deleteCourse/{courseID}", h.handleDeleteCourse)
	r.Post("/students/register", h.handleRegisterStudent)
	r.Post("/students/uploadDocs", h.handleUploadDocs)
	r.Get("/students/documents/{studentID}", h.handleStudentDocuments)
	r.Post("/companies/updateProfile", h.handleUpdateCompany)
}

func (h *Handler) handleRegisterInstitution(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[RegisterInstitutionRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if _, err := h.service.UpsertInstitution(r.Context(), req.Patch()); err != nil {
		h.logRejection(r.Context(), "institution register rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Institution registered/updated successfully.")
}

func (h *Handler) handleRegisterStudent(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[RegisterStudentRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if _, err := h.service.UpsertStudent(r.Context(), req.Patch()); err != nil {
		h.logRejection(r.Context(), "student register rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Student registered/updated successfully.")
}

func (h *Handler) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[UpdateCompanyRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if _, err := h.service.UpsertCompany(r.Context(), req.Patch()); err != nil {
		h.logRejection(r.Context(), "company update rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Profile updated",
	})
}

func (h *Handler) handleAddFaculty(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[FacultyRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if _, err := h.service.AddFaculty(r.Context(), id.InstitutionID(req.InstitutionID), req.FacultyName, req.Description); err != nil {
		h.logRejection(r.Context(), "add faculty rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Faculty added successfully.")
}

func (h *Handler) handleUpdateFaculty(w http.ResponseWriter, r *http.Request) {
	facultyID := id.FacultyID(chi.URLParam(r, "facultyID"))
	req, err := httputil.Decode[FacultyRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if _, err := h.service.UpdateFaculty(r.Context(), facultyID, req.FacultyName, req.Description); err != nil {
		h.logRejection(r.Context(), "update faculty rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Faculty updated successfully.")
}

func (h *Handler) handleDeleteFaculty(w http.ResponseWriter, r *http.Request) {
	facultyID := id.FacultyID(chi.URLParam(r, "facultyID"))
	if err := h.service.DeleteFaculty(r.Context(), facultyID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Faculty deleted successfully.")
}

func (h *Handler) handleAddCourse(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[CourseRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	_, err = h.service.AddCourse(r.Context(), id.InstitutionID(req.InstitutionID),
		id.FacultyID(req.FacultyID), req.CourseName, req.Duration, req.Description)
	if err != nil {
		h.logRejection(r.Context(), "add course rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Course added successfully.")
}

func (h *Handler) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID := id.CourseID(chi.URLParam(r, "courseID"))
	req, err := httputil.Decode[CourseRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if _, err := h.service.UpdateCourse(r.Context(), courseID, req.CourseName, req.Duration, req.Description); err != nil {
		h.logRejection(r.Context(), "update course rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Course updated successfully.")
}

func (h *Handler) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID := id.CourseID(chi.URLParam(r, "courseID"))
	if err := h.service.DeleteCourse(r.Context(), courseID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Course deleted successfully.")
}

func (h *Handler) handleUploadDocs(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[UploadDocsRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	_, err = h.service.AddDocument(r.Context(), id.StudentID(req.StudentID), req.FileName, req.FileURL, req.FileType)
	if err != nil {
		h.logRejection(r.Context(), "upload docs rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Document metadata uploaded successfully.")
}

func (h *Handler) handleStudentDocuments(w http.ResponseWriter, r *http.Request) {
	studentID := id.StudentID(chi.URLParam(r, "studentID"))

	docs, err := h.service.StudentDocuments(r.Context(), studentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}
	httputil.WriteJSON(w, http.StatusOK, docs)
}

func (h *Handler) logRejection(ctx context.Context, msg string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return
	}
	h.logger.InfoContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"reason", dErrors.MessageOf(err),
	)
}
