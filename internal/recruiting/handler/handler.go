package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"careerhub/internal/recruiting/models"
	"careerhub/internal/recruiting/service"
	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
	"careerhub/pkg/platform/httputil"
	"careerhub/pkg/requestcontext"
)

// Service defines the recruiting operations the handler exposes.
type Service interface {
	PostJob(ctx context.Context, cmd service.PostJobCommand) (*models.Job, error)
	CompanyJobs(ctx context.Context, companyID id.CompanyID) ([]*models.Job, error)
	SubmitApplication(ctx context.Context, cmd service.SubmitCommand) (*models.Applicant, error)
	QualifiedApplicants(ctx context.Context, companyID id.CompanyID) ([]*models.Applicant, error)
	StudentApplications(ctx context.Context, studentID id.StudentID) ([]*models.Applicant, error)
	MatchedJobs(ctx context.Context, studentID id.StudentID) ([]*models.Job, error)
	ApplyJob(ctx context.Context, studentID id.StudentID, jobID id.JobID) (*models.JobApplication, error)
	JobFeed(ctx context.Context, studentID id.StudentID) ([]*models.Job, error)
}

// Handler wires recruiting endpoints to the recruiting service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a recruiting handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts recruiting endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/companies/postJob", h.handlePostJob)
	r.Get("/companies/jobs/{companyID}", h.handleCompanyJobs)
	r.Post("/companies/student/apply", h.handleSubmitApplication)
	r.Get("/companies/applicants/{companyID}", h.handleQualifiedApplicants)
	r.Get("/students/jobs/{studentID}", h.handleMatchedJobs)
	r.Get("/students/jobFeed/{studentID}", h.handleJobFeed)
	r.Get("/students/jobApplications/{studentID}", h.handleStudentApplications)
	r.Post("/students/applyJob", h.handleApplyJob)
}

func (h *Handler) handlePostJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[PostJobRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	cmd, err := req.Command()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	job, err := h.service.PostJob(ctx, cmd)
	if err != nil {
		h.logRejection(ctx, "post job rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"job":     job,
	})
}

func (h *Handler) handleCompanyJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	companyID := id.CompanyID(chi.URLParam(r, "companyID"))

	jobs, err := h.service.CompanyJobs(ctx, companyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if jobs == nil {
		jobs = []*models.Job{}
	}
	httputil.WriteJSON(w, http.StatusOK, jobs)
}

func (h *Handler) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[SubmitApplicationRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	cmd, err := req.Command()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	applicant, err := h.service.SubmitApplication(ctx, cmd)
	if err != nil {
		h.logRejection(ctx, "application rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"qualified":  applicant.Status,
		"finalScore": applicant.FinalScore,
	})
}

func (h *Handler) handleQualifiedApplicants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	companyID := id.CompanyID(chi.URLParam(r, "companyID"))

	applicants, err := h.service.QualifiedApplicants(ctx, companyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if applicants == nil {
		applicants = []*models.Applicant{}
	}
	httputil.WriteJSON(w, http.StatusOK, applicants)
}

func (h *Handler) handleMatchedJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := id.StudentID(chi.URLParam(r, "studentID"))

	jobs, err := h.service.MatchedJobs(ctx, studentID)
	if err != nil {
		h.logRejection(ctx, "job match lookup failed", err)
		httputil.WriteError(w, err)
		return
	}
	if jobs == nil {
		jobs = []*models.Job{}
	}
	httputil.WriteJSON(w, http.StatusOK, jobs)
}

func (h *Handler) handleJobFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := id.StudentID(chi.URLParam(r, "studentID"))

	jobs, err := h.service.JobFeed(ctx, studentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if jobs == nil {
		jobs = []*models.Job{}
	}
	httputil.WriteJSON(w, http.StatusOK, jobs)
}

func (h *Handler) handleStudentApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := id.StudentID(chi.URLParam(r, "studentID"))

	apps, err := h.service.StudentApplications(ctx, studentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if apps == nil {
		apps = []*models.Applicant{}
	}
	httputil.WriteJSON(w, http.StatusOK, apps)
}

func (h *Handler) handleApplyJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[ApplyJobRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	studentID, jobID, err := req.Command()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if _, err := h.service.ApplyJob(ctx, studentID, jobID); err != nil {
		h.logRejection(ctx, "job application rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Job application submitted successfully.")
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
