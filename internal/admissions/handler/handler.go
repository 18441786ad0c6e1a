package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"careerhub/internal/admissions/models"
	"careerhub/internal/admissions/service"
	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
	"careerhub/pkg/platform/httputil"
	"careerhub/pkg/requestcontext"
)

// Service defines the admissions operations the handler exposes.
type Service interface {
	Apply(ctx context.Context, cmd service.ApplyCommand) (*models.Application, error)
	Review(ctx context.Context, cmd service.ReviewCommand) (*models.Application, error)
	Publish(ctx context.Context, cmd service.PublishCommand) (*models.Admission, error)
	NotifyAdmission(ctx context.Context, cmd service.NotifyAdmissionCommand) error
	InstitutionApplications(ctx context.Context, institutionID id.InstitutionID) ([]*models.Application, error)
	StudentAdmissions(ctx context.Context, studentID id.StudentID) ([]*models.Admission, error)
}

// Handler wires admissions endpoints to the admissions service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an admissions handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts admissions endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/students/applyCourse", h.handleApplyCourse)
	r.Post("/students/notifyAdmission", h.handleNotifyAdmission)
	r.Get("/students/admissions/{studentID}", h.handleStudentAdmissions)
	r.Get("/institutions/applications/{institutionID}", h.handleInstitutionApplications)
	r.Post("/institutions/approveStudent", h.handleApproveStudent)
	r.Post("/institutions/publishAdmission", h.handlePublishAdmission)
}

func (h *Handler) handleApplyCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[ApplyCourseRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	cmd, err := req.Command()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if _, err := h.service.Apply(ctx, cmd); err != nil {
		h.logRejection(ctx, "apply rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Course application submitted successfully.")
}

func (h *Handler) handleApproveStudent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[ApproveStudentRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	cmd, err := req.Command()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	app, err := h.service.Review(ctx, cmd)
	if err != nil {
		h.logRejection(ctx, "review rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, fmt.Sprintf("Student application %s successfully.", app.Status))
}

func (h *Handler) handlePublishAdmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[PublishAdmissionRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	cmd, err := req.Command()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if _, err := h.service.Publish(ctx, cmd); err != nil {
		h.logRejection(ctx, "publish rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Admission published successfully.")
}

func (h *Handler) handleNotifyAdmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[NotifyAdmissionRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	cmd, err := req.Command()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.NotifyAdmission(ctx, cmd); err != nil {
		h.logRejection(ctx, "notify admission rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Admission notification email sent.")
}

func (h *Handler) handleInstitutionApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	institutionID := id.InstitutionID(chi.URLParam(r, "institutionID"))

	apps, err := h.service.InstitutionApplications(ctx, institutionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if apps == nil {
		apps = []*models.Application{}
	}
	httputil.WriteJSON(w, http.StatusOK, apps)
}

func (h *Handler) handleStudentAdmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := id.StudentID(chi.URLParam(r, "studentID"))

	admissions, err := h.service.StudentAdmissions(ctx, studentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if admissions == nil {
		admissions = []*models.Admission{}
	}
	httputil.WriteJSON(w, http.StatusOK, admissions)
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
