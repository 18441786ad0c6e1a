package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"careerhub/internal/identity/service"
	"careerhub/internal/identity/store"
	dErrors "careerhub/pkg/domain-errors"
	"careerhub/pkg/platform/httputil"
	"careerhub/pkg/requestcontext"
)

// Service defines the identity operations the handler exposes.
type Service interface {
	ApproveRegistration(ctx context.Context, cmd service.ApproveCommand) (*store.User, error)
	DeleteRegistration(ctx context.Context, role, recordID string) error
	Login(ctx context.Context, email, password string) (token string, expiresAt time.Time, err error)
}

// Handler wires identity endpoints to the identity service. The admin
// routes are expected to sit behind the admin token middleware.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an identity handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdmin mounts the admin registration endpoints.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/approve-registration", h.handleApproveRegistration)
	r.Delete("/admin/delete/{role}/{recordID}", h.handleDeleteRegistration)
}

// RegisterAuth mounts the public auth endpoints.
func (h *Handler) RegisterAuth(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

// RegisterSession mounts endpoints requiring an authenticated subject.
func (h *Handler) RegisterSession(r chi.Router) {
	r.Get("/auth/me", h.handleMe)
}

// ApproveRegistrationRequest is the body of POST /admin/approve-registration.
type ApproveRegistrationRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (h *Handler) handleApproveRegistration(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[ApproveRegistrationRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	_, err = h.service.ApproveRegistration(r.Context(), service.ApproveCommand{
		RecordID: req.ID,
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		h.logRejection(r.Context(), "approve registration rejected", err)
		h.writeAdminError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Approved and email sent.",
	})
}

func (h *Handler) handleDeleteRegistration(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	recordID := chi.URLParam(r, "recordID")

	if err := h.service.DeleteRegistration(r.Context(), role, recordID); err != nil {
		h.logRejection(r.Context(), "delete registration rejected", err)
		h.writeAdminError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Deleted successfully.",
	})
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[LoginRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	token, expiresAt, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logRejection(r.Context(), "login rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"expiresAt": expiresAt.UTC(),
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"subject": requestcontext.Subject(r.Context()),
	})
}

// writeAdminError writes the admin surface's {success, message} envelope.
func (h *Handler) writeAdminError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	message := dErrors.MessageOf(err)
	if code == dErrors.CodeInternal || message == "" {
		message = "Server error."
	}
	httputil.WriteJSON(w, dErrors.HTTPStatus(code), map[string]any{
		"success": false,
		"message": message,
	})
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
