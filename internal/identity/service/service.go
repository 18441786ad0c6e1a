package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"careerhub/internal/identity/account"
	identitymetrics "careerhub/internal/identity/metrics"
	"careerhub/internal/identity/store"
	"careerhub/internal/identity/tokens"
	"careerhub/internal/notify"
	id "careerhub/pkg/domain"
	dErrors "careerhub/pkg/domain-errors"
	"careerhub/pkg/platform/sentinel"
	"careerhub/pkg/requestcontext"
)

// User-facing messages for the admin approval surface.
const (
	msgMissingFields  = "Missing fields."
	msgUnknownRole    = "Unknown role."
	msgRecordNotFound = "Registration record not found."
	msgAccountExists  = "Account already exists for this email."
	msgBadCredentials = "Invalid email or password."
)

const tempPasswordLength = 10

// Roles an admin can approve.
const (
	RoleInstitution = "institution"
	RoleCompany     = "company"
)

// Registry is the identity module's view of the directory: approving a
// registration flips the directory record, deleting removes it.
type Registry interface {
	MarkApproved(ctx context.Context, role, recordID string, accountID id.AccountID, at time.Time) error
	Remove(ctx context.Context, role, recordID string) error
}

// Service implements the admin registration workflow and login.
type Service struct {
	issuer    account.Issuer
	users     store.UserStore
	registry  Registry
	tokens    *tokens.Issuer
	publisher notify.Publisher
	logger    *slog.Logger
	metrics   *identitymetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithPublisher(publisher notify.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *identitymetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(issuer account.Issuer, users store.UserStore, registry Registry, tokenIssuer *tokens.Issuer, opts ...Option) (*Service, error) {
	if issuer == nil {
		return nil, fmt.Errorf("account issuer is required")
	}
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if tokenIssuer == nil {
		return nil, fmt.Errorf("token issuer is required")
	}

	svc := &Service{
		issuer:   issuer,
		users:    users,
		registry: registry,
		tokens:   tokenIssuer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ApproveCommand carries one registration approval.
type ApproveCommand struct {
	RecordID string
	Email    string
	Name     string
	Role     string
}

// ApproveRegistration issues an account with a temporary password, marks the
// directory record approved, creates the platform user, and emails the
// password. The email is event-decoupled and best-effort; everything before
// it must succeed.
func (s *Service) ApproveRegistration(ctx context.Context, cmd ApproveCommand) (*store.User, error) {
	if cmd.RecordID == "" || cmd.Email == "" || cmd.Role == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	if cmd.Role != RoleInstitution && cmd.Role != RoleCompany {
		return nil, dErrors.New(dErrors.CodeInvalidInput, msgUnknownRole)
	}

	tempPassword, err := account.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate password")
	}

	acct, err := s.issuer.CreateAccount(ctx, cmd.Email, tempPassword, cmd.Name)
	if err != nil {
		if errors.Is(err, account.ErrAccountExists) {
			return nil, dErrors.New(dErrors.CodeConflict, msgAccountExists)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create account")
	}

	now := requestcontext.Now(ctx)
	if err := s.registry.MarkApproved(ctx, cmd.Role, cmd.RecordID, acct.ID, now); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, msgRecordNotFound)
		}
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark record approved")
	}

	user := &store.User{
		AccountID: acct.ID,
		Name:      cmd.Name,
		Email:     cmd.Email,
		Role:      cmd.Role,
		Approved:  true,
		CreatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.metrics.IncApproved(cmd.Role)
	s.logger.InfoContext(ctx, "registration approved",
		"request_id", requestcontext.RequestID(ctx),
		"record_id", cmd.RecordID,
		"role", cmd.Role,
		"account_id", acct.ID,
	)

	s.emitApproval(ctx, cmd, tempPassword)
	return user, nil
}

// DeleteRegistration removes a directory record.
func (s *Service) DeleteRegistration(ctx context.Context, role, recordID string) error {
	if role == "" || recordID == "" {
		return dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}
	if err := s.registry.Remove(ctx, role, recordID); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete record")
	}

	s.metrics.IncDeleted()
	s.logger.InfoContext(ctx, "registration deleted",
		"request_id", requestcontext.RequestID(ctx),
		"record_id", recordID,
		"role", role,
	)
	return nil
}

// Login exchanges credentials for a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (token string, expiresAt time.Time, err error) {
	if email == "" || password == "" {
		return "", time.Time{}, dErrors.New(dErrors.CodeBadRequest, msgMissingFields)
	}

	acct, err := s.issuer.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, account.ErrBadCredentials) {
			s.metrics.IncLogin("rejected")
			return "", time.Time{}, dErrors.New(dErrors.CodeUnauthorized, msgBadCredentials)
		}
		return "", time.Time{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to authenticate")
	}

	role := ""
	if user, err := s.users.FindByAccount(ctx, acct.ID); err == nil {
		role = user.Role
	}

	token, expiresAt, err = s.tokens.Issue(acct.ID.String(), role)
	if err != nil {
		return "", time.Time{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.metrics.IncLogin("accepted")
	s.logger.InfoContext(ctx, "login accepted",
		"request_id", requestcontext.RequestID(ctx),
		"account_id", acct.ID,
	)
	return token, expiresAt, nil
}

func (s *Service) emitApproval(ctx context.Context, cmd ApproveCommand, tempPassword string) {
	if s.publisher == nil {
		return
	}
	event := notify.Event{
		Kind:    notify.KindRegistrationApproved,
		To:      cmd.Email,
		Subject: "Registration Approved",
		Body: fmt.Sprintf("Hi %s, your registration has been approved! You can log in using this temporary password: %s. Please change it after logging in.",
			cmd.Name, tempPassword),
		RequestID: requestcontext.RequestID(ctx),
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "approval notification not enqueued",
			"request_id", requestcontext.RequestID(ctx),
			"record_id", cmd.RecordID,
			"error", err,
		)
	}
}
