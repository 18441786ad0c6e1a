package service

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"careerhub/internal/directory/models"
	directoryservice "careerhub/internal/directory/service"
	directorystore "careerhub/internal/directory/store"
	"careerhub/internal/identity/account"
	"careerhub/internal/identity/store"
	"careerhub/internal/identity/tokens"
	"careerhub/internal/notify"
	"careerhub/internal/notify/mocks"
	dErrors "careerhub/pkg/domain-errors"
	"careerhub/pkg/requestcontext"
)

// =============================================================================
// Identity Service Test Suite
// =============================================================================
// Approval wires three collaborators together (account issuer, directory
// registry, user store), so the suite runs against the real in-memory
// implementations and mocks only the notification publisher.

type IdentityServiceSuite struct {
	suite.Suite
	issuer    *account.InMemory
	users     *store.InMemory
	directory *directoryservice.Service
	service   *Service
	ctx       context.Context
}

func TestIdentityServiceSuite(t *testing.T) {
	suite.Run(t, new(IdentityServiceSuite))
}

func (s *IdentityServiceSuite) SetupTest() {
	s.issuer = account.NewInMemory()
	s.users = store.NewInMemory()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	var err error
	s.directory, err = directoryservice.New(directorystore.NewInMemory(), directoryservice.WithLogger(logger))
	s.Require().NoError(err)

	tokenIssuer, err := tokens.NewIssuer([]byte("test-key"), time.Hour)
	s.Require().NoError(err)

	s.service, err = New(s.issuer, s.users, s.directory, tokenIssuer, WithLogger(logger))
	s.Require().NoError(err)

	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	_, err = s.directory.UpsertInstitution(s.ctx, models.InstitutionProfile{
		ID: "inst1", Name: "State U", Email: "admin@stateu.example",
	})
	s.Require().NoError(err)
}

func (s *IdentityServiceSuite) approve() (*store.User, error) {
	return s.service.ApproveRegistration(s.ctx, ApproveCommand{
		RecordID: "inst1",
		Email:    "admin@stateu.example",
		Name:     "State U",
		Role:     RoleInstitution,
	})
}

func (s *IdentityServiceSuite) TestApproveRegistration() {
	user, err := s.approve()
	s.Require().NoError(err)
	s.True(user.Approved)
	s.Equal(RoleInstitution, user.Role)
	s.NotEmpty(user.AccountID)

	s.Run("user record is persisted", func() {
		got, err := s.users.FindByAccount(s.ctx, user.AccountID)
		s.Require().NoError(err)
		s.Equal("admin@stateu.example", got.Email)
	})

	s.Run("second approval for the same email conflicts", func() {
		_, err := s.approve()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *IdentityServiceSuite) TestApproveValidation() {
	s.Run("missing fields", func() {
		_, err := s.service.ApproveRegistration(s.ctx, ApproveCommand{RecordID: "inst1"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("unknown role", func() {
		_, err := s.service.ApproveRegistration(s.ctx, ApproveCommand{
			RecordID: "inst1", Email: "x@example.com", Role: "wizard",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("absent directory record", func() {
		_, err := s.service.ApproveRegistration(s.ctx, ApproveCommand{
			RecordID: "ghost", Email: "ghost@example.com", Role: RoleInstitution,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *IdentityServiceSuite) TestApprovalEmailsTempPassword() {
	ctrl := gomock.NewController(s.T())
	publisher := mocks.NewMockPublisher(ctrl)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	tokenIssuer, err := tokens.NewIssuer([]byte("test-key"), time.Hour)
	s.Require().NoError(err)
	svc, err := New(s.issuer, s.users, s.directory, tokenIssuer,
		WithLogger(logger), WithPublisher(publisher))
	s.Require().NoError(err)

	var emailed string
	publisher.EXPECT().
		Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event notify.Event) error {
			s.Equal(notify.KindRegistrationApproved, event.Kind)
			s.Equal("admin@stateu.example", event.To)
			emailed = event.Body
			return nil
		}).
		Times(1)

	_, err = svc.ApproveRegistration(s.ctx, ApproveCommand{
		RecordID: "inst1", Email: "admin@stateu.example", Name: "State U", Role: RoleInstitution,
	})
	s.Require().NoError(err)

	s.Run("emailed password authenticates", func() {
		s.Require().Contains(emailed, "temporary password: ")
		rest := emailed[strings.Index(emailed, "temporary password: ")+len("temporary password: "):]
		password := rest[:strings.Index(rest, ".")]

		acct, err := s.issuer.Authenticate(s.ctx, "admin@stateu.example", password)
		s.Require().NoError(err)
		s.Equal("State U", acct.DisplayName)
	})
}

func (s *IdentityServiceSuite) TestLogin() {
	_, err := s.approve()
	s.Require().NoError(err)

	s.Run("wrong password is unauthorized", func() {
		_, _, err := s.service.Login(s.ctx, "admin@stateu.example", "wrong")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown email is unauthorized", func() {
		_, _, err := s.service.Login(s.ctx, "nobody@example.com", "whatever")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("missing fields are rejected", func() {
		_, _, err := s.service.Login(s.ctx, "", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *IdentityServiceSuite) TestDeleteRegistration() {
	s.Require().NoError(s.service.DeleteRegistration(s.ctx, "institutions", "inst1"))

	s.Run("approval after deletion fails", func() {
		_, err := s.approve()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown role is rejected", func() {
		err := s.service.DeleteRegistration(s.ctx, "wizard", "inst1")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
