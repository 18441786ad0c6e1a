//go:build integration

package admission_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"careerhub/internal/admissions/models"
	"careerhub/internal/admissions/store"
	"careerhub/internal/admissions/store/admission"
	id "careerhub/pkg/domain"
	"careerhub/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *admission.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = admission.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "admissions")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newAdmission(student, institution string) *models.Admission {
	adm, err := models.NewAdmission(
		id.StudentID(student), id.InstitutionID(institution), "CS", "admitted", time.Now())
	s.Require().NoError(err)
	return adm
}

func (s *PostgresStoreSuite) TestExclusivity() {
	ctx := context.Background()

	s.Require().NoError(s.store.CreateIfNoneForStudent(ctx, s.newAdmission("s1", "inst1")))

	// A second admission for the same student is refused, any institution.
	err := s.store.CreateIfNoneForStudent(ctx, s.newAdmission("s1", "inst2"))
	s.Require().ErrorIs(err, store.ErrAlreadyAdmitted)

	// Other students are unaffected.
	s.Require().NoError(s.store.CreateIfNoneForStudent(ctx, s.newAdmission("s2", "inst2")))

	admissions, err := s.store.ListByStudent(ctx, id.StudentID("s1"))
	s.Require().NoError(err)
	s.Require().Len(admissions, 1)
	s.Equal(id.InstitutionID("inst1"), admissions[0].InstitutionID)
}

// TestConcurrentPublishers verifies the unique index admits exactly one
// winner when institutions race to publish for the same student.
func (s *PostgresStoreSuite) TestConcurrentPublishers() {
	ctx := context.Background()
	const goroutines = 20

	admissions := make([]*models.Admission, goroutines)
	for i := range admissions {
		admissions[i] = s.newAdmission("s1", fmt.Sprintf("inst%d", i))
	}

	var wg sync.WaitGroup
	var won atomic.Int32
	var lost atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(adm *models.Admission) {
			defer wg.Done()

			err := s.store.CreateIfNoneForStudent(ctx, adm)
			switch {
			case err == nil:
				won.Add(1)
			case errors.Is(err, store.ErrAlreadyAdmitted):
				lost.Add(1)
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}(admissions[i])
	}

	wg.Wait()

	s.Equal(int32(1), won.Load(), "exactly one publisher should win")
	s.Equal(int32(goroutines-1), lost.Load())
}
