//go:build integration

package application_test

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
	"careerhub/internal/admissions/store/application"
	id "careerhub/pkg/domain"
	"careerhub/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *application.Postgres
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
	s.store = application.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "applications")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newApplication(student, institution, course string) *models.Application {
	app, err := models.NewApplication(
		id.StudentID(student), id.InstitutionID(institution), id.CourseID(course),
		"Course "+course, time.Now())
	s.Require().NoError(err)
	return app
}

// TestFirstApplicationAccepted verifies the guard admits an application for a
// pair that has no prior rows: the duplicate aggregate over an empty pair
// must evaluate to false, not NULL.
func (s *PostgresStoreSuite) TestFirstApplicationAccepted() {
	ctx := context.Background()

	app := s.newApplication("s1", "inst1", "c1")
	err := s.store.CreateIfAllowed(ctx, app, models.PerInstitutionLimit)
	s.Require().NoError(err)

	found, err := s.store.FindByID(ctx, app.ID)
	s.Require().NoError(err)
	s.Equal(app.StudentID, found.StudentID)
	s.Equal(id.ReviewPending, found.Status)
}

func (s *PostgresStoreSuite) TestPerInstitutionLimit() {
	ctx := context.Background()

	s.Require().NoError(s.store.CreateIfAllowed(ctx,
		s.newApplication("s1", "inst1", "c1"), models.PerInstitutionLimit))
	s.Require().NoError(s.store.CreateIfAllowed(ctx,
		s.newApplication("s1", "inst1", "c2"), models.PerInstitutionLimit))

	err := s.store.CreateIfAllowed(ctx,
		s.newApplication("s1", "inst1", "c3"), models.PerInstitutionLimit)
	s.Require().ErrorIs(err, store.ErrLimitReached)

	// A different institution gets a fresh budget.
	s.Require().NoError(s.store.CreateIfAllowed(ctx,
		s.newApplication("s1", "inst2", "c1"), models.PerInstitutionLimit))
}

func (s *PostgresStoreSuite) TestDuplicateCourse() {
	ctx := context.Background()

	s.Require().NoError(s.store.CreateIfAllowed(ctx,
		s.newApplication("s1", "inst1", "c1"), models.PerInstitutionLimit))

	err := s.store.CreateIfAllowed(ctx,
		s.newApplication("s1", "inst1", "c1"), models.PerInstitutionLimit)
	s.Require().ErrorIs(err, store.ErrDuplicateCourse)
}

// TestConcurrentApplications verifies the advisory lock serializes guard
// evaluation: under contention at most PerInstitutionLimit applications win.
func (s *PostgresStoreSuite) TestConcurrentApplications() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var accepted atomic.Int32
	var rejected atomic.Int32

	apps := make([]*models.Application, goroutines)
	for i := range apps {
		apps[i] = s.newApplication("s1", "inst1", fmt.Sprintf("c%d", i))
	}

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(app *models.Application) {
			defer wg.Done()

			err := s.store.CreateIfAllowed(ctx, app, models.PerInstitutionLimit)
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.Is(err, store.ErrLimitReached):
				rejected.Add(1)
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}(apps[i])
	}

	wg.Wait()

	s.Equal(int32(models.PerInstitutionLimit), accepted.Load())
	s.Equal(int32(goroutines-models.PerInstitutionLimit), rejected.Load())
}
