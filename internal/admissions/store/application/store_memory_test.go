package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerhub/internal/admissions/models"
	"careerhub/internal/admissions/store"
	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"
)

func newApp(t *testing.T, student, inst, course string) *models.Application {
	t.Helper()
	app, err := models.NewApplication(
		id.StudentID(student), id.InstitutionID(inst), id.CourseID(course),
		"Course "+course, time.Now())
	require.NoError(t, err)
	return app
}

func TestCreateIfAllowed(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	t.Run("creates under the limit", func(t *testing.T) {
		require.NoError(t, s.CreateIfAllowed(ctx, newApp(t, "s1", "i1", "c1"), 2))
		require.NoError(t, s.CreateIfAllowed(ctx, newApp(t, "s1", "i1", "c2"), 2))
	})

	t.Run("rejects at the limit", func(t *testing.T) {
		err := s.CreateIfAllowed(ctx, newApp(t, "s1", "i1", "c3"), 2)
		assert.ErrorIs(t, err, store.ErrLimitReached)
	})

	t.Run("rejects duplicate course under the limit", func(t *testing.T) {
		require.NoError(t, s.CreateIfAllowed(ctx, newApp(t, "s2", "i1", "c1"), 2))
		err := s.CreateIfAllowed(ctx, newApp(t, "s2", "i1", "c1"), 2)
		assert.ErrorIs(t, err, store.ErrDuplicateCourse)
	})

	t.Run("limit takes precedence over duplicate", func(t *testing.T) {
		err := s.CreateIfAllowed(ctx, newApp(t, "s1", "i1", "c1"), 2)
		assert.ErrorIs(t, err, store.ErrLimitReached)
	})

	t.Run("pairs are independent", func(t *testing.T) {
		require.NoError(t, s.CreateIfAllowed(ctx, newApp(t, "s1", "i2", "c1"), 2))
	})
}

func TestExecute(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	app := newApp(t, "s1", "i1", "c1")
	require.NoError(t, s.CreateIfAllowed(ctx, app, 2))

	t.Run("missing application returns ErrNotFound", func(t *testing.T) {
		_, err := s.Execute(ctx, id.ApplicationID("missing"),
			func(*models.Application) error { return nil },
			func(*models.Application) {})
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("validate failure aborts without writing", func(t *testing.T) {
		_, err := s.Execute(ctx, app.ID,
			func(*models.Application) error { return sentinel.ErrInvalidState },
			func(a *models.Application) { a.Status = id.ReviewApproved })
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)

		got, err := s.FindByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, id.ReviewPending, got.Status)
	})

	t.Run("mutation is persisted and returned", func(t *testing.T) {
		now := time.Now()
		updated, err := s.Execute(ctx, app.ID,
			func(*models.Application) error { return nil },
			func(a *models.Application) { a.ApplyReview(id.ReviewApproved, now) })
		require.NoError(t, err)
		assert.Equal(t, id.ReviewApproved, updated.Status)

		got, err := s.FindByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, id.ReviewApproved, got.Status)
		require.NotNil(t, got.ReviewedAt)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		got, err := s.FindByID(ctx, app.ID)
		require.NoError(t, err)
		got.Status = id.ReviewPending

		again, err := s.FindByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, id.ReviewApproved, again.Status)
	})
}
